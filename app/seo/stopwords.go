package seo

// stopwords are excluded from keyword extraction.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "her": true,
	"was": true, "one": true, "our": true, "out": true, "his": true,
	"has": true, "had": true, "how": true, "man": true, "new": true,
	"now": true, "old": true, "see": true, "two": true, "way": true,
	"who": true, "its": true, "did": true, "get": true, "may": true,
	"him": true, "she": true, "use": true, "this": true, "that": true,
	"with": true, "from": true, "they": true, "will": true, "would": true,
	"there": true, "their": true, "what": true, "about": true, "which": true,
	"when": true, "were": true, "been": true, "have": true, "more": true,
	"also": true, "into": true, "than": true, "them": true, "then": true,
	"some": true, "such": true, "over": true, "only": true, "most": true,
	"other": true, "after": true, "first": true, "these": true, "those": true,
	"your": true, "said": true, "says": true, "while": true, "where": true,
	"because": true, "being": true, "very": true, "just": true, "could": true,
	"should": true, "between": true, "during": true, "before": true,
	"through": true, "against": true, "under": true, "here": true,
}
