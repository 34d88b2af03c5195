package rewrite

import (
	"strings"

	"github.com/olamidejo/feedscribe/app/feed"
)

const systemPrompt = "You are a professional content writer."

// Prompt templates keyed by feed category. Each sets a tone appropriate
// to the category and the same structural requirements: at least 500
// words, natural keyword use, and the labelled output sections the
// engine parses. {BLOG_URL} is replaced with the target blog's URL.
var promptTemplates = map[feed.Category]string{
	feed.CategoryNews: `You are an expert news journalist. Rewrite the article with a professional,
informative tone, focusing on clarity and context. Ensure the content is at least 500
words, SEO-optimized with relevant keywords (e.g., news, politics, current events).
Maintain the core idea but enrich it with political or cultural insight. The tone
should suit {BLOG_URL}.`,

	feed.CategoryTech: `You are a tech journalist with a conversational yet professional tone. Rewrite
the article to be SEO-optimized and at least 500 words, focusing on tech trends and
innovation. Use keywords like technology, gadgets, or innovation. Enrich the piece
with industry insight, suitable for {BLOG_URL}.`,

	feed.CategoryBusiness: `You are a business analyst. Rewrite the article with a professional,
data-driven tone, at least 500 words, SEO-optimized with keywords like economy,
markets, finance. Add economic context or market trends, suitable for {BLOG_URL}.`,

	feed.CategoryEntertainment: `You are an entertainment writer with a lively, engaging tone. Rewrite the
article to be SEO-optimized and at least 500 words, using keywords like celebrity,
entertainment, pop culture. Enrich it with celebrity context or pop culture trends,
suitable for {BLOG_URL}.`,
}

const defaultPrompt = `You are an expert content writer specializing in SEO and original content
creation. Rewrite the following article to be unique, engaging, and optimized for
search. Ensure the content is at least 500 words, includes relevant keywords
naturally, and maintains the core idea while rephrasing entirely to avoid
plagiarism. If the original content is brief, enrich it with relevant context to
create a comprehensive article. The tone should be professional yet conversational,
suitable for a blog like {BLOG_URL}.`

// PromptFor returns the category's prompt template with the blog URL
// substituted. Unmapped categories get the default template.
func PromptFor(category feed.Category, blogURL string) string {
	template, ok := promptTemplates[category]
	if !ok {
		template = defaultPrompt
	}
	return strings.ReplaceAll(template, "{BLOG_URL}", blogURL)
}
