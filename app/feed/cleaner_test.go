package feed

import (
	"testing"
)

func TestCleanerStripsMarkup(t *testing.T) {
	cleaner := NewCleaner()

	raw := `<p>Breaking: <b>markets</b> rallied today.</p><script>alert("x")</script>`
	got := cleaner.Run(raw)

	want := "Breaking: markets rallied today."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCleanerDecodesEntities(t *testing.T) {
	cleaner := NewCleaner()

	got := cleaner.Run("Fish &amp; chips &mdash; a classic")
	if got != "Fish & chips — a classic" {
		t.Errorf("Entities not decoded: %q", got)
	}
}

func TestCleanerCollapsesWhitespace(t *testing.T) {
	cleaner := NewCleaner()

	got := cleaner.Run("  one\n\ttwo   three\r\nfour  ")
	if got != "one two three four" {
		t.Errorf("Whitespace not collapsed: %q", got)
	}
}

func TestCleanerEmptyInput(t *testing.T) {
	cleaner := NewCleaner()

	if got := cleaner.Run(""); got != "" {
		t.Errorf("Expected empty output for empty input, got %q", got)
	}
}

func TestWordCount(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"one", 1},
		{"one two three", 3},
		{"  padded   words  ", 2},
	}

	for _, c := range cases {
		if got := WordCount(c.input); got != c.want {
			t.Errorf("WordCount(%q) = %d, want %d", c.input, got, c.want)
		}
	}
}
