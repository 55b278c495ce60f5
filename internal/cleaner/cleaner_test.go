package cleaner

import (
	"strings"
	"testing"
)

func TestCleanTruncatesAtReferences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "title case heading",
			input: "Deep learning works well.\nReferences\n[1] Some Paper, 2019.",
			want:  "Deep learning works well.",
		},
		{
			name:  "upper case heading",
			input: "Results were strong. REFERENCES [1] Another Paper.",
			want:  "Results were strong.",
		},
		{
			name:  "heading embedded mid text",
			input: "Intro text References trailing bibliography entries",
			want:  "Intro text",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanRemovesURLsAndDOIs(t *testing.T) {
	input := "See http://example.com/paper and www.arxiv.org for details, doi: 10.1000/xyz123 too."
	got := Clean(input)
	for _, banned := range []string{"http", "www", "10.1000"} {
		if strings.Contains(got, banned) {
			t.Errorf("Clean(%q) = %q, still contains %q", input, got, banned)
		}
	}
}

func TestCleanRemovesDOICaseInsensitive(t *testing.T) {
	got := Clean("as shown in DOI: 10.5555/abc previously")
	if strings.Contains(got, "10.5555") {
		t.Errorf("got %q, DOI should be removed", got)
	}
}

func TestCleanNormalizesWhitespace(t *testing.T) {
	got := Clean("  spread \t over\n\nmany    lines ")
	want := "spread over many lines"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain text with no noise",
		"text  with \t odd\nspacing and http://a.b/c links",
		"body References [1] entry doi: 10.1/2 www.site.org",
		"  leading and trailing  ",
	}
	for _, input := range inputs {
		once := Clean(input)
		twice := Clean(once)
		if once != twice {
			t.Errorf("Clean not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestCleanEmptyInput(t *testing.T) {
	if got := Clean(""); got != "" {
		t.Errorf("Clean(\"\") = %q, want empty", got)
	}
}
