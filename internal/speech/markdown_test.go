package speech

import "testing"

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{
			"plain text untouched",
			"Tort law covers civil wrongs.",
			"Tort law covers civil wrongs.",
		},
		{
			"emphasis removed",
			"This is **very** important and _binding_.",
			"This is very important and binding.",
		},
		{
			"heading markers removed",
			"## Summary\nThe claim fails.",
			"Summary The claim fails.",
		},
		{
			"links keep their label",
			"See [the statute](https://example.com/s1) for details.",
			"See the statute for details.",
		},
		{
			"images keep their alt text",
			"![diagram](https://example.com/d.png) shows the chain.",
			"diagram shows the chain.",
		},
		{
			"code fences dropped",
			"Example:\n```go\nx := 1\n```\nDone.",
			"Example: x := 1 Done.",
		},
		{
			"inline code unwrapped",
			"Use the `force majeure` clause.",
			"Use the force majeure clause.",
		},
		{
			"bullets and quotes",
			"- first element\n- second element\n> cited passage",
			"first element second element cited passage",
		},
		{
			"newlines collapse to spaces",
			"one\n\ntwo\nthree",
			"one two three",
		},
		{
			"empty input",
			"",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripMarkdown(tt.in); got != tt.want {
				t.Errorf("StripMarkdown(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
