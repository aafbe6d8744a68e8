package validators

import "testing"

func TestSanitizeString(t *testing.T) {
	cases := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "trims", input: "  fintech ", max: 64, want: "fintech"},
		{name: "drops control characters", input: "clean\x00tech\n", max: 64, want: "cleantech"},
		{name: "cuts on runes", input: "énergie", max: 3, want: "éne"},
		{name: "no limit", input: " health ", max: 0, want: "health"},
		{name: "cut leaves no trailing space", input: "climate tech", max: 8, want: "climate"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeString(tc.input, tc.max); got != tc.want {
				t.Fatalf("SanitizeString(%q, %d) = %q, want %q", tc.input, tc.max, got, tc.want)
			}
		})
	}
}
