package slug

import "testing"

// TestGenerate covers the three directions identifiers arrive from:
// authored page titles, YAML file names, and raw route parameters.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		// Campaign titles.
		{name: "plain title", input: "Save the River", want: "save-the-river"},
		{name: "punctuated title", input: "Clean Air Now!", want: "clean-air-now"},
		{name: "title with year", input: "Housing for All 2026", want: "housing-for-all-2026"},
		{name: "apostrophe dropped", input: "The People's Library", want: "the-peoples-library"},
		{name: "ampersand dropped", input: "Parks & Playgrounds", want: "parks-playgrounds"},
		{name: "colon separated", input: "Riverside: A Cleanup Plan", want: "riverside-a-cleanup-plan"},

		// File names feeding the directory source.
		{name: "underscored file name", input: "save_the_river", want: "save-the-river"},
		{name: "mixed separators", input: "clean_air-now", want: "clean-air-now"},
		{name: "numbered export", input: "page_07_final", want: "page-07-final"},

		// Route parameters.
		{name: "already canonical", input: "save-the-river", want: "save-the-river"},
		{name: "uppercased request path", input: "Save-The-River", want: "save-the-river"},
		{name: "percent leftovers dropped", input: "save%20the%20river", want: "save20the20river"},

		// Whitespace.
		{name: "surrounding spaces", input: "  save the river  ", want: "save-the-river"},
		{name: "run of spaces", input: "save    the river", want: "save-the-river"},
		{name: "tab and newline", input: "save\tthe\nriver", want: "save-the-river"},

		// Hyphen runs and edges.
		{name: "hyphen run", input: "save---the---river", want: "save-the-river"},
		{name: "leading and trailing hyphens", input: "--save the river--", want: "save-the-river"},
		{name: "separator soup", input: " -_ save _- river _ ", want: "save-river"},

		// Degenerate inputs.
		{name: "empty", input: "", want: ""},
		{name: "only separators", input: " -_- ", want: ""},
		{name: "only symbols", input: "!@#$%", want: ""},
		{name: "single letter", input: "A", want: "a"},
		{name: "date-like", input: "2026-02-25", want: "2026-02-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerateIdempotent verifies a canonical slug round-trips
// unchanged, so normalizing an incoming route parameter never moves a
// page to a different address.
func TestGenerateIdempotent(t *testing.T) {
	inputs := []string{
		"Save the River",
		"save_the_river.yaml",
		"  Clean Air Now!  ",
		"housing-for-all-2026",
	}
	for _, in := range inputs {
		once := Generate(in)
		if twice := Generate(once); twice != once {
			t.Errorf("Generate(Generate(%q)): %q != %q", in, twice, once)
		}
	}
}

// TestGenerateTitleAndFileNameAgree verifies a page authored under a
// title and exported under the matching file name resolve to the same
// slug.
func TestGenerateTitleAndFileNameAgree(t *testing.T) {
	pairs := [][2]string{
		{"Save the River", "save_the_river"},
		{"Clean Air Now!", "clean_air_now"},
		{"Housing for All 2026", "housing_for_all_2026"},
	}
	for _, p := range pairs {
		if a, b := Generate(p[0]), Generate(p[1]); a != b {
			t.Errorf("title %q and file name %q diverge: %q vs %q", p[0], p[1], a, b)
		}
	}
}
