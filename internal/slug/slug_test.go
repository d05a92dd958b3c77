package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple two words", input: "Hello World", want: "hello-world"},
		{name: "title with year", input: "Hello World 2026", want: "hello-world-2026"},
		{name: "punctuation marks", input: "Hello, World! How's it going?", want: "hello-world-hows-it-going"},
		{name: "ampersand and at sign", input: "Rock & Roll @ the Arena", want: "rock-roll-the-arena"},
		{name: "version number", input: "Version 2.0.1", want: "version-201"},

		// --- Localized titles ---
		{name: "spanish tilde", input: "Diseñar para cualquier lector", want: "disenar-para-cualquier-lector"},
		{name: "spanish accents", input: "Índices de Postgres que lamentamos", want: "indices-de-postgres-que-lamentamos"},
		{name: "portuguese cedilla and tilde", input: "Rotação sem indisponibilidade", want: "rotacao-sem-indisponibilidade"},
		{name: "portuguese circumflex", input: "Você já viu?", want: "voce-ja-viu"},
		{name: "non-latin script dropped", input: "Hello 世界 World", want: "hello-world"},

		// --- Whitespace and hyphens ---
		{name: "surrounding spaces", input: "  hello world  ", want: "hello-world"},
		{name: "consecutive spaces collapsed", input: "hello    world", want: "hello-world"},
		{name: "tabs and newlines separate words", input: "hello\tbig\nworld", want: "hello-big-world"},
		{name: "hyphen runs collapsed", input: "  --hello -- world--  ", want: "hello-world"},
		{name: "single hyphen preserved", input: "well-known fact", want: "well-known-fact"},
		{name: "date-like string", input: "2026-02-25", want: "2026-02-25"},

		// --- Edge cases ---
		{name: "empty string", input: "", want: ""},
		{name: "only spaces", input: "     ", want: ""},
		{name: "only special characters", input: "!@#$%^&*()", want: ""},
		{name: "single character", input: "A", want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerate_Idempotent verifies that generating a slug from an already
// valid slug produces the same result.
func TestGenerate_Idempotent(t *testing.T) {
	for _, s := range []string{"hello-world", "my-blog-post-2026", "a", "123"} {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want idempotent result %q", s, got, s)
			}
		})
	}
}
