package translit

import "testing"

func TestTransliterateDigraphsBeforeSingles(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"qaf digraph", "къара", "qara"},
		{"ghayn digraph", "багъча", "bağça"},
		{"nasal digraph", "манъа", "maña"},
		{"c digraph", "джыйын", "cıyın"},
		{"uppercase digraph", "КЪАРАДЕНИЗ", "QARADENİZ"},
		{"titlecase digraph", "Къарадениз", "Qaradeniz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Transliterate(tt.input); got != tt.want {
				t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTransliterateWords(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Багъчаларда", "Bağçalarda"},
		{"кестане", "kestane"},
		{"йырла", "yırla"},
		{"севги", "sevgi"},
		{"ватан", "vatan"},
		{"достлукъ", "dostluq"},
		{"огълан", "oğlan"},
		{"чёль", "çyol"},
		{"эльвида", "elvida"},
		{"яшлыкъ", "yaşlıq"},
	}

	for _, tt := range tests {
		if got := Transliterate(tt.input); got != tt.want {
			t.Errorf("Transliterate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTransliterateUnmappedPassThrough(t *testing.T) {
	tests := []string{
		"",
		"already latin",
		"Bağçalarda",
		"123 - 456",
		"🎵 emoji",
	}
	for _, input := range tests {
		if got := Transliterate(input); got != input {
			t.Errorf("Transliterate(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestTransliterateMixedScript(t *testing.T) {
	got := Transliterate("Qırım - Къырым")
	want := "Qırım - Qırım"
	if got != want {
		t.Errorf("Transliterate mixed = %q, want %q", got, want)
	}
}

func TestHasCyrillic(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", false},
		{"latin only", false},
		{"Bağçalarda", false},
		{"Ватан", true},
		{"mixed Ватан text", true},
		{"🎵", false},
	}
	for _, tt := range tests {
		if got := HasCyrillic(tt.input); got != tt.want {
			t.Errorf("HasCyrillic(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
