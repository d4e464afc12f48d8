package textnorm

import (
	"math"
	"testing"
)

func TestSimilarityBasics(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"both empty", "", "", 1},
		{"one empty", "abc", "", 0},
		{"identical", "qaradeniz", "qaradeniz", 1},
		{"disjoint", "abc", "xyz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilarityRatio(t *testing.T) {
	// Matching blocks "abcd" (4 runes) out of 4+5 runes: 2*4/9.
	got := Similarity("abcd", "abcde")
	want := 2.0 * 4.0 / 9.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Similarity = %v, want %v", got, want)
	}
}

func TestSimilaritySymmetricRange(t *testing.T) {
	pairs := [][2]string{
		{"bagcalarda kestane", "bagcalarda"},
		{"dertli qaval", "qaval dertli"},
		{"guzel qirim", "guzel qirim ey"},
	}
	for _, p := range pairs {
		ab := Similarity(p[0], p[1])
		ba := Similarity(p[1], p[0])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("Similarity not symmetric for %q/%q: %v vs %v", p[0], p[1], ab, ba)
		}
		if ab < 0 || ab > 1 {
			t.Errorf("Similarity(%q, %q) = %v out of range", p[0], p[1], ab)
		}
	}
}

func TestKeySimilarityContainment(t *testing.T) {
	// Containment is forced to 0.9 even when the raw ratio would be lower.
	a := "qirim"
	b := "qirim anthology volume one remastered"
	if raw := Similarity(a, b); raw >= 0.9 {
		t.Fatalf("test premise broken: raw ratio %v >= 0.9", raw)
	}
	if got := KeySimilarity(a, b); got != 0.9 {
		t.Errorf("KeySimilarity containment = %v, want 0.9", got)
	}
	if got := KeySimilarity(b, a); got != 0.9 {
		t.Errorf("KeySimilarity reverse containment = %v, want 0.9", got)
	}
}

func TestKeySimilarityEmptyNeverMatches(t *testing.T) {
	if got := KeySimilarity("", ""); got != 0 {
		t.Errorf("KeySimilarity empty = %v, want 0", got)
	}
	if got := KeySimilarity("abc", ""); got != 0 {
		t.Errorf("KeySimilarity vs empty = %v, want 0", got)
	}
}

func TestKeySimilarityExact(t *testing.T) {
	if got := KeySimilarity("bagcalarda", "bagcalarda"); got != 1 {
		t.Errorf("KeySimilarity exact = %v, want 1", got)
	}
}

func TestNameSimilarityCrossScript(t *testing.T) {
	got := NameSimilarity("Къарадениз", "Qaradeniz")
	if got != 1 {
		t.Errorf("NameSimilarity cross-script = %v, want 1", got)
	}
}
