package match

import (
	"errors"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	base := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "fpcalc", "/music/track.mp3", base)

	if !errors.Is(err, ErrExternalTool) {
		t.Fatalf("wrapped error lost its marker: %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("wrapped error lost its cause: %v", err)
	}
	if !strings.Contains(err.Error(), "fpcalc") {
		t.Fatalf("wrapped error lost its component: %v", err)
	}
}

func TestWrapDefaults(t *testing.T) {
	err := Wrap(nil, "", "", nil)
	if !errors.Is(err, ErrFatal) {
		t.Fatalf("nil marker should default to ErrFatal: %v", err)
	}
	if !strings.Contains(err.Error(), "engine failure") {
		t.Fatalf("empty detail should fall back to a generic message: %v", err)
	}
}
