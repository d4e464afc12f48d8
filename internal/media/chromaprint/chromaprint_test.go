package chromaprint

import (
	"context"
	"testing"
)

func TestParseRaw(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []uint32
		wantErr bool
	}{
		{
			name:  "plain values",
			input: "1764135188,1764200725,1760002581",
			want:  []uint32{1764135188, 1764200725, 1760002581},
		},
		{
			name:  "signed values reinterpreted",
			input: "-2,0,1",
			want:  []uint32{4294967294, 0, 1},
		},
		{
			name:  "surrounding whitespace",
			input: "  5, 6 ,7  ",
			want:  []uint32{5, 6, 7},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "1,notanumber", wantErr: true},
		{name: "out of range", input: "99999999999", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseRaw(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseRaw(%q) succeeded, want error", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRaw(%q) failed: %v", tc.input, err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("ParseRaw(%q) = %v, want %v", tc.input, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("ParseRaw(%q)[%d] = %d, want %d", tc.input, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestParseRawOutput(t *testing.T) {
	output := "DURATION=183\nFINGERPRINT=10,20,30\n"
	got, err := ParseRawOutput(output)
	if err != nil {
		t.Fatalf("ParseRawOutput failed: %v", err)
	}
	if len(got) != 3 || got[0] != 10 || got[2] != 30 {
		t.Fatalf("ParseRawOutput = %v, want [10 20 30]", got)
	}

	if _, err := ParseRawOutput("DURATION=183\n"); err == nil {
		t.Fatal("ParseRawOutput without FINGERPRINT line succeeded, want error")
	}
}

func TestFingerprintEmptyPath(t *testing.T) {
	extractor := &Extractor{}
	if _, err := extractor.Fingerprint(context.Background(), "  "); err == nil {
		t.Fatal("Fingerprint with empty path succeeded, want error")
	}
}
