package gosign

import "testing"

func TestGetSignLanguageName(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"ase", "American Sign Language"},
		{"bfi", "British Sign Language"},
		{"gsg", "German Sign Language (DGS)"},
		{"ASE", "American Sign Language"},
		{"en", "American Sign Language"}, // Spoken code resolves to regional default
		{"xyz", "xyz"},                   // Unknown codes fall back to themselves
	}

	for _, tt := range tests {
		if name := GetSignLanguageName(tt.code); name != tt.expected {
			t.Errorf("GetSignLanguageName(%q) = %q, want %q", tt.code, name, tt.expected)
		}
	}
}

func TestIsSupported(t *testing.T) {
	supported := []string{"ase", "bfi", "gsg", "jsl", "en", "de", " ase "}
	for _, code := range supported {
		if !IsSupported(code) {
			t.Errorf("expected %q to be supported", code)
		}
	}

	unsupported := []string{"", "xyz", "klingon"}
	for _, code := range unsupported {
		if IsSupported(code) {
			t.Errorf("expected %q to be unsupported", code)
		}
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ASE", "ase"},
		{" bfi ", "bfi"},
		{"en", "ase"},
		{"de", "gsg"},
		{"fr", "fsl"},
		{"xyz", "xyz"},
	}

	for _, tt := range tests {
		if got := NormalizeLanguage(tt.input); got != tt.expected {
			t.Errorf("NormalizeLanguage(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
