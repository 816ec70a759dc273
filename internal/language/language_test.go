package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"EN", "en"},
		{"en-US", "en"},
		{"eng", "en"},
		{"spa", "es"},
		{"fre", "fr"},
		{"ger", "de"},
		{"deu", "de"},
		{"chi", "zh"},
		{"english", "en"},
		{"Spanish", "es"},
		{"auto", ""},
		{"", ""},
		{"???", ""},
	}
	for _, tt := range tests {
		if got := ToISO2(tt.input); got != tt.expected {
			t.Fatalf("ToISO2(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"eng", "English"},
		{"fr", "French"},
		{"ja", "Japanese"},
		{"", "Unknown"},
		{"???", "???"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.expected {
			t.Fatalf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
