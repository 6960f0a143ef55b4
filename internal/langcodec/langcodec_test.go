package langcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty string", "", []string{}},
		{"empty list", "[]", []string{}},
		{"single", "['English']", []string{"English"}},
		{"two tokens", "['English', 'Français']", []string{"English", "Français"}},
		{"double quotes", `["English", "Deutsch"]`, []string{"English", "Deutsch"}},
		{"drops sentinel and corrupted", "['English', 'No Language', 'Fran?ais']", []string{"English"}},
		{"keeps duplicates", "['English', 'English']", []string{"English", "English"}},
		{"only sentinel", "['No Language']", []string{}},
		{"surrounding whitespace", "  ['Español']  ", []string{"Español"}},
		{"bare list", "English, Français", []string{"English", "Français"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"English", "en"},
		{"english", "en"},
		{"French", "fr"},
		{"Français", "fr"},
		{"Deutsch", "de"},
		{"Español", "es"},
		{"en", "en"},
		{"FR", "fr"},
		{"fra", "fr"},
		{"deu", "de"},
		{"Klingonish", "Klingonish"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestDenormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"fr", "French"},
		{"de", "German"},
		{"English", "English"},
		{"zz", "zz"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Denormalize(tt.input))
		})
	}
}

func TestParseAndNormalize(t *testing.T) {
	got := ParseAndNormalize("['English', 'Français', 'No Language', 'Elvish']")
	assert.Equal(t, []string{"en", "fr", "Elvish"}, got)
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"en", "fr"}, Unique([]string{"en", "fr", "en", "fr"}))
	assert.Empty(t, Unique(nil))
}

func TestVariants(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"fr", []string{"fr", "French", "français"}},
		{"French", []string{"French", "fr", "français"}},
		{"Français", []string{"Français", "fr", "French", "français"}},
		{"en", []string{"en", "English"}},
		{"Klingonish", []string{"Klingonish"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Variants(tt.input))
		})
	}
}
