package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	normalizer := NewNormalizer(nil)

	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "empty string",
			raw:      "",
			expected: "",
		},
		{
			name:     "lowercase",
			raw:      "Boddington",
			expected: "boddington",
		},
		{
			name:     "trailing punctuation",
			raw:      "boddington gold mine.",
			expected: "boddington",
		},
		{
			name:     "generic and commodity suffixes strip together",
			raw:      "Boddington Gold Mine",
			expected: "boddington",
		},
		{
			name:     "stacked generic suffixes stripped",
			raw:      "Telfer Gold Mine Project",
			expected: "telfer",
		},
		{
			name:     "lone generic token survives",
			raw:      "Mine",
			expected: "mine",
		},
		{
			name:     "whitespace runs collapse",
			raw:      "  Mount   Isa\tDeposit ",
			expected: "mount isa",
		},
		{
			name:     "internal punctuation becomes a space",
			raw:      "Mt. Isa",
			expected: "mt isa",
		},
		{
			name:     "unicode normalised",
			raw:      "ＢＯＤＤＩＮＧＴＯＮ",
			expected: "boddington",
		},
	}
	for _, tt := range tests {
		t.Log(tt.name)
		assert.Equal(t, tt.expected, normalizer.Normalize(tt.raw))
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	normalizer := NewNormalizer(nil)

	inputs := []string{
		"Boddington Gold Mine",
		"boddington gold mine.",
		"Mine",
		"  weird -- input!! ",
		"Telfer Gold Mine Project",
		"",
	}
	for _, raw := range inputs {
		once := normalizer.Normalize(raw)
		assert.Equal(t, once, normalizer.Normalize(once), raw)
	}
}

func TestNormalizeVariantsShareAKey(t *testing.T) {
	normalizer := NewNormalizer(nil)

	variants := []string{"Boddington Gold Mine", "boddington gold mine.", "BODDINGTON GOLD", "Boddington"}
	key := normalizer.Normalize(variants[0])
	for _, v := range variants[1:] {
		assert.Equal(t, key, normalizer.Normalize(v))
	}
}

func TestNormalizeCustomSuffixes(t *testing.T) {
	normalizer := NewNormalizer([]string{"pit"})

	assert.Equal(t, "super", normalizer.Normalize("Super Pit"))
	assert.Equal(t, "boddington gold mine", normalizer.Normalize("Boddington Gold Mine"))
}
