package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractQualifiers(t *testing.T) {
	extractor := QualifierExtractor{}

	tests := []struct {
		name     string
		context  string
		expected []string
	}{
		{
			name:     "empty context",
			context:  "",
			expected: nil,
		},
		{
			name:     "full region name",
			context:  "The Boddington project is located in Western Australia, 130km from Perth.",
			expected: []string{"Western Australia"},
		},
		{
			name:     "state code expands",
			context:  "Drilling continues at the Telfer mine (WA) this quarter.",
			expected: []string{"Western Australia"},
		},
		{
			name:     "state code does not duplicate the full name",
			context:  "Located in Western Australia (WA), near Boddington.",
			expected: []string{"Western Australia"},
		},
		{
			name:     "multiple qualifiers keep text order",
			context:  "Tenements span Queensland and the Northern Territory near Mount Isa.",
			expected: []string{"Queensland", "Northern Territory"},
		},
		{
			name:     "district marker",
			context:  "Assays from the Murchison District returned high grades.",
			expected: []string{"Murchison District"},
		},
		{
			name:     "company names are not qualifiers",
			context:  "Newmont Corporation announced record production.",
			expected: nil,
		},
	}
	for _, tt := range tests {
		t.Log(tt.name)
		assert.Equal(t, tt.expected, extractor.Extract(tt.context))
	}
}
