package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldCase(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ascii", "  Red MUG ", "red mug"},
		{"sharp s is kept", "STRAßE", "straße"},
		{"final sigma matches lower()", "ΟΔΟΣ", "οδοσ"},
		{"accents", "CAFÉ", "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, foldCase(tt.input))
		})
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%mug%", containsPattern(" MUG "))
	assert.Equal(t, `%50\% off%`, containsPattern("50% OFF"))
	assert.Equal(t, `%tea\_set%`, containsPattern("Tea_Set"))
	assert.Equal(t, `%a\\b%`, containsPattern(`A\B`))
	assert.Equal(t, "%οδοσ%", containsPattern("ΟΔΟΣ"))
}
