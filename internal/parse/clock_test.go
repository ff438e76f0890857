package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expected  string
		expectErr bool
	}{
		{
			name:     "Full form",
			raw:      "10:30",
			expected: "10:30",
		},
		{
			name:     "Hour only",
			raw:      "9",
			expected: "09:00",
		},
		{
			name:     "Dot separator",
			raw:      "9.30",
			expected: "09:30",
		},
		{
			name:     "Padded input",
			raw:      "  11:05 ",
			expected: "11:05",
		},
		{
			name:     "Empty is passed through",
			raw:      "",
			expected: "",
		},
		{
			name:      "Hour out of range",
			raw:       "25:00",
			expectErr: true,
		},
		{
			name:      "Minutes out of range",
			raw:       "10:75",
			expectErr: true,
		},
		{
			name:      "Garbage",
			raw:       "mezzogiorno",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseClock(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}
