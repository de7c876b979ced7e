package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripFootnotes(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{"599.931", "599.931"},
		{"599.931[a]", "599.931"},
		{"599.931[note 3]", "599.931"},
		{"[12]599.931[b][c]", "599.931"},
		{"no markers here", "no markers here"},
		{"[only a marker]", ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, StripFootnotes(test.in), "input: %q", test.in)
	}
}

func TestCoerceFloat(t *testing.T) {
	testCases := []struct {
		in       string
		expected float64
		ok       bool
	}{
		{"599.931", 599.931, true},
		{"599.931[a]", 599.931, true},
		{" 156.356 ", 156.356, true},
		{"1,234.5", 1234.5, true},
		{"49,992", 49992, true},
		{"", 0, false},
		{"[a]", 0, false},
		{"n/a", 0, false},
		{"12.3.4", 0, false},
	}

	for _, test := range testCases {
		v, ok := CoerceFloat(test.in)
		require.Equal(t, test.ok, ok, "input: %q", test.in)
		if test.ok {
			require.Equal(t, test.expected, v, "input: %q", test.in)
		}
	}
}

// the cleaned value must not depend on what the annotation says
func TestCoerceFloatAnnotationIndependence(t *testing.T) {
	annotations := []string{"[a]", "[b]", "[12]", "[note 1]", "[citation needed]"}
	for _, a := range annotations {
		v, ok := CoerceFloat("225.530" + a)
		require.True(t, ok)
		require.Equal(t, 225.530, v)
	}
}
