package metro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Montréal", "MONTREAL"},
		{"montréal (ouest)", "MONTREAL"},
		{"  Ottawa   Hull ", "OTTAWA HULL"},
		{"Québec, QC", "QUEBEC QC"},
		{"KANATA (GLEN CAIRN)", "KANATA"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestCanonical(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"OTTAWA", "OTTAWA", true},
		{"ottawa", "OTTAWA", true},
		{"Kanata (ON)", "OTTAWA", true},
		{"Montréal", "MONTREAL", true},
		{"MONTEAL", "MONTREAL", true}, // known misspelling
		{"Hull", "GATINEAU", true},
		{"TORONOTO", "TORONTO", true},
		{"OTTAWA, ONTARIO", "OTTAWA", true},
		{"MOOSE FACTORY", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := tbl.Canonical(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestMetrosSorted(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)

	metros := tbl.Metros()
	require.NotEmpty(t, metros)
	assert.Contains(t, metros, "OTTAWA")
	assert.Contains(t, metros, "VANCOUVER")
	for i := 1; i < len(metros); i++ {
		assert.LessOrEqual(t, metros[i-1], metros[i])
	}
}

func TestAliases(t *testing.T) {
	tbl, err := Load()
	require.NoError(t, err)

	aliases := tbl.Aliases("GATINEAU")
	assert.Contains(t, aliases, "HULL")
	assert.NotContains(t, aliases, "GATINEAU")
}
