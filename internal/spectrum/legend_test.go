package spectrum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLegend_OffsetsAndWidths(t *testing.T) {
	doc := "preamble\nLegend\n" +
		"Callsign              1 - 8\n" +
		"Tx Frequency (MHz)   10 - 19\n" +
		"Station Location     20 - 59\n"

	cols := ParseLegend(doc, "Legend")
	require.Len(t, cols, 3)

	assert.Equal(t, 0, cols[0].Start)
	assert.Equal(t, 8, cols[0].Length)
	assert.Equal(t, 9, cols[1].Start)
	assert.Equal(t, 10, cols[1].Length)
	assert.Equal(t, 19, cols[2].Start)
	assert.Equal(t, 40, cols[2].Length)
}

func TestParseLegend_KeyAndUnit(t *testing.T) {
	tests := []struct {
		name string
		key  string
		unit string
	}{
		{"Tx Power (dBW)", "Tx_Power", "dBW"},
		{"Tx Frequency (MHz)", "Tx_Frequency", "MHz"},
		{"Station Location", "Station_Location", ""},
		{"Callsign", "Callsign", ""},
		{"Antenna (see note) Height (m)", "Antenna_Height", "m"},
		{"Azimuth   of  Max Gain", "Azimuth_of_Max_Gain", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := "Legend\n" + tt.name + "   1 - 10\n"
			cols := ParseLegend(doc, "Legend")
			require.Len(t, cols, 1)
			assert.Equal(t, tt.key, cols[0].Key)
			assert.Equal(t, tt.unit, cols[0].Unit)
			assert.Equal(t, tt.name, cols[0].Name)
		})
	}
}

func TestParseLegend_SkipsNonMatchingLines(t *testing.T) {
	doc := "Legend\n" +
		"\n" +
		"Field Name           Position\n" +
		"--------------------------\n" +
		"Callsign              1 - 8\n" +
		"Broken Range          10-19\n" + // no whitespace around the hyphen
		"Tx Frequency (MHz)   10 - 19\n"

	cols := ParseLegend(doc, "Legend")
	require.Len(t, cols, 2)
	assert.Equal(t, "Callsign", cols[0].Key)
	assert.Equal(t, "Tx_Frequency", cols[1].Key)
}

func TestParseLegend_MissingMarker(t *testing.T) {
	cols := ParseLegend("no legend here\nCallsign  1 - 8\n", "Legend")
	assert.Empty(t, cols)
}

func TestParseLegend_EmptyBlock(t *testing.T) {
	cols := ParseLegend("Legend\nnothing matches here\n", "Legend")
	assert.Empty(t, cols)
}

func TestParseLegend_RejectsInvertedRange(t *testing.T) {
	cols := ParseLegend("Legend\nBackwards   19 - 10\n", "Legend")
	assert.Empty(t, cols)
}

func TestParseLegend_PreservesDuplicateKeys(t *testing.T) {
	doc := "Legend\n" +
		"Remarks (EN)   1 - 20\n" +
		"Remarks (FR)  22 - 41\n"
	cols := ParseLegend(doc, "Legend")
	require.Len(t, cols, 2)
	assert.Equal(t, "Remarks", cols[0].Key)
	assert.Equal(t, "Remarks", cols[1].Key)
}
