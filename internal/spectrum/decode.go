package spectrum

import (
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrMissingDataSection reports that the document does not contain both data
// block markers. Decoding cannot proceed without them.
var ErrMissingDataSection = eris.New("spectrum: data section markers not found")

// Markers holds the literal tokens that delimit the legend and data sections
// of a dump.
type Markers struct {
	Legend    string
	DataStart string
	DataEnd   string
}

// DefaultMarkers returns the marker tokens used by Spectrum Direct dumps.
func DefaultMarkers() Markers {
	return Markers{
		Legend:    "Legend",
		DataStart: "[DATA]",
		DataEnd:   "[/DATA]",
	}
}

// Record is one decoded data line: column key to trimmed field value.
type Record map[string]string

// Decoder decodes fixed-width data lines against a legend schema. Data lines
// are space-separated fixed-width columns: each field occupies exactly its
// declared width and exactly one whitespace byte separates consecutive
// fields. Rather than assembling a regexp of capturing groups, the decoder
// precomputes each field's cumulative offset from the schema widths and
// slices lines directly.
type Decoder struct {
	schema  []Column
	offsets []int // cumulative start offset per field
	width   int   // total line width: sum of lengths plus separators
}

// NewDecoder builds a decoder for the given schema. The schema's order
// determines field positions and key order; duplicate keys resolve
// last-write-wins.
func NewDecoder(schema []Column) *Decoder {
	offsets := make([]int, len(schema))
	pos := 0
	for i, c := range schema {
		offsets[i] = pos
		pos += c.Length + 1 // one separator byte after each field
	}
	width := 0
	if len(schema) > 0 {
		width = pos - 1 // no separator after the last field
	}
	return &Decoder{schema: schema, offsets: offsets, width: width}
}

// Schema returns the column schema in legend order.
func (d *Decoder) Schema() []Column { return d.schema }

// Width returns the minimum data line length the schema requires.
func (d *Decoder) Width() int { return d.width }

// Decode extracts one Record per well-formed line of the data block, in line
// order. The data block is the substring strictly between m.DataStart and
// m.DataEnd; if either marker is absent it returns ErrMissingDataSection.
// Malformed lines (too short, or a non-whitespace byte where a separator
// belongs) are skipped and counted, never partially decoded. An empty schema
// yields zero records. Decode is a pure function of (schema, doc).
func (d *Decoder) Decode(doc string, m Markers) (records []Record, skipped int, err error) {
	body, err := dataSection(doc, m)
	if err != nil {
		return nil, 0, err
	}
	if len(d.schema) == 0 {
		return nil, 0, nil
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, ok := d.decodeLine(line)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		zap.L().Debug("spectrum: skipped malformed data lines",
			zap.Int("skipped", skipped),
			zap.Int("decoded", len(records)),
		)
	}
	return records, skipped, nil
}

// decodeLine slices one line against the schema. It reports false when the
// line cannot represent a full record.
func (d *Decoder) decodeLine(line string) (Record, bool) {
	if len(line) < d.width {
		return nil, false
	}

	rec := make(Record, len(d.schema))
	for i, c := range d.schema {
		start := d.offsets[i]
		end := start + c.Length
		// The byte after every field but the last must be a separator.
		if i < len(d.schema)-1 && line[end] != ' ' && line[end] != '\t' {
			return nil, false
		}
		rec[c.Key] = strings.TrimSpace(line[start:end])
	}
	return rec, true
}

// dataSection returns the substring strictly between the data markers.
func dataSection(doc string, m Markers) (string, error) {
	start := strings.Index(doc, m.DataStart)
	if start < 0 {
		return "", eris.Wrapf(ErrMissingDataSection, "start marker %q", m.DataStart)
	}
	rest := doc[start+len(m.DataStart):]
	end := strings.Index(rest, m.DataEnd)
	if end < 0 {
		return "", eris.Wrapf(ErrMissingDataSection, "end marker %q", m.DataEnd)
	}
	return strings.Trim(rest[:end], "\n"), nil
}
