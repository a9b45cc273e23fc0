// Package spectrum parses fixed-width spectrum-licence dumps whose column
// layout is described by a legend embedded in the same document. Parsing is
// two-phase: ParseLegend extracts the column schema, then a Decoder built
// from that schema decodes the data block line by line.
package spectrum

import (
	"regexp"
	"strconv"
	"strings"
)

// Column describes one fixed-width field declared by the legend.
type Column struct {
	// Name is the legend label as printed, trailing whitespace stripped.
	Name string

	// Key is the normalized identifier used to address decoded values:
	// Name with every parenthesized group removed, trimmed, and internal
	// whitespace runs collapsed to a single underscore.
	Key string

	// Unit is the interior of a trailing parenthesized suffix of Name,
	// empty when the label carries none.
	Unit string

	// Start is the zero-based byte offset of the field. The legend
	// declares 1-based offsets.
	Start int

	// Length is the field width in bytes, end - start + 1 as declared.
	Length int
}

// legendLineRe matches one legend entry: a label, whitespace, then a 1-based
// byte range with the hyphen surrounded by whitespace. Anything else in the
// legend block (blank lines, headers, separators) is skipped.
var legendLineRe = regexp.MustCompile(`^(.+?)\s+(\d+)\s+-\s+(\d+)\s*$`)

// parenRe matches a parenthesized group anywhere in a label.
var parenRe = regexp.MustCompile(`\([^)]*\)`)

// unitRe captures the interior of a trailing parenthesized suffix.
var unitRe = regexp.MustCompile(`\(([^)]*)\)$`)

// wsRunRe matches a run of internal whitespace.
var wsRunRe = regexp.MustCompile(`\s+`)

// ParseLegend extracts the column schema from the legend block of doc. The
// block begins immediately after the first occurrence of marker and runs
// through the end of the document. Columns are returned in legend order;
// duplicate keys are kept as-is (the decoder resolves them last-write-wins).
// A document with no matching legend lines yields an empty schema.
func ParseLegend(doc, marker string) []Column {
	idx := strings.Index(doc, marker)
	if idx < 0 {
		return nil
	}
	block := doc[idx+len(marker):]

	var cols []Column
	for _, line := range strings.Split(block, "\n") {
		m := legendLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		start, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		end, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		if start < 1 || end < start {
			continue
		}

		name := strings.TrimRight(m[1], " \t")
		cols = append(cols, Column{
			Name:   name,
			Key:    columnKey(name),
			Unit:   columnUnit(name),
			Start:  start - 1,
			Length: end - start + 1,
		})
	}
	return cols
}

// columnKey normalizes a legend label into a lookup identifier. Every
// parenthesized group is removed, not just a trailing unit, so labels with
// embedded annotations still produce stable keys.
func columnKey(name string) string {
	key := parenRe.ReplaceAllString(name, "")
	key = strings.TrimSpace(key)
	return wsRunRe.ReplaceAllString(key, "_")
}

// columnUnit extracts the unit from a trailing parenthesized suffix, e.g.
// "Tx Power (dBW)" -> "dBW".
func columnUnit(name string) string {
	m := unitRe.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return ""
	}
	return m[1]
}
