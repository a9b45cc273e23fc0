package render

import (
	"fmt"
	"io"

	"github.com/rotisserie/eris"

	"github.com/dave0/windtower/internal/spectrum"
)

// Debug dumps the legend schema and every decoded record with fields in
// schema order, for eyeballing what the parser actually extracted.
func Debug(w io.Writer, schema []spectrum.Column, records []spectrum.Record, skipped int) error {
	fmt.Fprintf(w, "schema: %d columns\n", len(schema))
	for _, c := range schema {
		unit := c.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(w, "  %-30s key=%-25s unit=%-6s bytes %d+%d\n",
			c.Name, c.Key, unit, c.Start, c.Length)
	}

	fmt.Fprintf(w, "records: %d decoded, %d skipped\n", len(records), skipped)
	for i, rec := range records {
		fmt.Fprintf(w, "--- record %d\n", i)
		for _, c := range schema {
			fmt.Fprintf(w, "  %-25s = %q\n", c.Key, rec[c.Key])
		}
	}

	_, err := fmt.Fprintln(w)
	return eris.Wrap(err, "render: write debug dump")
}
