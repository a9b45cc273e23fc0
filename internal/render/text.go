// Package render writes scan results in the supported output formats:
// plain-text table, GPX, ESRI shapefile, XLSX workbook, and a debug dump of
// raw records.
package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/dave0/windtower/internal/tower"
)

// Table writes towers as an aligned text table.
func Table(w io.Writer, towers []*tower.Tower) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "CALLSIGN\tFREQ (MHz)\tPOWER (dBW)\tRANGE (km)\tMETRO\tLOCATION")
	for _, t := range towers {
		fmt.Fprintf(tw, "%s\t%.1f\t%.1f\t%.1f\t%s\t%s\n",
			t.Callsign, t.FrequencyMHz, t.PowerDBW, t.RangeKM, t.Metro, t.Location)
	}
	fmt.Fprintf(tw, "\n%d towers\n", len(towers))

	return eris.Wrap(tw.Flush(), "render: flush table")
}
