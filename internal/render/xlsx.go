package render

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/dave0/windtower/internal/tower"
)

// XLSX writes towers as a single-sheet workbook at path.
func XLSX(path string, towers []*tower.Tower) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Towers")
	if err != nil {
		return eris.Wrap(err, "render: add xlsx sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{
		"Callsign", "Licensee", "Location", "Metro",
		"Frequency (MHz)", "Power (dBW)", "Range (km)", "Latitude", "Longitude",
	} {
		header.AddCell().SetString(h)
	}

	for _, t := range towers {
		row := sheet.AddRow()
		row.AddCell().SetString(t.Callsign)
		row.AddCell().SetString(t.Licensee)
		row.AddCell().SetString(t.Location)
		row.AddCell().SetString(t.Metro)
		row.AddCell().SetFloat(t.FrequencyMHz)
		row.AddCell().SetFloat(t.PowerDBW)
		row.AddCell().SetFloat(t.RangeKM)
		if t.Point != nil {
			row.AddCell().SetFloat(t.Lat())
			row.AddCell().SetFloat(t.Lon())
		} else {
			row.AddCell().SetString("")
			row.AddCell().SetString("")
		}
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "render: save xlsx %s", path)
	}
	return nil
}
