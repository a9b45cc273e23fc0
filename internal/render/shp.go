package render

import (
	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/dave0/windtower/internal/tower"
)

// shpFields declares the DBF attribute layout of exported shapefiles.
func shpFields() []shp.Field {
	return []shp.Field{
		shp.StringField("CALLSIGN", 16),
		shp.StringField("LICENSEE", 64),
		shp.StringField("LOCATION", 64),
		shp.StringField("METRO", 32),
		shp.FloatField("FREQ_MHZ", 12, 3),
		shp.FloatField("POWER_DBW", 8, 2),
		shp.FloatField("RANGE_KM", 8, 2),
	}
}

// Shapefile writes towers with a known position as an ESRI point shapefile
// at path (go-shp creates the .shp/.shx/.dbf trio). Towers without
// coordinates are skipped and logged.
func Shapefile(path string, towers []*tower.Tower) error {
	out, err := shp.Create(path, shp.POINT)
	if err != nil {
		return eris.Wrapf(err, "render: create shapefile %s", path)
	}
	defer out.Close()

	out.SetFields(shpFields())

	skipped := 0
	row := 0
	for _, t := range towers {
		if t.Point == nil {
			skipped++
			continue
		}
		out.Write(&shp.Point{X: t.Lon(), Y: t.Lat()})

		out.WriteAttribute(row, 0, t.Callsign)
		out.WriteAttribute(row, 1, t.Licensee)
		out.WriteAttribute(row, 2, t.Location)
		out.WriteAttribute(row, 3, t.Metro)
		out.WriteAttribute(row, 4, t.FrequencyMHz)
		out.WriteAttribute(row, 5, t.PowerDBW)
		out.WriteAttribute(row, 6, t.RangeKM)
		row++
	}

	if skipped > 0 {
		zap.L().Debug("render: skipped towers without coordinates",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return nil
}
