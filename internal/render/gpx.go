package render

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/rotisserie/eris"

	"github.com/dave0/windtower/internal/tower"
)

// gpxFile is a minimal GPX 1.1 document: one waypoint per tower.
type gpxFile struct {
	XMLName   xml.Name      `xml:"gpx"`
	Version   string        `xml:"version,attr"`
	Creator   string        `xml:"creator,attr"`
	Namespace string        `xml:"xmlns,attr"`
	Waypoints []gpxWaypoint `xml:"wpt"`
}

type gpxWaypoint struct {
	Lat  float64 `xml:"lat,attr"`
	Lon  float64 `xml:"lon,attr"`
	Name string  `xml:"name"`
	Desc string  `xml:"desc"`
	Sym  string  `xml:"sym,omitempty"`
}

// GPX writes towers with a known position as GPX 1.1 waypoints. Towers
// without coordinates are silently omitted; GPX cannot represent them.
func GPX(w io.Writer, towers []*tower.Tower) error {
	g := gpxFile{
		Version:   "1.1",
		Creator:   "windtower",
		Namespace: "http://www.topografix.com/GPX/1/1",
	}
	for _, t := range towers {
		if t.Point == nil {
			continue
		}
		g.Waypoints = append(g.Waypoints, gpxWaypoint{
			Lat:  t.Lat(),
			Lon:  t.Lon(),
			Name: t.Callsign,
			Desc: fmt.Sprintf("%s - %.1f MHz, %.1f dBW, est. range %.1f km",
				t.Location, t.FrequencyMHz, t.PowerDBW, t.RangeKM),
			Sym: "Radio Beacon",
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return eris.Wrap(err, "render: write gpx header")
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(g); err != nil {
		return eris.Wrap(err, "render: encode gpx")
	}
	_, err := io.WriteString(w, "\n")
	return eris.Wrap(err, "render: write gpx trailer")
}
