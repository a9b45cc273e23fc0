// Package tower turns decoded licence records into transmitter sites:
// numeric coercion, coordinate parsing, metro normalization, band filtering,
// dedup and ordering. The decoder keeps every field as a string; all
// interpretation of those strings happens here.
package tower

import (
	"sort"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/dave0/windtower/internal/estimate"
	"github.com/dave0/windtower/internal/metro"
	"github.com/dave0/windtower/internal/spectrum"
)

// Record keys produced by the legend normalization for the fields this
// layer consumes.
const (
	KeyCallsign  = "Callsign"
	KeyLicensee  = "Licensee"
	KeyLocation  = "Station_Location"
	KeyFrequency = "Tx_Frequency"
	KeyPower     = "Tx_Power"
	KeyLatitude  = "Latitude"
	KeyLongitude = "Longitude"
)

// Tower is one transmitter site.
type Tower struct {
	Callsign     string      `json:"callsign"`
	Licensee     string      `json:"licensee,omitempty"`
	Location     string      `json:"location"`
	Metro        string      `json:"metro,omitempty"`
	FrequencyMHz float64     `json:"frequency_mhz"`
	PowerDBW     float64     `json:"power_dbw,omitempty"`
	Point        *geom.Point `json:"-"`
	RangeKM      float64     `json:"range_km,omitempty"`
}

// Lat returns the latitude in decimal degrees, 0 when no fix is known.
func (t *Tower) Lat() float64 {
	if t.Point == nil {
		return 0
	}
	return t.Point.Y()
}

// Lon returns the longitude in decimal degrees, 0 when no fix is known.
func (t *Tower) Lon() float64 {
	if t.Point == nil {
		return 0
	}
	return t.Point.X()
}

// Builder converts records to towers using a metro table for location
// normalization.
type Builder struct {
	Metros           *metro.Table
	RxSensitivityDBM float64
	DefaultPowerDBW  float64
}

// FromRecords builds towers from decoded records, in record order. Records
// without a usable transmit frequency are dropped and counted; every other
// field degrades gracefully to its zero value.
func (b *Builder) FromRecords(records []spectrum.Record) (towers []*Tower, dropped int) {
	for _, rec := range records {
		tw, ok := b.fromRecord(rec)
		if !ok {
			dropped++
			continue
		}
		towers = append(towers, tw)
	}
	if dropped > 0 {
		zap.L().Debug("tower: dropped records without usable frequency",
			zap.Int("dropped", dropped),
			zap.Int("kept", len(towers)),
		)
	}
	return towers, dropped
}

func (b *Builder) fromRecord(rec spectrum.Record) (*Tower, bool) {
	freq, err := strconv.ParseFloat(rec[KeyFrequency], 64)
	if err != nil || freq <= 0 {
		return nil, false
	}

	tw := &Tower{
		Callsign:     rec[KeyCallsign],
		Licensee:     rec[KeyLicensee],
		Location:     rec[KeyLocation],
		FrequencyMHz: freq,
		PowerDBW:     b.DefaultPowerDBW,
	}

	if p, err := strconv.ParseFloat(rec[KeyPower], 64); err == nil {
		tw.PowerDBW = p
	}
	if b.Metros != nil {
		if m, ok := b.Metros.Canonical(tw.Location); ok {
			tw.Metro = m
		}
	}

	lat, latOK := parseCoordinate(rec[KeyLatitude], "N", "S")
	lon, lonOK := parseCoordinate(rec[KeyLongitude], "E", "W")
	if latOK && lonOK {
		tw.Point = geom.NewPointFlat(geom.XY, []float64{lon, lat}).SetSRID(4326)
	}

	tw.RangeKM = estimate.RangeKM(tw.PowerDBW, tw.FrequencyMHz, b.RxSensitivityDBM)
	return tw, true
}

// parseCoordinate accepts decimal degrees ("45.4215", "-75.6972") or
// space-separated degrees-minutes-seconds with an optional hemisphere
// letter ("45 25 17 N"). pos and neg name the hemisphere letters for the
// positive and negative directions.
func parseCoordinate(s, pos, neg string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	sign := 1.0
	upper := strings.ToUpper(s)
	if strings.HasSuffix(upper, pos) {
		s = strings.TrimSpace(s[:len(s)-1])
	} else if strings.HasSuffix(upper, neg) {
		sign = -1
		s = strings.TrimSpace(s[:len(s)-1])
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return sign * v, true
	}

	parts := strings.Fields(s)
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	var dms [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil || v < 0 {
			return 0, false
		}
		dms[i] = v
	}
	return sign * (dms[0] + dms[1]/60 + dms[2]/3600), true
}

// Filter keeps towers inside the frequency band [minMHz, maxMHz] (either
// bound may be zero for open-ended) and, when metroName is non-empty, only
// towers resolved to that metro.
func Filter(towers []*Tower, minMHz, maxMHz float64, metroName string) []*Tower {
	want := metro.Normalize(metroName)
	var out []*Tower
	for _, tw := range towers {
		if minMHz > 0 && tw.FrequencyMHz < minMHz {
			continue
		}
		if maxMHz > 0 && tw.FrequencyMHz > maxMHz {
			continue
		}
		if want != "" && metro.Normalize(tw.Metro) != want {
			continue
		}
		out = append(out, tw)
	}
	return out
}

// Dedupe removes towers sharing a callsign and location; the first
// occurrence wins. Towers without a callsign are always kept.
func Dedupe(towers []*Tower) []*Tower {
	seen := make(map[string]bool, len(towers))
	var out []*Tower
	for _, tw := range towers {
		if tw.Callsign != "" {
			k := tw.Callsign + "\x00" + metro.Normalize(tw.Location)
			if seen[k] {
				continue
			}
			seen[k] = true
		}
		out = append(out, tw)
	}
	return out
}

// Sort orders towers by frequency, then callsign, then location.
func Sort(towers []*Tower) {
	sort.SliceStable(towers, func(i, j int) bool {
		a, b := towers[i], towers[j]
		if a.FrequencyMHz != b.FrequencyMHz {
			return a.FrequencyMHz < b.FrequencyMHz
		}
		if a.Callsign != b.Callsign {
			return a.Callsign < b.Callsign
		}
		return a.Location < b.Location
	})
}
