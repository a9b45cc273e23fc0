package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dave0/windtower/internal/config"
)

// sampleDump builds a minimal but complete licence dump: data block first,
// legend at the end, CRLF line endings like the real frontend emits.
func sampleDump(region string) string {
	doc := "Spectrum Licence Dump - region " + region + "\r\n" +
		"[DATA]\r\n" +
		"VE3ABC   3475.000   17.0   45 25 17 N   75 41 50 W   KANATA (GLEN CAIRN)                \r\n" +
		"VA3XYZ   3650.000   10.0   43 39 07 N   79 20 44 W   NORTH YORK                         \r\n" +
		"short line\r\n" +
		"VE3ABC   3475.000   17.0   45 25 17 N   75 41 50 W   KANATA (GLEN CAIRN)                \r\n" +
		"[/DATA]\r\n" +
		"Legend\r\n" +
		"Callsign               1 - 8\r\n" +
		"Tx Frequency (MHz)    10 - 19\r\n" +
		"Tx Power (dBW)        21 - 26\r\n" +
		"Latitude              28 - 39\r\n" +
		"Longitude             41 - 52\r\n" +
		"Station Location      54 - 88\r\n"
	return doc
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		Source: config.SourceConfig{
			BaseURL:      baseURL + "/dump?region=%s",
			Regions:      map[string]string{"ON": "Ontario", "QC": "Quebec"},
			UserAgent:    "windtower-test",
			TimeoutSecs:  5,
			MaxRetries:   2,
			LegendMarker: "Legend",
			DataStart:    "[DATA]",
			DataEnd:      "[/DATA]",
		},
		Scan:     config.ScanConfig{BandMinMHz: 3400, BandMaxMHz: 3700},
		Estimate: config.EstimateConfig{RxSensitivityDBM: -85, DefaultPowerDBW: 10},
	}
}

func TestRunScan_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		region := r.URL.Query().Get("region")
		fmt.Fprint(w, sampleDump(region))
	}))
	defer srv.Close()

	res, err := runScan(context.Background(), testConfig(srv.URL), scanOptions{
		Regions: []string{"ON"},
		NoCache: true,
	})
	require.NoError(t, err)

	require.Len(t, res.Schema, 6)
	assert.Equal(t, "Tx_Frequency", res.Schema[1].Key)
	assert.Equal(t, "MHz", res.Schema[1].Unit)

	// 3 well-formed lines, 1 short line skipped, 1 duplicate deduped.
	assert.Len(t, res.Records, 3)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Towers, 2)

	// Sorted by frequency.
	assert.Equal(t, "VE3ABC", res.Towers[0].Callsign)
	assert.Equal(t, 3475.0, res.Towers[0].FrequencyMHz)
	assert.Equal(t, "OTTAWA", res.Towers[0].Metro)
	assert.Equal(t, "TORONTO", res.Towers[1].Metro)
	require.NotNil(t, res.Towers[0].Point)
	assert.Greater(t, res.Towers[0].RangeKM, 0.0)
}

func TestRunScan_MetroFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleDump("ON"))
	}))
	defer srv.Close()

	res, err := runScan(context.Background(), testConfig(srv.URL), scanOptions{
		Regions: []string{"ON"},
		Metro:   "toronto",
		NoCache: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Towers, 1)
	assert.Equal(t, "VA3XYZ", res.Towers[0].Callsign)
}

func TestRunScan_MultipleRegions(t *testing.T) {
	var mu sync.Mutex
	var regions []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		regions = append(regions, r.URL.Query().Get("region"))
		mu.Unlock()
		fmt.Fprint(w, sampleDump(r.URL.Query().Get("region")))
	}))
	defer srv.Close()

	res, err := runScan(context.Background(), testConfig(srv.URL), scanOptions{NoCache: true})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"ON", "QC"}, regions)
	// Duplicate callsign+location pairs across regions collapse.
	assert.Len(t, res.Towers, 2)
}

func TestRunScan_MissingDataSection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Legend\r\nCallsign   1 - 8\r\nno data markers here\r\n")
	}))
	defer srv.Close()

	_, err := runScan(context.Background(), testConfig(srv.URL), scanOptions{
		Regions: []string{"ON"},
		NoCache: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data section")
}

func TestSplitRegions(t *testing.T) {
	assert.Equal(t, []string{"ON", "QC"}, splitRegions("on, qc"))
	assert.Equal(t, []string{"BC"}, splitRegions("BC,,"))
	assert.Nil(t, splitRegions(""))
}
