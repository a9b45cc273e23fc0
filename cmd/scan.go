package main

import (
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dave0/windtower/internal/render"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Fetch licence dumps and report tower sites",
	Long: `Fetches the spectrum licence dump for each selected region, decodes the
fixed-width records using the embedded legend, and renders the tower sites.

Formats: table (default), gpx, shp, xlsx, debug. shp and xlsx require --out;
the rest write to stdout unless --out is given.

Examples:
  # 3.5 GHz band towers in Ontario, as a table
  windtower scan --regions ON

  # Everything near Ottawa as GPX for a mapping app
  windtower scan --metro ottawa --format gpx --out towers.gpx

  # Raw decoded records for troubleshooting a dump
  windtower scan --regions QC --format debug --no-cache`,
	RunE: runScanCmd,
}

func init() {
	f := scanCmd.Flags()
	f.String("regions", "", "comma-separated region codes (default: all configured)")
	f.String("metro", "", "only towers resolved to this metro area")
	f.Float64("band-min", 0, "minimum frequency in MHz (overrides config)")
	f.Float64("band-max", 0, "maximum frequency in MHz (overrides config)")
	f.String("format", "table", "output format: table, gpx, shp, xlsx, debug")
	f.String("out", "", "output path (required for shp and xlsx)")
	f.Bool("no-cache", false, "bypass the document cache")

	rootCmd.AddCommand(scanCmd)
}

func runScanCmd(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	regionsFlag, _ := f.GetString("regions")
	metroFlag, _ := f.GetString("metro")
	bandMin, _ := f.GetFloat64("band-min")
	bandMax, _ := f.GetFloat64("band-max")
	format, _ := f.GetString("format")
	out, _ := f.GetString("out")
	noCache, _ := f.GetBool("no-cache")

	opts := scanOptions{
		Metro:      metroFlag,
		BandMinMHz: cfg.Scan.BandMinMHz,
		BandMaxMHz: cfg.Scan.BandMaxMHz,
		NoCache:    noCache,
	}
	if regionsFlag != "" {
		for _, r := range splitRegions(regionsFlag) {
			if _, ok := cfg.Source.Regions[r]; !ok {
				return eris.Errorf("unknown region %q (see 'windtower regions')", r)
			}
			opts.Regions = append(opts.Regions, r)
		}
	}
	if bandMin > 0 {
		opts.BandMinMHz = bandMin
	}
	if bandMax > 0 {
		opts.BandMaxMHz = bandMax
	}

	res, err := runScan(cmd.Context(), cfg, opts)
	if err != nil {
		return err
	}
	zap.L().Info("scan complete",
		zap.Int("towers", len(res.Towers)),
		zap.Int("records", len(res.Records)),
		zap.Int("skipped_lines", res.Skipped),
		zap.Int("dropped_records", res.Dropped),
	)

	switch format {
	case "shp":
		if out == "" {
			return eris.New("--out is required for shp output")
		}
		return render.Shapefile(out, res.Towers)
	case "xlsx":
		if out == "" {
			return eris.New("--out is required for xlsx output")
		}
		return render.XLSX(out, res.Towers)
	}

	w, closeFn, err := outputWriter(out)
	if err != nil {
		return err
	}
	defer closeFn()

	switch format {
	case "table":
		return render.Table(w, res.Towers)
	case "gpx":
		return render.GPX(w, res.Towers)
	case "debug":
		return render.Debug(w, res.Schema, res.Records, res.Skipped)
	default:
		return eris.Errorf("unknown format %q", format)
	}
}

// outputWriter returns stdout or the file at path.
func outputWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create output file %s", path)
	}
	return file, func() { _ = file.Close() }, nil
}
