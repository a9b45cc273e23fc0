package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dave0/windtower/internal/config"
	"github.com/dave0/windtower/internal/fetcher"
	"github.com/dave0/windtower/internal/metro"
	"github.com/dave0/windtower/internal/spectrum"
	"github.com/dave0/windtower/internal/store"
	"github.com/dave0/windtower/internal/tower"
)

// scanResult is the outcome of fetching and decoding one or more regions.
type scanResult struct {
	Towers  []*tower.Tower
	Schema  []spectrum.Column
	Records []spectrum.Record
	Skipped int
	Dropped int
}

// scanOptions selects what a scan covers and how it filters.
type scanOptions struct {
	Regions    []string
	Metro      string
	BandMinMHz float64
	BandMaxMHz float64
	NoCache    bool
}

// runScan fetches every requested region, decodes the dumps, and returns
// filtered, deduplicated, sorted towers. Region documents are fetched
// concurrently; decoding and the cross-region dedupe/sort run only after
// all fetches complete.
func runScan(ctx context.Context, cfg *config.Config, opts scanOptions) (*scanResult, error) {
	regions := opts.Regions
	if len(regions) == 0 {
		for code := range cfg.Source.Regions {
			regions = append(regions, code)
		}
		sort.Strings(regions)
	}

	var cache *store.Cache
	if !opts.NoCache {
		c, err := store.Open(cfg.Cache.Path, time.Duration(cfg.Cache.TTLHours)*time.Hour)
		if err != nil {
			return nil, err
		}
		defer func() { _ = c.Close() }()
		cache = c
	}

	httpF := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.Source.UserAgent,
		Timeout:    time.Duration(cfg.Source.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Source.MaxRetries,
	})
	ftpF := fetcher.NewFTPFetcher(fetcher.FTPOptions{
		Timeout: time.Duration(cfg.Source.TimeoutSecs) * time.Second,
	})

	var mu sync.Mutex
	docs := make(map[string]string, len(regions))

	g, gctx := errgroup.WithContext(ctx)
	for _, region := range regions {
		region := region
		g.Go(func() error {
			doc, err := fetchRegion(gctx, cfg, cache, httpF, ftpF, region)
			if err != nil {
				return err
			}
			mu.Lock()
			docs[region] = doc
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metros, err := metro.Load()
	if err != nil {
		return nil, err
	}
	builder := &tower.Builder{
		Metros:           metros,
		RxSensitivityDBM: cfg.Estimate.RxSensitivityDBM,
		DefaultPowerDBW:  cfg.Estimate.DefaultPowerDBW,
	}

	markers := spectrum.Markers{
		Legend:    cfg.Source.LegendMarker,
		DataStart: cfg.Source.DataStart,
		DataEnd:   cfg.Source.DataEnd,
	}

	res := &scanResult{}
	for _, region := range regions {
		doc := docs[region]

		schema := spectrum.ParseLegend(doc, markers.Legend)
		if len(schema) == 0 {
			zap.L().Warn("no columns extracted from legend", zap.String("region", region))
			continue
		}
		if res.Schema == nil {
			res.Schema = schema
		}

		records, skipped, err := spectrum.NewDecoder(schema).Decode(doc, markers)
		if err != nil {
			return nil, err
		}
		res.Records = append(res.Records, records...)
		res.Skipped += skipped

		towers, dropped := builder.FromRecords(records)
		res.Towers = append(res.Towers, towers...)
		res.Dropped += dropped

		zap.L().Info("decoded region dump",
			zap.String("region", region),
			zap.Int("records", len(records)),
			zap.Int("skipped", skipped),
		)
	}

	res.Towers = tower.Filter(res.Towers, opts.BandMinMHz, opts.BandMaxMHz, opts.Metro)
	res.Towers = tower.Dedupe(res.Towers)
	tower.Sort(res.Towers)

	return res, nil
}

// splitRegions parses a comma-separated list of region codes, trimming and
// uppercasing each entry.
func splitRegions(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

// fetchRegion returns the newline-normalized dump for one region, from cache
// when possible.
func fetchRegion(ctx context.Context, cfg *config.Config, cache *store.Cache, httpF *fetcher.HTTPFetcher, ftpF *fetcher.FTPFetcher, region string) (string, error) {
	url := fmt.Sprintf(cfg.Source.BaseURL, region)

	if cache != nil {
		if doc, ok, err := cache.Get(ctx, region, url); err != nil {
			return "", err
		} else if ok {
			zap.L().Debug("cache hit", zap.String("region", region))
			return doc, nil
		}
	}

	doc, err := fetcher.FetchString(ctx, fetcher.ForURL(url, httpF, ftpF), url)
	if err != nil {
		return "", err
	}

	if cache != nil {
		if err := cache.Put(ctx, region, url, doc); err != nil {
			zap.L().Warn("cache write failed", zap.String("region", region), zap.Error(err))
		}
	}
	return doc, nil
}
