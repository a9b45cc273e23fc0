package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dave0/windtower/internal/render"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve tower data over HTTP",
	Long: `Starts an HTTP API exposing scan results. Each request runs a scan; the
document cache keeps repeated requests from hitting the source.

  GET /health
  GET /api/towers?regions=ON,QC&metro=ottawa  (JSON)
  GET /api/towers.gpx?regions=ON              (GPX)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
		})
		r.Get("/api/towers", handleTowersJSON)
		r.Get("/api/towers.gpx", handleTowersGPX)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("serving tower data", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

// scanFromQuery builds scan options from request query parameters.
func scanFromQuery(req *http.Request) scanOptions {
	opts := scanOptions{
		Metro:      req.URL.Query().Get("metro"),
		BandMinMHz: cfg.Scan.BandMinMHz,
		BandMaxMHz: cfg.Scan.BandMaxMHz,
	}
	if regions := req.URL.Query().Get("regions"); regions != "" {
		for _, r := range splitRegions(regions) {
			if _, ok := cfg.Source.Regions[r]; ok {
				opts.Regions = append(opts.Regions, r)
			}
		}
	}
	return opts
}

func handleTowersJSON(w http.ResponseWriter, req *http.Request) {
	res, err := runScan(req.Context(), cfg, scanFromQuery(req))
	if err != nil {
		zap.L().Error("scan failed", zap.Error(err))
		http.Error(w, `{"error":"scan failed"}`, http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"towers": res.Towers,
		"count":  len(res.Towers),
	})
}

func handleTowersGPX(w http.ResponseWriter, req *http.Request) {
	res, err := runScan(req.Context(), cfg, scanFromQuery(req))
	if err != nil {
		zap.L().Error("scan failed", zap.Error(err))
		http.Error(w, "scan failed", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/gpx+xml")
	if err := render.GPX(w, res.Towers); err != nil {
		zap.L().Error("gpx render failed", zap.Error(err))
	}
}
