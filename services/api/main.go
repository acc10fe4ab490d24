package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/soilbgc/alpine-soc-viewer/services/api/catalog"
	"github.com/soilbgc/alpine-soc-viewer/services/api/config"
	httpserver "github.com/soilbgc/alpine-soc-viewer/services/api/http"
	"github.com/soilbgc/alpine-soc-viewer/services/api/layers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := catalog.NewClient(cfg.UpstreamBaseURL, nil)

	fetchCtx, fetchCancel := context.WithTimeout(ctx, 30*time.Second)
	areas, err := client.FetchAreas(fetchCtx)
	fetchCancel()
	if err != nil {
		log.Fatalf("catalog fetch error: %v", err)
	}
	areas = catalog.Enrich(areas, cfg.SampleProfile)
	log.Printf("loaded %d catchments", len(areas))

	composer := layers.NewComposer(areas, layers.NewMap(), layers.Options{
		TemperatureDepthCm: cfg.TemperatureDepthCm,
		MoistureDepthCm:    cfg.MoistureDepthCm,
		DefaultColor:       cfg.DefaultColor,
		RasterOpacity:      cfg.RasterOpacity,
		RasterResolution:   cfg.RasterResolution,
		FlyDuration:        cfg.FlyDuration,
		ResolveAsset:       layers.StaticAssetResolver(cfg.ModelAssetBaseURL),
		OverlayURL:         httpserver.OverlayPath,
	}, layers.Callbacks{})

	srv := httpserver.New(cfg, areas, composer, client)
	log.Printf("REST API listening on %s", cfg.ListenAddr())

	if err := srv.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
