package config

import (
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"time"
)

// Config holds environment-driven settings for the map composition service.
type Config struct {
	UpstreamBaseURL   string
	ModelAssetBaseURL string
	Port              int
	BearerToken       string

	// SampleProfile selects which depth-integration profile of the raw
	// aggregated samples is flattened onto plots.
	SampleProfile string

	// TemperatureDepthCm and MoistureDepthCm pick the sensor depth bucket
	// shown on the map. Sensors report several depths (10, 20, 30 cm) and
	// there is no single canonical one, so it stays configurable.
	TemperatureDepthCm int
	MoistureDepthCm    int

	DefaultColor     string
	RasterOpacity    float64
	RasterResolution int
	FlyDuration      time.Duration
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:               8080,
		SampleProfile:      "1",
		TemperatureDepthCm: 10,
		MoistureDepthCm:    10,
		DefaultColor:       "#000000",
		RasterOpacity:      0.9,
		RasterResolution:   256,
		FlyDuration:        time.Second,
	}

	cfg.UpstreamBaseURL = os.Getenv("UPSTREAM_BASE_URL")
	if cfg.UpstreamBaseURL == "" {
		return cfg, errors.New("UPSTREAM_BASE_URL is required")
	}

	cfg.ModelAssetBaseURL = os.Getenv("MODEL_ASSET_BASE_URL")
	if cfg.ModelAssetBaseURL == "" {
		return cfg, errors.New("MODEL_ASSET_BASE_URL is required")
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("API_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid API_PORT: %s", portStr)
		}
	}

	if profile := os.Getenv("SAMPLE_PROFILE"); profile != "" {
		cfg.SampleProfile = profile
	}

	if depthStr := os.Getenv("TEMPERATURE_DEPTH_CM"); depthStr != "" {
		if depth, err := strconv.Atoi(depthStr); err == nil && depth > 0 {
			cfg.TemperatureDepthCm = depth
		} else {
			return cfg, fmt.Errorf("invalid TEMPERATURE_DEPTH_CM: %s", depthStr)
		}
	}

	if depthStr := os.Getenv("MOISTURE_DEPTH_CM"); depthStr != "" {
		if depth, err := strconv.Atoi(depthStr); err == nil && depth > 0 {
			cfg.MoistureDepthCm = depth
		} else {
			return cfg, fmt.Errorf("invalid MOISTURE_DEPTH_CM: %s", depthStr)
		}
	}

	if color := os.Getenv("DEFAULT_MARKER_COLOR"); color != "" {
		cfg.DefaultColor = color
	}

	if opacityStr := os.Getenv("RASTER_OPACITY"); opacityStr != "" {
		if opacity, err := strconv.ParseFloat(opacityStr, 64); err == nil && opacity >= 0 && opacity <= 1 {
			cfg.RasterOpacity = opacity
		} else {
			return cfg, fmt.Errorf("invalid RASTER_OPACITY: %s", opacityStr)
		}
	}

	if resStr := os.Getenv("RASTER_RESOLUTION"); resStr != "" {
		if res, err := strconv.Atoi(resStr); err == nil && res > 0 {
			cfg.RasterResolution = res
		} else {
			return cfg, fmt.Errorf("invalid RASTER_RESOLUTION: %s", resStr)
		}
	}

	if durStr := os.Getenv("FLY_DURATION"); durStr != "" {
		if dur, err := time.ParseDuration(durStr); err == nil && dur > 0 {
			cfg.FlyDuration = dur
		} else {
			return cfg, fmt.Errorf("invalid FLY_DURATION: %s", durStr)
		}
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
