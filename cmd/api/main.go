package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	apivaluation "fairval/pkg/api/valuation"
	"fairval/pkg/core/store"
)

// ServerConfig is the yaml-backed server configuration.
type ServerConfig struct {
	Addr      string `yaml:"addr"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // "console" or "json"
	CacheDir  string `yaml:"cache_dir"`
	// UseDatabase enables the Postgres vault; DATABASE_URL supplies the DSN.
	UseDatabase bool `yaml:"use_database"`
}

func defaultConfig() ServerConfig {
	return ServerConfig{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// loadConfig reads the yaml config. A missing file is fine (defaults
// apply); a file that exists but does not parse is reported so the
// caller can warn instead of silently running on partial defaults.
func loadConfig(path string) (ServerConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func newLogger(cfg ServerConfig) zerolog.Logger {
	var out = os.Stdout
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if cfg.LogFormat == "console" || cfg.LogFormat == "pretty" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func main() {
	godotenv.Load()

	configPath := os.Getenv("FAIRVAL_CONFIG")
	if configPath == "" {
		configPath = "config/server.yaml"
	}
	cfg, cfgErr := loadConfig(configPath)
	log := newLogger(cfg)
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("config file invalid, running on defaults")
	}

	var vault *store.ValuationVault
	if cfg.UseDatabase {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.InitDB(ctx); err != nil {
			log.Warn().Err(err).Msg("database unavailable, falling back to file cache")
			vault = store.NewValuationVault(nil, cfg.CacheDir)
		} else {
			defer store.Close()
			vault = store.NewValuationVault(store.GetPool(), cfg.CacheDir)
		}
	} else {
		vault = store.NewValuationVault(nil, cfg.CacheDir)
	}

	handler := apivaluation.NewHandler(vault, log)

	r := mux.NewRouter()
	r.HandleFunc("/api/health", handler.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/valuation/compute", handler.HandleCompute).Methods(http.MethodPost)
	r.HandleFunc("/api/valuation/reblend", handler.HandleReblend).Methods(http.MethodPost)

	log.Info().Str("addr", cfg.Addr).Msg("valuation API starting")
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
