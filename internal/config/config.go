// Package config loads application configuration from config.yaml, the
// environment, and defaults, and initializes the global logger.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	Filter  FilterConfig  `yaml:"filter" mapstructure:"filter"`
	Sampler SamplerConfig `yaml:"sampler" mapstructure:"sampler"`
	Session SessionConfig `yaml:"session" mapstructure:"session"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// GeocodeConfig configures the Nominatim client.
type GeocodeConfig struct {
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Email       string  `yaml:"email" mapstructure:"email"`
	DelaySecs   float64 `yaml:"delay_secs" mapstructure:"delay_secs"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	Concurrency int     `yaml:"concurrency" mapstructure:"concurrency"`
}

// Delay returns the minimum spacing between geocoding calls.
func (g GeocodeConfig) Delay() time.Duration {
	return time.Duration(g.DelaySecs * float64(time.Second))
}

// Timeout returns the per-request timeout.
func (g GeocodeConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

// FilterConfig configures the radius filter around the reference point.
type FilterConfig struct {
	RefLat         float64  `yaml:"ref_lat" mapstructure:"ref_lat"`
	RefLon         float64  `yaml:"ref_lon" mapstructure:"ref_lon"`
	RadiusKM       float64  `yaml:"radius_km" mapstructure:"radius_km"`
	Mode           string   `yaml:"mode" mapstructure:"mode"`
	AcceptedCities []string `yaml:"accepted_cities" mapstructure:"accepted_cities"`
	RefilterOnLoad bool     `yaml:"refilter_on_load" mapstructure:"refilter_on_load"`
}

// SamplerConfig bounds per-building unit output.
type SamplerConfig struct {
	MaxPerBuilding int `yaml:"max_per_building" mapstructure:"max_per_building"`
}

// SessionConfig configures one collection session.
type SessionConfig struct {
	Locations      []string `yaml:"locations" mapstructure:"locations"`
	PrefilterKnown bool     `yaml:"prefilter_known" mapstructure:"prefilter_known"`
	SkipKnownURLs  bool     `yaml:"skip_known_urls" mapstructure:"skip_known_urls"`
}

// OutputConfig names the persisted artifacts.
type OutputConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	StoreFile     string `yaml:"store_file" mapstructure:"store_file"`
	SnapshotFile  string `yaml:"snapshot_file" mapstructure:"snapshot_file"`
	AllFile       string `yaml:"all_file" mapstructure:"all_file"`
	URLsFile      string `yaml:"urls_file" mapstructure:"urls_file"`
	LocationsFile string `yaml:"locations_file" mapstructure:"locations_file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("HOUSING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("geocode.base_url", "https://nominatim.openstreetmap.org/search")
	v.SetDefault("geocode.email", "")
	v.SetDefault("geocode.delay_secs", 1.5)
	v.SetDefault("geocode.timeout_secs", 15)
	v.SetDefault("geocode.concurrency", 1)
	v.SetDefault("filter.ref_lat", 44.9731)
	v.SetDefault("filter.ref_lon", -93.2359)
	v.SetDefault("filter.radius_km", 10.0)
	v.SetDefault("filter.mode", "strict")
	v.SetDefault("filter.accepted_cities", []string{"Minneapolis", "St Paul", "Saint Paul", "St Anthony"})
	v.SetDefault("filter.refilter_on_load", true)
	v.SetDefault("sampler.max_per_building", 2)
	v.SetDefault("session.prefilter_known", true)
	v.SetDefault("session.skip_known_urls", false)
	v.SetDefault("output.dir", "output")
	v.SetDefault("output.store_file", "housing_combined.csv")
	v.SetDefault("output.snapshot_file", "housing_session.csv")
	v.SetDefault("output.all_file", "housing_session_all.csv")
	v.SetDefault("output.urls_file", "scraped_urls.txt")
	v.SetDefault("output.locations_file", "location_counts.txt")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
