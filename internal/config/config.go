// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/flight-monitor/flight-deal-ranker/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Timeouts TimeoutConfig
	Logging  LoggingConfig
	App      AppConfig
	Ranking  RankingConfig
	History  HistoryConfig
	Source   SourceConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
}

// TimeoutConfig holds timeout settings for ranking runs.
type TimeoutConfig struct {
	GlobalRank time.Duration `env:"TIMEOUT_GLOBAL_RANK" envDefault:"20s"`
	PerFetch   time.Duration `env:"TIMEOUT_PER_FETCH" envDefault:"5s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// HistoryConfig holds settings for the historical price store.
type HistoryConfig struct {
	// DSN is the postgres connection string. Empty selects the in-memory store.
	DSN string `env:"HISTORY_DSN"`
}

// SourceConfig holds upstream acquisition settings.
type SourceConfig struct {
	// AmadeusBaseURL is the base URL of the Amadeus-shaped offers endpoint.
	// Empty selects the fixture-backed source.
	AmadeusBaseURL string `env:"AMADEUS_BASE_URL"`

	// AmadeusFixture is the path of a JSON fixture served when no base URL is set.
	AmadeusFixture string `env:"AMADEUS_FIXTURE" envDefault:"docs/response-mock/amadeus_offers_response.json"`

	// RequestsPerSecond limits calls to the upstream API.
	RequestsPerSecond float64 `env:"SOURCE_RPS" envDefault:"1"`
}

// RankingConfig holds every tunable the ranking core consumes: scoring
// weights, layover thresholds, deal detection parameters, destination groups
// and airport convenience coefficients. The core receives these as an
// immutable value at call time; nothing in the pipeline reads ambient state.
type RankingConfig struct {
	WeightPrice    float64 `env:"WEIGHT_PRICE" envDefault:"0.40"`
	WeightDuration float64 `env:"WEIGHT_DURATION" envDefault:"0.30"`
	WeightStops    float64 `env:"WEIGHT_STOPS" envDefault:"0.20"`
	WeightLayover  float64 `env:"WEIGHT_LAYOVER" envDefault:"0.10"`

	// MinLayover is the shortest comfortable connection; gaps below it are
	// penalized for missed-connection risk.
	MinLayover time.Duration `env:"MIN_LAYOVER" envDefault:"90m"`

	// MaxLayover is the longest gap that costs nothing; beyond it the
	// wasted-time penalty grows linearly.
	MaxLayover time.Duration `env:"MAX_LAYOVER" envDefault:"4h"`

	// LayoverCap is the gap length at which the wasted-time penalty saturates.
	LayoverCap time.Duration `env:"LAYOVER_CAP" envDefault:"6h"`

	// StopCeiling is the hard transfer-count filter; options with this many
	// stops or more never reach scoring.
	StopCeiling int `env:"STOP_CEILING" envDefault:"3"`

	// DealThreshold is the z-score at or below which a price is a deal.
	DealThreshold float64 `env:"DEAL_Z_THRESHOLD" envDefault:"-1.0"`

	// MinSamples is the minimum historical sample count for a z-score.
	MinSamples int `env:"MIN_HISTORY_SAMPLES" envDefault:"5"`

	// HistoryWindow is how many recent samples the deal detector reads.
	HistoryWindow int `env:"HISTORY_WINDOW" envDefault:"30"`

	// ReferenceCurrency is the currency every price is normalized to.
	ReferenceCurrency string `env:"REFERENCE_CURRENCY" envDefault:"USD"`

	// ConversionRates maps currency codes to reference-currency multipliers,
	// as "EUR:1.08,GBP:1.27". The reference currency itself is implicit.
	ConversionRates string `env:"CONVERSION_RATES" envDefault:""`

	// HubAirports get HubCoefficient as their layover convenience value.
	HubAirports []string `env:"HUB_AIRPORTS" envDefault:"ATL,ORD,DFW,DEN,LAX,PHX,LAS,DTW,MSP,SEA,EWR,JFK,LGA,BOS,IAD,DCA,MIA,FLL,MCO,SFO,SJC,PDX,SLC"`

	// HubCoefficient is the convenience value for hub airports.
	HubCoefficient float64 `env:"HUB_COEFFICIENT" envDefault:"0.9"`

	// DefaultCoefficient is the neutral convenience value for unknown airports.
	DefaultCoefficient float64 `env:"DEFAULT_COEFFICIENT" envDefault:"0.5"`

	// Groups defines destination clusters as
	// "name:primary:member,member;name:primary:member".
	Groups string `env:"DESTINATION_GROUPS" envDefault:"arizona:PHX:PHX,TUS,FLG;los-angeles:LAX:LAX,BUR,LGB,SNA"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Timeouts.GlobalRank <= 0 {
		return fmt.Errorf("TIMEOUT_GLOBAL_RANK must be positive")
	}
	if cfg.Timeouts.PerFetch <= 0 {
		return fmt.Errorf("TIMEOUT_PER_FETCH must be positive")
	}
	if cfg.Timeouts.PerFetch >= cfg.Timeouts.GlobalRank {
		return fmt.Errorf("TIMEOUT_PER_FETCH (%s) should be less than TIMEOUT_GLOBAL_RANK (%s)",
			cfg.Timeouts.PerFetch, cfg.Timeouts.GlobalRank)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	if cfg.Source.RequestsPerSecond <= 0 {
		return fmt.Errorf("SOURCE_RPS must be positive")
	}

	return validateRanking(&cfg.Ranking)
}

// validateRanking checks the ranking tunables.
func validateRanking(rc *RankingConfig) error {
	sum := rc.WeightPrice + rc.WeightDuration + rc.WeightStops + rc.WeightLayover
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %.3f", sum)
	}
	for name, w := range map[string]float64{
		"WEIGHT_PRICE":    rc.WeightPrice,
		"WEIGHT_DURATION": rc.WeightDuration,
		"WEIGHT_STOPS":    rc.WeightStops,
		"WEIGHT_LAYOVER":  rc.WeightLayover,
	} {
		if w < 0 {
			return fmt.Errorf("%s must not be negative", name)
		}
	}

	if rc.MinLayover <= 0 {
		return fmt.Errorf("MIN_LAYOVER must be positive")
	}
	if rc.MaxLayover <= rc.MinLayover {
		return fmt.Errorf("MAX_LAYOVER (%s) must exceed MIN_LAYOVER (%s)", rc.MaxLayover, rc.MinLayover)
	}
	if rc.LayoverCap <= rc.MaxLayover {
		return fmt.Errorf("LAYOVER_CAP (%s) must exceed MAX_LAYOVER (%s)", rc.LayoverCap, rc.MaxLayover)
	}

	if rc.StopCeiling < 1 {
		return fmt.Errorf("STOP_CEILING must be at least 1")
	}
	if rc.DealThreshold >= 0 {
		return fmt.Errorf("DEAL_Z_THRESHOLD must be negative, got %.2f", rc.DealThreshold)
	}
	if rc.MinSamples < 2 {
		return fmt.Errorf("MIN_HISTORY_SAMPLES must be at least 2")
	}
	if rc.HistoryWindow < rc.MinSamples {
		return fmt.Errorf("HISTORY_WINDOW (%d) must be at least MIN_HISTORY_SAMPLES (%d)",
			rc.HistoryWindow, rc.MinSamples)
	}
	if rc.HubCoefficient < 0 || rc.HubCoefficient > 1 {
		return fmt.Errorf("HUB_COEFFICIENT must be in [0,1], got %.2f", rc.HubCoefficient)
	}
	if rc.DefaultCoefficient < 0 || rc.DefaultCoefficient > 1 {
		return fmt.Errorf("DEFAULT_COEFFICIENT must be in [0,1], got %.2f", rc.DefaultCoefficient)
	}

	if _, err := rc.ParseGroups(); err != nil {
		return err
	}
	if _, err := rc.ParseConversionRates(); err != nil {
		return err
	}
	return nil
}

// ParseGroups parses the Groups string into AirportGroup values keyed by name.
func (rc *RankingConfig) ParseGroups() (map[string]domain.AirportGroup, error) {
	groups := make(map[string]domain.AirportGroup)
	if strings.TrimSpace(rc.Groups) == "" {
		return groups, nil
	}
	for _, entry := range strings.Split(rc.Groups, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("DESTINATION_GROUPS entry %q must be name:primary:members", entry)
		}
		group := domain.AirportGroup{
			Name:    strings.TrimSpace(parts[0]),
			Primary: strings.TrimSpace(parts[1]),
		}
		for _, m := range strings.Split(parts[2], ",") {
			if m = strings.TrimSpace(m); m != "" {
				group.Members = append(group.Members, m)
			}
		}
		if err := group.Validate(); err != nil {
			return nil, fmt.Errorf("DESTINATION_GROUPS entry %q: %w", entry, err)
		}
		groups[group.Name] = group
	}
	return groups, nil
}

// ParseConversionRates parses the ConversionRates string into a map of
// currency code to reference-currency multiplier. The reference currency maps
// to 1 implicitly.
func (rc *RankingConfig) ParseConversionRates() (map[string]float64, error) {
	rates := map[string]float64{rc.ReferenceCurrency: 1}
	if strings.TrimSpace(rc.ConversionRates) == "" {
		return rates, nil
	}
	for _, entry := range strings.Split(rc.ConversionRates, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("CONVERSION_RATES entry %q must be CODE:rate", entry)
		}
		var rate float64
		if _, err := fmt.Sscanf(parts[1], "%f", &rate); err != nil || rate <= 0 {
			return nil, fmt.Errorf("CONVERSION_RATES entry %q has an invalid rate", entry)
		}
		rates[strings.ToUpper(strings.TrimSpace(parts[0]))] = rate
	}
	return rates, nil
}

// ConvenienceMap builds the airport convenience coefficient map from the hub
// list. Airports absent from the map score DefaultCoefficient.
func (rc *RankingConfig) ConvenienceMap() map[string]float64 {
	m := make(map[string]float64, len(rc.HubAirports))
	for _, code := range rc.HubAirports {
		if code = strings.ToUpper(strings.TrimSpace(code)); code != "" {
			m[code] = rc.HubCoefficient
		}
	}
	return m
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
