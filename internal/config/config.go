// Package config loads runtime configuration and builds the logger
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/napolitain/buildorder/internal/simulation"
)

// EnvPrefix prefixes every environment override, e.g. BUILDORDER_LOG_LEVEL
const EnvPrefix = "BUILDORDER"

// LogConfig controls the structured logger
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// ServerConfig holds the gRPC and HTTP listener settings
type ServerConfig struct {
	GRPCPort       int      `mapstructure:"grpc_port"`
	HTTPPort       int      `mapstructure:"http_port"`
	Rate           float64  `mapstructure:"rate"` // requests per second
	Burst          int      `mapstructure:"burst"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Config holds all runtime configuration.
// Values are populated from .buildorder.yaml, .env, BUILDORDER_* env vars and
// CLI flags.
type Config struct {
	Catalog string             `mapstructure:"catalog"` // empty selects the built-in catalog
	DB      string             `mapstructure:"db"`
	Verbose bool               `mapstructure:"verbose"`
	Log     LogConfig          `mapstructure:"log"`
	Server  ServerConfig       `mapstructure:"server"`
	Economy simulation.Economy `mapstructure:"economy"`
}

// Init points viper at the config file (or the default search path) and the
// environment. A missing config file or .env is not an error.
func Init(cfgFile string) error {
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".buildorder")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("catalog", "")
	viper.SetDefault("db", "buildorder.db")
	viper.SetDefault("verbose", false)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.json", false)
	viper.SetDefault("server.grpc_port", 50051)
	viper.SetDefault("server.http_port", 8080)
	viper.SetDefault("server.rate", 10.0)
	viper.SetDefault("server.burst", 20)
	viper.SetDefault("server.allowed_origins", []string{"*"})

	e := simulation.DefaultEconomy()
	viper.SetDefault("economy.start_mineral", e.StartMineral)
	viper.SetDefault("economy.start_gas", e.StartGas)
	viper.SetDefault("economy.start_harvesters", e.StartHarvesters)
	viper.SetDefault("economy.harvesters_per_gas", e.HarvestersPerGas)
	viper.SetDefault("economy.saturation_threshold", e.SaturationThreshold)
	viper.SetDefault("economy.optimized_mineral_speed", e.OptimizedMineralSpeed)
	viper.SetDefault("economy.mineral_speed", e.MineralSpeed)
	viper.SetDefault("economy.orbital_speed", e.OrbitalSpeed)
	viper.SetDefault("economy.gas_speed", e.GasSpeed)
	viper.SetDefault("economy.horizon_floor", e.HorizonFloor)
	viper.SetDefault("economy.horizon_buffer", e.HorizonBuffer)
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags
func Load() (Config, error) {
	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Server.GRPCPort < 0 || c.Server.GRPCPort > 65535 {
		return fmt.Errorf("server.grpc_port %d out of range", c.Server.GRPCPort)
	}
	if c.Server.HTTPPort < 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d out of range", c.Server.HTTPPort)
	}
	if c.Server.Rate <= 0 {
		return fmt.Errorf("server.rate must be positive, got %v", c.Server.Rate)
	}
	if c.Server.Burst < 1 {
		return fmt.Errorf("server.burst must be at least 1, got %d", c.Server.Burst)
	}

	e := c.Economy
	if e.StartHarvesters < 0 || e.HarvestersPerGas < 0 || e.SaturationThreshold < 0 {
		return errors.New("economy counts must not be negative")
	}
	if e.HorizonFloor <= 0 || e.HorizonBuffer < 0 {
		return errors.New("economy horizon must be positive")
	}
	return nil
}

// NewLogger builds a text or JSON slog logger writing to w
func NewLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
