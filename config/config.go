package config

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"pobsd/parser"
)

// Config holds all configuration for the application.
// Values are loaded by Viper from a config file and/or environment variables.
type Config struct {
	DatabasePath string `mapstructure:"POBSD_DATABASE"`
	ParseMode    string `mapstructure:"POBSD_PARSE_MODE"`
	Dialect      string `mapstructure:"POBSD_DIALECT"`
	BlankLines   string `mapstructure:"POBSD_BLANK_LINES"`
	KeepPartial  bool   `mapstructure:"POBSD_KEEP_PARTIAL"`
	LogFile      string `mapstructure:"POBSD_LOG_FILE"`
	LogMaxSizeMB int    `mapstructure:"POBSD_LOG_MAX_SIZE_MB"`
}

const (
	DefaultDatabasePath = "games.db"
	DefaultLogFile      = "pobsd.log"
	DefaultLogMaxSizeMB = 10
)

var envKeys = []string{
	"POBSD_DATABASE",
	"POBSD_PARSE_MODE",
	"POBSD_DIALECT",
	"POBSD_BLANK_LINES",
	"POBSD_KEEP_PARTIAL",
	"POBSD_LOG_FILE",
	"POBSD_LOG_MAX_SIZE_MB",
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	vipErr := viper.ReadInConfig()
	if _, ok := vipErr.(viper.ConfigFileNotFoundError); ok {
		slog.Debug("Config file (.env) not found, relying on environment variables.")
	} else if vipErr != nil {
		return Config{}, fmt.Errorf("fatal error config file: %w", vipErr)
	}

	viper.AutomaticEnv()
	for _, key := range envKeys {
		if err := viper.BindEnv(key, key); err != nil {
			slog.Warn("Unable to bind env var", "key", key, "error", err)
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", err)
	}

	processConfigDefaults(&config)
	if err := validateConfig(&config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// processConfigDefaults fills in every value left empty.
func processConfigDefaults(cfg *Config) {
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultDatabasePath
	}
	if cfg.ParseMode == "" {
		cfg.ParseMode = parser.ModeRelaxed.String()
	}
	if cfg.Dialect == "" {
		cfg.Dialect = parser.DialectIGDB.Name()
	}
	if cfg.BlankLines == "" {
		cfg.BlankLines = "error"
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}
	if cfg.LogMaxSizeMB <= 0 {
		cfg.LogMaxSizeMB = DefaultLogMaxSizeMB
	}
}

func validateConfig(cfg *Config) error {
	if _, err := cfg.ParserOptions(); err != nil {
		slog.Error("Invalid parser configuration", "error", err)
		return err
	}
	return nil
}

// ParserOptions turns the parsing settings into parser options. The logger
// is left for the caller to set.
func (c Config) ParserOptions() (parser.Options, error) {
	mode, err := parser.ParseMode(c.ParseMode)
	if err != nil {
		return parser.Options{}, fmt.Errorf("POBSD_PARSE_MODE: %w", err)
	}
	dialect, err := parser.LookupDialect(c.Dialect)
	if err != nil {
		return parser.Options{}, fmt.Errorf("POBSD_DIALECT: %w", err)
	}
	blank, err := parser.ParseBlankLines(c.BlankLines)
	if err != nil {
		return parser.Options{}, fmt.Errorf("POBSD_BLANK_LINES: %w", err)
	}
	return parser.Options{
		Mode:        mode,
		Dialect:     dialect,
		BlankLines:  blank,
		KeepPartial: c.KeepPartial,
	}, nil
}
