package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"pobsd/parser"
)

func TestProcessConfigDefaults(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		cfg := Config{}
		processConfigDefaults(&cfg)

		if cfg.DatabasePath != DefaultDatabasePath {
			t.Errorf("Expected DatabasePath to be %s, got %s", DefaultDatabasePath, cfg.DatabasePath)
		}
		if cfg.ParseMode != "relaxed" {
			t.Errorf("Expected ParseMode to be relaxed, got %s", cfg.ParseMode)
		}
		if cfg.Dialect != "igdb" {
			t.Errorf("Expected Dialect to be igdb, got %s", cfg.Dialect)
		}
		if cfg.BlankLines != "error" {
			t.Errorf("Expected BlankLines to be error, got %s", cfg.BlankLines)
		}
		if cfg.LogFile == "" || cfg.LogMaxSizeMB != DefaultLogMaxSizeMB {
			t.Error("Expected log settings to have default values")
		}
	})

	t.Run("respects existing values", func(t *testing.T) {
		cfg := Config{
			DatabasePath: "/tmp/other.db",
			ParseMode:    "strict",
			Dialect:      "classic",
			LogMaxSizeMB: 1,
		}
		processConfigDefaults(&cfg)

		if cfg.DatabasePath != "/tmp/other.db" {
			t.Errorf("Expected DatabasePath to stay, got %s", cfg.DatabasePath)
		}
		if cfg.ParseMode != "strict" || cfg.Dialect != "classic" {
			t.Errorf("Expected parsing settings to stay, got %s/%s", cfg.ParseMode, cfg.Dialect)
		}
		if cfg.LogMaxSizeMB != 1 {
			t.Errorf("Expected LogMaxSizeMB to stay 1, got %d", cfg.LogMaxSizeMB)
		}
	})
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"unknown mode", Config{ParseMode: "lenient"}, true},
		{"unknown dialect", Config{Dialect: "modern"}, true},
		{"unknown blank policy", Config{BlankLines: "ignore"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			processConfigDefaults(&cfg)
			err := validateConfig(&cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParserOptions(t *testing.T) {
	cfg := Config{ParseMode: "strict", Dialect: "classic", BlankLines: "skip", KeepPartial: true}
	opts, err := cfg.ParserOptions()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if opts.Mode != parser.ModeStrict || opts.Dialect.Name() != "classic" ||
		opts.BlankLines != parser.BlankLinesSkip || !opts.KeepPartial {
		t.Errorf("Unexpected options: %+v", opts)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("from .env file", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		env := "POBSD_DATABASE=/srv/pobsd/games.db\nPOBSD_PARSE_MODE=strict\nPOBSD_KEEP_PARTIAL=true\n"
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadConfig(dir)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.DatabasePath != "/srv/pobsd/games.db" {
			t.Errorf("DatabasePath = %s", cfg.DatabasePath)
		}
		if cfg.ParseMode != "strict" || !cfg.KeepPartial {
			t.Errorf("ParseMode = %s, KeepPartial = %v", cfg.ParseMode, cfg.KeepPartial)
		}
		if cfg.Dialect != "igdb" {
			t.Errorf("Dialect should default to igdb, got %s", cfg.Dialect)
		}
	})

	t.Run("environment only", func(t *testing.T) {
		viper.Reset()
		t.Setenv("POBSD_DIALECT", "classic")

		cfg, err := LoadConfig(t.TempDir())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if cfg.Dialect != "classic" {
			t.Errorf("Dialect = %s, want classic", cfg.Dialect)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		viper.Reset()
		t.Setenv("POBSD_BLANK_LINES", "sometimes")

		if _, err := LoadConfig(t.TempDir()); err == nil {
			t.Error("Expected an error for an invalid blank line policy")
		}
	})
}
