package cmd

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"pobsd/catalog"
	"pobsd/config"
	"pobsd/parser"
)

const (
	awesome = "AaaaaAAaaaAAAaaAAAAaAAAAA!!! for the Awesome"
	mrHat   = "The Adventures of Mr. Hat"
	shuggy  = "The Adventures of Shuggy"
	aeter   = "Aeternum"
)

func loadTestResult(t *testing.T, name string) parser.Result {
	t.Helper()
	res, err := parser.Default().LoadFromFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to load %s: %v", name, err)
	}
	return res
}

func loadTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.New(loadTestResult(t, "games.db").Games)
}

func newFlagCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addParserFlags(c.Flags())
	if err := c.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error: %v", args, err)
	}
	return c
}

func TestFormatLines(t *testing.T) {
	tests := []struct {
		lines    []int
		expected string
	}{
		{nil, ""},
		{[]int{21}, "21"},
		{[]int{21, 60}, "21, 60"},
	}

	for _, tt := range tests {
		if got := formatLines(tt.lines); got != tt.expected {
			t.Errorf("formatLines(%v) = %q, want %q", tt.lines, got, tt.expected)
		}
	}
}

func TestDatabasePath(t *testing.T) {
	saved := appConfig
	t.Cleanup(func() { appConfig = saved })
	appConfig = config.Config{DatabasePath: "/configured/games.db"}

	if got := databasePath(nil); got != "/configured/games.db" {
		t.Errorf("databasePath(nil) = %q", got)
	}
	if got := databasePath([]string{"other.db"}); got != "other.db" {
		t.Errorf("databasePath(other.db) = %q", got)
	}
}

func TestParserOptions(t *testing.T) {
	cfg := config.Config{ParseMode: "strict", Dialect: "igdb", BlankLines: "error"}

	t.Run("configuration only", func(t *testing.T) {
		opts, err := parserOptions(newFlagCommand(t), cfg)
		if err != nil {
			t.Fatal(err)
		}
		if opts.Mode != parser.ModeStrict || opts.Dialect.Name() != "igdb" || opts.BlankLines != parser.BlankLinesError {
			t.Errorf("unexpected options %+v", opts)
		}
		if opts.Logger == nil {
			t.Error("options should carry the logger")
		}
	})

	t.Run("flags override", func(t *testing.T) {
		c := newFlagCommand(t, "--strict=false", "--dialect", "classic", "--skip-blank", "--keep-partial")
		opts, err := parserOptions(c, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if opts.Mode != parser.ModeRelaxed {
			t.Error("--strict=false should select relaxed mode")
		}
		if opts.Dialect.Name() != "classic" || opts.BlankLines != parser.BlankLinesSkip || !opts.KeepPartial {
			t.Errorf("unexpected options %+v", opts)
		}
	})

	t.Run("skip-blank can be turned off", func(t *testing.T) {
		skipping := cfg
		skipping.BlankLines = "skip"

		opts, err := parserOptions(newFlagCommand(t), skipping)
		if err != nil {
			t.Fatal(err)
		}
		if opts.BlankLines != parser.BlankLinesSkip {
			t.Fatal("configuration should select skipping")
		}

		opts, err = parserOptions(newFlagCommand(t, "--skip-blank=false"), skipping)
		if err != nil {
			t.Fatal(err)
		}
		if opts.BlankLines != parser.BlankLinesError {
			t.Error("--skip-blank=false should override the configuration")
		}
	})

	t.Run("bad dialect", func(t *testing.T) {
		if _, err := parserOptions(newFlagCommand(t, "--dialect", "modern"), cfg); err == nil {
			t.Error("expected an error for an unknown dialect")
		}
	})
}
