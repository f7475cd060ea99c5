package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"pobsd/catalog"
	"pobsd/db"
	"pobsd/game"
	"pobsd/logger"
)

const (
	formatJSON   = "json"
	formatYAML   = "yaml"
	formatSQLite = "sqlite"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export DATABASE OUTPUT",
	Short: "Export the database to JSON, YAML or SQLite",
	Long: `Parse the database and write its games, sorted by name, to OUTPUT.
The format is taken from --format, or from the OUTPUT extension when the flag
is not given. A database with malformed records is not exported.`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", formatJSON, "output format: json, yaml or sqlite")
}

// exportDocument is the JSON and YAML layout of an export.
type exportDocument struct {
	Count int          `json:"count" yaml:"count"`
	Games []*game.Game `json:"games" yaml:"games"`
}

func runExport(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	format := exportFormat
	if !cmd.Flags().Changed("format") {
		format = formatFromPath(output)
	}
	if !validFormat(format) {
		return fmt.Errorf("unknown export format %q", format)
	}

	cat, res, err := loadCatalog(cmd, input)
	if err != nil {
		return err
	}
	if res.HasErrors() {
		w := cmd.ErrOrStderr()
		printErrorLines(w, res)
		fmt.Fprintln(w, "> Export aborted.")
		return errParseErrors
	}

	if err := exportCatalog(cat, format, output); err != nil {
		logger.Log.Errorw("Export failed", zap.String("output", output), zap.Error(err))
		return err
	}
	logger.Log.Infow("Database exported",
		zap.String("format", format),
		zap.String("output", output),
		zap.Int("games", cat.Len()))
	fmt.Fprintf(cmd.OutOrStdout(), "> %d games exported to %s.\n", cat.Len(), output)
	return nil
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".sqlite", ".sqlite3":
		return formatSQLite
	default:
		return formatJSON
	}
}

func validFormat(format string) bool {
	switch format {
	case formatJSON, formatYAML, formatSQLite:
		return true
	}
	return false
}

func exportCatalog(cat *catalog.Catalog, format, output string) error {
	games := cat.GetAll().Items
	if format == formatSQLite {
		return db.Export(output, games)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	if err := writeDocument(f, format, games); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeDocument(w io.Writer, format string, games []*game.Game) error {
	doc := exportDocument{Count: len(games), Games: games}
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unknown export format %q", format)
}
