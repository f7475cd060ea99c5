package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pobsd/game"
	"pobsd/logger"
	"pobsd/parser"
)

var (
	normalizeOutput string
	normalizeSort   bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [DATABASE]",
	Short: "Rewrite the database in its canonical layout",
	Long: `Parse the database and write it back with one tag per line, list values
separated the canonical way. Records keep their order unless --sort is given.
A database with malformed records is left untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, opts, err := loadDatabase(cmd, databasePath(args))
		if err != nil {
			return err
		}
		if res.HasErrors() {
			printErrorLines(cmd.ErrOrStderr(), res)
			return errParseErrors
		}

		text := normalizeText(res, opts.Dialect, normalizeSort)
		if normalizeOutput == "" || normalizeOutput == "-" {
			_, err := fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		}
		if err := os.WriteFile(normalizeOutput, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", normalizeOutput, err)
		}
		logger.Log.Infow("Database normalized", zap.String("output", normalizeOutput), zap.Int("games", len(res.Games)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "write to this file instead of stdout")
	normalizeCmd.Flags().BoolVar(&normalizeSort, "sort", false, "sort records by name")
}

// normalizeText formats the parsed games with a trailing newline.
func normalizeText(res parser.Result, d parser.Dialect, sorted bool) string {
	games := res.Games
	if sorted {
		games = append([]*game.Game(nil), games...)
		game.SortGames(games)
	}
	if len(games) == 0 {
		return ""
	}
	return d.Format(games) + "\n"
}
