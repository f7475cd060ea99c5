package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pobsd/logger"
	"pobsd/parser"
)

var checkCmd = &cobra.Command{
	Use:   "check [DATABASE]",
	Short: "Check the database for malformed records",
	Long: `Parse the database and report the number of games read along with the
lines where errors occurred. Exits with status 1 when errors were found.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := databasePath(args)
	res, opts, err := loadDatabase(cmd, path)
	if err != nil {
		return err
	}
	writeCheckReport(cmd.OutOrStdout(), res)

	if res.HasErrors() {
		logger.Log.Warnw("Database check failed",
			zap.String("path", path),
			zap.Stringer("mode", opts.Mode),
			zap.Ints("lines", res.ErrorLines))
		return errParseErrors
	}
	return nil
}

func writeCheckReport(w io.Writer, res parser.Result) {
	if !res.HasErrors() {
		fmt.Fprintf(w, "> %d games parsed without error.\n", len(res.Games))
		return
	}
	fmt.Fprintf(w, "> %d games parsed.\n", len(res.Games))
	printErrorLines(w, res)
}
