package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pobsd/catalog"
	"pobsd/config"
	"pobsd/logger"
	"pobsd/parser"
)

var errParseErrors = errors.New("database has malformed records")

// parserOptions builds the parser options from the configuration, command
// line flags taking precedence.
func parserOptions(cmd *cobra.Command, cfg config.Config) (parser.Options, error) {
	opts, err := cfg.ParserOptions()
	if err != nil {
		return parser.Options{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("strict") {
		opts.Mode = parser.ModeRelaxed
		if strict, _ := flags.GetBool("strict"); strict {
			opts.Mode = parser.ModeStrict
		}
	}
	if flags.Changed("dialect") {
		name, _ := flags.GetString("dialect")
		d, err := parser.LookupDialect(name)
		if err != nil {
			return parser.Options{}, err
		}
		opts.Dialect = d
	}
	if flags.Changed("skip-blank") {
		opts.BlankLines = parser.BlankLinesError
		if skip, _ := flags.GetBool("skip-blank"); skip {
			opts.BlankLines = parser.BlankLinesSkip
		}
	}
	if flags.Changed("keep-partial") {
		opts.KeepPartial, _ = flags.GetBool("keep-partial")
	}
	opts.Logger = logger.Log
	return opts, nil
}

// databasePath returns the database named on the command line or the
// configured one.
func databasePath(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return appConfig.DatabasePath
}

// loadDatabase parses the database at path.
func loadDatabase(cmd *cobra.Command, path string) (parser.Result, parser.Options, error) {
	opts, err := parserOptions(cmd, appConfig)
	if err != nil {
		return parser.Result{}, opts, err
	}
	res, err := parser.New(opts).LoadFromFile(path)
	if err != nil {
		logger.Log.Errorw("Failed to read database", zap.String("path", path), zap.Error(err))
		return parser.Result{}, opts, err
	}
	return res, opts, nil
}

// loadCatalog parses the database at path and indexes it.
func loadCatalog(cmd *cobra.Command, path string) (*catalog.Catalog, parser.Result, error) {
	res, _, err := loadDatabase(cmd, path)
	if err != nil {
		return nil, res, err
	}
	return catalog.New(res.Games, catalog.WithLogger(logger.Log)), res, nil
}

// formatLines renders line numbers as "a, b, c".
func formatLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = strconv.Itoa(l)
	}
	return strings.Join(parts, ", ")
}

func printErrorLines(w io.Writer, res parser.Result) {
	fmt.Fprintf(w, "> Errors occurred at lines %s.\n", formatLines(res.ErrorLines))
}
