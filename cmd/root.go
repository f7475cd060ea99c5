package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"pobsd/config"
	"pobsd/logger"
)

var appConfig config.Config

var rootCmd = &cobra.Command{
	Use:   "pobsd",
	Short: "Parse, check and browse the PlayOnBSD games database",
	Long: `pobsd reads the tab separated PlayOnBSD games database, reports malformed
records and lets you query, export or browse the games it holds.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return err
		}
		appConfig = cfg
		logger.InitLogger(cfg.LogFile, cfg.LogMaxSizeMB)
		return nil
	},
}

func init() {
	addParserFlags(rootCmd.PersistentFlags())
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Sync()
		os.Exit(1)
	}
}

func addParserFlags(flags *pflag.FlagSet) {
	flags.Bool("strict", false, "stop at the first malformed line")
	flags.String("dialect", "", "database dialect: igdb or classic")
	flags.Bool("skip-blank", false, "ignore blank lines instead of reporting them")
	flags.Bool("keep-partial", false, "keep the record being read when an error occurs")
}
