package cmd

import (
	"go.uber.org/zap"

	"github.com/colref/colref"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "colref",
	Short:            "colref - rewrite friendly column-capture calls into native quoting forms",
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger, _ = zap.NewDevelopment()
		} else {
			logger, _ = zap.NewProduction()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand: behave like the rewrite subcommand when paths
		// are given, otherwise show help
		if len(args) == 0 {
			_ = cmd.Help()
			return
		}
		rewriteCmd.Run(rewriteCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to the name-mapping config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(checkCmd)
}

// engineConfig loads the configured name mapping, falling back to the
// defaults when no config file is given.
func engineConfig() colref.Config {
	if cfgFile == "" {
		return colref.DefaultConfig()
	}
	cfg, err := colref.LoadConfig(cfgFile)
	if err != nil {
		logger.Fatal("Failed to load config", zap.String("path", cfgFile), zap.Error(err))
	}
	return cfg
}
