package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/colref/colref"
	"github.com/colref/colref/formatter"
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report capture sites without modifying anything",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		engine := colref.New(engineConfig(), logger)
		files, err := colref.CollectFiles(args)
		if err != nil {
			logger.Fatal("Failed to collect files", zap.Error(err))
		}

		total := 0
		failed := false
		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				logger.Error("Error reading source file", zap.String("file", path), zap.Error(err))
				failed = true
				continue
			}
			matches, err := engine.Matches(string(data))
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %s: %v\n", path, err)
				failed = true
				continue
			}
			total += len(matches)
			fmt.Print(formatter.FormatMatches(path, string(data), matches))
		}

		if total > 0 {
			fmt.Printf("%d capture site(s) remaining\n", total)
		}
		if total > 0 || failed {
			os.Exit(1)
		}
	},
}
