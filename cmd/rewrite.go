package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/colref/colref"
	"github.com/colref/colref/formatter"
	"github.com/colref/colref/internal/watcher"
)

var (
	writeInPlace bool
	showDiff     bool
	watchFiles   bool
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [paths... | -]",
	Short: "Rewrite capture calls into native quoting-framework forms",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths, or - for stdin")
			os.Exit(1)
		}

		engine := colref.New(engineConfig(), logger)

		if watchFiles {
			// watch mode only makes sense when results land on disk
			writeInPlace = true
		}

		if len(args) == 1 && args[0] == "-" {
			rewriteStdin(engine)
			return
		}

		files, err := colref.CollectFiles(args)
		if err != nil {
			logger.Fatal("Failed to collect files", zap.Error(err))
		}
		if len(files) == 0 {
			fmt.Println("no dialect files found")
			return
		}

		failed := runRewrite(engine, files)

		if watchFiles {
			watchAndRewrite(engine, args)
			return
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rewriteCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "Write results back to the source files")
	rewriteCmd.Flags().BoolVar(&showDiff, "diff", false, "Show a diff instead of the full output")
	rewriteCmd.Flags().BoolVar(&watchFiles, "watch", false, "Keep watching the paths and rewrite on change")
}

func rewriteStdin(engine *colref.Engine) {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		logger.Fatal("Failed to read stdin", zap.Error(err))
	}
	out, err := engine.Rewrite(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Print(out)
}

// runRewrite processes the files and reports whether any of them failed.
func runRewrite(engine *colref.Engine, files []string) bool {
	var bar *progressbar.ProgressBar
	if len(files) > 1 && writeInPlace {
		bar = progressbar.Default(int64(len(files)), "rewriting")
	}

	failed := false
	for _, path := range files {
		changed, out, err := rewriteOne(engine, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			failed = true
		} else if changed && !writeInPlace && !showDiff {
			fmt.Print(out)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return failed
}

func rewriteOne(engine *colref.Engine, path string) (bool, string, error) {
	changed, before, out, err := colref.RewriteFile(engine, path, writeInPlace)
	if err != nil {
		return false, "", err
	}
	if changed && showDiff {
		fmt.Print(formatter.FormatDiff(path, before, out))
	}
	return changed, out, nil
}

func watchAndRewrite(engine *colref.Engine, paths []string) {
	w, err := watcher.New(logger, colref.HasDialectExtension, func(path string) {
		changed, _, err := rewriteOne(engine, path)
		switch {
		case err != nil:
			logger.Error("watch rewrite failed", zap.String("path", path), zap.Error(err))
		case changed:
			logger.Info("rewrote", zap.String("path", path))
		}
	})
	if err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	if err := w.Add(paths...); err != nil {
		logger.Fatal("Failed to watch paths", zap.Error(err))
	}
	if err := w.Start(); err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}
