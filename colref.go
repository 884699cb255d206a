// Package colref gives callers of quoting-based data-manipulation APIs a
// friendlier way to say whether an argument's typed expression or its
// bound value names a column, plus a rewriter that compiles the friendly
// calls away into the quoting framework's native forms. This package is
// the façade; capture holds the argument-capture operations and rewrite
// holds the source-to-source engine.
package colref

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/colref/colref/rewrite"
	"github.com/colref/colref/scanner"
)

// Re-exported so most callers only import this package.
type (
	Config = rewrite.Config
	Match  = rewrite.Match
	Engine = rewrite.Engine
)

// DefaultConfig returns the stock capture-to-native name mapping.
func DefaultConfig() Config { return rewrite.DefaultConfig() }

// LoadConfig reads a YAML name-mapping file, filling gaps from defaults.
func LoadConfig(path string) (Config, error) { return rewrite.LoadConfig(path) }

// New returns a rewrite engine for the given configuration.
func New(cfg Config, logger *zap.Logger) *Engine {
	return rewrite.NewEngine(cfg, logger)
}

// Rewrite transforms one source buffer with the default configuration.
func Rewrite(src string) (string, error) { return rewrite.Rewrite(src) }

// Check reports the capture sites in src without rewriting, using the
// default configuration.
func Check(src string) ([]Match, error) {
	return rewrite.NewEngine(rewrite.DefaultConfig(), nil).Matches(src)
}

// CollectFiles expands the given paths: files are kept as-is, directories
// are walked for dialect sources.
func CollectFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		found, err := scanner.New(path, ".R", ".r").Scan()
		if err != nil {
			return nil, fmt.Errorf("error walking directory %s: %w", path, err)
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}
	return files, nil
}

// HasDialectExtension reports whether the file looks like dialect source.
func HasDialectExtension(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".R" || ext == ".r"
}

// RewriteFile rewrites one file. It returns the content it read alongside
// the rewritten text, so callers diff against the exact bytes that were
// transformed. The output lands on disk only when write is set and the
// content changed; any rewrite error leaves the file untouched.
func RewriteFile(engine *Engine, path string, write bool) (changed bool, before, out string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, "", "", err
	}
	before = string(data)
	out, err = engine.Rewrite(before)
	if err != nil {
		return false, before, before, fmt.Errorf("%s: %w", path, err)
	}
	if out == before {
		return false, before, out, nil
	}
	if write {
		info, err := os.Stat(path)
		if err != nil {
			return false, before, out, err
		}
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			return false, before, out, err
		}
	}
	return true, before, out, nil
}
