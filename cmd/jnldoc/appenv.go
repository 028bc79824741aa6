package main

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gorewood/jnldoc/internal/config"
	"github.com/gorewood/jnldoc/internal/envfile"
	"github.com/gorewood/jnldoc/internal/output"
	"github.com/gorewood/jnldoc/internal/workspace"
)

// appEnv is what a command needs to work on a journal tree.
type appEnv struct {
	dir string
	cfg *config.Config
	ws  *workspace.Workspace
	log *zap.Logger
}

// loadAppEnv resolves --dir, env files, config and logger for cmd.
func loadAppEnv(cmd *cobra.Command) (*appEnv, error) {
	dir, err := filepath.Abs(lookupFlag(cmd, "dir"))
	if err != nil {
		return nil, output.NewUserError("invalid --dir: " + err.Error())
	}
	if info, statErr := os.Stat(dir); statErr != nil || !info.IsDir() {
		return nil, output.NewUserError("not a directory: " + dir)
	}
	loadEnvFiles(dir)

	cfg, err := config.Load(dir, lookupFlag(cmd, "config"))
	if err != nil {
		return nil, output.NewUserError(err.Error())
	}

	log, err := newLogger(lookupFlag(cmd, "verbose") == "true")
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to create logger", err)
	}
	log.Debug("config resolved",
		zap.String("dir", dir),
		zap.String("source", cfg.Source),
		zap.String("doc_file", cfg.DocFile))

	ws := workspace.New(osfs.New(dir), workspace.Options{
		DocFile:     cfg.DocFile,
		Extensions:  cfg.Extensions,
		ExcludeDirs: cfg.ExcludeDirs,
	})
	return &appEnv{dir: dir, cfg: cfg, ws: ws, log: log}, nil
}

// newLogger returns a production logger at debug level when verbose,
// otherwise one that discards everything.
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	return cfg.Build()
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins; environment variables already set always take precedence.
//
// Resolution order:
//  1. <dir>/.env.local   (per-project override, gitignored)
//  2. <dir>/.env         (per-project)
//  3. ~/.config/jnldoc/env (global fallback)
func loadEnvFiles(dir string) {
	paths := []string{filepath.Join(dir, ".env.local"), filepath.Join(dir, ".env")}
	if userDir := config.Dir(); userDir != "" {
		paths = append(paths, filepath.Join(userDir, "env"))
	}
	_ = envfile.Load(paths...)
}
