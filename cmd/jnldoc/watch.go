package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gorewood/jnldoc/internal/docsync"
	"github.com/gorewood/jnldoc/internal/output"
	"github.com/gorewood/jnldoc/internal/watch"
)

// newWatchCmd creates the watch command.
func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Sync, then keep READMEs current as journals change",
		Long: `Run a full sync, then watch every journal directory and re-sync a
directory once its journals have been quiet for the debounce interval
(config key "debounce", default 250ms). New subdirectories are picked up.

Stop with Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
}

// runWatch executes the watch command.
func runWatch(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	env, err := loadAppEnv(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer func() { _ = env.log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var progress docsync.Progress
	if !printer.IsJSON() {
		progress = printer
	}
	syncer := docsync.New(env.ws, docsync.Options{Marker: env.cfg.Marker}, progress, env.log)

	results, err := syncer.Run(ctx)
	if err != nil {
		err = output.NewSystemErrorWithCause("sync: "+err.Error(), err)
		printer.Error(err)
		return err
	}
	report := func(res docsync.Result) {
		if printer.IsJSON() {
			_ = printer.WriteJSON(toDirReport(res))
		}
	}
	for _, res := range results {
		report(res)
	}

	dirs, err := env.ws.Directories()
	if err != nil {
		printer.Error(err)
		return err
	}
	watcher, err := watch.New(env.dir, dirs, watch.Options{
		Debounce:   env.cfg.Debounce,
		IsJournal:  env.ws.IsJournal,
		IsExcluded: env.ws.IsExcluded,
		Logger:     env.log,
	})
	if err != nil {
		err = output.NewSystemErrorWithCause("watch: "+err.Error(), err)
		printer.Error(err)
		return err
	}

	printer.Stderr("Watching %s for journal changes (Ctrl-C to stop)\n", env.dir)
	env.log.Info("watching", zap.String("dir", env.dir), zap.Int("directories", len(dirs)))

	err = watcher.Run(ctx, func(dir string) {
		report(syncer.SyncDir(ctx, dir))
	})
	if err != nil && ctx.Err() == nil {
		err = output.NewSystemErrorWithCause("watch: "+err.Error(), err)
		printer.Error(err)
		return err
	}
	return nil
}
