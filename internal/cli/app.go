package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"course-catalog/internal/catalog"
	"course-catalog/internal/config"
	"course-catalog/internal/devutil"
	"course-catalog/internal/localdb"
	"course-catalog/internal/logger"
	"course-catalog/internal/remote"
	"course-catalog/internal/store"
)

// app is everything one command invocation needs.
type app struct {
	cfg   config.Config
	log   *logger.Logger
	snap  *store.Snapshots
	local *localdb.DB
	svc   *catalog.Service
}

func openApp(ctx context.Context, opts *RootOptions) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.Offline {
		cfg.Offline = true
	}

	log := logger.Nop()
	if opts.Verbose {
		if log, err = logger.New(cfg.LogMode); err != nil {
			return nil, fmt.Errorf("cli: logger: %w", err)
		}
	}

	snap, err := store.Open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	local := localdb.New(snap, log)
	svc := catalog.NewService(
		remote.New(cfg.APIBaseURL, cfg.RemoteTimeout),
		local,
		catalog.NewDispatcher(cfg.RemoteTimeout, cfg.Offline, log),
		log,
	)
	return &app{cfg: cfg, log: log, snap: snap, local: local, svc: svc}, nil
}

func (a *app) Close() error {
	a.log.Sync()
	return a.snap.Close()
}

// run opens the app for one command and closes it afterwards.
func run(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, a *app) error) (err error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, a.Close())
	}()
	return fn(ctx, a)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printProjected writes v keeping only the --fields keys.
func printProjected(cmd *cobra.Command, opts *RootOptions, v any) error {
	return printJSON(cmd, devutil.Project(v, opts.Fields...))
}

func printResult[T any](cmd *cobra.Command, opts *RootOptions, a *app, res catalog.Result[T]) error {
	a.log.Debug("served", "source", res.Source, "status", res.Status)
	return printProjected(cmd, opts, res.Data)
}
