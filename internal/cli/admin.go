package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"course-catalog/internal/export"
	"course-catalog/internal/sftpclient"
	"course-catalog/internal/store"
)

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Seed or upgrade the local store and print what changed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				rep, err := a.local.Migrate(ctx)
				if err != nil {
					return err
				}
				return printProjected(cmd, opts, rep)
			})
		},
	}
}

func newPingCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check whether the remote API answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				return printProjected(cmd, opts, a.svc.Ping(ctx))
			})
		},
	}
}

func newExportCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export catalog data",
	}

	var out string
	csvCmd := &cobra.Command{
		Use:   "csv",
		Short: "Write every course to a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				res, err := a.svc.ListCourses(ctx, "")
				if err != nil {
					return err
				}
				if err := export.WriteCoursesCSVFile(out, res.Data); err != nil {
					return err
				}
				a.log.Info("exported courses", "path", out, "count", len(res.Data), "source", res.Source)
				return printProjected(cmd, opts, map[string]any{"path": out, "courses": len(res.Data), "source": res.Source})
			})
		},
	}
	csvCmd.Flags().StringVarP(&out, "out", "o", "courses.csv", "output csv path")

	cmd.AddCommand(csvCmd)
	return cmd
}

type backupItem struct {
	Name  string `json:"name"`
	Bytes int    `json:"bytes"`
}

func newBackupCommand(opts *RootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Upload the courses CSV and the raw local snapshot over SFTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, func(ctx context.Context, a *app) error {
				items, err := backupItems(ctx, a)
				if err != nil {
					return err
				}

				listed := make([]backupItem, len(items))
				for i, it := range items {
					listed[i] = backupItem{Name: it.Name, Bytes: len(it.Data)}
				}
				if dryRun {
					return printProjected(cmd, opts, listed)
				}

				upCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
				defer cancel()
				if err := sftpclient.UploadAll(upCtx, sftpConfig(a), items); err != nil {
					return err
				}
				a.log.Info("backup uploaded", "host", a.cfg.SFTPHost, "dir", a.cfg.SFTPDir, "files", len(items))
				return printProjected(cmd, opts, listed)
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "build the files and list them without uploading")
	return cmd
}

func backupItems(ctx context.Context, a *app) ([]sftpclient.Item, error) {
	// make sure a snapshot exists before reading its bytes
	if _, err := a.local.Migrate(ctx); err != nil {
		return nil, err
	}
	raw, err := a.snap.Raw(ctx)
	if err != nil {
		return nil, fmt.Errorf("cli: read snapshot: %w", err)
	}

	courses, err := a.svc.ListCourses(ctx, "")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := export.WriteCoursesCSV(&buf, courses.Data); err != nil {
		return nil, fmt.Errorf("cli: courses csv: %w", err)
	}

	stamp := a.local.Now().UTC().Format("20060102T150405Z")
	ext := strings.ReplaceAll(a.snap.Codec().Name(), "+", ".")
	return []sftpclient.Item{
		{Name: "courses-" + stamp + ".csv", Data: buf.Bytes()},
		{Name: store.Key + "-" + stamp + "." + ext, Data: raw},
	}, nil
}

func sftpConfig(a *app) sftpclient.Config {
	return sftpclient.Config{
		Host:                  a.cfg.SFTPHost,
		Port:                  a.cfg.SFTPPort,
		User:                  a.cfg.SFTPUser,
		Pass:                  a.cfg.SFTPPass,
		RemoteDir:             a.cfg.SFTPDir,
		InsecureIgnoreHostKey: a.cfg.SFTPInsecureIgnoreHostKey,
		KnownHostsFile:        a.cfg.SFTPKnownHosts,
	}
}
