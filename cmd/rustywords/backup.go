package main

import (
	"github.com/spf13/cobra"

	"github.com/oversys/Rusty-Words/internal/config"
	"github.com/oversys/Rusty-Words/internal/errors"
	"github.com/oversys/Rusty-Words/pkg/backup"
	"github.com/oversys/Rusty-Words/pkg/words"
)

func backupCmd() *cobra.Command {
	var (
		configPath string
		out        string
	)

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up the word database",
		Long: `Back up the word database.

With --out the snapshot is written to a local file. Otherwise it is
uploaded to the bucket named in the backup section of rustywords.json,
using credentials from AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			if out == "" && cfg.Backup.Bucket == "" {
				return errors.New("E400").
					WithDetail("no backup destination").
					WithSuggestion("Pass --out or set backup.bucket in " + config.ConfigFileName)
			}

			store, err := words.Open(cmd.Context(), cfg.DatabasePath())
			if err != nil {
				return err
			}
			defer store.Close()

			w := cmd.OutOrStdout()
			if out != "" {
				if err := store.Snapshot(cmd.Context(), out); err != nil {
					return err
				}
				success(w, "Snapshot written to %s", out)
				return nil
			}

			client := backup.NewS3Client(backup.ClientOptions{
				Region:    cfg.Backup.Region,
				Endpoint:  cfg.Backup.Endpoint,
				PathStyle: cfg.Backup.PathStyle,
			})
			key, err := backup.NewS3Target(client, cfg.Backup.Bucket, cfg.Backup.Prefix).Backup(cmd.Context(), store)
			if err != nil {
				return err
			}
			success(w, "Backup uploaded")
			info(w, "s3://%s/%s", cfg.Backup.Bucket, key)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to rustywords.json or its directory")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the snapshot to a local file instead of S3")

	return cmd
}
