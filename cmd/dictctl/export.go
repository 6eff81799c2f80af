package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/amchigale/konkani-dictionary/internal/config"
	"github.com/amchigale/konkani-dictionary/internal/export"
	"github.com/amchigale/konkani-dictionary/internal/repository"
	"github.com/amchigale/konkani-dictionary/pkg/storage"
	"github.com/spf13/cobra"
)

// uploader is the part of the S3 client export needs
type uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (*storage.UploadResult, error)
}

func newExportCommand() *cobra.Command {
	var output string
	var upload bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump every entry as JSON, ordered by entry number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, closeDB, err := loadConfigAndDB()
			if err != nil {
				return err
			}
			defer closeDB()

			var up uploader
			if upload {
				if up, err = newUploader(cfg); err != nil {
					return err
				}
			}
			return runExport(cmd.Context(), repository.NewEntryRepository(db), up, output, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", `output file ("-" for stdout)`)
	cmd.Flags().BoolVar(&upload, "upload", false, "also upload the export to the configured S3 bucket")
	return cmd
}

func newUploader(cfg *config.Config) (*storage.S3Client, error) {
	if !cfg.Storage.Enabled || cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("--upload requires a storage bucket (S3_BUCKET)")
	}
	return storage.NewS3Client(storage.S3Config{
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Bucket:          cfg.Storage.Bucket,
		CDNURL:          cfg.Storage.CDNURL,
		BasePath:        cfg.Storage.BasePath,
		ForcePathStyle:  cfg.Storage.ForcePathStyle,
	})
}

// runExport writes the export to output (stdout when "-") and optionally uploads it.
// Status lines go to status so stdout stays valid JSON.
func runExport(ctx context.Context, src export.Source, up uploader, output string, stdout, status io.Writer) error {
	var buf bytes.Buffer
	count, err := export.WriteJSON(ctx, src, &buf)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if output == "-" {
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		fmt.Fprintf(status, "exported %d entries to %s\n", count, output)
	}

	if up != nil {
		res, err := up.Upload(ctx, storage.ExportKey(time.Now().UTC()), bytes.NewReader(buf.Bytes()), "application/json")
		if err != nil {
			return err
		}
		fmt.Fprintf(status, "uploaded %d entries to %s\n", count, res.URL)
	}
	return nil
}
