package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/cloud"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/config"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/database"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/domain"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/report"
	"github.com/ANIKETSHETTY47/sustainable-resource-dashboard/internal/repository"
)

type resourceLister interface {
	ListResources(ctx context.Context) ([]domain.Resource, error)
}

type uploader interface {
	UploadReport(ctx context.Context, data []byte) (key, url string, err error)
}

type (
	openReposFunc   func(ctx context.Context) (resourceLister, func() error, error)
	newUploaderFunc func(ctx context.Context) (uploader, error)
)

func openRepos(ctx context.Context) (resourceLister, func() error, error) {
	db, err := database.Connect()
	if err != nil {
		return nil, nil, err
	}
	repos := repository.New(db)
	if err := repos.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	inv, err := repository.LoadInventory(config.SeedFile())
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	if err := repos.Seed(ctx, inv); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repos, db.Close, nil
}

func newUploader(ctx context.Context) (uploader, error) {
	if config.S3Bucket() == "" {
		return nil, errors.New("AWS_S3_BUCKET is not set")
	}
	c, err := cloud.NewS3Client(ctx, config.AWSRegion(), config.S3Bucket())
	if err != nil {
		return nil, err
	}
	return c, nil
}

func newRootCmd(open openReposFunc, upload newUploaderFunc) *cobra.Command {
	var (
		threshold float64
		archive   bool
	)

	cmd := &cobra.Command{
		Use:          "report",
		Short:        "Print the sustainability report for the current resource state",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			repos, closeFn, err := open(ctx)
			if err != nil {
				return fmt.Errorf("open storage: %w", err)
			}
			defer closeFn()

			resources, err := repos.ListResources(ctx)
			if err != nil {
				return fmt.Errorf("list resources: %w", err)
			}

			if threshold <= 0 {
				threshold = report.DefaultAlertThreshold
			}

			var buf bytes.Buffer
			if err := report.WriteText(&buf, resources, threshold); err != nil {
				return err
			}
			if _, err := io.Copy(cmd.OutOrStdout(), bytes.NewReader(buf.Bytes())); err != nil {
				return err
			}
			if !archive {
				return nil
			}

			up, err := upload(ctx)
			if err != nil {
				return fmt.Errorf("s3 client: %w", err)
			}
			key, url, err := up.UploadReport(ctx, buf.Bytes())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nReport archived as %s\n%s\n", key, url)
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", config.AlertThreshold(), "usage percentage above which a resource is critical")
	cmd.Flags().BoolVar(&archive, "upload", false, "archive the report to S3")
	return cmd
}
