package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aitorfernandez/puid"
	"github.com/aitorfernandez/puid/internal/config"
	"github.com/aitorfernandez/puid/internal/publish"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [flags] <file>...",
	Short: "Upload files to S3 under generated IDs",
	Long: `Upload files to an S3 bucket, storing each one under a fresh ID.

Object keys have the form <key-prefix><id><ext>:
  report.csv → uploads/obj_l2ok01bl0yq2i2ElC7zWaCR8.csv

The mapping from local path to key is printed to stdout, tab separated.
The original file name is kept in the object's source-name metadata.

Requires AWS credentials configured via:
  - AWS CLI profile (~/.aws/credentials)
  - Environment variables (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY)
  - IAM role (when running on EC2/ECS)

Examples:
  # Upload with settings from .puid.toml
  puid upload *.csv

  # Explicit bucket and prefixes, no prompt
  puid upload --bucket records --key-prefix in/ --id-prefix doc --yes a.pdf b.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

var (
	uploadBucket      string
	uploadKeyPrefix   string
	uploadIDPrefix    string
	uploadProfile     string
	uploadRegion      string
	uploadConcurrency int
	uploadYes         bool
)

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVar(&uploadBucket, "bucket", "", "Target S3 bucket (default from config)")
	uploadCmd.Flags().StringVar(&uploadKeyPrefix, "key-prefix", "", "Prefix prepended to every object key (default from config)")
	uploadCmd.Flags().StringVar(&uploadIDPrefix, "id-prefix", "", "Prefix of the generated IDs (default from config)")
	uploadCmd.Flags().StringVar(&uploadProfile, "profile", "", "AWS profile name")
	uploadCmd.Flags().StringVar(&uploadRegion, "region", "", "AWS region (default from AWS config)")
	uploadCmd.Flags().IntVar(&uploadConcurrency, "concurrency", 0, "Parallel uploads, at least 1 (default from config)")
	uploadCmd.Flags().BoolVarP(&uploadYes, "yes", "y", false, "Skip the confirmation prompt")
}

// uploadSettings is the effective upload configuration once flags have
// been layered over .puid.toml.
type uploadSettings struct {
	Bucket      string
	KeyPrefix   string
	IDPrefix    string
	Profile     string
	Region      string
	Concurrency int
}

func resolveUploadSettings(cfg config.UploadConfig) (uploadSettings, error) {
	settings := uploadSettings{
		Bucket:      firstNonEmpty(uploadBucket, cfg.Bucket),
		KeyPrefix:   firstNonEmpty(uploadKeyPrefix, cfg.KeyPrefix),
		IDPrefix:    firstNonEmpty(uploadIDPrefix, cfg.IDPrefix),
		Profile:     firstNonEmpty(uploadProfile, cfg.Profile),
		Region:      firstNonEmpty(uploadRegion, cfg.Region),
		Concurrency: cfg.Concurrency,
	}
	if uploadConcurrency != 0 {
		settings.Concurrency = uploadConcurrency
	}

	if err := requireValue("bucket", settings.Bucket); err != nil {
		return uploadSettings{}, err
	}
	if err := puid.ValidatePrefix(settings.IDPrefix); err != nil {
		return uploadSettings{}, fmt.Errorf("invalid id prefix: %w", err)
	}
	if settings.Concurrency < 1 {
		return uploadSettings{}, fmt.Errorf("concurrency must be at least 1, got %d", settings.Concurrency)
	}

	return settings, nil
}

func runUpload(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	settings, err := resolveUploadSettings(projectConfig.Upload)
	if err != nil {
		return err
	}

	if !uploadYes {
		if err := publish.Confirm(len(args), settings.Bucket); err != nil {
			return err
		}
	}

	logger.Info("initializing AWS")
	clients, err := publish.NewAWSClients(ctx, settings.Profile, settings.Region)
	if err != nil {
		return fmt.Errorf("failed to initialize AWS: %w", err)
	}

	uploader := &publish.Uploader{
		Client:      clients.S3,
		Generator:   puid.Default(),
		Bucket:      settings.Bucket,
		KeyPrefix:   settings.KeyPrefix,
		IDPrefix:    settings.IDPrefix,
		Concurrency: settings.Concurrency,
		Logger:      logger,
	}

	uploads, err := uploader.UploadFiles(ctx, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, up := range uploads {
		fmt.Fprintf(out, "%s\t%s\n", up.Path, up.Key)
	}
	return nil
}
