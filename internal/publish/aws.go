package publish

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// AWSClients holds initialized AWS service clients.
type AWSClients struct {
	S3 *s3.Client
}

// NewAWSClients creates AWS clients using the standard credential chain.
// If profile is non-empty, uses that named profile.
// If region is non-empty, overrides the default region.
func NewAWSClients(ctx context.Context, profile, region string) (*AWSClients, error) {
	var opts []func(*config.LoadOptions) error

	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSClients{
		S3: s3.NewFromConfig(cfg),
	}, nil
}
