package awsconfig

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

func NewService() *service {
	return &service{}
}

func (s *service) GetAWSCfg(ctx context.Context, opts Options) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, loadOptions(opts)...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}

// WithRegion returns a copy of cfg bound to region. The Pricing API is only
// served from a few regions, so its client needs its own copy.
func WithRegion(cfg aws.Config, region string) aws.Config {
	c := cfg.Copy()
	c.Region = region
	return c
}

func loadOptions(opts Options) []func(*config.LoadOptions) error {
	var fns []func(*config.LoadOptions) error

	if opts.Region != "" {
		fns = append(fns, config.WithRegion(opts.Region))
	}
	// Static keys and a shared profile are mutually exclusive sources.
	if opts.AccessKeyID != "" {
		fns = append(fns, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, opts.SessionToken),
		))
	} else if opts.Profile != "" {
		fns = append(fns, config.WithSharedConfigProfile(opts.Profile))
	}

	return fns
}
