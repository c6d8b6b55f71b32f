package awsconfig

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
)

type service struct{}

// Options selects the region and credentials of the SDK config.
// AccessKeyID and SecretAccessKey override the default credential chain when set.
type Options struct {
	Region          string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

type ConfigService interface {
	GetAWSCfg(ctx context.Context, opts Options) (aws.Config, error)
}
