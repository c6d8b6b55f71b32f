package awss3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used here.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type service struct {
	client S3API
	bucket string
	prefix string
}

type ExportService interface {
	Put(ctx context.Context, name string, body []byte, contentType string) (string, error)
}
