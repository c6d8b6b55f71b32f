package awss3

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/elC0mpa/aws-rate-genie/service/aws/awserr"
)

func NewService(awsconfig aws.Config, bucket, prefix string) *service {
	return &service{
		client: s3.NewFromConfig(awsconfig),
		bucket: bucket,
		prefix: prefix,
	}
}

// Put uploads body under the configured prefix and returns its s3:// URI.
func (s *service) Put(ctx context.Context, name string, body []byte, contentType string) (string, error) {
	if s.bucket == "" {
		return "", fmt.Errorf("export bucket is not configured")
	}

	key := path.Join(strings.Trim(s.prefix, "/"), name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", awserr.Classify("export", err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
