package awssts

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/elC0mpa/aws-rate-genie/service/aws/awserr"
)

func NewService(awsconfig aws.Config) *service {
	client := sts.NewFromConfig(awsconfig)
	return &service{
		client: client,
	}
}

// GetAccountInfo returns the identity behind the configured credentials.
// It doubles as the connection check of the connect command.
func (s *service) GetAccountInfo(ctx context.Context) (*model.AccountInfo, error) {
	output, err := s.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, awserr.Classify("identity", err)
	}

	return &model.AccountInfo{
		AccountID: aws.ToString(output.Account),
		Arn:       aws.ToString(output.Arn),
		UserID:    aws.ToString(output.UserId),
	}, nil
}
