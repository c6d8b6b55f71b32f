package awsses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/elC0mpa/aws-rate-genie/service/aws/awserr"
)

const charset = "UTF-8"

func NewService(awsconfig aws.Config, from string, to []string) *service {
	return &service{
		client: sesv2.NewFromConfig(awsconfig),
		from:   from,
		to:     to,
	}
}

// Send mails msg to the configured recipients and returns the SES message id.
func (s *service) Send(ctx context.Context, msg Message) (string, error) {
	if s.from == "" || len(s.to) == 0 {
		return "", fmt.Errorf("email sender and recipients must be configured")
	}

	body := &types.Body{
		Text: &types.Content{Data: aws.String(msg.Text), Charset: aws.String(charset)},
	}
	if msg.HTML != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTML), Charset: aws.String(charset)}
	}

	output, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: s.to,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charset)},
				Body:    body,
			},
		},
	})
	if err != nil {
		return "", awserr.Classify("email", err)
	}

	return aws.ToString(output.MessageId), nil
}
