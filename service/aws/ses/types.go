package awsses

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

// SESAPI is the subset of the SES v2 client used here.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Message is a rendered report ready to be mailed.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

type service struct {
	client SESAPI
	from   string
	to     []string
}

type EmailService interface {
	Send(ctx context.Context, msg Message) (string, error)
}
