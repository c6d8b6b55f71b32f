// Package awserr maps AWS SDK failures onto the report error taxonomy.
package awserr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/elC0mpa/aws-rate-genie/service/costengine"
)

// Reason describes why an upstream call failed.
type Reason string

const (
	ReasonCredentials Reason = "credentials rejected"
	ReasonThrottled   Reason = "throttled"
	ReasonUnreachable Reason = "endpoint unreachable"
	ReasonFailed      Reason = "request failed"
)

var credentialCodes = []string{
	"UnrecognizedClientException",
	"InvalidClientTokenId",
	"AccessDenied",
	"AccessDeniedException",
	"ExpiredToken",
	"ExpiredTokenException",
	"InvalidSignatureException",
	"SignatureDoesNotMatch",
	"UnauthorizedOperation",
}

var throttlingCodes = []string{
	"Throttling",
	"ThrottlingException",
	"TooManyRequestsException",
	"RequestLimitExceeded",
	"LimitExceededException",
}

// Classify wraps err from an AWS call to api with costengine.ErrUpstreamUnavailable.
// Context cancellation is returned unchanged.
func Classify(api string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, costengine.ErrUpstreamUnavailable) {
		return err
	}

	return fmt.Errorf("%w: %s %s: %w", costengine.ErrUpstreamUnavailable, api, ReasonOf(err), err)
}

// ReasonOf reports the failure category of err.
func ReasonOf(err error) Reason {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); {
		case slices.Contains(credentialCodes, code):
			return ReasonCredentials
		case slices.Contains(throttlingCodes, code):
			return ReasonThrottled
		}
		return ReasonFailed
	}

	var sendErr *smithyhttp.RequestSendError
	if errors.As(err, &sendErr) {
		return ReasonUnreachable
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ReasonUnreachable
	}

	return ReasonFailed
}

// Operation returns the service and operation names of a failed SDK call,
// or empty strings when err did not come from one.
func Operation(err error) (service, operation string) {
	var opErr *smithy.OperationError
	if errors.As(err, &opErr) {
		return opErr.Service(), opErr.Operation()
	}
	return "", ""
}
