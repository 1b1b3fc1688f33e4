// Package awserr classifies AWS API errors by their error code.
package awserr

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"

	"vidizone.dev/netstack/internal/retry"
)

// Code returns the API error code of err, or "" when err is not an API error.
func Code(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsNotFound reports whether err carries an EC2 not-found code, such as
// InvalidVpcID.NotFound or NatGatewayNotFound, or an S3 NotFound/NoSuchBucket.
func IsNotFound(err error) bool {
	code := Code(err)
	switch {
	case code == "":
		return false
	case strings.HasSuffix(code, "NotFound"), code == "NoSuchBucket", code == "404":
		return true
	}
	return false
}

// Is reports whether err carries one of the given codes.
func Is(err error, codes ...string) bool {
	code := Code(err)
	if code == "" {
		return false
	}
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

// RetryNotFound passes not-found errors through for retrying and marks every other
// error fatal. Use it inside retry.WithExponentialBackoff around calls that reference
// freshly created resources.
func RetryNotFound(err error) error {
	if err == nil || IsNotFound(err) {
		return err
	}
	return retry.Fatal(err)
}
