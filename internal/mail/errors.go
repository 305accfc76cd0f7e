package mail

import (
	"context"
	"errors"
	"net"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// ErrNoCredentials is returned when the transport cannot resolve credentials.
var ErrNoCredentials = errors.New("mail: credentials unavailable")

// IsRetryable reports whether err belongs to the transient transport failures
// a delivery is retried on: missing credentials, connection failures, service
// client errors and rejected request parameters. An expired or cancelled
// caller context is never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, ErrNoCredentials) {
		return true
	}

	var paramsErr *smithy.InvalidParamsError
	if errors.As(err, &paramsErr) {
		return true
	}

	var sendErr *smithyhttp.RequestSendError
	if errors.As(err, &sendErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var apiErr smithy.APIError
	return errors.As(err, &apiErr)
}
