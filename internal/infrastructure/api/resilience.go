package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/grigofil/plaudctl/internal/core/domain"
	"github.com/grigofil/plaudctl/internal/infrastructure/resilience"
)

// classifyAPIError decides retry and breaker accounting per error class.
// Auth, not-found and protocol errors are never retried.
func classifyAPIError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if domain.IsKind(err, domain.ErrNetwork) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var srvErr *domain.ServerError
	if errors.As(err, &srvErr) {
		if isRetryableHTTPStatus(srvErr.Code) {
			return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
		}
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}

	return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
}

func isRetryableHTTPStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout, http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
