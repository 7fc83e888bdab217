package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/karantec/minutos-storefront/pkg/errors"
)

// upstreamErrorBody matches the common {message: ...} / {error: ...} shapes
// returned by the backend on failure.
type upstreamErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// ParseResponseError reads a non-2xx response body and maps it to an
// AppError, preserving the upstream message where one exists. The body is
// consumed and closed.
func ParseResponseError(resp *http.Response, upstream string) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%s returned status %d (read body: %w)", upstream, resp.StatusCode, err)
	}

	message := ""
	var body upstreamErrorBody
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			message = body.Message
		} else if body.Error != "" {
			message = body.Error
		}
	}
	if message == "" {
		message = fmt.Sprintf("%s returned status %d", upstream, resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NotFound(upstream, message)
	case resp.StatusCode == http.StatusBadRequest:
		return apperrors.InvalidInput(fmt.Sprintf("%s: %s", upstream, message))
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.Unauthorized(fmt.Sprintf("%s: %s", upstream, message))
	case resp.StatusCode == http.StatusForbidden:
		return apperrors.Forbidden(fmt.Sprintf("%s: %s", upstream, message))
	case resp.StatusCode == http.StatusConflict:
		return apperrors.Conflict(fmt.Sprintf("%s: %s", upstream, message))
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return apperrors.Rejected("UPSTREAM_REJECTED", message)
	case resp.StatusCode >= 500:
		return apperrors.Unavailable(fmt.Sprintf("%s: %s", upstream, message))
	default:
		return &apperrors.AppError{
			Code:    "UPSTREAM_ERROR",
			Message: fmt.Sprintf("%s: %s", upstream, message),
			Status:  resp.StatusCode,
		}
	}
}
