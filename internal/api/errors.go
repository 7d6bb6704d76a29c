package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx backend response surfaced as a value rather than a
// bare transport failure. Message holds the most specific human text the
// response body offered.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorEnvelope covers the body shapes the backend uses for failures:
// an errors[] array of {message} objects or plain strings, a top-level
// message, or a top-level error.
type errorEnvelope struct {
	Code    any               `json:"code"`
	Message string            `json:"message"`
	Err     string            `json:"error"`
	Errors  []json.RawMessage `json:"errors"`
}

func decodeAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		for _, raw := range env.Errors {
			if msg := decodeErrorItem(raw); msg != "" {
				apiErr.Errors = append(apiErr.Errors, msg)
			}
		}
		switch {
		case len(apiErr.Errors) > 0:
			apiErr.Message = strings.Join(apiErr.Errors, "; ")
		case env.Message != "":
			apiErr.Message = env.Message
		case env.Err != "":
			apiErr.Message = env.Err
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("request failed with status %d", statusCode)
	}
	return apiErr
}

func decodeErrorItem(raw json.RawMessage) string {
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	return ""
}
