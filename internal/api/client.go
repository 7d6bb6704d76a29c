// Package api is the console's single configured HTTP client plus typed
// wrappers for every backend endpoint the screens consume. Non-2xx responses
// come back as *APIError values; the transport never panics into callers.
package api

import (
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"adminpro/console/internal/config"
)

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource func() string

type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

func New(cfg config.APIConfig, token TokenSource, logger zerolog.Logger) *Client {
	hc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	hc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		r.SetHeader("X-Request-Id", uuid.NewString())
		if token != nil {
			if t := token(); t != "" {
				r.SetHeader("Authorization", "Bearer "+t)
			}
		}
		return nil
	})

	hc.OnAfterResponse(func(_ *resty.Client, r *resty.Response) error {
		if !r.IsError() {
			return nil
		}
		apiErr := decodeAPIError(r.StatusCode(), r.Body())
		logger.Warn().
			Str("method", r.Request.Method).
			Str("url", r.Request.URL).
			Int("status", r.StatusCode()).
			Str("message", apiErr.Message).
			Msg("backend error response")
		return apiErr
	})

	return &Client{http: hc, log: logger}
}

// dataEnvelope is the standard success wrapper the backend puts around
// payloads.
type dataEnvelope[T any] struct {
	Data T `json:"data"`
}
