package api

import "context"

const (
	pathSendOTP   = "/admin/auth/mobile/send-otp"
	pathVerifyOTP = "/admin/auth/mobile/verify-otp"
)

type OTPRequest struct {
	CountryCode int   `json:"countryCode"`
	MobileNo    int64 `json:"mobileNo"`
}

type VerifyOTPRequest struct {
	OTPRequest
	OTP string `json:"otp"`
}

// SendOTP asks the backend to dispatch a one-time password to the given
// mobile number. Repeated calls re-trigger dispatch; there is no client-side
// dedupe.
func (c *Client) SendOTP(ctx context.Context, req OTPRequest) error {
	_, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(pathSendOTP)
	return err
}

// VerifyOTP exchanges number+otp for a session payload. The response shape
// varies across backend versions, so the raw decoded body is returned for the
// session store to normalize.
func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (map[string]any, error) {
	var payload map[string]any
	_, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&payload).
		Post(pathVerifyOTP)
	if err != nil {
		return nil, err
	}
	return payload, nil
}
