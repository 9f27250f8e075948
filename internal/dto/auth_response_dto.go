package dto

import "time"

// LoginResponse carries a freshly issued access token. The refresh token
// travels in an HTTP-only cookie, not in the body.
type LoginResponse struct {
	AccessToken          string       `json:"accessToken"`
	AccessTokenExpiresAt time.Time    `json:"accessTokenExpiresAt"`
	User                 UserResponse `json:"user"`
}

// GoogleCodeExchangeRequest carries the OAuth authorization code or ID token
// sent by the frontend after the Google handshake.
type GoogleCodeExchangeRequest struct {
	Code    string `json:"code,omitempty"`
	IDToken string `json:"idToken,omitempty"`
}
