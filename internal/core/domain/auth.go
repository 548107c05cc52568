package domain

import (
	"errors"
	"net/url"
	"strings"
)

// AuthContext is the per-call credential material. It is owned by the
// caller's session and never persisted by the core. Exactly one of Token
// and APIKey selects the header convention; setting both is rejected.
type AuthContext struct {
	ServerURL string
	Token     string
	APIKey    string
}

// Validate checks the server URL and the credential selection before any
// HTTP call is issued.
func (a AuthContext) Validate() error {
	raw := strings.TrimSpace(a.ServerURL)
	if raw == "" {
		return WrapError(ErrInvalidInput, "validate auth", errors.New("empty server url"))
	}
	u, err := url.Parse(raw)
	if err != nil {
		return WrapError(ErrInvalidInput, "validate auth", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return WrapError(ErrInvalidInput, "validate auth", errors.New("server url must be http(s) with a host"))
	}
	if a.Token != "" && a.APIKey != "" {
		return WrapError(ErrInvalidInput, "validate auth", errors.New("token and api key are mutually exclusive"))
	}
	return nil
}

// BaseURL returns the server URL without a trailing slash.
func (a AuthContext) BaseURL() string {
	return strings.TrimRight(strings.TrimSpace(a.ServerURL), "/")
}
