package entity

import (
	"fmt"
	"net/mail"
	"net/url"
)

// Field length limits shared by the validation helpers.
const (
	maxURLLength   = 2048
	maxEmailLength = 254
)

// ValidateURL validates the format of a URL. It checks that the URL is
// well-formed, uses an HTTP or HTTPS scheme, and has a host.
// Returns a ValidationError if the URL is invalid or empty.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}
	return nil
}

// ValidateEmail validates the format of an email address using the
// RFC 5322 address parser.
func ValidateEmail(address string) error {
	if address == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if len(address) > maxEmailLength {
		return &ValidationError{
			Field:   "email",
			Message: fmt.Sprintf("must not exceed %d characters", maxEmailLength),
		}
	}
	parsed, err := mail.ParseAddress(address)
	if err != nil || parsed.Address != address {
		return &ValidationError{Field: "email", Message: "is not a valid email address"}
	}
	return nil
}
