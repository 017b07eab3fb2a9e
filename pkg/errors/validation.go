package errors

import (
	"math"
	"net/url"
	"slices"
	"strings"
	"unicode"
)

// ValidateName validates a user-supplied identifier such as a palette or
// background name. Names are matched against built-in tables afterwards;
// this only rejects input that could never be valid.
func ValidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "name too long (max 64 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "name contains invalid control characters")
		}
	}
	return nil
}

// ValidateDisplay validates injected display metrics.
//
// Rules:
//   - width and height must be finite and positive
//   - scale must be finite and at least 1
func ValidateDisplay(width, height, scale float64) error {
	for _, v := range []float64{width, height, scale} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidDisplay, "display metrics must be finite")
		}
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDisplay, "display size must be positive, got %gx%g", width, height)
	}
	if scale < 1 {
		return New(ErrCodeInvalidDisplay, "pixel scale must be at least 1, got %g", scale)
	}
	return nil
}

// ValidateEndpoint validates a backing-service URL such as a Redis or
// MongoDB connection string. The scheme must be one of schemes.
func ValidateEndpoint(raw string, schemes ...string) error {
	if raw == "" {
		return New(ErrCodeInvalidInput, "endpoint URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid endpoint URL")
	}
	if !slices.Contains(schemes, strings.ToLower(u.Scheme)) {
		return New(ErrCodeInvalidInput, "endpoint scheme %q not supported (want one of %s)",
			u.Scheme, strings.Join(schemes, ", "))
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "endpoint URL has no host")
	}
	return nil
}
