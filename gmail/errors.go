package gmail

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates the OAuth client configuration file is
// missing or malformed. It is fatal to any authorization or refresh attempt.
type ConfigurationError struct {
	Path    string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("gmail: bad client configuration %s: %s", e.Path, e.Message)
}

// NotAuthorizedError indicates no token exists on disk for the requested
// account. The caller must run the authorization flow first.
type NotAuthorizedError struct {
	Account string
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("gmail: no token for account %q; run Authorize with Account: %q first", e.Account, e.Account)
}

// RefreshFailedError indicates the token endpoint rejected a refresh
// attempt, for example because the grant was revoked. The stale on-disk
// token is left untouched.
type RefreshFailedError struct {
	Account string
	Err     error
}

func (e *RefreshFailedError) Error() string {
	return fmt.Sprintf("gmail: refreshing token for account %q failed: %v", e.Account, e.Err)
}

func (e *RefreshFailedError) Unwrap() error { return e.Err }

// AuthCallbackError indicates the loopback listener completed without
// receiving a usable authorization code.
type AuthCallbackError struct {
	Reason string
}

func (e *AuthCallbackError) Error() string {
	return "gmail: authorization callback failed: " + e.Reason
}

// APIError is any non-2xx response from the REST API. Message is the
// provider's human-readable message when the response carried the
// conventional {error:{message}} envelope, else the raw response text.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gmail: API error %d: %s", e.StatusCode, e.Message)
}

// IsNotAuthorized reports whether err (or any error in its chain) says the
// account has no stored token.
func IsNotAuthorized(err error) bool {
	var target *NotAuthorizedError
	return errors.As(err, &target)
}

// AsAPIError unwraps the APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var target *APIError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
