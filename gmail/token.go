package gmail

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// refreshMargin is how long before expiry a cached access token is already
// treated as stale.
const refreshMargin = 5 * time.Minute

// tokenManager decides whether a cached access token is still usable,
// refreshes it through the token endpoint when it is not, and persists the
// result.
type tokenManager struct {
	secretsDir string
	tokenURL   string // overrides the provider token endpoint, for tests
	now        func() time.Time
}

func newTokenManager(secretsDir string) *tokenManager {
	return &tokenManager{secretsDir: secretsDir, now: time.Now}
}

func (m *tokenManager) endpoint() oauth2.Endpoint {
	endpoint := google.Endpoint
	if m.tokenURL != "" {
		endpoint.TokenURL = m.tokenURL
	}
	return endpoint
}

// ValidAccessToken returns a bearer token for account. A token expiring
// within refreshMargin is refreshed first and the stored record updated;
// the prior refresh token survives when the provider omits one from the
// refresh response. Nothing is persisted when the refresh fails.
func (m *tokenManager) ValidAccessToken(ctx context.Context, account string) (string, error) {
	record, err := LoadToken(account, m.secretsDir)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", &NotAuthorizedError{Account: account}
	}
	if record.ExpiresAt >= m.now().Add(refreshMargin).Unix() {
		return record.AccessToken, nil
	}

	creds, err := LoadClientCredentials(m.secretsDir)
	if err != nil {
		return "", err
	}
	cfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     m.endpoint(),
	}

	refreshed, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: record.RefreshToken}).Token()
	if err != nil {
		return "", &RefreshFailedError{Account: account, Err: err}
	}

	record.AccessToken = refreshed.AccessToken
	if refreshed.Expiry.IsZero() {
		// No expires_in in the refresh response; assume the usual hour.
		record.ExpiresAt = m.now().Add(time.Hour).Unix()
	} else {
		record.ExpiresAt = refreshed.Expiry.Unix()
	}
	if refreshed.TokenType != "" {
		record.TokenType = refreshed.TokenType
	}
	// Providers may omit refresh_token on refresh; never lose the old one.
	if refreshed.RefreshToken != "" {
		record.RefreshToken = refreshed.RefreshToken
	}
	if err := SaveToken(account, m.secretsDir, record); err != nil {
		return "", err
	}
	return record.AccessToken, nil
}
