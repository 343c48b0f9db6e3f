package gmail

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultHTTPTimeout = 60 * time.Second

// Client is an authenticated Gmail API client scoped to one account. All
// calls act on the authorized mailbox (the API's "me" user).
type Client struct {
	account    string
	secretsDir string
	transport  *transport
}

// Option configures a Client during construction.
type Option func(*clientOptions)

type clientOptions struct {
	secretsDir  string
	accessToken string
	baseURL     string
	tokenURL    string
	httpClient  *http.Client
	logger      zerolog.Logger
}

// WithSecretsDir overrides where credentials and token files are read from.
func WithSecretsDir(dir string) Option {
	return func(o *clientOptions) { o.secretsDir = dir }
}

// WithAccessToken supplies a token directly, skipping the stored-token
// lookup and refresh entirely. Useful for tests and short-lived scripts.
func WithAccessToken(token string) Option {
	return func(o *clientOptions) { o.accessToken = token }
}

// WithBaseURL points the client at a different API host.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) { o.baseURL = u }
}

// WithTokenURL overrides the OAuth token endpoint used for refresh.
func WithTokenURL(u string) Option {
	return func(o *clientOptions) { o.tokenURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithLogger enables debug logging of API calls.
func WithLogger(l zerolog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// NewClient builds a client for account. Unless WithAccessToken is given it
// loads the stored token for the account, refreshing and persisting it first
// when it is close to expiry. A missing token file yields NotAuthorizedError.
func NewClient(ctx context.Context, account string, opts ...Option) (*Client, error) {
	o := clientOptions{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	secretsDir := ResolveSecretsDir(o.secretsDir)

	accessToken := o.accessToken
	if accessToken == "" {
		tm := newTokenManager(secretsDir)
		tm.tokenURL = o.tokenURL
		token, err := tm.ValidAccessToken(ctx, account)
		if err != nil {
			return nil, err
		}
		accessToken = token
	}

	baseURL := o.baseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}

	return &Client{
		account:    account,
		secretsDir: secretsDir,
		transport: &transport{
			baseURL:     baseURL,
			accessToken: accessToken,
			httpClient:  httpClient,
			logger:      o.logger,
		},
	}, nil
}

// Account returns the account identifier the client was built for.
func (c *Client) Account() string {
	return c.account
}
