package gmail

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/ldraney/gmail-sdk/browser"
)

// Scopes is the fixed set of OAuth scopes requested during authorization.
var Scopes = []string{
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",
	"https://www.googleapis.com/auth/gmail.modify",
	"https://mail.google.com/",
}

const (
	// RedirectURI must be registered on the OAuth client in the Google
	// Cloud console.
	RedirectURI = "http://localhost:8090"

	defaultListenAddr  = ":8090"
	defaultAuthTimeout = 5 * time.Minute

	confirmationPage = "<h1>Auth successful! You can close this tab.</h1>"
)

// AuthorizeInput controls the interactive authorization flow.
type AuthorizeInput struct {
	// Account names the mailbox being authorized; it determines the token
	// file name, not the Google account picked in the browser.
	Account string

	// SecretsDir overrides the credentials/token directory.
	SecretsDir string

	// Timeout bounds the wait for the browser redirect. Zero means the
	// default of five minutes; a negative value waits forever.
	Timeout time.Duration

	// Endpoint overrides the Google OAuth endpoints, for tests.
	Endpoint *oauth2.Endpoint

	// OpenURL launches the consent URL. Defaults to opening the system
	// browser; failures there are non-fatal since the URL is also usable
	// by hand.
	OpenURL func(url string) error

	// ListenAddr is where the loopback callback server binds.
	// Defaults to ":8090" to match RedirectURI.
	ListenAddr string
}

// Authorize runs the OAuth authorization-code flow for an account: it opens
// the consent page in a browser, catches the redirect on a loopback
// listener, exchanges the code, persists the token, and returns a ready
// client. The token file ends up at gmail-{account}.json in the secrets
// directory.
func Authorize(ctx context.Context, input AuthorizeInput) (*Client, error) {
	secretsDir := ResolveSecretsDir(input.SecretsDir)
	creds, err := LoadClientCredentials(secretsDir)
	if err != nil {
		return nil, err
	}

	endpoint := google.Endpoint
	if input.Endpoint != nil {
		endpoint = *input.Endpoint
	}
	cfg := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  RedirectURI,
		Scopes:       Scopes,
	}
	authURL := cfg.AuthCodeURL("",
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))

	listenAddr := input.ListenAddr
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}
	server, err := startCallbackServer(listenAddr)
	if err != nil {
		return nil, err
	}
	defer server.Close()

	openURL := input.OpenURL
	if openURL == nil {
		openURL = browser.OpenURL
	}
	// Best effort: the flow still works if the user pastes the URL.
	_ = openURL(authURL)

	timeout := input.Timeout
	if timeout == 0 {
		timeout = defaultAuthTimeout
	}
	code, err := server.Wait(ctx, timeout)
	if err != nil {
		return nil, err
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("gmail: exchanging authorization code: %w", err)
	}

	record := recordFromToken(token)
	if err := SaveToken(input.Account, secretsDir, record); err != nil {
		return nil, err
	}

	opts := []Option{WithSecretsDir(secretsDir)}
	if input.Endpoint != nil {
		opts = append(opts, WithTokenURL(input.Endpoint.TokenURL))
	}
	return NewClient(ctx, input.Account, opts...)
}

func recordFromToken(token *oauth2.Token) *TokenRecord {
	record := &TokenRecord{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
	}
	if !token.Expiry.IsZero() {
		record.ExpiresAt = token.Expiry.Unix()
	}
	if scope, ok := token.Extra("scope").(string); ok {
		record.Scope = scope
	}
	return record
}

// callbackServer is a one-shot HTTP listener that catches the OAuth
// redirect and hands the authorization code to the waiting flow.
type callbackServer struct {
	listener net.Listener
	server   *http.Server
	codes    chan string
}

func startCallbackServer(addr string) (*callbackServer, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("gmail: starting callback listener on %s: %w", addr, err)
	}
	cs := &callbackServer{
		listener: listener,
		codes:    make(chan string, 1),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", cs.handleRedirect)
	cs.server = &http.Server{Handler: mux}
	// Each redirect gets its own connection, so closing the listener after
	// the first code really does stop further requests.
	cs.server.SetKeepAlivesEnabled(false)
	go func() {
		_ = cs.server.Serve(listener)
	}()
	return cs, nil
}

func (cs *callbackServer) handleRedirect(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing code parameter", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, confirmationPage)
	select {
	case cs.codes <- code:
		// One code is all the flow needs; stop accepting connections.
		cs.listener.Close()
	default:
	}
}

// URL returns the address the server is actually listening on.
func (cs *callbackServer) URL() string {
	return "http://" + cs.listener.Addr().String()
}

// Wait blocks until a code arrives, the timeout elapses, or ctx is done.
// A timeout <= 0 waits indefinitely.
func (cs *callbackServer) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}
	select {
	case code := <-cs.codes:
		return code, nil
	case <-timer:
		return "", &AuthCallbackError{Reason: fmt.Sprintf("timed out after %s waiting for authorization redirect", timeout)}
	case <-ctx.Done():
		return "", &AuthCallbackError{Reason: ctx.Err().Error()}
	}
}

func (cs *callbackServer) Close() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	return cs.server.Shutdown(shutdownCtx)
}
