package gmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultBaseURL = "https://gmail.googleapis.com/gmail/v1"

// transport issues authenticated JSON requests against the REST API. It is
// the single seam every endpoint wrapper goes through: bearer header, JSON
// in/out, typed APIError on non-2xx. It never retries.
type transport struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	logger      zerolog.Logger
}

// apiErrorEnvelope is the conventional error response shape.
type apiErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (t *transport) do(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	target := t.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gmail: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("gmail: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.accessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gmail: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gmail: reading response from %s %s: %w", method, path, err)
	}

	t.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: providerMessage(respBody)}
	}
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("gmail: decoding response from %s %s: %w", method, path, err)
	}
	return nil
}

// providerMessage pulls the human-readable message out of the standard
// {error:{message}} envelope, falling back to the raw response text.
func providerMessage(body []byte) string {
	var envelope apiErrorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(body))
}

func (t *transport) get(ctx context.Context, path string, query url.Values, out any) error {
	return t.do(ctx, http.MethodGet, path, query, nil, out)
}

func (t *transport) post(ctx context.Context, path string, body any, out any) error {
	return t.do(ctx, http.MethodPost, path, nil, body, out)
}

func (t *transport) patch(ctx context.Context, path string, body any, out any) error {
	return t.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (t *transport) put(ctx context.Context, path string, body any, out any) error {
	return t.do(ctx, http.MethodPut, path, nil, body, out)
}

func (t *transport) delete(ctx context.Context, path string) error {
	return t.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
