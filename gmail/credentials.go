package gmail

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const credentialsFileName = "credentials.json"

// EnvSecretsDir selects the secrets directory when the caller does not
// supply one explicitly.
const EnvSecretsDir = "GMAIL_SECRETS_DIR"

// ClientCredentials is the OAuth client id/secret pair issued by the
// provider. Loaded once from credentials.json and immutable afterwards.
type ClientCredentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// ResolveSecretsDir returns dir when non-empty, else the EnvSecretsDir
// override, else ~/secrets/google-oauth. Constructors call it once; nothing
// deeper in the library reads the environment.
func ResolveSecretsDir(dir string) string {
	if dir != "" {
		return dir
	}
	if env := os.Getenv(EnvSecretsDir); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "secrets", "google-oauth")
	}
	return filepath.Join(home, "secrets", "google-oauth")
}

// LoadClientCredentials reads credentials.json under secretsDir. The file
// must carry an "installed" or "web" application config.
func LoadClientCredentials(secretsDir string) (ClientCredentials, error) {
	path := filepath.Join(secretsDir, credentialsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return ClientCredentials{}, &ConfigurationError{Path: path, Message: err.Error()}
	}

	var file struct {
		Installed *ClientCredentials `json:"installed"`
		Web       *ClientCredentials `json:"web"`
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return ClientCredentials{}, &ConfigurationError{Path: path, Message: "invalid JSON: " + err.Error()}
	}

	switch {
	case file.Installed != nil:
		return *file.Installed, nil
	case file.Web != nil:
		return *file.Web, nil
	default:
		return ClientCredentials{}, &ConfigurationError{
			Path:    path,
			Message: `must contain an "installed" or "web" application config`,
		}
	}
}

// TokenRecord is one account's persisted OAuth state. ExpiresAt is the
// absolute wall-clock expiry in epoch seconds, computed at exchange or
// refresh time from the provider's relative expires_in. Provider fields this
// library does not model are carried through load, refresh and save
// unchanged.
type TokenRecord struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string
	ExpiresAt    int64

	extra map[string]json.RawMessage
}

// UnmarshalJSON keeps unknown provider fields alongside the typed ones.
func (r *TokenRecord) UnmarshalJSON(data []byte) error {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	take := func(key string, dst any) error {
		value, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		return json.Unmarshal(value, dst)
	}

	if err := take("access_token", &r.AccessToken); err != nil {
		return err
	}
	if err := take("refresh_token", &r.RefreshToken); err != nil {
		return err
	}
	if err := take("token_type", &r.TokenType); err != nil {
		return err
	}
	if err := take("scope", &r.Scope); err != nil {
		return err
	}
	// Other tooling writes expires_at as fractional seconds.
	var expiresAt float64
	if err := take("expires_at", &expiresAt); err != nil {
		return err
	}
	r.ExpiresAt = int64(expiresAt)

	if len(raw) > 0 {
		r.extra = raw
	}
	return nil
}

// MarshalJSON re-emits the unknown provider fields next to the typed ones.
func (r TokenRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.extra)+5)
	for key, value := range r.extra {
		out[key] = value
	}
	out["access_token"] = r.AccessToken
	out["refresh_token"] = r.RefreshToken
	out["expires_at"] = r.ExpiresAt
	if r.TokenType != "" {
		out["token_type"] = r.TokenType
	}
	if r.Scope != "" {
		out["scope"] = r.Scope
	}
	return json.Marshal(out)
}

func tokenPath(account string, secretsDir string) string {
	return filepath.Join(secretsDir, fmt.Sprintf("gmail-%s.json", account))
}

// LoadToken reads the stored token for account. A missing file is not an
// error: the result is (nil, nil).
func LoadToken(account string, secretsDir string) (*TokenRecord, error) {
	path := tokenPath(account, secretsDir)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gmail: reading token file %s: %w", path, err)
	}

	record := &TokenRecord{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("gmail: parsing token file %s: %w", path, err)
	}
	return record, nil
}

// SaveToken writes record under secretsDir with owner-only permissions,
// replacing any prior content. The write goes through a temp file and a
// rename so a concurrent reader never observes a partial file.
func SaveToken(account string, secretsDir string, record *TokenRecord) error {
	path := tokenPath(account, secretsDir)
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("gmail: encoding token for account %q: %w", account, err)
	}

	tmp, err := os.CreateTemp(secretsDir, ".gmail-token-*")
	if err != nil {
		return fmt.Errorf("gmail: creating token file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("gmail: restricting token file permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("gmail: writing token file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("gmail: writing token file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("gmail: replacing token file %s: %w", path, err)
	}
	return nil
}
