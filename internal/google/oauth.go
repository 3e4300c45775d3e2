package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// Credentials holds the process-wide OAuth client configuration shared by
// all accounts. It is populated from the persisted settings.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectPort int
}

// RedirectURL returns the loopback redirect URL for the configured port.
func (c Credentials) RedirectURL() string {
	return fmt.Sprintf("http://127.0.0.1:%d/", c.RedirectPort)
}

// OAuthConfig returns the OAuth2 configuration for all Google services.
func OAuthConfig(creds Credentials) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  creds.RedirectURL(),
		Scopes:       RequiredScopes,
	}
}

// AuthURL builds the authorization request URL for the user to visit.
// Offline access is requested so the exchanged token carries a refresh token.
func AuthURL(creds Credentials) (string, error) {
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return "", fmt.Errorf("client credentials are not configured")
	}
	conf := OAuthConfig(creds)
	return conf.AuthCodeURL("state", oauth2.AccessTypeOffline), nil
}

// ExchangeCode exchanges an authorization code for a token pair and returns
// it serialized as JSON, suitable for storing in the account settings.
// Callers must treat an error as "re-authorization required".
func ExchangeCode(ctx context.Context, creds Credentials, code string) (string, error) {
	conf := OAuthConfig(creds)

	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange auth code: %w", err)
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return "", fmt.Errorf("failed to serialize token: %w", err)
	}

	return string(data), nil
}

// ClientFromToken reconstructs an authenticated HTTP client from stored
// credentials and a serialized token. It returns an error only when the
// token is empty or absent; a token that fails to parse still yields a
// usable client, just an unauthenticated one. Callers relying on
// authenticated calls should run ValidateTokenScopes first.
func ClientFromToken(ctx context.Context, creds Credentials, serialized string) (*http.Client, error) {
	if strings.TrimSpace(serialized) == "" {
		return nil, fmt.Errorf("no token stored for this account")
	}

	tok := &oauth2.Token{}
	if err := json.Unmarshal([]byte(serialized), tok); err != nil {
		// Unparsable token: hand back an anonymous client rather than nil.
		return oauth2.NewClient(ctx, nil), nil
	}

	conf := OAuthConfig(creds)
	return conf.Client(ctx, tok), nil
}

// ValidateTokenScopes fetches token introspection info for the client's
// token and reports whether every required scope is present.
func ValidateTokenScopes(ctx context.Context, client *http.Client) (bool, error) {
	svc, err := goauth2.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return false, fmt.Errorf("failed to create oauth2 service: %w", err)
	}

	info, err := svc.Tokeninfo().Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("failed to fetch token info: %w", err)
	}

	return hasAllScopes(info.Scope), nil
}

// hasAllScopes reports whether the space-separated granted scope string
// covers every required scope.
func hasAllScopes(granted string) bool {
	have := make(map[string]bool)
	for _, s := range strings.Fields(granted) {
		have[s] = true
	}
	for _, required := range RequiredScopes {
		if !have[required] {
			return false
		}
	}
	return true
}
