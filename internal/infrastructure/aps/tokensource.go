package aps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/buildsight/hubview-go/internal/infrastructure/observability/logging"
)

// tokenExpiryMargin is subtracted from the advertised token lifetime so a
// token is never handed out moments before it expires server-side.
const tokenExpiryMargin = 60 * time.Second

// ErrNoToken is returned when a token source has nothing to hand out.
var ErrNoToken = errors.New("aps: no access token available")

// TokenSource supplies the bearer token forwarded on every APS request.
// Obtaining and refreshing tokens is this boundary's whole job; the rest of
// the system only ever forwards what it hands out.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
}

// StaticTokenSource hands out a fixed, externally supplied token.
type StaticTokenSource struct {
	token string
}

// NewStaticTokenSource wraps an externally provisioned access token.
func NewStaticTokenSource(token string) *StaticTokenSource {
	return &StaticTokenSource{token: token}
}

// AccessToken returns the wrapped token.
func (s *StaticTokenSource) AccessToken(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

// ClientCredentialsTokenSource fetches two-legged tokens from the APS
// authentication service and caches each one until shortly before expiry.
type ClientCredentialsTokenSource struct {
	baseURL      string
	clientID     string
	clientSecret string
	scopes       string
	httpClient   *http.Client
	logger       *logging.ChanneledLogger

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewClientCredentialsTokenSource creates a token source using the OAuth2
// client-credentials grant.
func NewClientCredentialsTokenSource(baseURL, clientID, clientSecret, scopes string, timeout time.Duration, logger *logging.ChanneledLogger) *ClientCredentialsTokenSource {
	return &ClientCredentialsTokenSource{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		scopes:       scopes,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessToken returns the cached token, fetching a fresh one when the cache
// is empty or about to expire.
func (s *ClientCredentialsTokenSource) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.expires) {
		return s.token, nil
	}

	if s.clientID == "" || s.clientSecret == "" {
		return "", ErrNoToken
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", s.scopes)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/authentication/v2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.clientID, s.clientSecret)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Endpoint:   "/authentication/v2/token",
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", ErrNoToken
	}

	s.token = tr.AccessToken
	s.expires = time.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - tokenExpiryMargin)
	s.logger.Auth().Info("Fetched APS access token", "expiresIn", tr.ExpiresIn)

	return s.token, nil
}
