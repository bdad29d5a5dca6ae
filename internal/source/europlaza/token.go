package europlaza

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mittagsplan/loader/internal/core/domain"
	"github.com/mittagsplan/loader/internal/infra/store"
)

// tokenCacheKey is the fixed metadata-store key for the cached token.
const tokenCacheKey = "europlaza/access-token"

// tokenValidity is how long a fetched token is trusted. Deliberately
// shorter than the upstream's real expiry; the TTL it reports is not
// itself trusted.
const tokenValidity = 30 * time.Minute

// Credentials for the OAuth2 client-credentials exchange.
type Credentials struct {
	Username string
	Password string
}

// tokenSource acquires a bearer token, caching it in the metadata store
// under a fixed key until its expiry passes.
type tokenSource struct {
	http  *http.Client
	meta  store.MetaStore
	log   *slog.Logger
	url   string
	creds Credentials
	now   func() time.Time
}

// Token returns a valid access token, from cache when possible.
// Failures are transient and retryable by the outer policy.
func (ts *tokenSource) Token(ctx context.Context) (string, error) {
	if cached, err := ts.meta.Get(ctx, tokenCacheKey); err == nil {
		var tok domain.CachedToken
		if json.Unmarshal([]byte(cached), &tok) == nil && tok.Valid(ts.now()) {
			ts.log.Debug("using cached access token", "expires_at", tok.ExpiresAt)
			return tok.Token, nil
		}
		// Stale or unparsable: drop it before refetching.
		if err := ts.meta.Delete(ctx, tokenCacheKey); err != nil {
			return "", fmt.Errorf("evict stale token: %w", err)
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("read token cache: %w", err)
	}

	return ts.fetch(ctx)
}

func (ts *tokenSource) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.url,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(ts.creds.Username, ts.creds.Password)

	resp, err := ts.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ts.log.Error("token endpoint returned non-success status",
			"status", resp.StatusCode, "reason", resp.Status)
		return "", fmt.Errorf("unexpected token response: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.AccessToken == "" {
		ts.log.Error("token response missing access_token field")
		return "", errors.New("unexpected token response: no access_token")
	}

	tok := domain.CachedToken{
		Token:     payload.AccessToken,
		ExpiresAt: ts.now().Add(tokenValidity),
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return "", fmt.Errorf("marshal cached token: %w", err)
	}
	if err := ts.meta.Set(ctx, tokenCacheKey, string(data)); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}

	ts.log.Debug("fetched new access token", "expires_at", tok.ExpiresAt)
	return tok.Token, nil
}
