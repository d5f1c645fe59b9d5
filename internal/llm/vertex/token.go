package vertex

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// DefaultTokenMargin renews a token this long before it expires.
const DefaultTokenMargin = 60 * time.Second

// TokenCache hands out a bearer token and only asks the source for a new
// one when the cached token is within margin of expiry.
type TokenCache struct {
	src    oauth2.TokenSource
	margin time.Duration
	now    func() time.Time

	mu  sync.Mutex
	tok *oauth2.Token
}

func NewTokenCache(src oauth2.TokenSource, margin time.Duration, now func() time.Time) *TokenCache {
	if now == nil {
		now = time.Now
	}
	if margin < 0 {
		margin = 0
	}
	return &TokenCache{src: src, margin: margin, now: now}
}

// NewDefaultTokenCache uses Application Default Credentials.
func NewDefaultTokenCache(ctx context.Context) (*TokenCache, error) {
	src, err := google.DefaultTokenSource(ctx, cloudPlatformScope)
	if err != nil {
		return nil, fmt.Errorf("vertex credentials: %w", err)
	}
	return NewTokenCache(src, DefaultTokenMargin, nil), nil
}

// AccessToken returns a token valid for at least margin.
func (c *TokenCache) AccessToken(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fresh() {
		return c.tok.AccessToken, nil
	}
	tok, err := c.src.Token()
	if err != nil {
		return "", fmt.Errorf("vertex token: %w", err)
	}
	if tok == nil || tok.AccessToken == "" {
		return "", fmt.Errorf("vertex token: empty access token")
	}
	c.tok = tok
	return tok.AccessToken, nil
}

// Invalidate drops the cached token so the next call fetches a new one.
func (c *TokenCache) Invalidate() {
	c.mu.Lock()
	c.tok = nil
	c.mu.Unlock()
}

func (c *TokenCache) fresh() bool {
	if c.tok == nil || c.tok.AccessToken == "" {
		return false
	}
	if c.tok.Expiry.IsZero() {
		return true
	}
	return c.now().Add(c.margin).Before(c.tok.Expiry)
}
