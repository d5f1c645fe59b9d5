package vertex

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

type countingSource struct {
	calls  int
	expiry func() time.Time
	err    error
}

func (s *countingSource) Token() (*oauth2.Token, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &oauth2.Token{AccessToken: "tok", Expiry: s.expiry()}, nil
}

func TestTokenCacheReusesUntilMargin(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	src := &countingSource{expiry: func() time.Time { return now.Add(10 * time.Minute) }}
	cache := NewTokenCache(src, time.Minute, func() time.Time { return now })

	for i := 0; i < 3; i++ {
		if _, err := cache.AccessToken(context.Background()); err != nil {
			t.Fatalf("AccessToken: %v", err)
		}
	}
	if src.calls != 1 {
		t.Fatalf("expected one fetch, got %d", src.calls)
	}

	// Inside the safety margin the token is renewed even though it has not expired.
	now = now.Add(9*time.Minute + 30*time.Second)
	if _, err := cache.AccessToken(context.Background()); err != nil {
		t.Fatalf("AccessToken: %v", err)
	}
	if src.calls != 2 {
		t.Fatalf("expected renewal inside margin, got %d fetches", src.calls)
	}
}

func TestTokenCacheInvalidate(t *testing.T) {
	now := time.Now()
	src := &countingSource{expiry: func() time.Time { return now.Add(time.Hour) }}
	cache := NewTokenCache(src, time.Minute, func() time.Time { return now })

	_, _ = cache.AccessToken(context.Background())
	cache.Invalidate()
	_, _ = cache.AccessToken(context.Background())
	if src.calls != 2 {
		t.Fatalf("expected refetch after invalidate, got %d", src.calls)
	}
}

func TestTokenCacheSourceError(t *testing.T) {
	src := &countingSource{err: errors.New("no credentials")}
	cache := NewTokenCache(src, time.Minute, nil)
	if _, err := cache.AccessToken(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
