package scoringhandlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

const (
	// cleanupThreshold is the minimum map size before a cleanup pass runs.
	cleanupThreshold = 500
	// maxIdleAge is the duration after which an idle token entry is eligible for cleanup.
	maxIdleAge = 10 * time.Minute
)

type tokenEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// TokenRateLimiter rate limits score writes per access token, pruning stale
// entries inline. Keyed by token rather than IP because a whole foursome
// shares one token, often behind one carrier NAT.
type TokenRateLimiter struct {
	tokens map[string]*tokenEntry
	mu     sync.Mutex
	r      rate.Limit
	b      int
}

// NewTokenRateLimiter creates a new TokenRateLimiter.
func NewTokenRateLimiter(r rate.Limit, b int) *TokenRateLimiter {
	return &TokenRateLimiter{
		tokens: make(map[string]*tokenEntry),
		r:      r,
		b:      b,
	}
}

// GetLimiter returns a rate.Limiter for the given token, pruning stale
// entries when the map exceeds cleanupThreshold.
func (t *TokenRateLimiter) GetLimiter(token string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.tokens) > cleanupThreshold {
		cutoff := time.Now().Add(-maxIdleAge)
		for k, e := range t.tokens {
			if e.lastSeen.Before(cutoff) {
				delete(t.tokens, k)
			}
		}
	}

	e, exists := t.tokens[token]
	if !exists {
		e = &tokenEntry{limiter: rate.NewLimiter(t.r, t.b)}
		t.tokens[token] = e
	}
	e.lastSeen = time.Now()

	return e.limiter
}

// RateLimitMiddleware returns a middleware that rate limits requests by the
// token path parameter. Requests without a token parameter pass through.
func RateLimitMiddleware(limiter *TokenRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := chi.URLParam(r, "token")
			if token != "" && !limiter.GetLimiter(token).Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
