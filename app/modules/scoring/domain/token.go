package scoringdomain

import (
	"crypto/rand"
	"strings"

	"github.com/google/uuid"
)

// tokenAlphabet is the 62-symbol alphabet access tokens are drawn from.
const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// AccessTokenLength is the fixed token length. The token is the entire
// authorization mechanism for self-service scoring, so it must be
// unguessable; 32 chars over 62 symbols is ~190 bits.
const AccessTokenLength = 32

// NewAccessToken generates a fresh team access token.
func NewAccessToken() string {
	buf := make([]byte, AccessTokenLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	var sb strings.Builder
	sb.Grow(AccessTokenLength)
	for _, b := range buf {
		sb.WriteByte(tokenAlphabet[int(b)%len(tokenAlphabet)])
	}
	return sb.String()
}

// NewID generates a prefixed opaque identifier: the prefix plus the first
// 20 hex chars of a v4 UUID.
func NewID(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + raw[:20]
}
