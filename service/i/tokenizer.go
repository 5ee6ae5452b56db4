package i

import (
	"time"
)

// Tokenizer defines methods for generating and decoding operator tokens.
type Tokenizer interface {
	// Generate creates a token with the given claims, valid for expTime.
	Generate(claims map[string]any, expTime time.Duration) (string, error)

	// Decode validates and parses a token, returning its claims.
	// Tokens from another issuer are rejected.
	Decode(token string) (map[string]any, error)
}
