package engine

import "github.com/google/uuid"

// TokenGenerator generates unique session tokens. Each attach session gets
// one token, carried on every log line and trace event so overlapping
// sessions in one host lifetime stay distinguishable.
// Implemented by UUIDv7Generator (production) and testutil.FixedTokens.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, making tokens
// sortable by session start time in logs and traces.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
