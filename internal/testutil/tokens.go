// Package testutil provides deterministic substitutes for the engine's
// environment-facing pieces: session tokens, and a scriptable in-memory
// stand-in for the observed process.
package testutil

// FixedTokens generates the same session token every time.
//
// This enables deterministic test execution and golden snapshot comparison:
// the same scenario with the same FixedTokens produces byte-identical
// traces.
//
// Thread-safety: FixedTokens is stateless and safe for concurrent use.
type FixedTokens struct {
	token string
}

// NewFixedTokens creates a fixed session-token generator. If token is
// empty, Generate returns "test-session-default".
func NewFixedTokens(token string) *FixedTokens {
	if token == "" {
		token = "test-session-default"
	}
	return &FixedTokens{token: token}
}

// Generate returns the fixed token.
//
// Implements engine.TokenGenerator.
func (g *FixedTokens) Generate() string {
	return g.token
}
