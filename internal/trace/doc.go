// Package trace records the timer commands one session issued as an ordered
// event log with a content-addressed identity.
//
// A trace is the ground truth for regression testing: the same profile, the
// same settings, and the same sampled history must produce a byte-identical
// trace. Canonical serialization (RFC 8785: sorted keys, NFC strings, no
// floats, no nulls) makes the identity stable across Go versions and maps'
// iteration order.
package trace
