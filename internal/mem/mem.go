package mem

import (
	"context"
	"errors"
	"fmt"
)

// Address is a raw address in the observed process.
type Address uint64

// ErrRead is the sentinel for all per-tick read failures. Callers match it
// with errors.Is; no additional detail crosses this boundary.
var ErrRead = errors.New("memory read failed")

// ReadError wraps a failed read with the address it targeted.
// The address is diagnostic only - the engine never branches on it.
type ReadError struct {
	Addr Address
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("memory read failed at 0x%x", uint64(e.Addr))
}

func (e *ReadError) Unwrap() error { return ErrRead }

// Reader performs typed reads against the observed process. Implementations
// are supplied by the host environment (a live process handle) or by tests
// (scripted samples). All reads are read-only; this system never writes to
// observed memory.
type Reader interface {
	U8(addr Address) (uint8, error)
	U32(addr Address) (uint32, error)
	U64(addr Address) (uint64, error)
	Bool(addr Address) (bool, error)
	// CString reads a NUL-terminated string of at most max bytes.
	CString(addr Address, max int) (string, error)
}

// Chain is an opaque pointer-chase recipe: start at Base, and for each
// offset dereference the current address and add the offset. The final
// address is where the value lives.
//
// Chains are produced once per session by a Resolver and reused every tick.
type Chain struct {
	Base    Address
	Offsets []uint64
}

// IsZero reports whether the chain was never resolved (optional quantity
// the game does not expose).
func (c Chain) IsZero() bool {
	return c.Base == 0 && len(c.Offsets) == 0
}

// Deref walks the chain and returns the address of the value.
func (c Chain) Deref(r Reader) (Address, error) {
	cur := c.Base
	for _, off := range c.Offsets {
		ptr, err := r.U64(cur)
		if err != nil {
			return 0, err
		}
		cur = Address(ptr) + Address(off)
	}
	return cur, nil
}

// ReadBool dereferences the chain and reads a bool at its target.
func ReadBool(r Reader, c Chain) (bool, error) {
	addr, err := c.Deref(r)
	if err != nil {
		return false, err
	}
	return r.Bool(addr)
}

// ReadU8 dereferences the chain and reads a byte at its target.
func ReadU8(r Reader, c Chain) (uint8, error) {
	addr, err := c.Deref(r)
	if err != nil {
		return 0, err
	}
	return r.U8(addr)
}

// ReadU32 dereferences the chain and reads a u32 at its target.
func ReadU32(r Reader, c Chain) (uint32, error) {
	addr, err := c.Deref(r)
	if err != nil {
		return 0, err
	}
	return r.U32(addr)
}

// ReadU64 dereferences the chain and reads a u64 at its target.
func ReadU64(r Reader, c Chain) (uint64, error) {
	addr, err := c.Deref(r)
	if err != nil {
		return 0, err
	}
	return r.U64(addr)
}

// ReadCString dereferences the chain and reads a short string at its target.
func ReadCString(r Reader, c Chain, max int) (string, error) {
	addr, err := c.Deref(r)
	if err != nil {
		return "", err
	}
	return r.CString(addr, max)
}

// Resolver turns symbolic field paths (class metadata, static tables,
// nested field chains) into the resolved Layout for one attach session.
// Resolution is expected to retry internally until the runtime structures
// exist; the engine calls it exactly once per session.
type Resolver interface {
	Resolve(ctx context.Context, r Reader) (*Layout, error)
}
