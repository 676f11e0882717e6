package testutil

import "github.com/dvrnko/autosplit/internal/mem"

// Mem is a scriptable mem.Reader backed by typed cell maps. A read of an
// address with no cell of the requested type fails with *mem.ReadError,
// exactly like a real read of unmapped memory. Individual addresses can
// additionally be forced to fail to simulate mid-session page-outs.
//
// Mem is not safe for concurrent use; the engine's single tick loop is the
// only reader in every test.
type Mem struct {
	u8     map[mem.Address]uint8
	u32    map[mem.Address]uint32
	u64    map[mem.Address]uint64
	bools  map[mem.Address]bool
	strs   map[mem.Address]string
	failed map[mem.Address]bool
}

// NewMem creates an empty scriptable memory.
func NewMem() *Mem {
	return &Mem{
		u8:     make(map[mem.Address]uint8),
		u32:    make(map[mem.Address]uint32),
		u64:    make(map[mem.Address]uint64),
		bools:  make(map[mem.Address]bool),
		strs:   make(map[mem.Address]string),
		failed: make(map[mem.Address]bool),
	}
}

// SetU8 installs a byte cell.
func (m *Mem) SetU8(addr mem.Address, v uint8) { m.u8[addr] = v }

// SetU32 installs a u32 cell.
func (m *Mem) SetU32(addr mem.Address, v uint32) { m.u32[addr] = v }

// SetU64 installs a u64 cell.
func (m *Mem) SetU64(addr mem.Address, v uint64) { m.u64[addr] = v }

// SetBool installs a bool cell.
func (m *Mem) SetBool(addr mem.Address, v bool) { m.bools[addr] = v }

// SetString installs a string cell.
func (m *Mem) SetString(addr mem.Address, v string) { m.strs[addr] = v }

// Fail forces every read of addr to fail until Recover.
func (m *Mem) Fail(addr mem.Address) { m.failed[addr] = true }

// Recover clears a forced failure.
func (m *Mem) Recover(addr mem.Address) { delete(m.failed, addr) }

// U8 implements mem.Reader.
func (m *Mem) U8(addr mem.Address) (uint8, error) {
	if v, ok := m.u8[addr]; ok && !m.failed[addr] {
		return v, nil
	}
	return 0, &mem.ReadError{Addr: addr}
}

// U32 implements mem.Reader.
func (m *Mem) U32(addr mem.Address) (uint32, error) {
	if v, ok := m.u32[addr]; ok && !m.failed[addr] {
		return v, nil
	}
	return 0, &mem.ReadError{Addr: addr}
}

// U64 implements mem.Reader.
func (m *Mem) U64(addr mem.Address) (uint64, error) {
	if v, ok := m.u64[addr]; ok && !m.failed[addr] {
		return v, nil
	}
	return 0, &mem.ReadError{Addr: addr}
}

// Bool implements mem.Reader.
func (m *Mem) Bool(addr mem.Address) (bool, error) {
	if v, ok := m.bools[addr]; ok && !m.failed[addr] {
		return v, nil
	}
	return false, &mem.ReadError{Addr: addr}
}

// CString implements mem.Reader.
func (m *Mem) CString(addr mem.Address, max int) (string, error) {
	if v, ok := m.strs[addr]; ok && !m.failed[addr] {
		if len(v) > max {
			v = v[:max]
		}
		return v, nil
	}
	return "", &mem.ReadError{Addr: addr}
}
