package mem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader serves typed values from flat maps. Missing addresses fail with
// a ReadError, like a live process whose object is not yet constructed.
type fakeReader struct {
	u8  map[Address]uint8
	u32 map[Address]uint32
	u64 map[Address]uint64
	str map[Address]string
}

func (f *fakeReader) U8(addr Address) (uint8, error) {
	v, ok := f.u8[addr]
	if !ok {
		return 0, &ReadError{Addr: addr}
	}
	return v, nil
}

func (f *fakeReader) U32(addr Address) (uint32, error) {
	v, ok := f.u32[addr]
	if !ok {
		return 0, &ReadError{Addr: addr}
	}
	return v, nil
}

func (f *fakeReader) U64(addr Address) (uint64, error) {
	v, ok := f.u64[addr]
	if !ok {
		return 0, &ReadError{Addr: addr}
	}
	return v, nil
}

func (f *fakeReader) Bool(addr Address) (bool, error) {
	v, err := f.U8(addr)
	return v != 0, err
}

func (f *fakeReader) CString(addr Address, max int) (string, error) {
	v, ok := f.str[addr]
	if !ok {
		return "", &ReadError{Addr: addr}
	}
	if len(v) > max {
		v = v[:max]
	}
	return v, nil
}

func TestChain_Deref(t *testing.T) {
	// 0x1000 -> 0x2000, +0x18 -> 0x2018 -> 0x3000, +0x10 = 0x3010
	r := &fakeReader{u64: map[Address]uint64{
		0x1000: 0x2000,
		0x2018: 0x3000,
	}}
	c := Chain{Base: 0x1000, Offsets: []uint64{0x18, 0x10}}

	addr, err := c.Deref(r)
	require.NoError(t, err)
	assert.Equal(t, Address(0x3010), addr)
}

func TestChain_DerefNoOffsets(t *testing.T) {
	// An empty chain is just the base address; nothing is dereferenced.
	c := Chain{Base: 0x4000}
	addr, err := c.Deref(&fakeReader{})
	require.NoError(t, err)
	assert.Equal(t, Address(0x4000), addr)
}

func TestChain_DerefFailsMidWalk(t *testing.T) {
	r := &fakeReader{u64: map[Address]uint64{0x1000: 0x2000}}
	c := Chain{Base: 0x1000, Offsets: []uint64{0x18, 0x10}}

	_, err := c.Deref(r)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRead), "failures must match the ErrRead sentinel")
}

func TestTypedChainReads(t *testing.T) {
	r := &fakeReader{
		u64: map[Address]uint64{0x1000: 0x2000},
		u32: map[Address]uint32{0x2010: 10100},
		u8:  map[Address]uint8{0x2020: 1},
		str: map[Address]string{0x2030: "GameSceneController"},
	}

	level, err := ReadU32(r, Chain{Base: 0x1000, Offsets: []uint64{0x10}})
	require.NoError(t, err)
	assert.Equal(t, uint32(10100), level)

	loading, err := ReadBool(r, Chain{Base: 0x1000, Offsets: []uint64{0x20}})
	require.NoError(t, err)
	assert.True(t, loading)

	name, err := ReadCString(r, Chain{Base: 0x1000, Offsets: []uint64{0x30}}, 128)
	require.NoError(t, err)
	assert.Equal(t, "GameSceneController", name)
}

func TestReadError_Message(t *testing.T) {
	err := &ReadError{Addr: 0xdeadbeef}
	assert.Equal(t, "memory read failed at 0xdeadbeef", err.Error())
	assert.True(t, errors.Is(err, ErrRead))
}
