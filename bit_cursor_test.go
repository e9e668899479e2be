package astisi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitCursorRead(t *testing.T) {
	c := NewBitCursor([]byte{0xb2, 0x5a, 0x01, 0x02, 0x03})
	assert.Equal(t, uint64(0x5), c.ReadBits(3))
	assert.Equal(t, uint64(0x12), c.ReadBits(5))
	assert.False(t, c.ReadBool())
	assert.Equal(t, uint64(0x5a), c.ReadBits(7))
	assert.Equal(t, []byte{0x01, 0x02}, c.ReadBytes(2))
	assert.Equal(t, uint8(0x03), c.ReadUint8())
	assert.NoError(t, c.Err())
	assert.False(t, c.CanRead(1))
}

func TestBitCursorReadUnaligned(t *testing.T) {
	// Byte reads require byte alignment
	c := NewBitCursor([]byte{0xff, 0xff})
	c.SkipBits(3)
	assert.Nil(t, c.ReadBytes(1))
	assert.ErrorIs(t, c.Err(), ErrTruncatedPayload)
}

func TestBitCursorStickyError(t *testing.T) {
	buf := []byte{0xab, 0xcd}
	c := NewBitCursor(buf)
	assert.Equal(t, uint8(0xab), c.ReadUint8())
	assert.Equal(t, uint32(0), c.ReadUint32())
	assert.ErrorIs(t, c.Err(), ErrTruncatedPayload)

	// All subsequent reads return zero values and writes are no-ops
	assert.Equal(t, uint8(0), c.ReadUint8())
	assert.False(t, c.ReadBool())
	assert.Nil(t, c.ReadBytes(1))
	c.WriteUint8(0x42)
	assert.Equal(t, []byte{0xab, 0xcd}, buf)
}

func TestBitCursorWrite(t *testing.T) {
	buf := make([]byte, 4)
	c := NewBitCursor(buf)
	c.WriteBits(0x5, 3)
	c.WriteBits(0x12, 5)
	c.WriteBool(false)
	c.WriteBits(0x5a, 7)
	c.WriteBytes([]byte{0x01, 0x02})
	assert.NoError(t, c.Err())
	assert.Equal(t, []byte{0xb2, 0x5a, 0x01, 0x02}, c.Written())

	// Past the end of the region
	c.WriteUint8(0xff)
	assert.ErrorIs(t, c.Err(), ErrBufferFull)
}

func TestBitCursorReadScope(t *testing.T) {
	// Outer scope of 3 bytes holding an inner scope of 1 byte
	c := NewBitCursor([]byte{0x03, 0x01, 0xaa, 0xbb, 0xcc})
	c.PushReadScope(8)
	c.PushReadScope(8)
	assert.Equal(t, uint8(0xaa), c.ReadUint8())
	assert.False(t, c.CanRead(8))
	c.PopReadScope()
	assert.Equal(t, uint8(0xbb), c.ReadUint8())
	c.PopReadScope()
	// Popping restores the enclosing bound
	assert.Equal(t, uint8(0xcc), c.ReadUint8())
	assert.NoError(t, c.Err())
}

func TestBitCursorReadScopeSkipsPadding(t *testing.T) {
	c := NewBitCursor([]byte{0x02, 0xaa, 0xbb, 0xcc})
	c.PushReadScope(8)
	assert.Equal(t, uint8(0xaa), c.ReadUint8())
	// 0xbb left unread, treated as padding
	c.PopReadScope()
	assert.Equal(t, uint8(0xcc), c.ReadUint8())
	assert.NoError(t, c.Err())
}

func TestBitCursorReadScopeMalformedLength(t *testing.T) {
	c := NewBitCursor([]byte{0x05, 0xaa})
	c.PushReadScope(8)
	assert.ErrorIs(t, c.Err(), ErrMalformedLength)
	assert.Equal(t, uint8(0), c.ReadUint8())
}

func TestBitCursorReadScopeDepth(t *testing.T) {
	// Each byte holds the number of bytes remaining after it, so every push
	// bounds exactly to the end of the buffer
	buf := make([]byte, MaxScopeDepth+8)
	for i := range buf {
		buf[i] = byte(len(buf) - 1 - i)
	}
	c := NewBitCursor(buf)
	for i := 0; i < MaxScopeDepth; i++ {
		c.PushReadScope(8)
		require.NoError(t, c.Err())
	}
	c.PushReadScope(8)
	assert.ErrorIs(t, c.Err(), ErrScopeDepthExceeded)
}

func TestBitCursorWriteScope(t *testing.T) {
	buf := make([]byte, 16)
	c := NewBitCursor(buf)
	c.WriteUint8(0x41)
	c.PushWriteScope(8)
	c.WriteBytes([]byte{0x01, 0x02, 0x03})
	assert.NoError(t, c.PopWriteScope())
	assert.Equal(t, []byte{0x41, 0x03, 0x01, 0x02, 0x03}, c.Written())
}

func TestBitCursorWriteScopeNested(t *testing.T) {
	buf := make([]byte, 16)
	c := NewBitCursor(buf)
	c.WriteBits(0xf, 4)
	c.PushWriteScope(12)
	c.WriteUint8(0xaa)
	c.PushWriteScope(8)
	c.WriteBytes([]byte{0xbb, 0xcc})
	assert.NoError(t, c.PopWriteScope())
	assert.NoError(t, c.PopWriteScope())
	assert.Equal(t, []byte{0xf0, 0x04, 0xaa, 0x02, 0xbb, 0xcc}, c.Written())
}

func TestBitCursorWriteScopeOverflow(t *testing.T) {
	buf := make([]byte, 512)
	c := NewBitCursor(buf)
	c.PushWriteScope(8)
	c.WriteBytes(make([]byte, 256))
	assert.ErrorIs(t, c.PopWriteScope(), ErrEncodeOverflow)
	// The overflow does not latch the cursor
	assert.NoError(t, c.Err())
}

func TestBitCursorWriteReadRoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	c := NewBitCursor(buf)
	c.WriteBits(0x3, 2)
	c.WriteBits(100, 22)
	c.WriteUint32(0xdeadbeef)
	require.NoError(t, c.Err())
	assert.Equal(t, uint64(0x3), c.ReadBits(2))
	assert.Equal(t, uint64(100), c.ReadBits(22))
	assert.Equal(t, uint32(0xdeadbeef), c.ReadUint32())
	assert.NoError(t, c.Err())
}
