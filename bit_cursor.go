package astisi

// MaxScopeDepth is the maximum nesting of length-bounded scopes. Signaling
// structures never nest anywhere near this deep, so hitting the limit means
// the input is adversarial or the caller has a bug.
const MaxScopeDepth = 32

type writeScope struct {
	fieldPos int // bit offset of the reserved length field
	width    int // width of the length field in bits
	startPos int // write position right after the length field
}

// BitCursor is a bit-granular read/write cursor over a caller-owned byte
// region. It never owns nor grows the region.
//
// All operations are latching: the first out-of-bounds access sets a sticky
// error, after which reads return zero values and writes are no-ops. A decode
// routine can therefore run to completion and check Err() once at the end.
//
// Multi-field bytes are packed MSB-first, matching the wire convention of
// MPEG/DVB signaling.
type BitCursor struct {
	buf        []byte
	readPos    int // in bits
	readLimit  int // in bits, bound of the innermost read scope
	writePos   int // in bits
	err        error
	readScopes []int // enclosing read limits
	wScopes    []writeScope
}

// NewBitCursor creates a cursor over b. The cursor reads from the start of b
// and writes from the start of b; reading back what was just written is legal
// since both positions move independently.
func NewBitCursor(b []byte) *BitCursor {
	return &BitCursor{
		buf:       b,
		readLimit: len(b) * 8,
	}
}

// SetError latches err on the cursor. Only the first latched error is kept.
func (c *BitCursor) SetError(err error) {
	if c.err == nil {
		c.err = err
	}
}

// HasError reports whether an error has been latched.
func (c *BitCursor) HasError() bool { return c.err != nil }

// Err returns the first latched error, if any.
func (c *BitCursor) Err() error { return c.err }

// CanRead reports whether n more bits fit within the current scope.
func (c *BitCursor) CanRead(n int) bool {
	return c.err == nil && c.readPos+n <= c.readLimit
}

// RemainingBits returns the number of readable bits left in the current scope.
func (c *BitCursor) RemainingBits() int {
	if c.err != nil || c.readPos > c.readLimit {
		return 0
	}
	return c.readLimit - c.readPos
}

// ReadBits reads n bits (n <= 64) MSB-first and returns them right-aligned.
// Reading past the current scope latches ErrTruncatedPayload and returns 0.
func (c *BitCursor) ReadBits(n int) uint64 {
	if c.err != nil || n == 0 {
		return 0
	}
	if n < 0 || n > 64 || c.readPos+n > c.readLimit {
		c.SetError(ErrTruncatedPayload)
		return 0
	}
	var v uint64
	pos := c.readPos
	// Fast byte-aligned path
	for n >= 8 && pos&7 == 0 {
		v = v<<8 | uint64(c.buf[pos>>3])
		pos += 8
		n -= 8
	}
	for i := 0; i < n; i++ {
		v = v<<1 | uint64(c.buf[pos>>3]>>(7-uint(pos&7))&1)
		pos++
	}
	c.readPos = pos
	return v
}

// ReadBool reads a single bit.
func (c *BitCursor) ReadBool() bool { return c.ReadBits(1) != 0 }

// ReadUint8 reads 8 bits.
func (c *BitCursor) ReadUint8() uint8 { return uint8(c.ReadBits(8)) }

// ReadUint16 reads 16 bits.
func (c *BitCursor) ReadUint16() uint16 { return uint16(c.ReadBits(16)) }

// ReadUint32 reads 32 bits.
func (c *BitCursor) ReadUint32() uint32 { return uint32(c.ReadBits(32)) }

// ReadBytes reads n whole bytes into a fresh slice. The cursor must be
// byte-aligned.
func (c *BitCursor) ReadBytes(n int) []byte {
	bs := c.ReadBytesNoCopy(n)
	if bs == nil {
		return nil
	}
	o := make([]byte, len(bs))
	copy(o, bs)
	return o
}

// ReadBytesNoCopy is like ReadBytes but returns a view into the underlying
// region. The view must not be retained past the lifetime of the caller's
// buffer.
func (c *BitCursor) ReadBytesNoCopy(n int) []byte {
	if c.err != nil || n == 0 {
		return nil
	}
	if n < 0 || c.readPos&7 != 0 || c.readPos+n*8 > c.readLimit {
		c.SetError(ErrTruncatedPayload)
		return nil
	}
	start := c.readPos >> 3
	c.readPos += n * 8
	return c.buf[start : start+n]
}

// ReadRemaining reads all bytes left in the current scope into a fresh slice.
func (c *BitCursor) ReadRemaining() []byte {
	n := c.RemainingBits() / 8
	if n == 0 {
		return nil
	}
	return c.ReadBytes(n)
}

// SkipBits advances the read position by n bits.
func (c *BitCursor) SkipBits(n int) {
	if c.err != nil {
		return
	}
	if n < 0 || c.readPos+n > c.readLimit {
		c.SetError(ErrTruncatedPayload)
		return
	}
	c.readPos += n
}

// PushReadScope consumes a length field of widthBits bits counting payload
// bytes, and bounds subsequent reads to that payload. A length crossing the
// enclosing scope latches ErrMalformedLength. Scopes nest up to MaxScopeDepth.
func (c *BitCursor) PushReadScope(widthBits int) {
	if c.err != nil {
		return
	}
	if len(c.readScopes) >= MaxScopeDepth {
		c.SetError(ErrScopeDepthExceeded)
		return
	}
	length := c.ReadBits(widthBits)
	if c.err != nil {
		return
	}
	end := c.readPos + int(length)*8
	if end > c.readLimit {
		c.SetError(ErrMalformedLength)
		return
	}
	c.readScopes = append(c.readScopes, c.readLimit)
	c.readLimit = end
}

// PopReadScope restores the enclosing scope boundary. Unread trailing bytes in
// the popped scope are skipped, a convention that treats them as padding.
func (c *BitCursor) PopReadScope() {
	if c.err != nil {
		return
	}
	if len(c.readScopes) == 0 {
		c.SetError(ErrScopeDepthExceeded)
		return
	}
	c.readPos = c.readLimit
	c.readLimit = c.readScopes[len(c.readScopes)-1]
	c.readScopes = c.readScopes[:len(c.readScopes)-1]
}

// WriteBits writes the n low bits of v MSB-first.
func (c *BitCursor) WriteBits(v uint64, n int) {
	if c.err != nil || n == 0 {
		return
	}
	if n < 0 || n > 64 || c.writePos+n > len(c.buf)*8 {
		c.SetError(ErrBufferFull)
		return
	}
	c.patchBits(c.writePos, v, n)
	c.writePos += n
}

// WriteBool writes a single bit.
func (c *BitCursor) WriteBool(v bool) {
	if v {
		c.WriteBits(1, 1)
	} else {
		c.WriteBits(0, 1)
	}
}

// WriteUint8 writes 8 bits.
func (c *BitCursor) WriteUint8(v uint8) { c.WriteBits(uint64(v), 8) }

// WriteUint16 writes 16 bits.
func (c *BitCursor) WriteUint16(v uint16) { c.WriteBits(uint64(v), 16) }

// WriteUint32 writes 32 bits.
func (c *BitCursor) WriteUint32(v uint32) { c.WriteBits(uint64(v), 32) }

// WriteBytes writes bs. The cursor must be byte-aligned.
func (c *BitCursor) WriteBytes(bs []byte) {
	if c.err != nil || len(bs) == 0 {
		return
	}
	if c.writePos&7 != 0 || c.writePos+len(bs)*8 > len(c.buf)*8 {
		c.SetError(ErrBufferFull)
		return
	}
	copy(c.buf[c.writePos>>3:], bs)
	c.writePos += len(bs) * 8
}

// PushWriteScope reserves a zeroed length field of widthBits bits whose value
// is deferred until the matching PopWriteScope.
func (c *BitCursor) PushWriteScope(widthBits int) {
	if c.err != nil {
		return
	}
	if len(c.wScopes) >= MaxScopeDepth {
		c.SetError(ErrScopeDepthExceeded)
		return
	}
	fieldPos := c.writePos
	c.WriteBits(0, widthBits)
	if c.err != nil {
		return
	}
	c.wScopes = append(c.wScopes, writeScope{
		fieldPos: fieldPos,
		width:    widthBits,
		startPos: c.writePos,
	})
}

// PopWriteScope patches the byte count emitted since the matching
// PushWriteScope into the reserved length field. It returns ErrEncodeOverflow
// without latching when the count does not fit in the field, so the caller can
// roll the record back and keep using the cursor.
func (c *BitCursor) PopWriteScope() error {
	if c.err != nil {
		return c.err
	}
	if len(c.wScopes) == 0 {
		c.SetError(ErrScopeDepthExceeded)
		return c.err
	}
	s := c.wScopes[len(c.wScopes)-1]
	c.wScopes = c.wScopes[:len(c.wScopes)-1]
	bits := c.writePos - s.startPos
	if bits&7 != 0 {
		c.SetError(ErrEncodeOverflow)
		return c.err
	}
	length := bits >> 3
	if s.width < 64 && uint64(length) >= 1<<uint(s.width) {
		return ErrEncodeOverflow
	}
	c.patchBits(s.fieldPos, uint64(length), s.width)
	return nil
}

// Written returns the bytes written so far, including any partially filled
// trailing byte.
func (c *BitCursor) Written() []byte {
	return c.buf[:(c.writePos+7)>>3]
}

// writeMark captures the write state so a failed record can be rolled back.
func (c *BitCursor) writeMark() (pos, depth int) {
	return c.writePos, len(c.wScopes)
}

// rollbackWrite rewinds the write position and scope stack to a mark. Bytes
// past the mark were only ever zero placeholders or payload that Written()
// will no longer expose.
func (c *BitCursor) rollbackWrite(pos, depth int) {
	if pos <= c.writePos {
		c.writePos = pos
	}
	if depth <= len(c.wScopes) {
		c.wScopes = c.wScopes[:depth]
	}
}

// patchBits writes the n low bits of v at bit offset pos without moving the
// write position.
func (c *BitCursor) patchBits(pos int, v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		byteIdx := pos >> 3
		mask := byte(1) << (7 - uint(pos&7))
		if v>>uint(i)&1 != 0 {
			c.buf[byteIdx] |= mask
		} else {
			c.buf[byteIdx] &^= mask
		}
		pos++
	}
}
