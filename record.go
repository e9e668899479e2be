package astisi

import (
	"errors"
	"fmt"
)

// MaxDescriptorPayload is the largest payload an 8-bit length field can
// declare; a whole record never exceeds MaxDescriptorPayload+2 bytes (+1 for
// an extension sub-tag).
const MaxDescriptorPayload = 255

// decodeDescriptor decodes one tag-length-value record from c.
//
// The payload is decoded on its own cursor carved from the record's scope, so
// a malformed payload poisons neither c nor the records that follow: the
// record degrades to a DescriptorUnknown holding the raw bytes. Only a length
// field crossing the enclosing bound is unrecoverable, since it corrupts the
// position of the next record; that latches c and is returned as an error.
func (r *DescriptorRegistry) decodeDescriptor(c *BitCursor, ctx *DescriptorContext) (Descriptor, error) {
	tag := DescriptorTag(c.ReadUint8())
	var extTag uint8
	isExt := tag == DescriptorTagExtension
	if isExt {
		extTag = c.ReadUint8()
	}
	length := int(c.ReadUint8())
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("astisi: reading descriptor header failed: %w", err)
	}
	if !c.CanRead(length * 8) {
		c.SetError(ErrMalformedLength)
		return nil, fmt.Errorf("astisi: descriptor %#02x length %d crosses its bound: %w", uint8(tag), length, ErrMalformedLength)
	}
	payload := c.ReadBytesNoCopy(length)

	id, codec := r.resolve(tag, extTag, isExt, ctx)
	if codec == nil || codec.Decode == nil {
		r.l.Debugf("astisi: no codec for %s, keeping raw bytes", id)
		return newDescriptorUnknown(tag, extTag, isExt, payload), nil
	}

	sub := NewBitCursor(payload)
	d, err := codec.Decode(sub, ctx)
	if err == nil {
		err = sub.Err()
	}
	if err != nil || d == nil {
		// Recovered at the record boundary: the length was parseable, so the
		// list can continue past the bad payload
		r.l.Warnf("astisi: decoding %s failed, keeping raw bytes: %s", id, err)
		return newDescriptorUnknown(tag, extTag, isExt, payload), nil
	}
	return d, nil
}

// encodeDescriptor writes one record to c: tag, extension sub-tag when the
// descriptor lives in the extension space, a length field patched after the
// payload is written. When the payload cannot be represented, the cursor is
// rolled back so nothing of the record is emitted, and the caller gets a typed
// error it can act on, e.g. by splitting the logical value over several
// records.
func (r *DescriptorRegistry) encodeDescriptor(c *BitCursor, d Descriptor) error {
	pos, depth := c.writeMark()
	tag := d.Tag()
	c.WriteUint8(uint8(tag))
	if isExtensionRecord(d) {
		ed, ok := d.(ExtensionDescriptor)
		if !ok {
			c.rollbackWrite(pos, depth)
			return fmt.Errorf("astisi: descriptor with tag %#02x carries no extension tag", uint8(tag))
		}
		c.WriteUint8(ed.ExtensionTag())
	}
	c.PushWriteScope(8)
	if err := d.Encode(c); err != nil {
		c.rollbackWrite(pos, depth)
		return fmt.Errorf("astisi: encoding descriptor %#02x payload failed: %w", uint8(tag), err)
	}
	if err := c.PopWriteScope(); err != nil {
		c.rollbackWrite(pos, depth)
		if errors.Is(err, ErrEncodeOverflow) {
			return fmt.Errorf("astisi: descriptor %#02x: %w", uint8(tag), ErrEncodeOverflow)
		}
		return fmt.Errorf("astisi: encoding descriptor %#02x failed: %w", uint8(tag), err)
	}
	return c.Err()
}

func isExtensionRecord(d Descriptor) bool {
	if d.Tag() != DescriptorTagExtension {
		return false
	}
	if u, ok := d.(*DescriptorUnknown); ok {
		return u.IsExtension
	}
	return true
}
