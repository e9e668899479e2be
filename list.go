package astisi

import "fmt"

// MaxListRecords caps the number of records decoded from one list, bounding
// work on adversarial input. A section payload is at most 4093 bytes and a
// record at least 2, so a legal list never gets close.
const MaxListRecords = 2048

// DecodeDescriptors decodes records in arrival order until the current scope
// of c is exhausted. Order is observable and preserved.
//
// ctx is updated in place whenever a private data specifier record decodes, so
// subsequent records of the same list resolve under it; the specifier never
// outlives the list.
//
// On an unrecoverable error mid-record the records decoded so far are returned
// together with the error, never discarded. Residue too short to host a record
// header is surfaced the same way, as ErrTruncatedPayload.
func (r *DescriptorRegistry) DecodeDescriptors(c *BitCursor, ctx *DescriptorContext) (ds []Descriptor, err error) {
	defer ctx.Reset()
	for c.CanRead(16) {
		if len(ds) >= MaxListRecords {
			err = fmt.Errorf("astisi: more than %d records in one list: %w", MaxListRecords, ErrMalformedLength)
			return
		}
		var d Descriptor
		if d, err = r.decodeDescriptor(c, ctx); err != nil {
			err = fmt.Errorf("astisi: decoding descriptor list failed: %w", err)
			return
		}
		ds = append(ds, d)
		if pds, ok := d.(*DescriptorPrivateDataSpecifier); ok {
			ctx.PrivateDataSpecifier = pds.Specifier
		}
	}
	if err = c.Err(); err != nil {
		return
	}
	if rem := c.RemainingBits(); rem > 0 {
		c.SetError(ErrTruncatedPayload)
		err = fmt.Errorf("astisi: %d bits left over after last record: %w", rem, ErrTruncatedPayload)
	}
	return
}

// DecodeDescriptorsWithLength decodes a list preceded by the conventional
// 4 reserved bits and 12-bit byte length, as carried in PMT and SDT loops.
func (r *DescriptorRegistry) DecodeDescriptorsWithLength(c *BitCursor, ctx *DescriptorContext) (ds []Descriptor, err error) {
	c.SkipBits(4)
	c.PushReadScope(12)
	if err = c.Err(); err != nil {
		err = fmt.Errorf("astisi: reading descriptors length failed: %w", err)
		return
	}
	if ds, err = r.DecodeDescriptors(c, ctx); err != nil {
		return
	}
	c.PopReadScope()
	err = c.Err()
	return
}

// EncodeDescriptors writes ds to c in order. Encoding stops at the first
// record that cannot be represented; the failing record leaves no bytes
// behind, and the error reports which record overflowed so the caller can
// split it.
func (r *DescriptorRegistry) EncodeDescriptors(c *BitCursor, ds []Descriptor) error {
	for _, d := range ds {
		if err := r.encodeDescriptor(c, d); err != nil {
			return err
		}
	}
	return c.Err()
}

// EncodeDescriptorsWithLength writes the 4 reserved bits as ones, a deferred
// 12-bit byte length, then the records; the length is patched once they are
// written.
func (r *DescriptorRegistry) EncodeDescriptorsWithLength(c *BitCursor, ds []Descriptor) error {
	c.WriteBits(0xf, 4)
	c.PushWriteScope(12)
	if err := r.EncodeDescriptors(c, ds); err != nil {
		return err
	}
	if err := c.PopWriteScope(); err != nil {
		return fmt.Errorf("astisi: descriptor list: %w", err)
	}
	return c.Err()
}

// EncodeDescriptorsBytes encodes ds into a fresh byte slice, using a pooled
// scratch buffer for the wire work.
func (r *DescriptorRegistry) EncodeDescriptorsBytes(ds []Descriptor) ([]byte, error) {
	scratch := poolOfScratch.get(maxEncodedDescriptorsSize(ds))
	defer poolOfScratch.put(scratch)
	c := NewBitCursor(scratch.s)
	if err := r.EncodeDescriptors(c, ds); err != nil {
		return nil, err
	}
	o := make([]byte, len(c.Written()))
	copy(o, c.Written())
	return o, nil
}

// maxEncodedDescriptorsSize returns an upper bound on the wire size of ds.
func maxEncodedDescriptorsSize(ds []Descriptor) int {
	return len(ds) * (MaxDescriptorPayload + 3)
}

// MergeDescriptor adds d to ds honoring the merge behavior of its codec: by
// default a repeated descriptor replaces the previous occurrence, codecs may
// instead ask to be appended or combined. Descriptors without a registered
// codec append.
func (r *DescriptorRegistry) MergeDescriptor(ds []Descriptor, d Descriptor, ctx *DescriptorContext) []Descriptor {
	var extTag uint8
	isExt := isExtensionRecord(d)
	if isExt {
		if ed, ok := d.(ExtensionDescriptor); ok {
			extTag = ed.ExtensionTag()
		}
	}
	_, codec := r.resolve(d.Tag(), extTag, isExt, ctx)
	if codec == nil || codec.Merge == MergeAppend {
		return append(ds, d)
	}
	for idx, prev := range ds {
		if prev.Tag() != d.Tag() || prev.XMLName() != d.XMLName() {
			continue
		}
		if codec.Merge == MergeCombine && codec.MergeFunc != nil {
			ds[idx] = codec.MergeFunc(prev, d)
		} else {
			ds[idx] = d
		}
		return ds
	}
	return append(ds, d)
}
