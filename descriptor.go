package astisi

import (
	"encoding/hex"
	"fmt"
)

type DescriptorTag uint8

// Descriptor tags
// Chapter: 6.1 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
const (
	DescriptorTagRegistration         DescriptorTag = 0x05
	DescriptorTagDataStreamAlignment  DescriptorTag = 0x06
	DescriptorTagISO639Language       DescriptorTag = 0x0a
	DescriptorTagMaximumBitrate       DescriptorTag = 0x0e
	DescriptorTagPrivateDataIndicator DescriptorTag = 0x0f
	DescriptorTagNetworkName          DescriptorTag = 0x40
	DescriptorTagService              DescriptorTag = 0x48
	DescriptorTagShortEvent           DescriptorTag = 0x4d
	DescriptorTagExtendedEvent        DescriptorTag = 0x4e
	DescriptorTagStreamIdentifier     DescriptorTag = 0x52
	DescriptorTagContent              DescriptorTag = 0x54
	DescriptorTagParentalRating       DescriptorTag = 0x55
	DescriptorTagLocalTimeOffset      DescriptorTag = 0x58
	DescriptorTagPrivateDataSpecifier DescriptorTag = 0x5f
	DescriptorTagExtension            DescriptorTag = 0x7f
	DescriptorTagLogicalChannel       DescriptorTag = 0x83
)

// IsUserDefined reports whether the tag sits in the user-defined range, where
// its meaning depends on the private data specifier in effect.
func (t DescriptorTag) IsUserDefined() bool {
	return t >= 0x80 && t != 0xff
}

// Descriptor is the value decoded from one tag-length-value record. Encode and
// BuildXML operate on the payload only; the record codec owns the tag, the
// optional extension sub-tag and the length field.
//
// Implementations must never read or write outside the cursor they are given
// and must treat every numeric field as attacker-controlled.
type Descriptor interface {
	// Tag returns the raw wire tag.
	Tag() DescriptorTag
	// XMLName returns the canonical XML element name. Encode always emits the
	// canonical name; legacy names are recognized on parse only.
	XMLName() string
	// Encode writes the payload to a cursor whose length field is patched by
	// the caller.
	Encode(c *BitCursor) error
	// BuildXML fills the element created for this descriptor.
	BuildXML(e *XMLElement) error
}

// ExtensionDescriptor is implemented by descriptors carried inside the
// reserved extension tag.
type ExtensionDescriptor interface {
	Descriptor
	ExtensionTag() uint8
}

// DescriptorUnknown preserves a syntactically valid record no codec is
// registered for. It is a first-class outcome, not an error, and re-encodes
// byte-for-byte.
type DescriptorUnknown struct {
	Data        []byte
	RawTag      DescriptorTag
	ExtTag      uint8
	IsExtension bool
}

func newDescriptorUnknown(tag DescriptorTag, extTag uint8, isExt bool, payload []byte) *DescriptorUnknown {
	d := &DescriptorUnknown{
		RawTag:      tag,
		ExtTag:      extTag,
		IsExtension: isExt,
	}
	if len(payload) > 0 {
		// Copy so the record never retains the caller's buffer
		d.Data = make([]byte, len(payload))
		copy(d.Data, payload)
	}
	return d
}

func (d *DescriptorUnknown) Tag() DescriptorTag { return d.RawTag }

func (d *DescriptorUnknown) ExtensionTag() uint8 { return d.ExtTag }

func (d *DescriptorUnknown) XMLName() string { return "unknown_descriptor" }

func (d *DescriptorUnknown) Encode(c *BitCursor) error {
	c.WriteBytes(d.Data)
	return c.Err()
}

func (d *DescriptorUnknown) BuildXML(e *XMLElement) error {
	e.SetAttrUint("tag", uint64(d.RawTag))
	if d.IsExtension {
		e.SetAttrUint("extension_tag", uint64(d.ExtTag))
	}
	e.Text = hex.EncodeToString(d.Data)
	return nil
}

func parseXMLDescriptorUnknown(e *XMLElement) (Descriptor, error) {
	d := &DescriptorUnknown{}
	tag, err := e.AttrUint("tag", 8)
	if err != nil {
		return nil, fmt.Errorf("astisi: parsing tag attribute failed: %w", err)
	}
	d.RawTag = DescriptorTag(tag)
	if _, ok := e.Attr("extension_tag"); ok {
		var ext uint64
		if ext, err = e.AttrUint("extension_tag", 8); err != nil {
			return nil, fmt.Errorf("astisi: parsing extension_tag attribute failed: %w", err)
		}
		d.ExtTag = uint8(ext)
		d.IsExtension = true
	}
	if d.Data, err = e.HexText(); err != nil {
		return nil, fmt.Errorf("astisi: parsing payload text failed: %w", err)
	}
	return d, nil
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
