package astisi

import (
	"encoding/hex"
	"fmt"
)

// Data stream alignments
// Page: 85 | Chapter: 2.6.11 | Link: http://ecee.colorado.edu/~ecen5653/ecen5653/papers/iso13818-1.pdf
const (
	DataStreamAligmentAudioSyncWord          = 0x1
	DataStreamAligmentVideoSliceOrAccessUnit = 0x1
	DataStreamAligmentVideoAccessUnit        = 0x2
	DataStreamAligmentVideoGOPOrSEQ          = 0x3
	DataStreamAligmentVideoSEQ               = 0x4
)

// DescriptorRegistration represents a registration descriptor
// Page: 84 | http://ecee.colorado.edu/~ecen5653/ecen5653/papers/iso13818-1.pdf
type DescriptorRegistration struct {
	AdditionalIdentificationInfo []byte
	FormatIdentifier             uint32
}

var codecDescriptorRegistration = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagRegistration)},
	XMLName:    "registration_descriptor",
	Decode:     decodeDescriptorRegistration,
	ParseXML:   parseXMLDescriptorRegistration,
	Merge:      MergeAppend,
}

func decodeDescriptorRegistration(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorRegistration{
		FormatIdentifier:             c.ReadUint32(),
		AdditionalIdentificationInfo: c.ReadRemaining(),
	}
	return d, c.Err()
}

func (d *DescriptorRegistration) Tag() DescriptorTag { return DescriptorTagRegistration }

func (d *DescriptorRegistration) XMLName() string { return "registration_descriptor" }

func (d *DescriptorRegistration) Encode(c *BitCursor) error {
	c.WriteUint32(d.FormatIdentifier)
	c.WriteBytes(d.AdditionalIdentificationInfo)
	return c.Err()
}

func (d *DescriptorRegistration) BuildXML(e *XMLElement) error {
	e.SetAttrUint("format_identifier", uint64(d.FormatIdentifier))
	e.Text = hex.EncodeToString(d.AdditionalIdentificationInfo)
	return nil
}

func parseXMLDescriptorRegistration(e *XMLElement) (Descriptor, error) {
	d := &DescriptorRegistration{}
	v, err := e.AttrUint("format_identifier", 32)
	if err != nil {
		return nil, err
	}
	d.FormatIdentifier = uint32(v)
	if d.AdditionalIdentificationInfo, err = e.HexText(); err != nil {
		return nil, err
	}
	return d, nil
}

// DescriptorDataStreamAlignment represents a data stream alignment descriptor
type DescriptorDataStreamAlignment struct {
	Type uint8
}

var codecDescriptorDataStreamAlignment = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagDataStreamAlignment)},
	XMLName:    "data_stream_alignment_descriptor",
	Decode:     decodeDescriptorDataStreamAlignment,
	ParseXML:   parseXMLDescriptorDataStreamAlignment,
}

func decodeDescriptorDataStreamAlignment(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorDataStreamAlignment{Type: c.ReadUint8()}
	return d, c.Err()
}

func (d *DescriptorDataStreamAlignment) Tag() DescriptorTag { return DescriptorTagDataStreamAlignment }

func (d *DescriptorDataStreamAlignment) XMLName() string { return "data_stream_alignment_descriptor" }

func (d *DescriptorDataStreamAlignment) Encode(c *BitCursor) error {
	c.WriteUint8(d.Type)
	return c.Err()
}

func (d *DescriptorDataStreamAlignment) BuildXML(e *XMLElement) error {
	e.SetAttrUint("alignment_type", uint64(d.Type))
	return nil
}

func parseXMLDescriptorDataStreamAlignment(e *XMLElement) (Descriptor, error) {
	v, err := e.AttrUint("alignment_type", 8)
	if err != nil {
		return nil, err
	}
	return &DescriptorDataStreamAlignment{Type: uint8(v)}, nil
}

// Audio types
// Page: 683 | https://books.google.fr/books?id=6dgWB3-rChYC&printsec=frontcover&hl=fr
const (
	AudioTypeCleanEffects             = 0x1
	AudioTypeHearingImpaired          = 0x2
	AudioTypeVisualImpairedCommentary = 0x3
)

// DescriptorISO639Language represents an ISO639 language descriptor. Chapter
// 2.6.18 of ISO/IEC 13818-1:2015 allows several language entries in one
// descriptor, hence the item slice.
type DescriptorISO639Language struct {
	Items []DescriptorISO639LanguageItem
}

// DescriptorISO639LanguageItem represents one language entry
type DescriptorISO639LanguageItem struct {
	Language  [3]byte
	AudioType uint8
}

var codecDescriptorISO639Language = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagISO639Language)},
	XMLName:    "ISO_639_language_descriptor",
	XMLAliases: []string{"iso639_language_descriptor"},
	Decode:     decodeDescriptorISO639Language,
	ParseXML:   parseXMLDescriptorISO639Language,
	Merge:      MergeCombine,
	MergeFunc:  mergeDescriptorISO639Language,
}

func decodeDescriptorISO639Language(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorISO639Language{}
	for c.CanRead(32) {
		var item DescriptorISO639LanguageItem
		copy(item.Language[:], c.ReadBytesNoCopy(3))
		item.AudioType = c.ReadUint8()
		d.Items = append(d.Items, item)
	}
	return d, c.Err()
}

func mergeDescriptorISO639Language(dst, src Descriptor) Descriptor {
	dd, ok1 := dst.(*DescriptorISO639Language)
	ds, ok2 := src.(*DescriptorISO639Language)
	if !ok1 || !ok2 {
		return src
	}
	dd.Items = append(dd.Items, ds.Items...)
	return dd
}

func (d *DescriptorISO639Language) Tag() DescriptorTag { return DescriptorTagISO639Language }

func (d *DescriptorISO639Language) XMLName() string { return "ISO_639_language_descriptor" }

func (d *DescriptorISO639Language) Encode(c *BitCursor) error {
	for _, item := range d.Items {
		c.WriteBytes(item.Language[:])
		c.WriteUint8(item.AudioType)
	}
	return c.Err()
}

func (d *DescriptorISO639Language) BuildXML(e *XMLElement) error {
	for _, item := range d.Items {
		l := e.AddChild("language")
		l.SetAttr("code", string(item.Language[:]))
		l.SetAttrUint("audio_type", uint64(item.AudioType))
	}
	return nil
}

func parseXMLDescriptorISO639Language(e *XMLElement) (Descriptor, error) {
	d := &DescriptorISO639Language{}
	for _, l := range e.Children {
		if l.Name != "language" {
			return nil, fmt.Errorf("astisi: unexpected child %q: %w", l.Name, ErrXMLShapeMismatch)
		}
		var item DescriptorISO639LanguageItem
		code, err := l.AttrString("code")
		if err != nil {
			return nil, err
		}
		if len(code) != 3 {
			return nil, fmt.Errorf("astisi: language code %q is not 3 characters: %w", code, ErrXMLShapeMismatch)
		}
		copy(item.Language[:], code)
		at, err := l.AttrUint("audio_type", 8)
		if err != nil {
			return nil, err
		}
		item.AudioType = uint8(at)
		d.Items = append(d.Items, item)
	}
	return d, nil
}

// DescriptorMaximumBitrate represents a maximum bitrate descriptor
type DescriptorMaximumBitrate struct {
	Bitrate uint32 // In bytes/second
}

var codecDescriptorMaximumBitrate = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagMaximumBitrate)},
	XMLName:    "maximum_bitrate_descriptor",
	Decode:     decodeDescriptorMaximumBitrate,
	ParseXML:   parseXMLDescriptorMaximumBitrate,
}

func decodeDescriptorMaximumBitrate(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	c.SkipBits(2)
	d := &DescriptorMaximumBitrate{Bitrate: uint32(c.ReadBits(22)) * 50}
	return d, c.Err()
}

func (d *DescriptorMaximumBitrate) Tag() DescriptorTag { return DescriptorTagMaximumBitrate }

func (d *DescriptorMaximumBitrate) XMLName() string { return "maximum_bitrate_descriptor" }

func (d *DescriptorMaximumBitrate) Encode(c *BitCursor) error {
	c.WriteBits(0x3, 2)
	c.WriteBits(uint64(d.Bitrate/50), 22)
	return c.Err()
}

func (d *DescriptorMaximumBitrate) BuildXML(e *XMLElement) error {
	e.SetAttr("maximum_bitrate", fmt.Sprintf("%d", d.Bitrate))
	return nil
}

func parseXMLDescriptorMaximumBitrate(e *XMLElement) (Descriptor, error) {
	v, err := e.AttrUint("maximum_bitrate", 32)
	if err != nil {
		return nil, err
	}
	return &DescriptorMaximumBitrate{Bitrate: uint32(v)}, nil
}

// DescriptorPrivateDataIndicator represents a private data indicator
// descriptor
type DescriptorPrivateDataIndicator struct {
	Indicator uint32
}

var codecDescriptorPrivateDataIndicator = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagPrivateDataIndicator)},
	XMLName:    "private_data_indicator_descriptor",
	Decode:     decodeDescriptorPrivateDataIndicator,
	ParseXML:   parseXMLDescriptorPrivateDataIndicator,
}

func decodeDescriptorPrivateDataIndicator(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorPrivateDataIndicator{Indicator: c.ReadUint32()}
	return d, c.Err()
}

func (d *DescriptorPrivateDataIndicator) Tag() DescriptorTag { return DescriptorTagPrivateDataIndicator }

func (d *DescriptorPrivateDataIndicator) XMLName() string {
	return "private_data_indicator_descriptor"
}

func (d *DescriptorPrivateDataIndicator) Encode(c *BitCursor) error {
	c.WriteUint32(d.Indicator)
	return c.Err()
}

func (d *DescriptorPrivateDataIndicator) BuildXML(e *XMLElement) error {
	e.SetAttrUint("private_data_indicator", uint64(d.Indicator))
	return nil
}

func parseXMLDescriptorPrivateDataIndicator(e *XMLElement) (Descriptor, error) {
	v, err := e.AttrUint("private_data_indicator", 32)
	if err != nil {
		return nil, err
	}
	return &DescriptorPrivateDataIndicator{Indicator: uint32(v)}, nil
}
