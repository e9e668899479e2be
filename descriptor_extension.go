package astisi

import "encoding/hex"

// Descriptor extension tags
// Chapter: 6.3 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
const (
	DescriptorTagExtensionSupplementaryAudio = 0x06
)

// DescriptorSupplementaryAudio represents a supplementary audio descriptor,
// carried as sub-tag 0x06 of the extension tag
// Chapter: 6.4.11 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorSupplementaryAudio struct {
	PrivateData             []byte
	LanguageCode            [3]byte
	EditorialClassification uint8
	HasLanguageCode         bool
	MixType                 bool
}

var codecDescriptorSupplementaryAudio = &DescriptorCodec{
	Identities: []DescriptorIdentity{ExtensionIdentity(DescriptorTagExtensionSupplementaryAudio)},
	XMLName:    "supplementary_audio_descriptor",
	Decode:     decodeDescriptorSupplementaryAudio,
	ParseXML:   parseXMLDescriptorSupplementaryAudio,
}

func decodeDescriptorSupplementaryAudio(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorSupplementaryAudio{
		MixType:                 c.ReadBool(),
		EditorialClassification: uint8(c.ReadBits(5)),
	}
	c.SkipBits(1)
	d.HasLanguageCode = c.ReadBool()
	if d.HasLanguageCode {
		copy(d.LanguageCode[:], c.ReadBytesNoCopy(3))
	}
	d.PrivateData = c.ReadRemaining()
	return d, c.Err()
}

func (d *DescriptorSupplementaryAudio) Tag() DescriptorTag { return DescriptorTagExtension }

func (d *DescriptorSupplementaryAudio) ExtensionTag() uint8 {
	return DescriptorTagExtensionSupplementaryAudio
}

func (d *DescriptorSupplementaryAudio) XMLName() string { return "supplementary_audio_descriptor" }

func (d *DescriptorSupplementaryAudio) Encode(c *BitCursor) error {
	c.WriteBool(d.MixType)
	c.WriteBits(uint64(d.EditorialClassification), 5)
	c.WriteBool(true) // reserved
	c.WriteBool(d.HasLanguageCode)
	if d.HasLanguageCode {
		c.WriteBytes(d.LanguageCode[:])
	}
	c.WriteBytes(d.PrivateData)
	return c.Err()
}

func (d *DescriptorSupplementaryAudio) BuildXML(e *XMLElement) error {
	e.SetAttrBool("mix_type", d.MixType)
	e.SetAttrUint("editorial_classification", uint64(d.EditorialClassification))
	if d.HasLanguageCode {
		e.SetAttr("language_code", string(d.LanguageCode[:]))
	}
	e.Text = hex.EncodeToString(d.PrivateData)
	return nil
}

func parseXMLDescriptorSupplementaryAudio(e *XMLElement) (Descriptor, error) {
	d := &DescriptorSupplementaryAudio{}
	var err error
	if d.MixType, err = e.AttrBool("mix_type"); err != nil {
		return nil, err
	}
	v, err := e.AttrUint("editorial_classification", 5)
	if err != nil {
		return nil, err
	}
	d.EditorialClassification = uint8(v)
	if _, ok := e.Attr("language_code"); ok {
		if err = parseXMLLanguageCode(e, "language_code", &d.LanguageCode); err != nil {
			return nil, err
		}
		d.HasLanguageCode = true
	}
	if d.PrivateData, err = e.HexText(); err != nil {
		return nil, err
	}
	return d, nil
}
