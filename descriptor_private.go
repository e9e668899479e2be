package astisi

import "fmt"

// Private data specifiers
// Link: https://www.dvbservices.com/identifiers/private_data_spec_id
const (
	PrivateDataSpecifierEACEM  uint32 = 0x00000028
	PrivateDataSpecifierNorDig uint32 = 0x00000029
)

// DescriptorLogicalChannel represents a logical channel descriptor, a private
// descriptor assigning channel numbers to services. EACEM and NorDig publish
// the same layout under their own specifiers, so both identities point at this
// codec.
type DescriptorLogicalChannel struct {
	Items []DescriptorLogicalChannelItem
}

// DescriptorLogicalChannelItem represents one service to channel number
// assignment
type DescriptorLogicalChannelItem struct {
	ServiceID     uint16
	ChannelNumber uint16 // 10 bits on the wire
	Visible       bool
}

var codecDescriptorLogicalChannel = &DescriptorCodec{
	Identities: []DescriptorIdentity{
		PrivateIdentity(PrivateDataSpecifierEACEM, DescriptorTagLogicalChannel),
		PrivateIdentity(PrivateDataSpecifierNorDig, DescriptorTagLogicalChannel),
	},
	XMLName:    "logical_channel_descriptor",
	XMLAliases: []string{"logical_channel_number_descriptor"},
	Standards:  StandardsDVB,
	Decode:     decodeDescriptorLogicalChannel,
	ParseXML:   parseXMLDescriptorLogicalChannel,
}

func decodeDescriptorLogicalChannel(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorLogicalChannel{}
	for c.CanRead(32) {
		var item DescriptorLogicalChannelItem
		item.ServiceID = c.ReadUint16()
		item.Visible = c.ReadBool()
		c.SkipBits(5)
		item.ChannelNumber = uint16(c.ReadBits(10))
		d.Items = append(d.Items, item)
	}
	return d, c.Err()
}

func (d *DescriptorLogicalChannel) Tag() DescriptorTag { return DescriptorTagLogicalChannel }

func (d *DescriptorLogicalChannel) XMLName() string { return "logical_channel_descriptor" }

func (d *DescriptorLogicalChannel) Encode(c *BitCursor) error {
	for _, item := range d.Items {
		c.WriteUint16(item.ServiceID)
		c.WriteBool(item.Visible)
		c.WriteBits(0x1f, 5)
		c.WriteBits(uint64(item.ChannelNumber), 10)
	}
	return c.Err()
}

func (d *DescriptorLogicalChannel) BuildXML(e *XMLElement) error {
	for _, item := range d.Items {
		i := e.AddChild("service")
		i.SetAttrUint("service_id", uint64(item.ServiceID))
		i.SetAttrBool("visible_service", item.Visible)
		i.SetAttr("logical_channel_number", fmt.Sprintf("%d", item.ChannelNumber))
	}
	return nil
}

func parseXMLDescriptorLogicalChannel(e *XMLElement) (Descriptor, error) {
	d := &DescriptorLogicalChannel{}
	for _, i := range e.Children {
		if i.Name != "service" {
			return nil, fmt.Errorf("astisi: unexpected child %q: %w", i.Name, ErrXMLShapeMismatch)
		}
		var item DescriptorLogicalChannelItem
		v, err := i.AttrUint("service_id", 16)
		if err != nil {
			return nil, err
		}
		item.ServiceID = uint16(v)
		if item.Visible, err = i.AttrBool("visible_service"); err != nil {
			return nil, err
		}
		if v, err = i.AttrUint("logical_channel_number", 10); err != nil {
			return nil, err
		}
		item.ChannelNumber = uint16(v)
		d.Items = append(d.Items, item)
	}
	return d, nil
}
