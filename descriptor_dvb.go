package astisi

import (
	"fmt"
	"time"
)

// Service types
// Chapter: 6.2.33 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
const (
	ServiceTypeDigitalTelevisionService = 0x1
)

// DescriptorNetworkName represents a network name descriptor
// Chapter: 6.2.27 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorNetworkName struct {
	Name []byte
}

var codecDescriptorNetworkName = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagNetworkName)},
	XMLName:    "network_name_descriptor",
	Decode:     decodeDescriptorNetworkName,
	ParseXML:   parseXMLDescriptorNetworkName,
}

func decodeDescriptorNetworkName(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorNetworkName{Name: c.ReadRemaining()}
	return d, c.Err()
}

func (d *DescriptorNetworkName) Tag() DescriptorTag { return DescriptorTagNetworkName }

func (d *DescriptorNetworkName) XMLName() string { return "network_name_descriptor" }

func (d *DescriptorNetworkName) Encode(c *BitCursor) error {
	c.WriteBytes(d.Name)
	return c.Err()
}

func (d *DescriptorNetworkName) BuildXML(e *XMLElement) error {
	e.SetAttr("network_name", string(d.Name))
	return nil
}

func parseXMLDescriptorNetworkName(e *XMLElement) (Descriptor, error) {
	v, err := e.AttrString("network_name")
	if err != nil {
		return nil, err
	}
	return &DescriptorNetworkName{Name: []byte(v)}, nil
}

// DescriptorService represents a service descriptor
// Chapter: 6.2.33 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorService struct {
	Name     []byte
	Provider []byte
	Type     uint8
}

var codecDescriptorService = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagService)},
	XMLName:    "service_descriptor",
	Decode:     decodeDescriptorService,
	ParseXML:   parseXMLDescriptorService,
}

func decodeDescriptorService(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorService{Type: c.ReadUint8()}
	c.PushReadScope(8)
	d.Provider = c.ReadRemaining()
	c.PopReadScope()
	c.PushReadScope(8)
	d.Name = c.ReadRemaining()
	c.PopReadScope()
	return d, c.Err()
}

func (d *DescriptorService) Tag() DescriptorTag { return DescriptorTagService }

func (d *DescriptorService) XMLName() string { return "service_descriptor" }

func (d *DescriptorService) Encode(c *BitCursor) error {
	c.WriteUint8(d.Type)
	c.PushWriteScope(8)
	c.WriteBytes(d.Provider)
	if err := c.PopWriteScope(); err != nil {
		return fmt.Errorf("astisi: service provider name: %w", err)
	}
	c.PushWriteScope(8)
	c.WriteBytes(d.Name)
	if err := c.PopWriteScope(); err != nil {
		return fmt.Errorf("astisi: service name: %w", err)
	}
	return c.Err()
}

func (d *DescriptorService) BuildXML(e *XMLElement) error {
	e.SetAttrUint("service_type", uint64(d.Type))
	e.SetAttr("service_provider_name", string(d.Provider))
	e.SetAttr("service_name", string(d.Name))
	return nil
}

func parseXMLDescriptorService(e *XMLElement) (Descriptor, error) {
	d := &DescriptorService{}
	t, err := e.AttrUint("service_type", 8)
	if err != nil {
		return nil, err
	}
	d.Type = uint8(t)
	p, err := e.AttrString("service_provider_name")
	if err != nil {
		return nil, err
	}
	d.Provider = []byte(p)
	n, err := e.AttrString("service_name")
	if err != nil {
		return nil, err
	}
	d.Name = []byte(n)
	return d, nil
}

// DescriptorShortEvent represents a short event descriptor
// Chapter: 6.2.37 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorShortEvent struct {
	EventName []byte
	Text      []byte
	Language  [3]byte
}

var codecDescriptorShortEvent = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagShortEvent)},
	XMLName:    "short_event_descriptor",
	Decode:     decodeDescriptorShortEvent,
	ParseXML:   parseXMLDescriptorShortEvent,
	Merge:      MergeAppend,
}

func decodeDescriptorShortEvent(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorShortEvent{}
	copy(d.Language[:], c.ReadBytesNoCopy(3))
	c.PushReadScope(8)
	d.EventName = c.ReadRemaining()
	c.PopReadScope()
	c.PushReadScope(8)
	d.Text = c.ReadRemaining()
	c.PopReadScope()
	return d, c.Err()
}

func (d *DescriptorShortEvent) Tag() DescriptorTag { return DescriptorTagShortEvent }

func (d *DescriptorShortEvent) XMLName() string { return "short_event_descriptor" }

func (d *DescriptorShortEvent) Encode(c *BitCursor) error {
	c.WriteBytes(d.Language[:])
	c.PushWriteScope(8)
	c.WriteBytes(d.EventName)
	if err := c.PopWriteScope(); err != nil {
		return fmt.Errorf("astisi: event name: %w", err)
	}
	c.PushWriteScope(8)
	c.WriteBytes(d.Text)
	if err := c.PopWriteScope(); err != nil {
		return fmt.Errorf("astisi: event text: %w", err)
	}
	return c.Err()
}

func (d *DescriptorShortEvent) BuildXML(e *XMLElement) error {
	e.SetAttr("language_code", string(d.Language[:]))
	e.SetAttr("event_name", string(d.EventName))
	e.SetAttr("text", string(d.Text))
	return nil
}

func parseXMLDescriptorShortEvent(e *XMLElement) (Descriptor, error) {
	d := &DescriptorShortEvent{}
	if err := parseXMLLanguageCode(e, "language_code", &d.Language); err != nil {
		return nil, err
	}
	n, err := e.AttrString("event_name")
	if err != nil {
		return nil, err
	}
	d.EventName = []byte(n)
	t, err := e.AttrString("text")
	if err != nil {
		return nil, err
	}
	d.Text = []byte(t)
	return d, nil
}

// DescriptorExtendedEvent represents an extended event descriptor
// Chapter: 6.2.15 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorExtendedEvent struct {
	Text                 []byte
	Items                []DescriptorExtendedEventItem
	Language             [3]byte
	Number               uint8
	LastDescriptorNumber uint8
}

// DescriptorExtendedEventItem represents an extended event item
// Chapter: 6.2.15 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorExtendedEventItem struct {
	Content     []byte
	Description []byte
}

var codecDescriptorExtendedEvent = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagExtendedEvent)},
	XMLName:    "extended_event_descriptor",
	Decode:     decodeDescriptorExtendedEvent,
	ParseXML:   parseXMLDescriptorExtendedEvent,
	Merge:      MergeAppend,
}

func decodeDescriptorExtendedEvent(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorExtendedEvent{
		Number:               uint8(c.ReadBits(4)),
		LastDescriptorNumber: uint8(c.ReadBits(4)),
	}
	copy(d.Language[:], c.ReadBytesNoCopy(3))
	c.PushReadScope(8)
	for c.CanRead(16) {
		var item DescriptorExtendedEventItem
		c.PushReadScope(8)
		item.Description = c.ReadRemaining()
		c.PopReadScope()
		c.PushReadScope(8)
		item.Content = c.ReadRemaining()
		c.PopReadScope()
		if c.HasError() {
			break
		}
		d.Items = append(d.Items, item)
	}
	c.PopReadScope()
	c.PushReadScope(8)
	d.Text = c.ReadRemaining()
	c.PopReadScope()
	return d, c.Err()
}

func (d *DescriptorExtendedEvent) Tag() DescriptorTag { return DescriptorTagExtendedEvent }

func (d *DescriptorExtendedEvent) XMLName() string { return "extended_event_descriptor" }

func (d *DescriptorExtendedEvent) Encode(c *BitCursor) error {
	c.WriteBits(uint64(d.Number), 4)
	c.WriteBits(uint64(d.LastDescriptorNumber), 4)
	c.WriteBytes(d.Language[:])
	c.PushWriteScope(8)
	for _, item := range d.Items {
		c.PushWriteScope(8)
		c.WriteBytes(item.Description)
		if err := c.PopWriteScope(); err != nil {
			return fmt.Errorf("astisi: item description: %w", err)
		}
		c.PushWriteScope(8)
		c.WriteBytes(item.Content)
		if err := c.PopWriteScope(); err != nil {
			return fmt.Errorf("astisi: item content: %w", err)
		}
	}
	if err := c.PopWriteScope(); err != nil {
		return fmt.Errorf("astisi: items: %w", err)
	}
	c.PushWriteScope(8)
	c.WriteBytes(d.Text)
	if err := c.PopWriteScope(); err != nil {
		return fmt.Errorf("astisi: event text: %w", err)
	}
	return c.Err()
}

func (d *DescriptorExtendedEvent) BuildXML(e *XMLElement) error {
	e.SetAttrUint("descriptor_number", uint64(d.Number))
	e.SetAttrUint("last_descriptor_number", uint64(d.LastDescriptorNumber))
	e.SetAttr("language_code", string(d.Language[:]))
	e.SetAttr("text", string(d.Text))
	for _, item := range d.Items {
		i := e.AddChild("item")
		i.SetAttr("description", string(item.Description))
		i.SetAttr("content", string(item.Content))
	}
	return nil
}

func parseXMLDescriptorExtendedEvent(e *XMLElement) (Descriptor, error) {
	d := &DescriptorExtendedEvent{}
	n, err := e.AttrUint("descriptor_number", 4)
	if err != nil {
		return nil, err
	}
	d.Number = uint8(n)
	if n, err = e.AttrUint("last_descriptor_number", 4); err != nil {
		return nil, err
	}
	d.LastDescriptorNumber = uint8(n)
	if err = parseXMLLanguageCode(e, "language_code", &d.Language); err != nil {
		return nil, err
	}
	t, err := e.AttrString("text")
	if err != nil {
		return nil, err
	}
	d.Text = []byte(t)
	for _, i := range e.Children {
		if i.Name != "item" {
			return nil, fmt.Errorf("astisi: unexpected child %q: %w", i.Name, ErrXMLShapeMismatch)
		}
		var item DescriptorExtendedEventItem
		desc, err := i.AttrString("description")
		if err != nil {
			return nil, err
		}
		item.Description = []byte(desc)
		content, err := i.AttrString("content")
		if err != nil {
			return nil, err
		}
		item.Content = []byte(content)
		d.Items = append(d.Items, item)
	}
	return d, nil
}

// maxExtendedEventTextLength is what's left of a 255-byte payload after the
// numbers, the language code, an empty items loop and the text length.
const maxExtendedEventTextLength = MaxDescriptorPayload - 6

// BuildExtendedEventDescriptors splits text into as many extended event
// descriptors as needed, numbering them with the 4-bit descriptor_number
// counter. Text longer than 16 records can hold does not fit the numbering
// space and returns ErrEncodeOverflow.
func BuildExtendedEventDescriptors(language [3]byte, text []byte) ([]*DescriptorExtendedEvent, error) {
	count := (len(text) + maxExtendedEventTextLength - 1) / maxExtendedEventTextLength
	if count == 0 {
		count = 1
	}
	cnt := newWrappingCounter(0xf)
	if count > cnt.wrapAt+1 {
		return nil, fmt.Errorf("astisi: text needs %d records for a 4-bit numbering space: %w", count, ErrEncodeOverflow)
	}
	ds := make([]*DescriptorExtendedEvent, 0, count)
	for idx := 0; idx < count; idx++ {
		chunk := text[idx*maxExtendedEventTextLength:]
		if len(chunk) > maxExtendedEventTextLength {
			chunk = chunk[:maxExtendedEventTextLength]
		}
		ds = append(ds, &DescriptorExtendedEvent{
			Number:               uint8(cnt.inc()),
			LastDescriptorNumber: uint8(count - 1),
			Language:             language,
			Text:                 chunk,
		})
	}
	return ds, nil
}

// DescriptorStreamIdentifier represents a stream identifier descriptor
// Chapter: 6.2.39 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorStreamIdentifier struct {
	ComponentTag uint8
}

var codecDescriptorStreamIdentifier = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagStreamIdentifier)},
	XMLName:    "stream_identifier_descriptor",
	Decode:     decodeDescriptorStreamIdentifier,
	ParseXML:   parseXMLDescriptorStreamIdentifier,
}

func decodeDescriptorStreamIdentifier(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorStreamIdentifier{ComponentTag: c.ReadUint8()}
	return d, c.Err()
}

func (d *DescriptorStreamIdentifier) Tag() DescriptorTag { return DescriptorTagStreamIdentifier }

func (d *DescriptorStreamIdentifier) XMLName() string { return "stream_identifier_descriptor" }

func (d *DescriptorStreamIdentifier) Encode(c *BitCursor) error {
	c.WriteUint8(d.ComponentTag)
	return c.Err()
}

func (d *DescriptorStreamIdentifier) BuildXML(e *XMLElement) error {
	e.SetAttrUint("component_tag", uint64(d.ComponentTag))
	return nil
}

func parseXMLDescriptorStreamIdentifier(e *XMLElement) (Descriptor, error) {
	v, err := e.AttrUint("component_tag", 8)
	if err != nil {
		return nil, err
	}
	return &DescriptorStreamIdentifier{ComponentTag: uint8(v)}, nil
}

// DescriptorContent represents a content descriptor
// Chapter: 6.2.9 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorContent struct {
	Items []DescriptorContentItem
}

// DescriptorContentItem represents a content item
// Chapter: 6.2.9 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorContentItem struct {
	ContentNibbleLevel1 uint8
	ContentNibbleLevel2 uint8
	UserByte            uint8
}

var codecDescriptorContent = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagContent)},
	XMLName:    "content_descriptor",
	Decode:     decodeDescriptorContent,
	ParseXML:   parseXMLDescriptorContent,
}

func decodeDescriptorContent(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorContent{}
	for c.CanRead(16) {
		d.Items = append(d.Items, DescriptorContentItem{
			ContentNibbleLevel1: uint8(c.ReadBits(4)),
			ContentNibbleLevel2: uint8(c.ReadBits(4)),
			UserByte:            c.ReadUint8(),
		})
	}
	return d, c.Err()
}

func (d *DescriptorContent) Tag() DescriptorTag { return DescriptorTagContent }

func (d *DescriptorContent) XMLName() string { return "content_descriptor" }

func (d *DescriptorContent) Encode(c *BitCursor) error {
	for _, item := range d.Items {
		c.WriteBits(uint64(item.ContentNibbleLevel1), 4)
		c.WriteBits(uint64(item.ContentNibbleLevel2), 4)
		c.WriteUint8(item.UserByte)
	}
	return c.Err()
}

func (d *DescriptorContent) BuildXML(e *XMLElement) error {
	for _, item := range d.Items {
		i := e.AddChild("content")
		i.SetAttrUint("content_nibble_level_1", uint64(item.ContentNibbleLevel1))
		i.SetAttrUint("content_nibble_level_2", uint64(item.ContentNibbleLevel2))
		i.SetAttrUint("user_byte", uint64(item.UserByte))
	}
	return nil
}

func parseXMLDescriptorContent(e *XMLElement) (Descriptor, error) {
	d := &DescriptorContent{}
	for _, i := range e.Children {
		if i.Name != "content" {
			return nil, fmt.Errorf("astisi: unexpected child %q: %w", i.Name, ErrXMLShapeMismatch)
		}
		var item DescriptorContentItem
		v, err := i.AttrUint("content_nibble_level_1", 4)
		if err != nil {
			return nil, err
		}
		item.ContentNibbleLevel1 = uint8(v)
		if v, err = i.AttrUint("content_nibble_level_2", 4); err != nil {
			return nil, err
		}
		item.ContentNibbleLevel2 = uint8(v)
		if v, err = i.AttrUint("user_byte", 8); err != nil {
			return nil, err
		}
		item.UserByte = uint8(v)
		d.Items = append(d.Items, item)
	}
	return d, nil
}

// DescriptorParentalRating represents a parental rating descriptor
// Chapter: 6.2.28 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorParentalRating struct {
	Items []DescriptorParentalRatingItem
}

// DescriptorParentalRatingItem represents a parental rating item
// Chapter: 6.2.28 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorParentalRatingItem struct {
	CountryCode [3]byte
	Rating      uint8
}

// MinimumAge returns the minimum age for the parental rating
func (d DescriptorParentalRatingItem) MinimumAge() int {
	// Undefined or user defined ratings
	if d.Rating == 0 || d.Rating > 0x10 {
		return 0
	}
	return int(d.Rating) + 3
}

var codecDescriptorParentalRating = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagParentalRating)},
	XMLName:    "parental_rating_descriptor",
	Decode:     decodeDescriptorParentalRating,
	ParseXML:   parseXMLDescriptorParentalRating,
}

func decodeDescriptorParentalRating(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorParentalRating{}
	for c.CanRead(32) {
		var item DescriptorParentalRatingItem
		copy(item.CountryCode[:], c.ReadBytesNoCopy(3))
		item.Rating = c.ReadUint8()
		d.Items = append(d.Items, item)
	}
	return d, c.Err()
}

func (d *DescriptorParentalRating) Tag() DescriptorTag { return DescriptorTagParentalRating }

func (d *DescriptorParentalRating) XMLName() string { return "parental_rating_descriptor" }

func (d *DescriptorParentalRating) Encode(c *BitCursor) error {
	for _, item := range d.Items {
		c.WriteBytes(item.CountryCode[:])
		c.WriteUint8(item.Rating)
	}
	return c.Err()
}

func (d *DescriptorParentalRating) BuildXML(e *XMLElement) error {
	for _, item := range d.Items {
		i := e.AddChild("rating")
		i.SetAttr("country_code", string(item.CountryCode[:]))
		i.SetAttrUint("rating", uint64(item.Rating))
	}
	return nil
}

func parseXMLDescriptorParentalRating(e *XMLElement) (Descriptor, error) {
	d := &DescriptorParentalRating{}
	for _, i := range e.Children {
		if i.Name != "rating" {
			return nil, fmt.Errorf("astisi: unexpected child %q: %w", i.Name, ErrXMLShapeMismatch)
		}
		var item DescriptorParentalRatingItem
		if err := parseXMLLanguageCode(i, "country_code", &item.CountryCode); err != nil {
			return nil, err
		}
		v, err := i.AttrUint("rating", 8)
		if err != nil {
			return nil, err
		}
		item.Rating = uint8(v)
		d.Items = append(d.Items, item)
	}
	return d, nil
}

// DescriptorLocalTimeOffset represents a local time offset descriptor
// Chapter: 6.2.20 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorLocalTimeOffset struct {
	Items []DescriptorLocalTimeOffsetItem
}

// DescriptorLocalTimeOffsetItem represents a local time offset item
// Chapter: 6.2.20 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
type DescriptorLocalTimeOffsetItem struct {
	LocalTimeOffset         time.Duration
	NextTimeOffset          time.Duration
	TimeOfChange            time.Time
	CountryCode             [3]byte
	CountryRegionID         uint8
	LocalTimeOffsetPolarity bool
}

var codecDescriptorLocalTimeOffset = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagLocalTimeOffset)},
	XMLName:    "local_time_offset_descriptor",
	Decode:     decodeDescriptorLocalTimeOffset,
	ParseXML:   parseXMLDescriptorLocalTimeOffset,
}

func decodeDescriptorLocalTimeOffset(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorLocalTimeOffset{}
	for c.CanRead(13 * 8) {
		var item DescriptorLocalTimeOffsetItem
		copy(item.CountryCode[:], c.ReadBytesNoCopy(3))
		item.CountryRegionID = uint8(c.ReadBits(6))
		c.SkipBits(1)
		item.LocalTimeOffsetPolarity = c.ReadBool()
		item.LocalTimeOffset = readDVBDurationMinutes(c)
		item.TimeOfChange = readDVBTime(c)
		item.NextTimeOffset = readDVBDurationMinutes(c)
		d.Items = append(d.Items, item)
	}
	return d, c.Err()
}

func (d *DescriptorLocalTimeOffset) Tag() DescriptorTag { return DescriptorTagLocalTimeOffset }

func (d *DescriptorLocalTimeOffset) XMLName() string { return "local_time_offset_descriptor" }

func (d *DescriptorLocalTimeOffset) Encode(c *BitCursor) error {
	for _, item := range d.Items {
		c.WriteBytes(item.CountryCode[:])
		c.WriteBits(uint64(item.CountryRegionID), 6)
		c.WriteBits(0x1, 1)
		c.WriteBool(item.LocalTimeOffsetPolarity)
		writeDVBDurationMinutes(c, item.LocalTimeOffset)
		writeDVBTime(c, item.TimeOfChange)
		writeDVBDurationMinutes(c, item.NextTimeOffset)
	}
	return c.Err()
}

func (d *DescriptorLocalTimeOffset) BuildXML(e *XMLElement) error {
	for _, item := range d.Items {
		i := e.AddChild("region")
		i.SetAttr("country_code", string(item.CountryCode[:]))
		i.SetAttrUint("country_region_id", uint64(item.CountryRegionID))
		i.SetAttrBool("local_time_offset_polarity", item.LocalTimeOffsetPolarity)
		i.SetAttr("local_time_offset", item.LocalTimeOffset.String())
		i.SetAttr("time_of_change", item.TimeOfChange.Format(time.RFC3339))
		i.SetAttr("next_time_offset", item.NextTimeOffset.String())
	}
	return nil
}

func parseXMLDescriptorLocalTimeOffset(e *XMLElement) (Descriptor, error) {
	d := &DescriptorLocalTimeOffset{}
	for _, i := range e.Children {
		if i.Name != "region" {
			return nil, fmt.Errorf("astisi: unexpected child %q: %w", i.Name, ErrXMLShapeMismatch)
		}
		var item DescriptorLocalTimeOffsetItem
		if err := parseXMLLanguageCode(i, "country_code", &item.CountryCode); err != nil {
			return nil, err
		}
		v, err := i.AttrUint("country_region_id", 6)
		if err != nil {
			return nil, err
		}
		item.CountryRegionID = uint8(v)
		if item.LocalTimeOffsetPolarity, err = i.AttrBool("local_time_offset_polarity"); err != nil {
			return nil, err
		}
		if item.LocalTimeOffset, err = parseXMLDuration(i, "local_time_offset"); err != nil {
			return nil, err
		}
		if item.NextTimeOffset, err = parseXMLDuration(i, "next_time_offset"); err != nil {
			return nil, err
		}
		toc, err := i.AttrString("time_of_change")
		if err != nil {
			return nil, err
		}
		if item.TimeOfChange, err = time.Parse(time.RFC3339, toc); err != nil {
			return nil, fmt.Errorf("astisi: attribute time_of_change is not a RFC3339 time: %w", ErrXMLShapeMismatch)
		}
		item.TimeOfChange = item.TimeOfChange.UTC()
		d.Items = append(d.Items, item)
	}
	return d, nil
}

// DescriptorPrivateDataSpecifier represents a private data specifier
// descriptor. When the list codec decodes one, the specifier scopes the
// meaning of the user-defined tags that follow it in the same list.
type DescriptorPrivateDataSpecifier struct {
	Specifier uint32
}

var codecDescriptorPrivateDataSpecifier = &DescriptorCodec{
	Identities: []DescriptorIdentity{StandardIdentity(DescriptorTagPrivateDataSpecifier)},
	XMLName:    "private_data_specifier_descriptor",
	Decode:     decodeDescriptorPrivateDataSpecifier,
	ParseXML:   parseXMLDescriptorPrivateDataSpecifier,
	Merge:      MergeAppend,
}

func decodeDescriptorPrivateDataSpecifier(c *BitCursor, _ *DescriptorContext) (Descriptor, error) {
	d := &DescriptorPrivateDataSpecifier{Specifier: c.ReadUint32()}
	return d, c.Err()
}

func (d *DescriptorPrivateDataSpecifier) Tag() DescriptorTag { return DescriptorTagPrivateDataSpecifier }

func (d *DescriptorPrivateDataSpecifier) XMLName() string {
	return "private_data_specifier_descriptor"
}

func (d *DescriptorPrivateDataSpecifier) Encode(c *BitCursor) error {
	c.WriteUint32(d.Specifier)
	return c.Err()
}

func (d *DescriptorPrivateDataSpecifier) BuildXML(e *XMLElement) error {
	e.SetAttrUint("private_data_specifier", uint64(d.Specifier))
	return nil
}

func parseXMLDescriptorPrivateDataSpecifier(e *XMLElement) (Descriptor, error) {
	v, err := e.AttrUint("private_data_specifier", 32)
	if err != nil {
		return nil, err
	}
	return &DescriptorPrivateDataSpecifier{Specifier: uint32(v)}, nil
}

// parseXMLLanguageCode reads a 3-character code attribute into dst.
func parseXMLLanguageCode(e *XMLElement, name string, dst *[3]byte) error {
	v, err := e.AttrString(name)
	if err != nil {
		return err
	}
	if len(v) != 3 {
		return fmt.Errorf("astisi: attribute %q value %q is not 3 characters: %w", name, v, ErrXMLShapeMismatch)
	}
	copy(dst[:], v)
	return nil
}

// parseXMLDuration reads a Go duration literal attribute.
func parseXMLDuration(e *XMLElement, name string) (time.Duration, error) {
	v, err := e.AttrString(name)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("astisi: attribute %q is not a duration: %w", name, ErrXMLShapeMismatch)
	}
	return d, nil
}
