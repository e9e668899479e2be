package astisi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseXMLElement(t *testing.T) {
	in := `<program id="0x2a">
  <registration_descriptor format_identifier="0x43554549">0102</registration_descriptor>
  <stream_identifier_descriptor component_tag="7"/>
</program>`
	e, err := ParseXMLElement(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "program", e.Name)
	v, _ := e.Attr("id")
	assert.Equal(t, "0x2a", v)
	require.Len(t, e.Children, 2)
	assert.Equal(t, "registration_descriptor", e.Children[0].Name)
	bs, err := e.Children[0].HexText()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, bs)
	assert.Equal(t, e.Children[1], e.Child("stream_identifier_descriptor"))
	assert.Nil(t, e.Child("absent"))
}

func TestParseXMLElementErrors(t *testing.T) {
	_, err := ParseXMLElement(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrXMLShapeMismatch)
	_, err = ParseXMLElement(strings.NewReader("<a/><b/>"))
	assert.ErrorIs(t, err, ErrXMLShapeMismatch)
	_, err = ParseXMLElement(strings.NewReader("<a><b></a>"))
	assert.Error(t, err)
}

func TestXMLElementWriteToRoundTrip(t *testing.T) {
	e := &XMLElement{Name: "program"}
	e.SetAttrUint("id", 0x2a)
	c := e.AddChild("registration_descriptor")
	c.SetAttrUint("format_identifier", 0x43554549)
	c.Text = "0102"
	e.AddChild("stream_identifier_descriptor").SetAttrUint("component_tag", 7)

	buf := &bytes.Buffer{}
	require.NoError(t, e.WriteTo(buf))
	reparsed, err := ParseXMLElement(buf)
	require.NoError(t, err)

	assert.Equal(t, e.Name, reparsed.Name)
	assert.Equal(t, e.Attrs, reparsed.Attrs)
	require.Len(t, reparsed.Children, 2)
	assert.Equal(t, e.Children[0].Attrs, reparsed.Children[0].Attrs)
	bs, err := reparsed.Children[0].HexText()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, bs)
}

func TestXMLElementAttrAccessors(t *testing.T) {
	e := &XMLElement{Name: "d"}
	e.SetAttr("s", "v")
	e.SetAttr("s", "v2") // replace, not append
	require.Len(t, e.Attrs, 1)
	v, err := e.AttrString("s")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
	_, err = e.AttrString("absent")
	assert.ErrorIs(t, err, ErrXMLShapeMismatch)

	e.SetAttrUint("u", 0x1f)
	u, err := e.AttrUint("u", 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1f), u)
	e.SetAttr("dec", "31")
	u, err = e.AttrUint("dec", 8)
	require.NoError(t, err)
	assert.Equal(t, uint64(31), u)
	_, err = e.AttrUint("u", 4) // 0x1f does not fit 4 bits
	assert.ErrorIs(t, err, ErrXMLShapeMismatch)
	_, err = e.AttrUint("s", 8)
	assert.ErrorIs(t, err, ErrXMLShapeMismatch)
	_, err = e.AttrUint("absent", 8)
	assert.ErrorIs(t, err, ErrXMLShapeMismatch)

	e.SetAttrBool("b", true)
	b, err := e.AttrBool("b")
	require.NoError(t, err)
	assert.True(t, b)
	b, err = e.AttrBool("absent") // absent defaults to false
	require.NoError(t, err)
	assert.False(t, b)
	_, err = e.AttrBool("s")
	assert.ErrorIs(t, err, ErrXMLShapeMismatch)
}

func TestXMLElementHexText(t *testing.T) {
	e := &XMLElement{Name: "d", Text: " 01\n  0203 "}
	bs, err := e.HexText()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, bs)

	e.Text = "  "
	bs, err = e.HexText()
	require.NoError(t, err)
	assert.Nil(t, bs)

	e.Text = "zz"
	_, err = e.HexText()
	assert.ErrorIs(t, err, ErrXMLShapeMismatch)
}

func TestXMLDescriptorsDocumentRoundTrip(t *testing.T) {
	r := DefaultRegistry()
	in := []Descriptor{
		&DescriptorNetworkName{Name: []byte("Network")},
		&DescriptorStreamIdentifier{ComponentTag: 7},
	}
	buf := &bytes.Buffer{}
	require.NoError(t, r.EncodeXMLDescriptors(buf, "network", in))
	ds, err := r.DecodeXMLDescriptors(buf)
	require.NoError(t, err)
	assert.Equal(t, in, ds)
}

func TestParseXMLDescriptorsDispatch(t *testing.T) {
	r := DefaultRegistry()

	// Legacy aliases dispatch to the same codec as the canonical name
	in := `<service>
  <iso639_language_descriptor>
    <language code="eng" audio_type="0x01"/>
  </iso639_language_descriptor>
  <logical_channel_number_descriptor>
    <service service_id="0x1001" visible_service="true" logical_channel_number="12"/>
  </logical_channel_number_descriptor>
</service>`
	e, err := ParseXMLElement(strings.NewReader(in))
	require.NoError(t, err)
	ds, err := r.ParseXMLDescriptors(e)
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.IsType(t, &DescriptorISO639Language{}, ds[0])
	assert.IsType(t, &DescriptorLogicalChannel{}, ds[1])

	// Unrecognized element names fail the whole parse
	e, err = ParseXMLElement(strings.NewReader(`<service><bogus_descriptor/></service>`))
	require.NoError(t, err)
	_, err = r.ParseXMLDescriptors(e)
	assert.ErrorIs(t, err, ErrXMLShapeMismatch)
}
