package astisi

import (
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// XMLAttr is one attribute of an XMLElement.
type XMLAttr struct {
	Name  string
	Value string
}

// XMLElement is the minimal document node the XML surface operates on:
// a name, attributes, child elements and character data. It deliberately
// ignores namespaces, comments and processing instructions.
type XMLElement struct {
	Name     string
	Attrs    []XMLAttr
	Children []*XMLElement
	Text     string
}

// ParseXMLElement builds an element tree from XML input.
func ParseXMLElement(r io.Reader) (*XMLElement, error) {
	dec := xml.NewDecoder(r)

	var stack []*XMLElement
	var root *XMLElement
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("astisi: reading XML token failed: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			e := &XMLElement{Name: t.Name.Local}
			for _, a := range t.Attr {
				e.Attrs = append(e.Attrs, XMLAttr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, e)
			} else if root == nil {
				root = e
			} else {
				return nil, fmt.Errorf("astisi: unexpected second root element %q: %w", t.Name.Local, ErrXMLShapeMismatch)
			}
			stack = append(stack, e)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("astisi: no root element: %w", ErrXMLShapeMismatch)
	}
	return root, nil
}

// WriteTo serializes the element tree to w.
func (e *XMLElement) WriteTo(w io.Writer) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := e.encodeTo(enc); err != nil {
		return fmt.Errorf("astisi: writing XML failed: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("astisi: flushing XML failed: %w", err)
	}
	return nil
}

func (e *XMLElement) encodeTo(enc *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Name}}
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if t := strings.TrimSpace(e.Text); t != "" {
		if err := enc.EncodeToken(xml.CharData(t)); err != nil {
			return err
		}
	}
	for _, c := range e.Children {
		if err := c.encodeTo(enc); err != nil {
			return err
		}
	}
	return enc.EncodeToken(xml.EndElement{Name: start.Name})
}

// AddChild appends and returns a new child element.
func (e *XMLElement) AddChild(name string) *XMLElement {
	c := &XMLElement{Name: name}
	e.Children = append(e.Children, c)
	return c
}

// Child returns the first child with the given name, nil if none.
func (e *XMLElement) Child(name string) *XMLElement {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Attr returns the value of the named attribute.
func (e *XMLElement) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing a previous value.
func (e *XMLElement) SetAttr(name, value string) {
	for idx := range e.Attrs {
		if e.Attrs[idx].Name == name {
			e.Attrs[idx].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, XMLAttr{Name: name, Value: value})
}

// SetAttrUint sets the named attribute to a hex literal.
func (e *XMLElement) SetAttrUint(name string, v uint64) {
	e.SetAttr(name, fmt.Sprintf("%#02x", v))
}

// SetAttrBool sets the named attribute to "true" or "false".
func (e *XMLElement) SetAttrBool(name string, v bool) {
	e.SetAttr(name, strconv.FormatBool(v))
}

// AttrString returns the named attribute, failing with ErrXMLShapeMismatch
// when absent.
func (e *XMLElement) AttrString(name string) (string, error) {
	v, ok := e.Attr(name)
	if !ok {
		return "", fmt.Errorf("astisi: element %q has no attribute %q: %w", e.Name, name, ErrXMLShapeMismatch)
	}
	return v, nil
}

// AttrUint parses the named attribute as an unsigned integer of at most bits
// bits. Decimal, hex (0x) and octal literals are accepted.
func (e *XMLElement) AttrUint(name string, bits int) (uint64, error) {
	v, err := e.AttrString(name)
	if err != nil {
		return 0, err
	}
	u, err := strconv.ParseUint(v, 0, bits)
	if err != nil {
		return 0, fmt.Errorf("astisi: element %q attribute %q is not a %d-bit integer: %w", e.Name, name, bits, ErrXMLShapeMismatch)
	}
	return u, nil
}

// AttrBool parses the named attribute as a boolean, defaulting to false when
// absent.
func (e *XMLElement) AttrBool(name string) (bool, error) {
	v, ok := e.Attr(name)
	if !ok {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("astisi: element %q attribute %q is not a boolean: %w", e.Name, name, ErrXMLShapeMismatch)
	}
	return b, nil
}

// HexText decodes the element's character data as hex bytes.
func (e *XMLElement) HexText() ([]byte, error) {
	t := strings.Join(strings.Fields(e.Text), "")
	if t == "" {
		return nil, nil
	}
	bs, err := hex.DecodeString(t)
	if err != nil {
		return nil, fmt.Errorf("astisi: element %q text is not hex: %w", e.Name, ErrXMLShapeMismatch)
	}
	return bs, nil
}

// BuildXMLDescriptors appends one child element per descriptor to parent,
// under each descriptor's canonical name.
func (r *DescriptorRegistry) BuildXMLDescriptors(parent *XMLElement, ds []Descriptor) error {
	for _, d := range ds {
		e := parent.AddChild(d.XMLName())
		if err := d.BuildXML(e); err != nil {
			return fmt.Errorf("astisi: building XML for descriptor %#02x failed: %w", uint8(d.Tag()), err)
		}
	}
	return nil
}

// DecodeXMLDescriptors reads an XML document from rd and rebuilds the
// descriptors held as children of its root element.
func (r *DescriptorRegistry) DecodeXMLDescriptors(rd io.Reader) ([]Descriptor, error) {
	e, err := ParseXMLElement(rd)
	if err != nil {
		return nil, err
	}
	return r.ParseXMLDescriptors(e)
}

// EncodeXMLDescriptors writes ds to w as an XML document whose root element is
// named root.
func (r *DescriptorRegistry) EncodeXMLDescriptors(w io.Writer, root string, ds []Descriptor) error {
	e := &XMLElement{Name: root}
	if err := r.BuildXMLDescriptors(e, ds); err != nil {
		return err
	}
	return e.WriteTo(w)
}

// ParseXMLDescriptors rebuilds descriptors from the children of parent, in
// document order. Children are dispatched by element name, canonical or
// legacy; an unrecognized name fails with ErrXMLShapeMismatch.
func (r *DescriptorRegistry) ParseXMLDescriptors(parent *XMLElement) (ds []Descriptor, err error) {
	for _, e := range parent.Children {
		codec := r.LookupByXMLName(e.Name)
		if codec == nil || codec.ParseXML == nil {
			err = fmt.Errorf("astisi: no codec for element %q: %w", e.Name, ErrXMLShapeMismatch)
			return
		}
		var d Descriptor
		if d, err = codec.ParseXML(e); err != nil {
			err = fmt.Errorf("astisi: parsing element %q failed: %w", e.Name, err)
			return
		}
		ds = append(ds, d)
	}
	return
}
