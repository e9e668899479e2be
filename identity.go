package astisi

import "fmt"

// IdentitySpace is the namespace a descriptor tag lives in.
type IdentitySpace uint8

// Identity spaces
const (
	// IdentitySpaceStandard covers tags whose meaning is fixed by MPEG or DVB
	// regardless of context.
	IdentitySpaceStandard IdentitySpace = iota
	// IdentitySpacePrivate covers tags whose meaning is scoped by the last
	// private data specifier seen in the same descriptor list.
	IdentitySpacePrivate
	// IdentitySpaceExtension covers the one-byte sub-tags carried inside the
	// reserved extension tag 0x7f.
	IdentitySpaceExtension
	// IdentitySpaceTable covers tags reused with a different meaning depending
	// on the enclosing table.
	IdentitySpaceTable
)

// DescriptorIdentity is the canonical, comparable key for one descriptor
// codec. Two byte streams carrying the same numeric tag under different
// context resolve to different identities. Zero value is Standard(0x00).
type DescriptorIdentity struct {
	Space     IdentitySpace
	Tag       DescriptorTag
	ExtTag    uint8   // extension sub-tag, Extension space only
	Specifier uint32  // private data specifier, Private space only
	TableID   TableID // enclosing table id, Table space only
}

// StandardIdentity returns the identity of a context-free tag.
func StandardIdentity(t DescriptorTag) DescriptorIdentity {
	return DescriptorIdentity{Space: IdentitySpaceStandard, Tag: t}
}

// PrivateIdentity returns the identity of tag t under private data specifier
// pds.
func PrivateIdentity(pds uint32, t DescriptorTag) DescriptorIdentity {
	return DescriptorIdentity{Space: IdentitySpacePrivate, Tag: t, Specifier: pds}
}

// ExtensionIdentity returns the identity of extension sub-tag ext.
func ExtensionIdentity(ext uint8) DescriptorIdentity {
	return DescriptorIdentity{Space: IdentitySpaceExtension, Tag: DescriptorTagExtension, ExtTag: ext}
}

// TableIdentity returns the identity of tag t when carried inside table tid.
func TableIdentity(t DescriptorTag, tid TableID) DescriptorIdentity {
	return DescriptorIdentity{Space: IdentitySpaceTable, Tag: t, TableID: tid}
}

// String implements the fmt.Stringer interface
func (id DescriptorIdentity) String() string {
	switch id.Space {
	case IdentitySpacePrivate:
		return fmt.Sprintf("private %#08x tag %#02x", id.Specifier, uint8(id.Tag))
	case IdentitySpaceExtension:
		return fmt.Sprintf("extension tag %#02x", id.ExtTag)
	case IdentitySpaceTable:
		return fmt.Sprintf("tag %#02x in table %#02x", uint8(id.Tag), uint8(id.TableID))
	default:
		return fmt.Sprintf("tag %#02x", uint8(id.Tag))
	}
}
