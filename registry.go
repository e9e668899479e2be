package astisi

import (
	"fmt"

	"github.com/asticode/go-astikit"
)

// MergeBehavior describes what a codec wants done when a descriptor with its
// identity is added to a list that already holds one.
type MergeBehavior uint8

// Merge behaviors
const (
	// MergeReplace replaces the previous occurrence.
	MergeReplace MergeBehavior = iota
	// MergeAppend keeps both occurrences.
	MergeAppend
	// MergeCombine folds the new occurrence into the previous one through the
	// codec's MergeFunc.
	MergeCombine
)

// DescriptorDecoder decodes one payload from a cursor bounded to exactly that
// payload.
type DescriptorDecoder func(c *BitCursor, ctx *DescriptorContext) (Descriptor, error)

// DescriptorXMLParser builds a descriptor back from its XML element.
type DescriptorXMLParser func(e *XMLElement) (Descriptor, error)

// DescriptorCodec describes one registered descriptor type: the identities it
// answers to for binary dispatch, the element names it answers to for XML
// dispatch, and its decode capabilities. Encode capabilities live on the
// Descriptor values themselves.
type DescriptorCodec struct {
	// Identities the codec is dispatched under. Several identities may point
	// at the same codec, e.g. a descriptor reused verbatim under two table
	// contexts.
	Identities []DescriptorIdentity
	// XMLName is the canonical element name, also emitted on build.
	XMLName string
	// XMLAliases are legacy element names recognized on parse only.
	XMLAliases []string
	// Standards restricts binary dispatch to decodes running under one of
	// these standards. Zero matches everything.
	Standards Standards
	Decode    DescriptorDecoder
	ParseXML  DescriptorXMLParser
	Merge     MergeBehavior
	// MergeFunc folds src into dst when Merge is MergeCombine.
	MergeFunc func(dst, src Descriptor) Descriptor
}

// DescriptorRegistry maps descriptor identities and XML element names to
// codecs. Build it once during start-up; if registration fails the process has
// a build-time defect. After that it is read-only, so lookups from concurrent
// decodes need no locking.
type DescriptorRegistry struct {
	byIdentity map[DescriptorIdentity]*DescriptorCodec
	byXMLName  map[string]*DescriptorCodec
	l          astikit.CompleteLogger
}

// NewDescriptorRegistry creates an empty registry.
func NewDescriptorRegistry(opts ...func(*DescriptorRegistry)) (r *DescriptorRegistry) {
	r = &DescriptorRegistry{
		byIdentity: make(map[DescriptorIdentity]*DescriptorCodec),
		byXMLName:  make(map[string]*DescriptorCodec),
		l:          astikit.AdaptStdLogger(nil),
	}
	for _, opt := range opts {
		opt(r)
	}
	return
}

// RegistryOptLogger returns the option to set the logger
func RegistryOptLogger(l astikit.StdLogger) func(*DescriptorRegistry) {
	return func(r *DescriptorRegistry) {
		r.l = astikit.AdaptStdLogger(l)
	}
}

// Register adds a codec under all its identities and element names.
// Re-registering the same codec is a no-op; claiming a key held by a different
// codec returns an error wrapping ErrRegistryConflict.
func (r *DescriptorRegistry) Register(c *DescriptorCodec) error {
	for _, id := range c.Identities {
		if prev, ok := r.byIdentity[id]; ok && prev != c {
			return fmt.Errorf("astisi: registering %s failed: %w", id, ErrRegistryConflict)
		}
	}
	names := append([]string{c.XMLName}, c.XMLAliases...)
	for _, n := range names {
		if prev, ok := r.byXMLName[n]; ok && prev != c {
			return fmt.Errorf("astisi: registering element %q failed: %w", n, ErrRegistryConflict)
		}
	}
	for _, id := range c.Identities {
		r.byIdentity[id] = c
	}
	for _, n := range names {
		r.byXMLName[n] = c
	}
	return nil
}

// MustRegister is like Register but panics on conflict. Meant for static
// start-up registration, where a conflict is a programming error.
func (r *DescriptorRegistry) MustRegister(c *DescriptorCodec) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

// LookupByIdentity returns the codec registered under id, nil if none.
func (r *DescriptorRegistry) LookupByIdentity(id DescriptorIdentity) *DescriptorCodec {
	return r.byIdentity[id]
}

// LookupByXMLName returns the codec answering to element name n, nil if none.
func (r *DescriptorRegistry) LookupByXMLName(n string) *DescriptorCodec {
	return r.byXMLName[n]
}

// resolve maps a raw tag plus context to an identity and, when one is
// registered, its codec. Precedence for an ambiguous tag is table-specific
// first, then private under the specifier in effect (user-defined tags only),
// then standard; the returned identity is the first candidate with a
// registered codec, or the standard identity when none matched.
func (r *DescriptorRegistry) resolve(tag DescriptorTag, extTag uint8, isExt bool, ctx *DescriptorContext) (DescriptorIdentity, *DescriptorCodec) {
	if isExt {
		id := ExtensionIdentity(extTag)
		return id, r.match(id, ctx)
	}
	if id := TableIdentity(tag, ctx.TableID); r.match(id, ctx) != nil {
		return id, r.byIdentity[id]
	}
	if ctx.PrivateDataSpecifier != 0 && tag.IsUserDefined() {
		if id := PrivateIdentity(ctx.PrivateDataSpecifier, tag); r.match(id, ctx) != nil {
			return id, r.byIdentity[id]
		}
	}
	id := StandardIdentity(tag)
	return id, r.match(id, ctx)
}

// match looks an identity up and filters it against the standards in effect.
func (r *DescriptorRegistry) match(id DescriptorIdentity, ctx *DescriptorContext) *DescriptorCodec {
	c := r.byIdentity[id]
	if c == nil {
		return nil
	}
	if c.Standards != 0 && ctx.Standards != 0 && c.Standards&ctx.Standards == 0 {
		return nil
	}
	return c
}
