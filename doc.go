// Package astisi decodes and encodes the descriptors embedded in MPEG-2/DVB
// signaling tables: short tag-length-value records annotating services, streams
// and events.
//
// The package is built around three pieces:
//   - BitCursor: a bit-granular cursor over a caller-owned byte region with
//     nested length-bounded scopes and a sticky error flag
//   - DescriptorIdentity: a canonical key disambiguating the overloaded tag
//     space (base MPEG tags, DVB tags, extension sub-tags, private tags scoped
//     by a private data specifier, table-specific reuse)
//   - DescriptorRegistry: an explicit, immutable-after-build table mapping
//     identities and XML element names to concrete descriptor codecs
//
// Concrete descriptor payloads plug into the framework through the Descriptor
// interface and a DescriptorCodec registration; decode never panics on
// malformed broadcast input, and unregistered descriptors survive round-trips
// byte-for-byte as DescriptorUnknown values.
package astisi
