package astisi

// TableID identifies the signaling table a descriptor list is carried in.
type TableID uint8

// Table IDs
// Chapter: 5.1.3 | Link: https://www.etsi.org/deliver/etsi_en/300400_300499/300468/01.15.01_60/en_300468v011501p.pdf
const (
	TableIDPAT TableID = 0x00
	TableIDCAT TableID = 0x01
	TableIDPMT TableID = 0x02

	TableIDNITActual TableID = 0x40
	TableIDNITOther  TableID = 0x41
	TableIDSDTActual TableID = 0x42
	TableIDSDTOther  TableID = 0x46

	TableIDBAT TableID = 0x4a

	TableIDEITStart TableID = 0x4e
	TableIDEITEnd   TableID = 0x6f

	TableIDTDT TableID = 0x70
	TableIDRST TableID = 0x71
	TableIDST  TableID = 0x72
	TableIDTOT TableID = 0x73

	TableIDDIT TableID = 0x7e
	TableIDSIT TableID = 0x7f

	TableIDNull TableID = 0xff
)

// Standards is a bit mask of the standards bodies whose tag assignments are in
// effect for a decode.
type Standards uint8

// Standards
const (
	StandardsMPEG Standards = 1 << iota
	StandardsDVB
	StandardsATSC
	StandardsISDB
)

// DescriptorContext carries the context needed to disambiguate raw descriptor
// tags while decoding one descriptor list. It is mutated only by the list
// codec, when a private data specifier record is decoded, and must not be
// shared between concurrent decodes. Reset it (or use a fresh value) between
// lists so a stale specifier never leaks into the next list.
type DescriptorContext struct {
	// TableID is the id of the enclosing table.
	TableID TableID
	// Standards restricts resolution to codecs registered for these
	// standards. Zero matches everything.
	Standards Standards
	// PrivateDataSpecifier is the value of the last private data specifier
	// descriptor seen in the current list, zero if none was seen.
	PrivateDataSpecifier uint32
}

// Reset clears the state accumulated while decoding a list, keeping the table
// id and standards set.
func (ctx *DescriptorContext) Reset() {
	ctx.PrivateDataSpecifier = 0
}
