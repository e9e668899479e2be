package astisi

// codecDescriptorUnknown dispatches the unknown_descriptor XML element; the
// binary direction needs no registration since unknown is the fallback.
var codecDescriptorUnknown = &DescriptorCodec{
	XMLName:  "unknown_descriptor",
	ParseXML: parseXMLDescriptorUnknown,
	Merge:    MergeAppend,
}

// DefaultRegistry builds a registry holding every descriptor codec shipped
// with the package. Build it once at start-up and share it between decodes; it
// is immutable afterwards.
func DefaultRegistry(opts ...func(*DescriptorRegistry)) *DescriptorRegistry {
	r := NewDescriptorRegistry(opts...)
	for _, c := range []*DescriptorCodec{
		codecDescriptorUnknown,
		codecDescriptorRegistration,
		codecDescriptorDataStreamAlignment,
		codecDescriptorISO639Language,
		codecDescriptorMaximumBitrate,
		codecDescriptorPrivateDataIndicator,
		codecDescriptorNetworkName,
		codecDescriptorService,
		codecDescriptorShortEvent,
		codecDescriptorExtendedEvent,
		codecDescriptorStreamIdentifier,
		codecDescriptorContent,
		codecDescriptorParentalRating,
		codecDescriptorLocalTimeOffset,
		codecDescriptorPrivateDataSpecifier,
		codecDescriptorSupplementaryAudio,
		codecDescriptorLogicalChannel,
	} {
		r.MustRegister(c)
	}
	return r
}
