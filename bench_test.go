package astisi

import (
	"os"
	"testing"

	"github.com/pkg/profile"
)

// Set ASTISI_PROFILE=cpu or ASTISI_PROFILE=mem to write a profile of the
// test run to the working directory.
func TestMain(m *testing.M) {
	var p interface{ Stop() }
	switch os.Getenv("ASTISI_PROFILE") {
	case "cpu":
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	case "mem":
		p = profile.Start(profile.MemProfile, profile.ProfilePath("."))
	}
	code := m.Run()
	if p != nil {
		p.Stop()
	}
	os.Exit(code)
}

func benchmarkDescriptorsBytes(b *testing.B) []byte {
	r := DefaultRegistry()
	bs, err := r.EncodeDescriptorsBytes([]Descriptor{
		&DescriptorService{
			Type:     ServiceTypeDigitalTelevisionService,
			Provider: []byte("Provider"),
			Name:     []byte("Service"),
		},
		&DescriptorShortEvent{
			Language:  [3]byte{'e', 'n', 'g'},
			EventName: []byte("Event name"),
			Text:      []byte("Event text that is a bit longer"),
		},
		&DescriptorPrivateDataSpecifier{Specifier: PrivateDataSpecifierEACEM},
		&DescriptorLogicalChannel{Items: []DescriptorLogicalChannelItem{
			{ServiceID: 0x1001, Visible: true, ChannelNumber: 1},
			{ServiceID: 0x1002, Visible: true, ChannelNumber: 2},
		}},
		newDescriptorUnknown(0x41, 0, false, []byte{0x05}),
	})
	if err != nil {
		b.Fatal(err)
	}
	return bs
}

func BenchmarkDecodeDescriptors(b *testing.B) {
	r := DefaultRegistry()
	bs := benchmarkDescriptorsBytes(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ctx := DescriptorContext{}
		if _, err := r.DecodeDescriptors(NewBitCursor(bs), &ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEncodeDescriptorsBytes(b *testing.B) {
	r := DefaultRegistry()
	bs := benchmarkDescriptorsBytes(b)
	ds, err := r.DecodeDescriptors(NewBitCursor(bs), &DescriptorContext{})
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.EncodeDescriptorsBytes(ds); err != nil {
			b.Fatal(err)
		}
	}
}
