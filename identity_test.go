package astisi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorIdentity(t *testing.T) {
	// Same raw tag, different context, different identities
	ids := map[DescriptorIdentity]bool{
		StandardIdentity(0x83):                           true,
		PrivateIdentity(PrivateDataSpecifierEACEM, 0x83): true,
		TableIdentity(0x83, TableIDNITActual):            true,
		TableIdentity(0x83, TableIDSDTActual):            true,
	}
	assert.Len(t, ids, 4)
	assert.Equal(t, StandardIdentity(0x83), StandardIdentity(0x83))
}

func TestResolveTableSpecific(t *testing.T) {
	// The same raw tag registered table-specific for two tables dispatches to
	// different codecs
	r := NewDescriptorRegistry()
	a := &DescriptorCodec{
		Identities: []DescriptorIdentity{TableIdentity(0x90, TableIDNITActual)},
		XMLName:    "a_descriptor",
		Decode:     decodeDescriptorNetworkName,
	}
	b := &DescriptorCodec{
		Identities: []DescriptorIdentity{TableIdentity(0x90, TableIDSDTActual)},
		XMLName:    "b_descriptor",
		Decode:     decodeDescriptorStreamIdentifier,
	}
	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(b))

	bs := []byte{0x90, 0x01, 0x07}
	ds, err := r.DecodeDescriptors(NewBitCursor(bs), &DescriptorContext{TableID: TableIDNITActual})
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.IsType(t, &DescriptorNetworkName{}, ds[0])

	ds, err = r.DecodeDescriptors(NewBitCursor(bs), &DescriptorContext{TableID: TableIDSDTActual})
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.IsType(t, &DescriptorStreamIdentifier{}, ds[0])
}

func TestResolvePrecedence(t *testing.T) {
	// Table-specific beats private when both could apply
	r := NewDescriptorRegistry()
	tableSpecific := &DescriptorCodec{
		Identities: []DescriptorIdentity{TableIdentity(0x90, TableIDNITActual)},
		XMLName:    "table_specific_descriptor",
		Decode:     decodeDescriptorStreamIdentifier,
	}
	private := &DescriptorCodec{
		Identities: []DescriptorIdentity{PrivateIdentity(7, 0x90)},
		XMLName:    "private_descriptor",
		Decode:     decodeDescriptorNetworkName,
	}
	require.NoError(t, r.Register(tableSpecific))
	require.NoError(t, r.Register(private))

	ctx := &DescriptorContext{TableID: TableIDNITActual, PrivateDataSpecifier: 7}
	id, codec := r.resolve(0x90, 0, false, ctx)
	assert.Equal(t, TableIdentity(0x90, TableIDNITActual), id)
	assert.Equal(t, tableSpecific, codec)

	// Private applies once the table context changes
	ctx.TableID = TableIDSDTActual
	id, codec = r.resolve(0x90, 0, false, ctx)
	assert.Equal(t, PrivateIdentity(7, 0x90), id)
	assert.Equal(t, private, codec)

	// Standard fallback without a specifier
	ctx.PrivateDataSpecifier = 0
	id, codec = r.resolve(0x90, 0, false, ctx)
	assert.Equal(t, StandardIdentity(0x90), id)
	assert.Nil(t, codec)
}

func TestDescriptorTagIsUserDefined(t *testing.T) {
	assert.False(t, DescriptorTag(0x48).IsUserDefined())
	assert.False(t, DescriptorTag(0x7f).IsUserDefined())
	assert.True(t, DescriptorTag(0x80).IsUserDefined())
	assert.True(t, DescriptorTag(0xfe).IsUserDefined())
	assert.False(t, DescriptorTag(0xff).IsUserDefined())
}

func TestResolvePrivateOnlyUserDefined(t *testing.T) {
	// A specifier scopes the user-defined range only: a standard-range tag
	// keeps its standard identity even with a specifier in effect
	r := NewDescriptorRegistry()
	private := &DescriptorCodec{
		Identities: []DescriptorIdentity{PrivateIdentity(7, DescriptorTagService)},
		XMLName:    "private_service_descriptor",
		Decode:     decodeDescriptorNetworkName,
	}
	require.NoError(t, r.Register(private))

	userDefined := &DescriptorCodec{
		Identities: []DescriptorIdentity{PrivateIdentity(7, 0x90)},
		XMLName:    "private_user_defined_descriptor",
		Decode:     decodeDescriptorStreamIdentifier,
	}
	require.NoError(t, r.Register(userDefined))

	ctx := &DescriptorContext{PrivateDataSpecifier: 7}
	id, codec := r.resolve(DescriptorTagService, 0, false, ctx)
	assert.Equal(t, StandardIdentity(DescriptorTagService), id)
	assert.Nil(t, codec)

	id, codec = r.resolve(0x90, 0, false, ctx)
	assert.Equal(t, PrivateIdentity(7, 0x90), id)
	assert.Equal(t, userDefined, codec)
}

func TestResolveStandardsFilter(t *testing.T) {
	r := NewDescriptorRegistry()
	atsc := &DescriptorCodec{
		Identities: []DescriptorIdentity{StandardIdentity(0x81)},
		XMLName:    "atsc_only_descriptor",
		Standards:  StandardsATSC,
		Decode:     decodeDescriptorStreamIdentifier,
	}
	require.NoError(t, r.Register(atsc))

	_, codec := r.resolve(0x81, 0, false, &DescriptorContext{Standards: StandardsDVB})
	assert.Nil(t, codec)
	_, codec = r.resolve(0x81, 0, false, &DescriptorContext{Standards: StandardsATSC})
	assert.Equal(t, atsc, codec)
	// No standards in effect matches everything
	_, codec = r.resolve(0x81, 0, false, &DescriptorContext{})
	assert.Equal(t, atsc, codec)
}
