package hellman_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
	"github.com/kryvavyipotii/ripemd160attack/internal/hellman"
)

func sampleTable(t *testing.T) hellman.Table {
	t.Helper()
	h := digest.New()
	tbl, err := hellman.GenerateTable(h, 4, 3, 16, 12)
	require.NoError(t, err)
	return tbl
}

func TestBinCodecRoundTrip(t *testing.T) {
	tbl := sampleTable(t)

	data, err := hellman.EncodeBin(tbl)
	require.NoError(t, err)

	got, err := hellman.DecodeBin(data, hellman.ReadAll)
	require.NoError(t, err)

	assert.Equal(t, tbl.Prefix, got.Prefix)
	assert.Equal(t, tbl.Chains, got.Chains)
}

func TestBinCodecTruncatedRead(t *testing.T) {
	tbl := sampleTable(t)

	data, err := hellman.EncodeBin(tbl)
	require.NoError(t, err)

	got, err := hellman.DecodeBin(data, 4)
	require.NoError(t, err)

	assert.Len(t, got.Chains, 4)
	assert.Equal(t, tbl.Chains[:4], got.Chains)
}

func TestJSONCodecRoundTrip(t *testing.T) {
	tbl := sampleTable(t)

	data, err := hellman.EncodeJSON(tbl)
	require.NoError(t, err)

	got, err := hellman.DecodeJSON(data, hellman.ReadAll)
	require.NoError(t, err)

	assert.Equal(t, tbl.Prefix, got.Prefix)
	assert.Equal(t, tbl.Chains, got.Chains)
}

func TestJSONCodecTruncatedRead(t *testing.T) {
	tbl := sampleTable(t)

	data, err := hellman.EncodeJSON(tbl)
	require.NoError(t, err)

	got, err := hellman.DecodeJSON(data, 5)
	require.NoError(t, err)

	assert.Len(t, got.Chains, 5)
}

func TestDecodeBinRejectsTruncatedHeader(t *testing.T) {
	_, err := hellman.DecodeBin([]byte{0x00, 0x01}, hellman.ReadAll)
	assert.Error(t, err)
}
