package hellman_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
	"github.com/kryvavyipotii/ripemd160attack/internal/hellman"
)

// targetFromEndPoint builds a digest whose trailing hashSize bytes equal
// endPoint; EqualUnder only ever inspects that suffix, so the leading
// bytes are immaterial.
func targetFromEndPoint(endPoint []byte) digest.Digest {
	var d digest.Digest
	copy(d[digest.Size-len(endPoint):], endPoint)
	return d
}

func TestExecuteOnlineFindsEmbeddedPreimage(t *testing.T) {
	h := digest.New()
	dir := hellman.NewDirectory(t.TempDir())

	const hashSize = 4
	const prefixSize = 3
	const chainLength = uint64(20)

	prefix := []byte{0x01, 0x02, 0x03}
	start := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	chain := hellman.GenerateChain(h, prefix, start, hashSize, chainLength)

	tbl := hellman.Table{Prefix: prefix, Chains: []hellman.Chain{chain}}
	tbl.Sort()

	_, err := dir.WriteTable(hashSize, prefixSize, hellman.FormatBin, tbl, chainLength, 0, false)
	require.NoError(t, err)

	target := targetFromEndPoint(chain.End)

	params := hellman.OnlineParams{
		HashSize:     hashSize,
		PrefixSize:   prefixSize,
		ChainCount:   1,
		ChainLength:  chainLength,
		TablesWanted: 1,
		BatchSize:    1,
		Format:       hellman.FormatBin,
	}

	result, err := hellman.ExecuteOnline(context.Background(), dir, h, target, params, nil)
	require.NoError(t, err)
	require.True(t, result.Found)

	wantPoint := hellman.Walk(h, start, prefix, hashSize, chainLength-1)
	wantPreimage := hellman.Reduce(wantPoint, prefix)
	assert.Equal(t, wantPreimage, result.Preimage)

	sum := h.Hash(result.Preimage)
	assert.True(t, sum.EqualUnder(target, hashSize))
}

func TestExecuteOnlineReturnsErrorWhenNoTablesMatch(t *testing.T) {
	h := digest.New()
	dir := hellman.NewDirectory(t.TempDir())

	params := hellman.OnlineParams{HashSize: 4, PrefixSize: 2, ChainCount: 10, ChainLength: 10, TablesWanted: 1, BatchSize: 1, Format: hellman.FormatBin}

	_, err := hellman.ExecuteOnline(context.Background(), dir, h, digest.Digest{}, params, nil)
	assert.Error(t, err)
}

func TestExecuteOnlineStopsOnCancellation(t *testing.T) {
	h := digest.New()
	dir := hellman.NewDirectory(t.TempDir())

	const hashSize = 4
	tbl, err := hellman.GenerateTable(h, hashSize, 2, 50, 5000)
	require.NoError(t, err)
	_, err = dir.WriteTable(hashSize, 2, hellman.FormatBin, tbl, 5000, 0, false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	params := hellman.OnlineParams{HashSize: hashSize, PrefixSize: 2, ChainCount: 50, ChainLength: 5000, TablesWanted: 1, BatchSize: 1, Format: hellman.FormatBin}

	result, err := hellman.ExecuteOnline(ctx, dir, h, digest.Digest{0x01}, params, nil)
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestOnlineParamsValidateRejectsOversizedHash(t *testing.T) {
	params := hellman.OnlineParams{HashSize: digest.Size + 1, PrefixSize: 2, ChainCount: 1, ChainLength: 1, Format: hellman.FormatBin}
	assert.Error(t, params.Validate())
}

func TestOnlineParamsValidateRejectsNonPositivePrefixSize(t *testing.T) {
	params := hellman.OnlineParams{HashSize: 4, PrefixSize: 0, ChainCount: 1, ChainLength: 1, Format: hellman.FormatBin}
	assert.Error(t, params.Validate())
}

func TestOnlineParamsValidateRejectsZeroChainCount(t *testing.T) {
	params := hellman.OnlineParams{HashSize: 4, PrefixSize: 2, ChainCount: 0, ChainLength: 1, Format: hellman.FormatBin}
	assert.Error(t, params.Validate())
}

func TestOnlineParamsValidateRejectsZeroChainLength(t *testing.T) {
	params := hellman.OnlineParams{HashSize: 4, PrefixSize: 2, ChainCount: 1, ChainLength: 0, Format: hellman.FormatBin}
	assert.Error(t, params.Validate())
}

func TestOnlineParamsValidateRejectsUnknownFormat(t *testing.T) {
	params := hellman.OnlineParams{HashSize: 4, PrefixSize: 2, ChainCount: 1, ChainLength: 1, Format: hellman.Format("xml")}
	assert.Error(t, params.Validate())
}

func TestOnlineParamsValidateAcceptsWellFormedParams(t *testing.T) {
	params := hellman.OnlineParams{HashSize: 4, PrefixSize: 2, ChainCount: 1, ChainLength: 1, Format: hellman.FormatJSON}
	assert.NoError(t, params.Validate())
}

func TestGenerateAndStoreWritesReadableTable(t *testing.T) {
	h := digest.New()
	dir := hellman.NewDirectory(t.TempDir())

	params := hellman.OnlineParams{HashSize: 4, PrefixSize: 2, ChainCount: 6, ChainLength: 10, Format: hellman.FormatJSON}

	path, err := hellman.GenerateAndStore(dir, h, params, 0, false)
	require.NoError(t, err)

	got, err := hellman.ReadTable(path, hellman.FormatJSON, hellman.ReadAll)
	require.NoError(t, err)
	assert.Len(t, got.Chains, 6)
}
