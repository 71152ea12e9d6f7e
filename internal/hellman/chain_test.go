package hellman_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
	"github.com/kryvavyipotii/ripemd160attack/internal/hellman"
)

func TestWalkIsStrideIndependent(t *testing.T) {
	h := digest.New()
	prefix := []byte("fixed-prefix")
	start := []byte{0x01, 0x02, 0x03, 0x04}

	direct := hellman.Walk(h, start, prefix, len(start), 10)

	mid := hellman.Walk(h, start, prefix, len(start), 4)
	rest := hellman.Walk(h, mid, prefix, len(start), 6)

	assert.Equal(t, direct, rest, "walking 10 steps at once must match walking 4 then 6")
}

func TestWalkZeroStepsIsIdentity(t *testing.T) {
	h := digest.New()
	start := []byte{0xAA, 0xBB}

	got := hellman.Walk(h, start, []byte("p"), len(start), 0)

	assert.Equal(t, start, got)
}

func TestReduceIsPrefixThenPoint(t *testing.T) {
	got := hellman.Reduce([]byte{0x01}, []byte{0x02, 0x03})
	require.Equal(t, []byte{0x02, 0x03, 0x01}, got)
}

func TestDifferentPrefixesProduceDifferentChains(t *testing.T) {
	h := digest.New()
	start := []byte{0x10, 0x20, 0x30, 0x40}

	a := hellman.GenerateChain(h, []byte("prefix-a"), start, len(start), 8)
	b := hellman.GenerateChain(h, []byte("prefix-b"), start, len(start), 8)

	assert.NotEqual(t, a.End, b.End)
}
