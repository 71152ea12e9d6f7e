package digest_test

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
)

func TestHashDeterminism(t *testing.T) {
	h := digest.New()
	a := h.Hash([]byte("Some huge message"))
	b := h.Hash([]byte("Some huge message"))
	assert.Equal(t, a, b)
}

func TestHashKnownVector(t *testing.T) {
	// RIPEMD-160("abc") per ISO/IEC 10118-3 test vectors.
	want, err := hex.DecodeString("8eb208f7e05d987a9b044a8e98c6b087f15a0bfc")
	require.NoError(t, err)

	h := digest.New()
	got := h.Hash([]byte("abc"))

	assert.Equal(t, want, got[:])
}

func TestTruncationMonotonicity(t *testing.T) {
	h := digest.New()
	a := h.Hash([]byte("alpha"))
	b := h.Hash([]byte("beta"))

	for s := 0; s <= digest.Size; s++ {
		if !a.EqualUnder(b, s) {
			for sp := s; sp <= digest.Size; sp++ {
				assert.Falsef(t, a.EqualUnder(b, sp),
					"equal_under(a,b,%d) was false but equal_under(a,b,%d) was true", s, sp)
			}
			return
		}
	}
}

func TestEqualUnderZeroAlwaysTrue(t *testing.T) {
	h := digest.New()
	a := h.Hash([]byte("x"))
	b := h.Hash([]byte("y"))
	assert.True(t, a.EqualUnder(b, 0))
}

func TestTruncateSuffix(t *testing.T) {
	var d digest.Digest
	for i := range d {
		d[i] = byte(i)
	}
	got := d.Truncate(3)
	want := []byte{17, 18, 19}
	assert.Equal(t, want, got)
}
