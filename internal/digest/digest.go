// Package digest wraps RIPEMD-160 behind a narrow hashing interface and
// provides truncated-suffix comparison, the building block every attack
// in this repository compares against.
package digest

import (
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // intentionally attacking the truncated primitive
)

// Size is the width in bytes of a full RIPEMD-160 digest.
const Size = 20

// Digest is a fixed-width RIPEMD-160 output.
type Digest [Size]byte

// Truncate returns the trailing s bytes of d (the low-order suffix).
// s=0 returns an empty slice; s>=Size returns the full digest.
func (d Digest) Truncate(s int) []byte {
	if s <= 0 {
		return nil
	}
	if s >= Size {
		return d[:]
	}
	return d[Size-s:]
}

// EqualUnder reports whether d and other agree on their trailing s bytes.
// s=0 always returns true.
func (d Digest) EqualUnder(other Digest, s int) bool {
	if s <= 0 {
		return true
	}
	if s > Size {
		s = Size
	}
	return string(d[Size-s:]) == string(other[Size-s:])
}

// Hasher hashes an arbitrary byte sequence to a fixed-width Digest. A Hasher
// is stateful (its internal accumulator resets on every call) but must never
// be shared across goroutines — each worker owns its own instance.
type Hasher interface {
	Hash(data []byte) Digest
}

type ripemdHasher struct {
	h ripemd160hash
}

// ripemd160hash narrows the stdlib-shaped hash.Hash interface to the three
// methods ripemdHasher actually uses.
type ripemd160hash interface {
	Write(p []byte) (int, error)
	Sum(b []byte) []byte
	Reset()
}

// New returns a Hasher backed by RIPEMD-160 (IETF/ISO/IEC 10118-3), the
// exact primitive §4.1 requires.
func New() Hasher {
	return &ripemdHasher{h: ripemd160.New()}
}

func (r *ripemdHasher) Hash(data []byte) Digest {
	r.h.Reset()
	_, _ = r.h.Write(data)

	var out Digest
	copy(out[:], r.h.Sum(nil))
	return out
}
