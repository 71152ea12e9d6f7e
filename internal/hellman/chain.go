// Package hellman implements the Hellman time-memory trade-off subsystem:
// chain generation, the sorted-table algebra, the JSON/bin on-disk codecs,
// the content-addressed table directory, and the memory-bounded online
// attack.
package hellman

import (
	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
)

// Chain is a pair of equal-length truncated digest values: the point a
// chain was seeded from, and the point reached after walking it to its
// configured length.
type Chain struct {
	Start []byte
	End   []byte
}

// Reduce turns a truncated digest point back into hash input: prefix ‖
// point. prefix is drawn once per table and shared by every chain in it.
func Reduce(point, prefix []byte) []byte {
	out := make([]byte, 0, len(prefix)+len(point))
	out = append(out, prefix...)
	out = append(out, point...)
	return out
}

// Step performs one chain iteration: hash Reduce(point, prefix) and
// truncate the result to hashSize bytes.
func Step(h digest.Hasher, point, prefix []byte, hashSize int) []byte {
	reduced := Reduce(point, prefix)
	sum := h.Hash(reduced)
	return append([]byte(nil), sum.Truncate(hashSize)...)
}

// Walk applies Step steps times starting from point, returning the final
// point. Walk(h, p, prefix, s, L) called once must equal L calls of
// Walk(h, p, prefix, s, 1) chained together (chain idempotence, §8 property
// 3) since each step is a pure function of its input point.
func Walk(h digest.Hasher, point, prefix []byte, hashSize int, steps uint64) []byte {
	current := point
	for i := uint64(0); i < steps; i++ {
		current = Step(h, current, prefix, hashSize)
	}
	return current
}

// GenerateChain builds a chain of the given length from a random start
// point.
func GenerateChain(h digest.Hasher, prefix, startPoint []byte, hashSize int, length uint64) Chain {
	end := Walk(h, startPoint, prefix, hashSize, length)
	return Chain{Start: startPoint, End: end}
}
