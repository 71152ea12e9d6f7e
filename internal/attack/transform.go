package attack

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	mrand "math/rand"
	"time"
)

// similarityClasses lists the visual-similarity classes exactly as specified:
// characters in the same class are mutually exclusive substitution candidates.
// A character matching no class mutates to '*'.
var similarityClasses = []string{
	"aA@4",
	"b6",
	"B%&8",
	"cC([{",
	"DoO0",
	"eE3",
	"f+",
	"gq9?",
	"iIlL|!1",
	"sS$5",
	"tT7",
	"uUvV",
	"zZ2",
	"-=~",
	"\t _",
}

const noMatchFallback = '*'

// Transform produces the next candidate message derived from a fixed base
// message. A Transform carries its own private PRNG or counter state and
// must never be shared between goroutines; Clone returns an independent copy
// so each worker can step its own stream.
type Transform interface {
	Next(base string) string
	Clone() Transform
}

// newSeededRand returns a math/rand source seeded from the OS CSPRNG, the
// per-thread PRNG the transform operations draw from.
func newSeededRand() *mrand.Rand {
	var seed [8]byte
	if _, err := rand.Read(seed[:]); err != nil {
		// crypto/rand failure on a sane OS is not something callers can act
		// on; fall back to a time-derived seed rather than a fixed constant.
		binary.BigEndian.PutUint64(seed[:], uint64(time.Now().UnixNano()))
	}
	return mrand.New(mrand.NewSource(int64(binary.BigEndian.Uint64(seed[:])))) //nolint:gosec // non-cryptographic candidate generation
}

// AppendRandomNumber produces base + decimal(r) where r is sampled uniformly
// in [1, 2^100) on every call.
type AppendRandomNumber struct {
	rng *mrand.Rand
	max *big.Int
}

// NewAppendRandomNumber constructs an AppendRandomNumber transform with a
// fresh OS-seeded PRNG.
func NewAppendRandomNumber() *AppendRandomNumber {
	return &AppendRandomNumber{
		rng: newSeededRand(),
		max: new(big.Int).Lsh(big.NewInt(1), 100),
	}
}

func (t *AppendRandomNumber) Next(base string) string {
	r := new(big.Int).Rand(t.rng, new(big.Int).Sub(t.max, big.NewInt(1)))
	r.Add(r, big.NewInt(1)) // shift [0, 2^100-1) to [1, 2^100)
	return base + r.String()
}

func (t *AppendRandomNumber) Clone() Transform {
	return &AppendRandomNumber{rng: newSeededRand(), max: t.max}
}

// Mutate performs a per-character random substitution: for each character of
// base, one of four operations is chosen with equal probability (case-flip,
// random printable ASCII, visual-similarity substitution, identity).
type Mutate struct {
	rng *mrand.Rand
}

// NewMutate constructs a Mutate transform with a fresh OS-seeded PRNG.
func NewMutate() *Mutate {
	return &Mutate{rng: newSeededRand()}
}

func (t *Mutate) Next(base string) string {
	out := make([]byte, 0, len(base))
	for _, r := range base {
		out = append(out, t.mutateRune(r)...)
	}
	return string(out)
}

func (t *Mutate) mutateRune(r rune) []byte {
	switch t.rng.Intn(4) {
	case 0:
		return []byte(string(flipCase(r)))
	case 1:
		return []byte{byte(0x20 + t.rng.Intn(0x7E-0x20+1))}
	case 2:
		return []byte{t.similarMember(r)}
	default:
		return []byte(string(r))
	}
}

func flipCase(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z':
		return r - ('a' - 'A')
	case r >= 'A' && r <= 'Z':
		return r + ('a' - 'A')
	default:
		return r
	}
}

func (t *Mutate) similarMember(r rune) byte {
	for _, class := range similarityClasses {
		idx := -1
		for i, c := range class {
			if c == r {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		pick := t.rng.Intn(len(class))
		return class[pick]
	}
	return noMatchFallback
}

func (t *Mutate) Clone() Transform {
	return &Mutate{rng: newSeededRand()}
}

// AppendNumberInSequence produces base + decimal(counter) and increments
// counter on every call. SetStart assigns a disjoint counter range to a
// parallel worker.
type AppendNumberInSequence struct {
	counter uint64
}

// NewAppendNumberInSequence constructs a sequence transform starting at 1.
func NewAppendNumberInSequence() *AppendNumberInSequence {
	return &AppendNumberInSequence{counter: 1}
}

func (t *AppendNumberInSequence) Next(base string) string {
	s := base + fmt.Sprintf("%d", t.counter)
	t.counter++
	return s
}

// SetStart assigns the next counter value to be returned.
func (t *AppendNumberInSequence) SetStart(n uint64) {
	t.counter = n
}

func (t *AppendNumberInSequence) Clone() Transform {
	return &AppendNumberInSequence{counter: t.counter}
}
