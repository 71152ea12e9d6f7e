package hellman

import (
	"bytes"
	"crypto/rand"
	"sort"

	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
)

// Table is a set of chains sharing one reduction prefix, sorted by end
// point ascending after generation to enable binary search.
type Table struct {
	Prefix []byte
	Chains []Chain
}

// GenerateTable builds a table of chainCount independent chains of the
// given length under a freshly drawn random prefix, then sorts it.
func GenerateTable(h digest.Hasher, hashSize, prefixSize int, chainCount, chainLength uint64) (Table, error) {
	prefix, err := randomBytes(prefixSize)
	if err != nil {
		return Table{}, err
	}

	t := Table{Prefix: prefix, Chains: make([]Chain, 0, chainCount)}
	for i := uint64(0); i < chainCount; i++ {
		start, err := randomBytes(hashSize)
		if err != nil {
			return Table{}, err
		}
		t.Chains = append(t.Chains, GenerateChain(h, prefix, start, hashSize, chainLength))
	}

	t.Sort()
	return t, nil
}

func randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Sort orders the chains by end point ascending.
func (t *Table) Sort() {
	sort.Slice(t.Chains, func(i, j int) bool {
		return bytes.Compare(t.Chains[i].End, t.Chains[j].End) < 0
	})
}

// SearchByEndPoint binary-searches the (assumed sorted) chain list for an
// exact end-point match, returning the matching chain and whether one was
// found.
func (t Table) SearchByEndPoint(point []byte) (Chain, bool) {
	n := len(t.Chains)
	idx := sort.Search(n, func(i int) bool {
		return bytes.Compare(t.Chains[i].End, point) >= 0
	})
	if idx < n && bytes.Equal(t.Chains[idx].End, point) {
		return t.Chains[idx], true
	}
	return Chain{}, false
}
