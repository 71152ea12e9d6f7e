package hellman

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// ReadAll requests every chain present in a table file; pass to
// DecodeBin/DecodeJSON's maxChains parameter.
const ReadAll = -1

// EncodeBin serialises t to the "bin" on-disk format (§4.5):
//   bytes 0..2   point size in bytes, big-endian u16
//   bytes 2..6   chain count, big-endian u32
//   next C*2s    chains as concatenated (start, end) pairs
//   remainder    prefix
func EncodeBin(t Table) ([]byte, error) {
	if len(t.Chains) == 0 {
		return nil, fmt.Errorf("hellman: table is empty")
	}

	pointSize := len(t.Chains[0].Start)
	chainCount := len(t.Chains)

	out := make([]byte, 6, 6+chainCount*2*pointSize+len(t.Prefix))
	binary.BigEndian.PutUint16(out[0:2], uint16(pointSize))
	binary.BigEndian.PutUint32(out[2:6], uint32(chainCount))

	for _, c := range t.Chains {
		if len(c.Start) != pointSize || len(c.End) != pointSize {
			return nil, fmt.Errorf("hellman: inconsistent point size in chain set")
		}
		out = append(out, c.Start...)
		out = append(out, c.End...)
	}
	out = append(out, t.Prefix...)

	return out, nil
}

// DecodeBin parses the "bin" format. maxChains caps how many chains are
// read (in file order, pre-sort order for truncated reads is undefined);
// pass ReadAll to read every chain the header declares.
func DecodeBin(data []byte, maxChains int) (Table, error) {
	if len(data) < 6 {
		return Table{}, fmt.Errorf("hellman: truncated table header")
	}

	pointSize := int(binary.BigEndian.Uint16(data[0:2]))
	chainCount := int(binary.BigEndian.Uint32(data[2:6]))
	if pointSize <= 0 {
		return Table{}, fmt.Errorf("hellman: invalid point size %d", pointSize)
	}

	chainSize := pointSize * 2
	prefixStart := 6 + chainCount*chainSize
	if prefixStart > len(data) {
		return Table{}, fmt.Errorf("hellman: table header claims %d chains but file is truncated", chainCount)
	}

	want := chainCount
	if maxChains != ReadAll && maxChains < want {
		want = maxChains
	}

	chains := make([]Chain, 0, want)
	offset := 6
	for i := 0; i < want; i++ {
		start := append([]byte(nil), data[offset:offset+pointSize]...)
		offset += pointSize
		end := append([]byte(nil), data[offset:offset+pointSize]...)
		offset += pointSize
		chains = append(chains, Chain{Start: start, End: end})
	}

	prefix := append([]byte(nil), data[prefixStart:]...)

	return Table{Prefix: prefix, Chains: chains}, nil
}

// jsonChain mirrors the §4.5 JSON variant's [start, end] pair.
type jsonChain [2][]byte

type jsonTable struct {
	Chains []jsonChain `json:"chains"`
	Prefix []byte      `json:"prefix"`
}

// EncodeJSON serialises t to {"chains": [[start, end], ...], "prefix": ...}.
func EncodeJSON(t Table) ([]byte, error) {
	jt := jsonTable{Chains: make([]jsonChain, len(t.Chains)), Prefix: t.Prefix}
	for i, c := range t.Chains {
		jt.Chains[i] = jsonChain{c.Start, c.End}
	}
	return json.Marshal(jt)
}

// DecodeJSON parses the JSON variant, truncating to maxChains entries in
// file order (pass ReadAll for every chain present).
func DecodeJSON(data []byte, maxChains int) (Table, error) {
	var jt jsonTable
	if err := json.Unmarshal(data, &jt); err != nil {
		return Table{}, fmt.Errorf("hellman: decode json table: %w", err)
	}

	want := len(jt.Chains)
	if maxChains != ReadAll && maxChains < want {
		want = maxChains
	}

	chains := make([]Chain, want)
	for i := 0; i < want; i++ {
		chains[i] = Chain{Start: jt.Chains[i][0], End: jt.Chains[i][1]}
	}

	return Table{Prefix: jt.Prefix, Chains: chains}, nil
}
