package hellman

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

// Format names the on-disk table encoding, also used as the directory
// segment separating bin tables from json ones.
type Format string

const (
	FormatBin  Format = "bin"
	FormatJSON Format = "json"
)

// Directory is the content-addressed table store rooted at Root:
// Root/<hashSize>/<prefixSize>/<format>/table-<chainCount>-<chainLength>_<index>.
type Directory struct {
	Root string
}

// NewDirectory opens a table directory at root. The directory need not
// exist yet; WriteTable creates the s/p/format path lazily.
func NewDirectory(root string) *Directory {
	return &Directory{Root: root}
}

func (d *Directory) tableDir(hashSize, prefixSize int, format Format) string {
	return filepath.Join(d.Root, strconv.Itoa(hashSize), strconv.Itoa(prefixSize), string(format))
}

func (d *Directory) tablePath(hashSize, prefixSize int, format Format, chainCount, chainLength uint64, idx int) string {
	name := fmt.Sprintf("table-%d-%d_%d", chainCount, chainLength, idx)
	return filepath.Join(d.tableDir(hashSize, prefixSize, format), name)
}

func (d *Directory) lockPath(hashSize, prefixSize int, format Format) string {
	return filepath.Join(d.tableDir(hashSize, prefixSize, format), ".lock")
}

// parsedName is a table-<chainCount>-<chainLength>_<index> filename broken
// into its fields.
type parsedName struct {
	chainCount  uint64
	chainLength uint64
	index       int
}

// parseFilename mirrors tableio.rs's parse_filepath: split on "-" for the
// chain-count field, then on "_" for the chain-length/index pair.
func parseFilename(name string) (parsedName, bool) {
	if !strings.HasPrefix(name, "table-") {
		return parsedName{}, false
	}
	rest := strings.TrimPrefix(name, "table-")

	dash := strings.Index(rest, "-")
	if dash < 0 {
		return parsedName{}, false
	}
	countStr, rest := rest[:dash], rest[dash+1:]

	underscore := strings.LastIndex(rest, "_")
	if underscore < 0 {
		return parsedName{}, false
	}
	lengthStr, idxStr := rest[:underscore], rest[underscore+1:]

	count, err := strconv.ParseUint(countStr, 10, 64)
	if err != nil {
		return parsedName{}, false
	}
	length, err := strconv.ParseUint(lengthStr, 10, 64)
	if err != nil {
		return parsedName{}, false
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return parsedName{}, false
	}

	return parsedName{chainCount: count, chainLength: length, index: idx}, true
}

// isRightPath is tableio.rs's is_right_path: exact hashSize/prefixSize/
// format are implied by directory placement, so only chain length must
// match exactly while chain count may be a truncation (the stored table
// may carry more chains than requested; the reader takes only the first
// requiredChainCount of them).
func isRightPath(p parsedName, requiredChainCount, requiredChainLength uint64) bool {
	return p.chainLength == requiredChainLength && p.chainCount >= requiredChainCount
}

// ListTables enumerates table files under hashSize/prefixSize/format whose
// chain length matches exactly and whose stored chain count is at least
// requiredChainCount, returning at most limit paths (limit < 0 means no
// cap). Entries are returned in lexical filename order.
func (d *Directory) ListTables(hashSize, prefixSize int, format Format, requiredChainCount, requiredChainLength uint64, limit int) ([]string, error) {
	dir := d.tableDir(hashSize, prefixSize, format)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("hellman: list tables: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var paths []string
	for _, name := range names {
		parsed, ok := parseFilename(name)
		if !ok {
			continue
		}
		if !isRightPath(parsed, requiredChainCount, requiredChainLength) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
		if limit >= 0 && len(paths) >= limit {
			break
		}
	}

	return paths, nil
}

// WriteTable writes t under hashSize/prefixSize/format at the smallest free
// index >= startIdx (never overwriting an existing file) unless force is
// set, in which case startIdx itself is used and any existing file there is
// replaced. The write is lock-protected (§4.13): an exclusive flock on a
// sibling .lock file serialises concurrent writers probing for a free
// index, and the table itself is written to a temp file and renamed into
// place so a reader never observes a partial file.
func (d *Directory) WriteTable(hashSize, prefixSize int, format Format, t Table, chainLength uint64, startIdx int, force bool) (string, error) {
	dir := d.tableDir(hashSize, prefixSize, format)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("hellman: create table directory: %w", err)
	}

	lock := flock.New(d.lockPath(hashSize, prefixSize, format))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("hellman: acquire table directory lock: %w", err)
	}
	defer lock.Unlock()

	chainCount := uint64(len(t.Chains))

	idx := startIdx
	path := d.tablePath(hashSize, prefixSize, format, chainCount, chainLength, idx)
	if !force {
		for {
			if _, err := os.Stat(path); os.IsNotExist(err) {
				break
			}
			idx++
			path = d.tablePath(hashSize, prefixSize, format, chainCount, chainLength, idx)
		}
	}

	var (
		payload []byte
		err     error
	)
	switch format {
	case FormatBin:
		payload, err = EncodeBin(t)
	case FormatJSON:
		payload, err = EncodeJSON(t)
	default:
		return "", fmt.Errorf("hellman: unknown table format %q", format)
	}
	if err != nil {
		return "", err
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("hellman: open temp table file: %w", err)
	}
	if _, err := f.Write(payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("hellman: write temp table file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", fmt.Errorf("hellman: sync temp table file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("hellman: close temp table file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("hellman: rename table file into place: %w", err)
	}

	return path, nil
}

// ReadTable loads and decodes a single table file, truncating to
// maxChains chains (ReadAll for every chain in the file).
func ReadTable(path string, format Format, maxChains int) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("hellman: read table file: %w", err)
	}

	switch format {
	case FormatBin:
		return DecodeBin(data, maxChains)
	case FormatJSON:
		return DecodeJSON(data, maxChains)
	default:
		return Table{}, fmt.Errorf("hellman: unknown table format %q", format)
	}
}
