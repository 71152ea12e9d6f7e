package hellman

import (
	"context"
	"fmt"
	"time"

	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
	"github.com/kryvavyipotii/ripemd160attack/internal/metrics"
)

const hellmanMetricKind = "hellman"

// Logger is the minimal logging surface the hellman package depends on,
// satisfied structurally by internal/logging.Logger without an import
// coupling (mirrors internal/attack.Logger).
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// NopLogger discards everything; the zero value is ready to use.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}

// OnlineParams configures the memory-bounded online attack (§4.7).
type OnlineParams struct {
	HashSize    int
	PrefixSize  int
	ChainCount  uint64 // C: chains required per table
	ChainLength uint64 // L: steps per chain
	TablesWanted int   // K: total tables to consult before giving up
	BatchSize    int   // M <= K: tables held in memory at once
	Format       Format
}

// Result is the outcome of an online attack run: a recovered preimage
// point under the matched table's prefix, or a clean exhaustion.
type Result struct {
	Found      bool
	Preimage   []byte
	Iterations uint64
	TablesUsed int
}

// Validate rejects the construction-time configuration errors §7 names
// for the Hellman subsystem, mirroring
// original_source/src/hashattacks/hellman.rs's Hellman::build: hash size
// larger than a full digest, a reduction function whose output would not
// exceed the hash size (i.e. a nonpositive prefix), nonpositive chain
// counts/lengths, and an unrecognised table format.
func (p OnlineParams) Validate() error {
	if p.HashSize <= 0 || p.HashSize > digest.Size {
		return fmt.Errorf("hash size %d outside [1, %d]", p.HashSize, digest.Size)
	}
	if p.PrefixSize < 1 {
		return fmt.Errorf("reduction function output can not be smaller than the hash value: prefix size must be >= 1, got %d", p.PrefixSize)
	}
	if p.ChainCount == 0 {
		return fmt.Errorf("chain count must be at least 1")
	}
	if p.ChainLength == 0 {
		return fmt.Errorf("chain length must be at least 1")
	}
	switch p.Format {
	case FormatBin, FormatJSON:
	default:
		return fmt.Errorf("invalid table file format %q", p.Format)
	}
	return nil
}

// ExecuteOnline searches tables under dir for a preimage of target,
// loading at most BatchSize tables into memory at a time (§4.7's memory
// bound) and consulting at most TablesWanted tables overall. It mirrors
// hellman.rs's process_tables/try_find_point/try_find_preimage: each
// table keeps one "current point" seeded from the target; every step
// binary-searches each table's end-point list for its current point and
// advances only the points that found no match. A match is verified by rewalking chainLength-j-1
// steps from the chain's stored start, reducing once more under the
// table's prefix, and re-hashing — a mismatch is a merged-chain false
// positive and search continues rather than failing outright.
func ExecuteOnline(ctx context.Context, dir *Directory, h digest.Hasher, target digest.Digest, params OnlineParams, log Logger) (Result, error) {
	if log == nil {
		log = NopLogger{}
	}
	start := time.Now()

	paths, err := dir.ListTables(params.HashSize, params.PrefixSize, params.Format, params.ChainCount, params.ChainLength, params.TablesWanted)
	if err != nil {
		return Result{}, err
	}
	if len(paths) == 0 {
		return Result{}, fmt.Errorf("hellman: no tables available under %s matching s=%d p=%d C=%d L=%d", dir.Root, params.HashSize, params.PrefixSize, params.ChainCount, params.ChainLength)
	}

	targetPoint := append([]byte(nil), target.Truncate(params.HashSize)...)

	var iterations uint64
	batch := params.BatchSize
	if batch <= 0 || batch > len(paths) {
		batch = len(paths)
	}

	for offset := 0; offset < len(paths); offset += batch {
		end := offset + batch
		if end > len(paths) {
			end = len(paths)
		}

		tables := make([]Table, 0, end-offset)
		for _, p := range paths[offset:end] {
			t, err := ReadTable(p, params.Format, int(params.ChainCount))
			if err != nil {
				return Result{}, err
			}
			t.Sort()
			tables = append(tables, t)
		}
		log.Info("hellman: loaded table batch", "count", len(tables), "offset", offset)
		metrics.HellmanTablesLoaded.Set(float64(len(tables)))

		currentPoints := make([][]byte, len(tables))
		for i := range tables {
			currentPoints[i] = append([]byte(nil), targetPoint...)
		}

		for j := uint64(0); j < params.ChainLength; j++ {
			select {
			case <-ctx.Done():
				result := Result{Found: false, Iterations: iterations, TablesUsed: offset + len(tables)}
				metrics.RunsTotal.WithLabelValues(hellmanMetricKind, "terminated").Inc()
				metrics.RunDurationSeconds.WithLabelValues(hellmanMetricKind).Observe(time.Since(start).Seconds())
				return result, nil
			default:
			}

			for ti, tbl := range tables {
				if chain, ok := tbl.SearchByEndPoint(currentPoints[ti]); ok {
					rewalkSteps := params.ChainLength - j - 1
					candidatePoint := Walk(h, chain.Start, tbl.Prefix, params.HashSize, rewalkSteps)
					reduced := Reduce(candidatePoint, tbl.Prefix)
					sum := h.Hash(reduced)
					if sum.EqualUnder(target, params.HashSize) {
						result := Result{
							Found:      true,
							Preimage:   reduced,
							Iterations: iterations + 1,
							TablesUsed: offset + ti + 1,
						}
						metrics.RunsTotal.WithLabelValues(hellmanMetricKind, "preimage_success").Inc()
						metrics.RunDurationSeconds.WithLabelValues(hellmanMetricKind).Observe(time.Since(start).Seconds())
						return result, nil
					}
					log.Debug("hellman: rejected merged-chain false positive", "table", offset+ti, "step", j)
				} else {
					currentPoints[ti] = Step(h, currentPoints[ti], tbl.Prefix, params.HashSize)
				}
			}
			iterations++
			metrics.IterationsTotal.WithLabelValues(hellmanMetricKind).Inc()
		}
	}

	result := Result{Found: false, Iterations: iterations, TablesUsed: len(paths)}
	metrics.RunsTotal.WithLabelValues(hellmanMetricKind, "general_failure").Inc()
	metrics.RunDurationSeconds.WithLabelValues(hellmanMetricKind).Observe(time.Since(start).Seconds())
	return result, nil
}

// GenerateAndStore builds a fresh table and writes it into dir at the
// smallest free index >= startIdx, the combination the "hellman generate"
// CLI subcommand drives (§4.9).
func GenerateAndStore(dir *Directory, h digest.Hasher, params OnlineParams, startIdx int, force bool) (string, error) {
	t, err := GenerateTable(h, params.HashSize, params.PrefixSize, params.ChainCount, params.ChainLength)
	if err != nil {
		return "", err
	}
	return dir.WriteTable(params.HashSize, params.PrefixSize, params.Format, t, params.ChainLength, startIdx, force)
}
