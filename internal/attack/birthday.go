package attack

import (
	"context"
	"sync"
	"time"

	"github.com/kryvavyipotii/ripemd160attack/internal/metrics"
)

const birthdayMetricKind = "birthday"

// BirthdayParams configures a birthday (collision) search.
type BirthdayParams struct {
	HashSize     int
	Probability  float64
	VerboseTries uint64
	Threads      int
}

// Validate rejects the same construction-time errors as BruteForceParams.
func (p BirthdayParams) Validate() error {
	return BruteForceParams{HashSize: p.HashSize, Probability: p.Probability, Threads: p.Threads}.Validate()
}

// degenerateScanFloor is the entries-per-worker threshold below which the
// collision scan's effective worker count is reduced, per §4.4.
const degenerateScanFloor = 10000

// RunBirthday searches for two distinct candidate messages whose digests
// agree under params.HashSize bytes. base is cloned once internally; the
// single generation stream runs on the calling goroutine while each
// iteration's collision scan fans out across params.Threads workers.
func RunBirthday(ctx context.Context, base *State, params BirthdayParams, log Logger) Result {
	if log == nil {
		log = NopLogger{}
	}
	start := time.Now()

	n := ExpectedBirthdayTries(params.HashSize, params.Probability)
	verboseLen := params.VerboseTries
	if verboseLen > n {
		verboseLen = n
	}

	log.Info("INIT", "engine", "birthday", "hash_size", params.HashSize, "budget", n, "threads", params.Threads)

	state := base.Clone()
	var observed []MessageHash

	for i := uint64(1); i <= n; i++ {
		select {
		case <-ctx.Done():
			log.Info("TERM", "engine", "birthday", "iteration", i)
			result := NewGeneralFailure(reasonTerminated, i-1)
			recordRun(birthdayMetricKind, result, start)
			return result
		default:
		}

		candidate := state.Next(i)
		metrics.IterationsTotal.WithLabelValues(birthdayMetricKind).Inc()
		verbose := i <= verboseLen
		if verbose {
			log.Debug("iteration", "iteration", i, "message", candidate.Message)
		}

		observed = append(observed, candidate)

		if idx, found := scanForCollision(observed, candidate, params.HashSize, params.Threads); found {
			result := NewCollisionSuccess(observed[idx], candidate, i)
			log.Info("SUCCESS", "engine", "birthday", "i", idx, "j", len(observed)-1)
			recordRun(birthdayMetricKind, result, start)
			return result
		}
	}

	log.Info("FAILURE", "engine", "birthday", "iterations", n)
	result := NewGeneralFailure("Failed to find collision", n)
	recordRun(birthdayMetricKind, result, start)
	return result
}

// scanForCollision partitions observed into contiguous ranges across up to
// threads workers, each comparing every entry in its range against newest.
// The newest entry's own index trivially fails CollidesWith (identical
// message), so no explicit self-exclusion is needed.
func scanForCollision(observed []MessageHash, newest MessageHash, s, threads int) (int, bool) {
	total := len(observed)
	if total == 0 {
		return 0, false
	}

	workers := threads
	if workers < 1 {
		workers = 1
	}
	if total/workers < degenerateScanFloor {
		workers = total / degenerateScanFloor
		if workers < 1 {
			workers = 1
		}
	}
	if workers > total {
		workers = total
	}

	type hit struct {
		idx   int
		found bool
	}

	resultsCh := make(chan hit, workers)
	var wg sync.WaitGroup

	perWorker := total / workers
	remainder := total % workers
	cursor := 0

	for w := 0; w < workers; w++ {
		count := perWorker
		if w < remainder {
			count++
		}
		lo, hi := cursor, cursor+count
		cursor = hi

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for idx := lo; idx < hi; idx++ {
				if observed[idx].CollidesWith(newest, s) {
					resultsCh <- hit{idx: idx, found: true}
					return
				}
			}
			resultsCh <- hit{found: false}
		}(lo, hi)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	best := -1
	for h := range resultsCh {
		if h.found && (best == -1 || h.idx < best) {
			best = h.idx
		}
	}
	if best >= 0 {
		return best, true
	}
	return 0, false
}
