package attack

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
	"github.com/kryvavyipotii/ripemd160attack/internal/metrics"
)

const bruteForceMetricKind = "bruteforce"

// BruteForceParams configures a brute-force preimage search.
type BruteForceParams struct {
	Target      digest.Digest
	HashSize    int // s, in bytes
	Probability float64
	VerboseTries uint64
	Threads     int
}

// Validate rejects the configuration errors named in §7: hash size > 20,
// thread count = 0.
func (p BruteForceParams) Validate() error {
	if p.HashSize < 0 || p.HashSize > digest.Size {
		return fmt.Errorf("hash size %d outside [0, %d]", p.HashSize, digest.Size)
	}
	if p.Threads == 0 {
		return fmt.Errorf("thread count must be at least 1")
	}
	if p.Probability <= 0 || p.Probability >= 1 {
		return fmt.Errorf("probability must be in (0, 1), got %v", p.Probability)
	}
	return nil
}

// workerMsg is one worker's terminal report, arriving over the bounded
// producer/consumer channel.
type workerMsg struct {
	result     Result
	iterations uint64
}

const reasonTerminated = "Attack terminated"

// RunBruteForce searches for a second message whose digest matches
// params.Target under params.HashSize bytes, starting from base. base is
// cloned per worker; base itself is left untouched.
func RunBruteForce(ctx context.Context, base *State, params BruteForceParams, log Logger) Result {
	if log == nil {
		log = NopLogger{}
	}
	start := time.Now()

	n := ExpectedBruteForceTries(params.HashSize, params.Probability)
	verboseLen := params.VerboseTries
	if verboseLen > n {
		verboseLen = n
	}

	log.Info("INIT", "engine", "bruteforce", "hash_size", params.HashSize, "budget", n, "threads", params.Threads)

	_, sequence := base.Transform.(*AppendNumberInSequence)
	verboseWorkers := 1
	if sequence {
		verboseWorkers = params.Threads
	}

	verboseResult, verboseDone := runPreimagePhase(ctx, base, params, 1, verboseLen, verboseWorkers, true, log)
	if verboseResult.Success() {
		verboseResult.Iterations = verboseDone
		log.Info("SUCCESS", "engine", "bruteforce", "iterations", verboseDone)
		recordRun(bruteForceMetricKind, verboseResult, start)
		return verboseResult
	}
	if verboseResult.Kind == GeneralFailure && verboseResult.Reason == reasonTerminated {
		log.Info("TERM", "engine", "bruteforce", "iterations", verboseDone)
		verboseResult.Iterations = verboseDone
		recordRun(bruteForceMetricKind, verboseResult, start)
		return verboseResult
	}

	if verboseLen >= n {
		log.Info("FAILURE", "engine", "bruteforce", "iterations", verboseDone)
		result := NewGeneralFailure("Failed to find preimage", verboseDone)
		recordRun(bruteForceMetricKind, result, start)
		return result
	}

	silentResult, silentDone := runPreimagePhase(ctx, base, params, verboseLen+1, n, params.Threads, false, log)
	total := verboseDone + silentDone

	if silentResult.Success() {
		silentResult.Iterations = total
		log.Info("SUCCESS", "engine", "bruteforce", "iterations", total)
		recordRun(bruteForceMetricKind, silentResult, start)
		return silentResult
	}
	if silentResult.Kind == GeneralFailure && silentResult.Reason == reasonTerminated {
		log.Info("TERM", "engine", "bruteforce", "iterations", total)
		result := NewGeneralFailure(reasonTerminated, total)
		recordRun(bruteForceMetricKind, result, start)
		return result
	}

	log.Info("FAILURE", "engine", "bruteforce", "iterations", total)
	result := NewGeneralFailure("Failed to find preimage", total)
	recordRun(bruteForceMetricKind, result, start)
	return result
}

// recordRun records a completed engine run's outcome and wall-clock
// duration since start. Metrics recording is best-effort and never blocks
// a search iteration (SPEC_FULL.md §4.12): a counter increment and a
// histogram observation are both plain in-process ops, never a network
// call.
func recordRun(kind string, result Result, start time.Time) {
	metrics.RunsTotal.WithLabelValues(kind, result.Kind.metricLabel()).Inc()
	metrics.RunDurationSeconds.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// runPreimagePhase partitions iterations [start, end] across workers workers
// and runs them concurrently, returning the first success (or cancellation)
// and the total number of iterations actually performed.
func runPreimagePhase(ctx context.Context, base *State, params BruteForceParams, start, end uint64, workers int, verbose bool, log Logger) (Result, uint64) {
	if end < start {
		return NewGeneralFailure("Failed to find preimage", 0), 0
	}
	total := end - start + 1
	if workers < 1 {
		workers = 1
	}
	if uint64(workers) > total {
		workers = int(total)
	}

	localCtx, localCancel := context.WithCancel(ctx)
	defer localCancel()

	resultsCh := make(chan workerMsg, workers)
	var wg sync.WaitGroup

	perWorker := total / uint64(workers)
	remainder := total % uint64(workers)
	cursor := start

	_, sequence := base.Transform.(*AppendNumberInSequence)

	for w := 0; w < workers; w++ {
		count := perWorker
		if uint64(w) < remainder {
			count++
		}
		workerStart := cursor
		cursor += count

		workerState := base.Clone()
		if sequence {
			workerState.Transform.(*AppendNumberInSequence).SetStart(workerStart)
		}

		wg.Add(1)
		go func(state *State, iterStart, count uint64) {
			defer wg.Done()
			resultsCh <- bruteForceWorker(localCtx, state, params, iterStart, count, verbose, log)
		}(workerState, workerStart, count)
	}

	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	var best Result
	haveSuccess := false
	cancelled := false
	var totalDone uint64

	for msg := range resultsCh {
		totalDone += msg.iterations
		switch {
		case msg.result.Kind == PreimageSuccess && !haveSuccess:
			best = msg.result
			haveSuccess = true
			localCancel()
		case msg.result.Kind == GeneralFailure && msg.result.Reason == reasonTerminated:
			cancelled = true
		}
	}

	if haveSuccess {
		return best, totalDone
	}
	if cancelled {
		return NewGeneralFailure(reasonTerminated, totalDone), totalDone
	}
	return NewGeneralFailure("Failed to find preimage", totalDone), totalDone
}

func bruteForceWorker(ctx context.Context, state *State, params BruteForceParams, iterStart, count uint64, verbose bool, log Logger) workerMsg {
	for i := uint64(0); i < count; i++ {
		select {
		case <-ctx.Done():
			return workerMsg{result: NewGeneralFailure(reasonTerminated, i), iterations: i}
		default:
		}

		iteration := iterStart + i
		candidate := state.Next(iteration)
		metrics.IterationsTotal.WithLabelValues(bruteForceMetricKind).Inc()
		if verbose {
			log.Debug("iteration", "iteration", iteration, "message", candidate.Message)
		}
		if candidate.Hash.EqualUnder(params.Target, params.HashSize) {
			return workerMsg{result: NewPreimageSuccess(candidate, i+1), iterations: i + 1}
		}
	}
	return workerMsg{result: NewGeneralFailure("Failed to find preimage", count), iterations: count}
}
