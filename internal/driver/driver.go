// Package driver implements the experiment driver: repeating a single
// engine invocation across multiple runs, restoring or advancing the base
// message between runs, and wiring process-lifetime signal cancellation.
package driver

import (
	"context"

	"github.com/kryvavyipotii/ripemd160attack/internal/attack"
)

// Engine runs one attack invocation against state and returns its result.
type Engine func(ctx context.Context, state *attack.State) attack.Result

// Driver repeats an Engine up to a configured number of runs, capturing the
// base message at construction and re-installing it (or advancing it) after
// every run so runs are independent.
type Driver struct {
	state       *attack.State
	baseMessage string
}

// New captures state.Message as the base message for run restoration.
func New(state *attack.State) *Driver {
	return &Driver{state: state, baseMessage: state.Message}
}

// Execute invokes engine up to runs times. Between runs: if transformInitial
// is true, the state's transform is applied once to the base message to
// produce the next starting message; otherwise the base message is
// restored verbatim. If ctx is cancelled before a run starts, Execute
// returns the partial results collected so far.
func (d *Driver) Execute(ctx context.Context, runs int, transformInitial bool, engine Engine) []attack.Result {
	results := make([]attack.Result, 0, runs)

	for run := 0; run < runs; run++ {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		results = append(results, engine(ctx, d.state))

		if transformInitial {
			d.state.SetMessage(d.state.Transform.Next(d.baseMessage))
		} else {
			d.state.SetMessage(d.baseMessage)
		}
	}

	return results
}
