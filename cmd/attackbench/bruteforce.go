package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kryvavyipotii/ripemd160attack/internal/attack"
	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
	"github.com/kryvavyipotii/ripemd160attack/internal/driver"
)

func newTransform(name string) (attack.Transform, error) {
	switch name {
	case "append-random":
		return attack.NewAppendRandomNumber(), nil
	case "mutate":
		return attack.NewMutate(), nil
	case "sequence":
		return attack.NewAppendNumberInSequence(), nil
	default:
		return nil, fmt.Errorf("unknown --transform %q (want append-random, mutate, or sequence)", name)
	}
}

func newBruteForceCmd(app *appCtx) *cobra.Command {
	var (
		message       string
		hashSize      int
		threads       int
		probability   float64
		verboseTries  uint64
		transformName string
		runs          int
	)

	cmd := &cobra.Command{
		Use:   "bruteforce",
		Short: "Brute-force search for a preimage of the base message's truncated RIPEMD-160 digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := newTransform(transformName)
			if err != nil {
				return err
			}
			// The target is always the truncated hash of the unmutated base
			// message, computed once (spec.md §4.3, original_source's
			// AttackState::messagehash()) — never externally supplied.
			targetDigest := digest.New().Hash([]byte(message))

			params := attack.BruteForceParams{
				Target:       targetDigest,
				HashSize:     hashSize,
				Threads:      threads,
				Probability:  probability,
				VerboseTries: verboseTries,
			}
			if err := params.Validate(); err != nil {
				return err
			}

			ctx, cancel := driver.SignalCancel(cmd.Context())
			defer cancel()

			state := attack.NewState(digest.New, message, tr)
			d := driver.New(state)

			results := d.Execute(ctx, runs, false, func(ctx context.Context, s *attack.State) attack.Result {
				return attack.RunBruteForce(ctx, s, params, app.log)
			})

			for i, r := range results {
				app.log.Info("bruteforce run finished", "run", i, "kind", r.Kind.String(), "iterations", r.Iterations)
				fmt.Println(formatResult(r))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "base message whose digest is the preimage target")
	cmd.Flags().IntVar(&hashSize, "hash-size", 1, "truncated hash width in bytes (1-20)")
	cmd.Flags().IntVar(&threads, "threads", 1, "worker count for the silent phase")
	cmd.Flags().Float64Var(&probability, "probability", 0.95, "desired success probability, drives the iteration budget")
	cmd.Flags().Uint64Var(&verboseTries, "verbose-tries", 0, "number of leading iterations to log individually")
	cmd.Flags().StringVar(&transformName, "transform", "sequence", "candidate transform: append-random, mutate, sequence")
	cmd.Flags().IntVar(&runs, "runs", 1, "number of independent attack runs to perform")

	return cmd
}

func formatResult(r attack.Result) string {
	switch r.Kind {
	case attack.PreimageSuccess:
		return fmt.Sprintf("SUCCESS preimage=%q iterations=%d", r.Preimage.Message, r.Iterations)
	case attack.CollisionSuccess:
		return fmt.Sprintf("SUCCESS first=%q second=%q iterations=%d", r.FirstHash.Message, r.SecondHash.Message, r.Iterations)
	default:
		return fmt.Sprintf("FAILURE reason=%q iterations=%d", r.Reason, r.Iterations)
	}
}
