package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kryvavyipotii/ripemd160attack/internal/attack"
	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
	"github.com/kryvavyipotii/ripemd160attack/internal/driver"
)

func newBirthdayCmd(app *appCtx) *cobra.Command {
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
		Use:   "birthdays",
		Short: "Birthday-paradox search for a collision under truncated RIPEMD-160",
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := newTransform(transformName)
			if err != nil {
				return err
			}

			params := attack.BirthdayParams{
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
				return attack.RunBirthday(ctx, s, params, app.log)
			})

			for i, r := range results {
				app.log.Info("birthday run finished", "run", i, "kind", r.Kind.String(), "iterations", r.Iterations)
				fmt.Println(formatResult(r))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&message, "message", "", "base message the collision search mutates from")
	cmd.Flags().IntVar(&hashSize, "hash-size", 1, "truncated hash width in bytes (1-20)")
	cmd.Flags().IntVar(&threads, "threads", 1, "worker count for the collision scan")
	cmd.Flags().Float64Var(&probability, "probability", 0.95, "desired success probability, drives the iteration budget")
	cmd.Flags().Uint64Var(&verboseTries, "verbose-tries", 0, "number of leading iterations to log individually")
	cmd.Flags().StringVar(&transformName, "transform", "mutate", "candidate transform: append-random, mutate, sequence")
	cmd.Flags().IntVar(&runs, "runs", 1, "number of independent attack runs to perform")

	return cmd
}
