package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
	"github.com/kryvavyipotii/ripemd160attack/internal/driver"
	"github.com/kryvavyipotii/ripemd160attack/internal/hellman"
)

func parseFormat(name string) (hellman.Format, error) {
	switch name {
	case "bin":
		return hellman.FormatBin, nil
	case "json":
		return hellman.FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown --format %q (want bin or json)", name)
	}
}

func newHellmanCmd(app *appCtx) *cobra.Command {
	hellmanCmd := &cobra.Command{
		Use:   "hellman",
		Short: "Hellman time-memory trade-off: precompute tables and run the online attack",
	}

	hellmanCmd.AddCommand(newHellmanGenerateCmd(app))
	hellmanCmd.AddCommand(newHellmanExecuteCmd(app))
	hellmanCmd.AddCommand(newHellmanConvertCmd(app))

	return hellmanCmd
}

func newHellmanGenerateCmd(app *appCtx) *cobra.Command {
	var (
		dir         string
		hashSize    int
		prefixSize  int
		chainCount  uint64
		chainLength uint64
		formatName  string
		startIdx    int
		force       bool
		tableCount  int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Precompute one or more Hellman chain tables and write them to disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(formatName)
			if err != nil {
				return err
			}

			directory := hellman.NewDirectory(dir)
			params := hellman.OnlineParams{
				HashSize:    hashSize,
				PrefixSize:  prefixSize,
				ChainCount:  chainCount,
				ChainLength: chainLength,
				Format:      format,
			}
			if err := params.Validate(); err != nil {
				return err
			}

			for i := 0; i < tableCount; i++ {
				path, err := hellman.GenerateAndStore(directory, digest.New(), params, startIdx, force)
				if err != nil {
					return err
				}
				app.log.Info("hellman table generated", "path", path)
				fmt.Println(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "./tables", "table directory root")
	cmd.Flags().IntVar(&hashSize, "hash-size", 4, "truncated hash width in bytes")
	cmd.Flags().IntVar(&prefixSize, "prefix-size", 2, "reduction prefix width in bytes")
	cmd.Flags().Uint64Var(&chainCount, "chain-count", 1000, "chains per table")
	cmd.Flags().Uint64Var(&chainLength, "chain-length", 1000, "steps per chain")
	cmd.Flags().StringVar(&formatName, "format", "bin", "table encoding: bin or json")
	cmd.Flags().IntVar(&startIdx, "start-index", 0, "smallest table index to try")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing table at start-index instead of probing for a free one")
	cmd.Flags().IntVar(&tableCount, "count", 1, "number of tables to generate")

	return cmd
}

func newHellmanExecuteCmd(app *appCtx) *cobra.Command {
	var (
		dir          string
		message      string
		hashSize     int
		prefixSize   int
		chainCount   uint64
		chainLength  uint64
		tablesWanted int
		batchSize    int
		formatName   string
	)

	cmd := &cobra.Command{
		Use:   "execute",
		Short: "Search precomputed tables for a preimage of the base message's truncated digest",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(formatName)
			if err != nil {
				return err
			}

			// The target is always the truncated hash of the unmutated base
			// message, computed once (spec.md §4.3, original_source's
			// init_current_points hashing AttackState::messagehash()) —
			// never externally supplied.
			targetDigest := digest.New().Hash([]byte(message))

			ctx, cancel := driver.SignalCancel(cmd.Context())
			defer cancel()

			directory := hellman.NewDirectory(dir)
			params := hellman.OnlineParams{
				HashSize:     hashSize,
				PrefixSize:   prefixSize,
				ChainCount:   chainCount,
				ChainLength:  chainLength,
				TablesWanted: tablesWanted,
				BatchSize:    batchSize,
				Format:       format,
			}
			if err := params.Validate(); err != nil {
				return err
			}

			result, err := hellman.ExecuteOnline(ctx, directory, digest.New(), targetDigest, params, app.log)
			if err != nil {
				return err
			}

			if result.Found {
				fmt.Printf("SUCCESS preimage=%x iterations=%d tables_used=%d\n", result.Preimage, result.Iterations, result.TablesUsed)
			} else {
				fmt.Printf("FAILURE iterations=%d tables_used=%d\n", result.Iterations, result.TablesUsed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "./tables", "table directory root")
	cmd.Flags().StringVar(&message, "message", "", "base message whose digest is the preimage target")
	cmd.Flags().IntVar(&hashSize, "hash-size", 4, "truncated hash width in bytes")
	cmd.Flags().IntVar(&prefixSize, "prefix-size", 2, "reduction prefix width in bytes")
	cmd.Flags().Uint64Var(&chainCount, "chain-count", 1000, "minimum chains required per table")
	cmd.Flags().Uint64Var(&chainLength, "chain-length", 1000, "steps per chain")
	cmd.Flags().IntVar(&tablesWanted, "tables", 1, "total tables to consult before giving up")
	cmd.Flags().IntVar(&batchSize, "batch-size", 1, "tables held in memory at once")
	cmd.Flags().StringVar(&formatName, "format", "bin", "table encoding: bin or json")

	return cmd
}

func newHellmanConvertCmd(app *appCtx) *cobra.Command {
	var (
		inPath     string
		inFormat   string
		outPath    string
		outFormat  string
		maxChains  int
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Re-encode a table file between the bin and json formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseFormat(inFormat)
			if err != nil {
				return err
			}
			to, err := parseFormat(outFormat)
			if err != nil {
				return err
			}

			t, err := hellman.ReadTable(inPath, from, maxChains)
			if err != nil {
				return err
			}

			var payload []byte
			switch to {
			case hellman.FormatBin:
				payload, err = hellman.EncodeBin(t)
			case hellman.FormatJSON:
				payload, err = hellman.EncodeJSON(t)
			}
			if err != nil {
				return err
			}

			if err := writeFile(outPath, payload); err != nil {
				return err
			}
			app.log.Info("hellman table converted", "from", inPath, "to", outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "source table file")
	cmd.Flags().StringVar(&inFormat, "in-format", "bin", "source format: bin or json")
	cmd.Flags().StringVar(&outPath, "out", "", "destination table file")
	cmd.Flags().StringVar(&outFormat, "out-format", "json", "destination format: bin or json")
	cmd.Flags().IntVar(&maxChains, "max-chains", hellman.ReadAll, "cap on chains carried over (-1 for all)")
	cmd.MarkFlagRequired("in")
	cmd.MarkFlagRequired("out")

	return cmd
}
