// Command attackbench runs the truncated-RIPEMD-160 attack benchmarks:
// brute-force preimage search, birthday-paradox collision search, and the
// Hellman time-memory trade-off (table generation + online attack).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kryvavyipotii/ripemd160attack/internal/config"
	"github.com/kryvavyipotii/ripemd160attack/internal/logging"
	"github.com/kryvavyipotii/ripemd160attack/internal/metrics"
)

// appCtx carries the dependencies every subcommand's RunE needs,
// resolved once in the root command's PersistentPreRunE — mirrors the
// teacher's cmd/chaos-runner/main.go construct-config-then-dispatch
// shape.
type appCtx struct {
	cfg config.RunConfig
	log logging.Logger
}

func newRootCmd() *cobra.Command {
	app := &appCtx{}

	var configPath string
	var logLevel string
	var logFormat string
	var metricsEnabled bool
	var metricsAddr string

	root := &cobra.Command{
		Use:           "attackbench",
		Short:         "Benchmark classical attacks against truncated RIPEMD-160",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Logging.Format = logFormat
			}
			if cmd.Flags().Changed("metrics") {
				cfg.Metrics.Enabled = metricsEnabled
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.Metrics.Addr = metricsAddr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			format := logging.FormatText
			if cfg.Logging.Format == "json" {
				format = logging.FormatJSON
			}
			app.cfg = cfg
			app.log = logging.New(logging.Config{Level: cfg.Logging.Level, Format: format, Output: os.Stderr})

			if cfg.Metrics.Enabled {
				srv := metrics.NewServer(cfg.Metrics.Addr)
				errCh := srv.Start(cmd.Context())
				go func() {
					if err := <-errCh; err != nil {
						app.log.Warn("metrics server stopped", "error", err)
					}
				}()
			}

			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML run configuration")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text, json")
	root.PersistentFlags().BoolVar(&metricsEnabled, "metrics", false, "expose Prometheus metrics over HTTP")
	root.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", ":9090", "address for the Prometheus exporter")

	root.AddCommand(newBruteForceCmd(app))
	root.AddCommand(newBirthdayCmd(app))
	root.AddCommand(newHellmanCmd(app))

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "attackbench:", err)
		os.Exit(1)
	}
}
