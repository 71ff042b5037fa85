package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"logpulse/internal/generators"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts generators.Options

	cmd := &cobra.Command{
		Use:   "loggen",
		Short: "loggen emits synthetic log lines for feeding the logpulse monitor",
		Long: `loggen writes synthetic log lines to stdout in the grammar the monitor
parses, with a tunable level mix, message pool, malformed share and pacing.
Pipe it straight in:

  loggen --rate 50 --count 10000 | logpulse`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.Seed, "seed", 0, "rng seed (0 seeds from the clock)")
	flags.Float64Var(&opts.Rate, "rate", 20, "lines per second")
	flags.Uint64Var(&opts.Count, "count", 0, "total lines to emit (0 = run until interrupted)")
	flags.IntVar(&opts.InfoWeight, "info-weight", 70, "relative weight of INFO lines")
	flags.IntVar(&opts.ErrorWeight, "error-weight", 20, "relative weight of ERROR lines")
	flags.IntVar(&opts.DebugWeight, "debug-weight", 10, "relative weight of DEBUG lines")
	flags.IntVar(&opts.PoolSize, "pool-size", 8, "distinct messages per level")
	flags.Float64Var(&opts.ErrorCodeRatio, "error-code-ratio", 0.5, "share of ERROR lines with an Error NNN prefix")
	flags.Float64Var(&opts.MalformedRatio, "malformed-ratio", 0.02, "share of lines violating the grammar")
	flags.DurationVar(&opts.BurstEvery, "burst-every", 0, "burst cycle length (0 disables bursts)")
	flags.DurationVar(&opts.BurstFor, "burst-for", 10*time.Second, "burst slice at the start of each cycle")
	flags.Float64Var(&opts.BurstFactor, "burst-factor", 5, "rate multiplier during bursts")

	return cmd
}

func run(opts generators.Options) error {
	gen, err := generators.NewLineGenerator(opts, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := gen.Run(ctx)
	fmt.Fprintf(os.Stderr, "emitted %d lines in %s (info=%d error=%d debug=%d malformed=%d)\n",
		sum.Lines, sum.Elapsed.Round(time.Millisecond), sum.Info, sum.Error, sum.Debug, sum.Malformed)

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
