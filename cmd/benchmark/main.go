package main

import (
	"context"
	"os"
	"runtime/pprof"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	profileKey    = "profile"
	iterationsKey = "iterations"
	repeatsKey    = "repeats"
	updatesKey    = "updates"
	workersKey    = "workers"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	var stopProfile func()
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure propagation and async scheduling of the reactive package",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file, empty to disable",
				Value: "default.pgo",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			path := cmd.String(profileKey)
			if path == "" {
				return ctx, nil
			}
			f, err := os.Create(path)
			if err != nil {
				return ctx, errors.Wrapf(err, "creating profile %s", path)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				f.Close()
				return ctx, errors.Wrap(err, "starting cpu profile")
			}
			stopProfile = func() {
				pprof.StopCPUProfile()
				f.Close()
			}
			return ctx, nil
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			if stopProfile != nil {
				stopProfile()
			}
			return nil
		},
		Commands: []*cli.Command{
			propagateCommand(logger),
			graphCommand(logger),
			asyncCommand(logger),
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("benchmark failed", zap.Error(err))
	}
}
