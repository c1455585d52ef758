package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/delaneyj/signalflow/reactive"
)

// asyncCounts tallies async lifecycle events.
type asyncCounts struct {
	reactive.NopHooks
	started, succeeded, cancelled, discarded atomic.Int64
}

func (c *asyncCounts) OnAsync(_ reactive.NodeInfo, event reactive.AsyncEvent) {
	switch event {
	case reactive.AsyncStarted:
		c.started.Inc()
	case reactive.AsyncSucceeded:
		c.succeeded.Inc()
	case reactive.AsyncCancelled:
		c.cancelled.Inc()
	case reactive.AsyncDiscarded:
		c.discarded.Inc()
	}
}

func asyncCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "async",
		Usage: "Write faster than async computations finish and count how many get aborted",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  updatesKey,
				Usage: "Writes to the source",
				Value: 10_000,
			},
			&cli.UintFlag{
				Name:  workersKey,
				Usage: "Size of the worker pool",
				Value: 8,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return benchmarkAsync(ctx, logger, int(cmd.Uint(updatesKey)), int(cmd.Uint(workersKey)))
		},
	}
}

func benchmarkAsync(ctx context.Context, logger *zap.Logger, updates, workers int) error {
	pool, err := reactive.NewPool(workers, logger)
	if err != nil {
		return err
	}
	defer pool.Release()

	schedulers := []struct {
		name      string
		scheduler reactive.Scheduler
	}{
		{"goroutine", reactive.Goroutine},
		{fmt.Sprintf("pool(%d)", workers), pool},
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"scheduler", "writes", "started", "succeeded", "cancelled", "discarded", "time"})
	for _, s := range schedulers {
		counts := &asyncCounts{}
		took, err := runAsync(ctx, logger, s.scheduler, counts, updates)
		if err != nil {
			return errors.Wrapf(err, "running %s", s.name)
		}
		tbl.Append([]string{
			s.name,
			humanize.Comma(int64(updates)),
			humanize.Comma(counts.started.Load()),
			humanize.Comma(counts.succeeded.Load()),
			humanize.Comma(counts.cancelled.Load()),
			humanize.Comma(counts.discarded.Load()),
			fmt.Sprint(took),
		})
	}
	tbl.Render()
	return nil
}

func runAsync(ctx context.Context, logger *zap.Logger, scheduler reactive.Scheduler, hooks reactive.Hooks, updates int) (time.Duration, error) {
	lt := reactive.NewLifetime(
		reactive.WithLogger(logger),
		reactive.WithScheduler(scheduler),
		reactive.WithHooks(hooks),
	)
	defer lt.Close()

	n := reactive.NewSignal(0)
	square := reactive.Async1(lt, n, func(ctx context.Context, v int) (int, error) {
		select {
		case <-ctx.Done():
			return 0, context.Cause(ctx)
		case <-time.After(50 * time.Microsecond):
			return v * v, nil
		}
	}, reactive.WithName("square"))

	start := time.Now()
	for i := 1; i <= updates; i++ {
		n.Set(i)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	want := updates * updates
	states := reactive.Values[reactive.AsyncState[int]](lt, square)
	for {
		select {
		case <-ctx.Done():
			return 0, errors.Wrap(context.Cause(ctx), "waiting for the last result")
		case state := <-states:
			if v, err := state.Resolve(); err == nil && !state.IsLoading() && v == want {
				return time.Since(start), nil
			}
		}
	}
}
