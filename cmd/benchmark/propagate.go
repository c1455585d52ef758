package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/delaneyj/signalflow/reactive"
)

var (
	widths  = []int{1, 10, 100, 1_000}
	heights = []int{1, 10, 100, 1_000}
)

func addOne(v int) int {
	return v + 1
}

func pass(context.Context, int) error {
	return nil
}

func propagateCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "propagate",
		Usage: "Time one write through w chains of h derived nodes, each ending in a reaction",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  iterationsKey,
				Usage: "Writes per graph",
				Value: 100,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			iters := int(cmd.Uint(iterationsKey))
			logger.Info("warming up")
			benchmarkPropagate(logger, iters, false)
			benchmarkPropagate(logger, iters, true)
			return nil
		},
	}
}

func benchmarkPropagate(logger *zap.Logger, iters int, shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("signalflow propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range widths {
		for _, h := range heights {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			lt := reactive.NewLifetime(reactive.WithLogger(logger))
			src := reactive.NewSignal(1)
			for i := 0; i < w; i++ {
				var last reactive.Readable[int] = src
				for j := 0; j < h; j++ {
					last = reactive.Derived1(lt, last, addOne)
				}
				reactive.React1(lt, last, pass)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(src.Get() + 1)
				tach.AddTime(time.Since(start))
			}
			lt.Close()

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
