package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/delaneyj/signalflow/reactive"
)

type graphConfig struct {
	name           string
	width          int
	layers         int
	staticFraction float64 // share of nodes that always sum every source
	sources        int     // sources per node
	readFraction   float64 // share of leaves read after each write
	iterations     int64
}

var graphConfigs = []graphConfig{
	{name: "simple component", width: 10, layers: 5, staticFraction: 1, sources: 2, readFraction: 0.2, iterations: 60_000},
	{name: "dynamic component", width: 10, layers: 10, staticFraction: 0.75, sources: 6, readFraction: 0.2, iterations: 15_000},
	{name: "large web app", width: 1000, layers: 12, staticFraction: 0.95, sources: 4, readFraction: 1, iterations: 700},
	{name: "wide dense", width: 1000, layers: 5, staticFraction: 1, sources: 25, readFraction: 1, iterations: 300},
	{name: "deep", width: 5, layers: 500, staticFraction: 1, sources: 3, readFraction: 1, iterations: 500},
	{name: "very dynamic", width: 100, layers: 15, staticFraction: 0.5, sources: 6, readFraction: 1, iterations: 2000},
}

func graphCommand(logger *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "graph",
		Usage: "Drive layered graphs of derived nodes and report recompute rates",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  repeatsKey,
				Usage: "Runs per config; the fastest is reported",
				Value: 5,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return benchmarkGraphs(logger, int(cmd.Uint(repeatsKey)))
		},
	}
}

type graphResult struct {
	sum      int
	count    int64
	duration time.Duration
}

func benchmarkGraphs(logger *zap.Logger, repeats int) error {
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{
		"size", "sources", "read%", "static%",
		"writes", "test", "time", "recomputes/ms", "title",
	})

	for _, cfg := range graphConfigs {
		logger.Info("running config", zap.String("name", cfg.name))

		counter := atomic.NewInt64(0)
		lt := reactive.NewLifetime(reactive.WithLogger(logger))
		graph := makeGraph(lt, cfg, counter)

		// warm up
		graph.run(cfg)

		best := graphResult{duration: time.Hour}
		for i := 0; i < repeats; i++ {
			counter.Store(0)
			start := time.Now()
			sum := graph.run(cfg)
			duration := time.Since(start)
			logger.Debug("config run",
				zap.String("name", cfg.name),
				zap.Int("run", i),
				zap.Int("sum", sum),
				zap.Int64("recomputes", counter.Load()),
				zap.Duration("took", duration),
			)
			if duration < best.duration {
				best = graphResult{sum: sum, count: counter.Load(), duration: duration}
			}
		}
		lt.Close()

		rate := float64(best.count) / (float64(best.duration) / float64(time.Millisecond))
		tbl.Append([]string{
			fmt.Sprintf("%dx%d", cfg.width, cfg.layers),
			fmt.Sprint(cfg.sources),
			fmt.Sprint(cfg.readFraction),
			fmt.Sprint(cfg.staticFraction),
			humanize.Comma(cfg.iterations),
			cfg.name,
			fmt.Sprint(best.duration),
			humanize.Comma(int64(rate)),
			graphTitle(cfg),
		})
	}
	tbl.Render()
	return nil
}

func graphTitle(cfg graphConfig) string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("%dx%d %d sources", cfg.width, cfg.layers, cfg.sources))
	if cfg.staticFraction < 1 {
		sb.WriteString(" dynamic")
	}
	if cfg.readFraction < 1 {
		sb.WriteString(fmt.Sprintf(" read %0.2f%%", 100*cfg.readFraction))
	}
	return sb.String()
}

type layeredGraph struct {
	sources []*reactive.Signal[int]
	leaves  []reactive.Readable[int]
}

func makeGraph(lt *reactive.Lifetime, cfg graphConfig, counter *atomic.Int64) *layeredGraph {
	g := &layeredGraph{sources: make([]*reactive.Signal[int], cfg.width)}
	prev := make([]reactive.Readable[int], cfg.width)
	for i := range g.sources {
		g.sources[i] = reactive.NewSignal(i)
		prev[i] = g.sources[i]
	}

	random := rand.New(rand.NewSource(0))
	for l := 0; l < cfg.layers-1; l++ {
		prev = makeRow(lt, prev, cfg, counter, random)
	}
	g.leaves = prev
	return g
}

func makeRow(lt *reactive.Lifetime, prev []reactive.Readable[int], cfg graphConfig, counter *atomic.Int64, random *rand.Rand) []reactive.Readable[int] {
	row := make([]reactive.Readable[int], len(prev))
	for i := range prev {
		deps := make([]reactive.AnyReadable, 0, cfg.sources)
		for s := 0; s < cfg.sources; s++ {
			deps = append(deps, prev[(i+s)%len(prev)])
		}

		if random.Float64() < cfg.staticFraction {
			row[i] = reactive.NewDerived(lt, deps, func(values []any) int {
				counter.Inc()
				sum := 0
				for _, v := range values {
					sum += v.(int)
				}
				return sum
			}, reactive.WithEquals(reactive.Comparable[int]))
			continue
		}

		// dynamic nodes skip one of their sources depending on the first
		row[i] = reactive.NewDerived(lt, deps, func(values []any) int {
			counter.Inc()
			sum := values[0].(int)
			tail := values[1:]
			if len(tail) == 0 {
				return sum
			}
			drop := sum&1 > 0
			dropAt := sum % len(tail)
			for j, v := range tail {
				if drop && j == dropAt {
					continue
				}
				sum += v.(int)
			}
			return sum
		}, reactive.WithEquals(reactive.Comparable[int]))
	}
	return row
}

// run writes one source per iteration and reads a fixed random share of the
// leaves, returning their final sum.
func (g *layeredGraph) run(cfg graphConfig) int {
	random := rand.New(rand.NewSource(0))
	skip := int(math.Round(float64(len(g.leaves)) * (1 - cfg.readFraction)))
	read := removeRandom(g.leaves, skip, random)

	for i := 0; i < int(cfg.iterations); i++ {
		at := i % len(g.sources)
		g.sources[at].Set(i + at)
		for _, leaf := range read {
			leaf.Get()
		}
	}

	sum := 0
	for _, leaf := range read {
		sum += leaf.Get()
	}
	return sum
}

func removeRandom[T any](src []T, n int, random *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	for i := 0; i < n; i++ {
		at := random.Intn(len(out))
		out[at] = out[len(out)-1]
		out = out[:len(out)-1]
	}
	return out
}
