package main

import (
	"context"
	"go/format"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/delaneyj/signalflow/cmd/codegen/templates"
)

const (
	genericParamCountKey = "count"
	outputKey            = "out"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the typed arity wrappers of the reactive package",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  genericParamCountKey,
				Usage: "Highest number of typed sources to generate",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "File to write",
				Value: "reactive/arity_gen.go",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return generate(logger, cmd)
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("codegen failed", zap.Error(err))
	}
}

func generate(logger *zap.Logger, cmd *cli.Command) error {
	start := time.Now()
	count := int(cmd.Uint(genericParamCountKey))
	out := cmd.String(outputKey)
	if count < 1 {
		return errors.Newf("count must be at least 1, got %d", count)
	}

	logger.Info("codegen started", zap.Int("count", count), zap.String("out", out))
	defer func() {
		logger.Info("codegen finished", zap.Duration("took", time.Since(start)))
	}()

	src, err := format.Source([]byte(templates.ArityGen(count)))
	if err != nil {
		return errors.Wrap(err, "formatting generated code")
	}
	if err := os.WriteFile(out, src, 0644); err != nil {
		return errors.Wrapf(err, "writing %s", out)
	}
	return nil
}
