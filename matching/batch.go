package matching

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/suffixtree/tree"
)

// instrumentationName scopes the tracer and meter of this package.
const instrumentationName = "github.com/katalvlaran/suffixtree/matching"

// cancelCheckEvery is how many query symbols are matched between context checks.
const cancelCheckEvery = 1024

// instruments are the Batch metrics.
type instruments struct {
	queries  metric.Int64Counter
	symbols  metric.Int64Counter
	duration metric.Float64Histogram
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	meter := mp.Meter(instrumentationName)
	var (
		in  instruments
		err error
	)

	in.queries, err = meter.Int64Counter(
		"suffixtree.matching.queries",
		metric.WithDescription("Number of queries matched"),
	)
	if err != nil {
		return nil, err
	}

	in.symbols, err = meter.Int64Counter(
		"suffixtree.matching.symbols",
		metric.WithDescription("Number of query symbols matched"),
	)
	if err != nil {
		return nil, err
	}

	in.duration, err = meter.Float64Histogram(
		"suffixtree.matching.duration",
		metric.WithDescription("Duration of a matching batch"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &in, nil
}

// Batch computes the matching statistics of every query concurrently.
// result[i] holds the statistics of queries[i]. The first failing query (or a
// cancelled ctx) aborts the batch and its error is returned.
//
// The tree must not be mutated while Batch runs.
func Batch[G comparable](ctx context.Context, t *tree.Tree[G], queries [][]G, opts ...Option) ([][]Stat, error) {
	if t == nil {
		return nil, ErrTreeNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	in, err := newInstruments(o.MeterProvider)
	if err != nil {
		return nil, fmt.Errorf("matching: metrics: %w", err)
	}

	ctx, span := o.TracerProvider.Tracer(instrumentationName).Start(ctx, "matching.Batch",
		trace.WithAttributes(
			attribute.Int("matching.queries", len(queries)),
			attribute.Int("matching.concurrency", o.Concurrency),
		),
	)
	defer span.End()

	start := time.Now()
	out := make([][]Stat, len(queries))
	symbols := make([]int, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Concurrency)
	for i, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := make([]Stat, 0, len(q))
			m := newMatcher(t)
			for j, sym := range q {
				if j > 0 && j%cancelCheckEvery == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				st, err := m.step(sym)
				if err != nil {
					return fmt.Errorf("query %d position %d: %w", i, j, err)
				}
				res = append(res, st)
			}
			out[i] = res
			symbols[i] = len(q)
			return nil
		})
	}
	err = g.Wait()

	total := 0
	for _, n := range symbols {
		total += n
	}
	status := attribute.String("status", "ok")
	if err != nil {
		status = attribute.String("status", "error")
	}
	in.queries.Add(ctx, int64(len(queries)), metric.WithAttributes(status))
	in.symbols.Add(ctx, int64(total), metric.WithAttributes(status))
	in.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(status))
	span.SetAttributes(attribute.Int("matching.symbols", total))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		o.Logger.Debug("matching: batch failed", slog.Int("queries", len(queries)), slog.Any("err", err))
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	o.Logger.Debug("matching: batch done",
		slog.Int("queries", len(queries)),
		slog.Int("symbols", total),
		slog.Duration("elapsed", time.Since(start)))

	return out, nil
}
