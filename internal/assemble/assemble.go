// Package assemble builds new arrays out of rows of existing ones.
//
// All functions work on records only and never look at host values, so they
// run unchanged on every backend. The output of every call is owned by the
// caller.
package assemble

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/born-ml/blockstore/internal/array"
	"github.com/born-ml/blockstore/internal/envconfig"
)

// ErrNoInputs is returned by JoinSamples when there is nothing to join.
var ErrNoInputs = errors.New("no inputs")

// Part names the rows of one input that go into a joined array.
type Part struct {
	Input   *array.Record
	Samples []array.SampleMapping
}

// JoinSamples allocates an array with rows samples, shaped like the first
// input otherwise, and moves every part's samples into it over the whole last
// axis. Inputs must share origin and non-sample axes. Output rows not named by
// any part are zero.
func JoinSamples(inputs []Part, rows int) (*array.Record, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}

	first := inputs[0].Input
	shape := first.Shape()
	for i, p := range inputs[1:] {
		if p.Input.Origin() != first.Origin() {
			return nil, fmt.Errorf("join samples: input %d: %w: %s and %s",
				i+1, array.ErrOriginMismatch, first.Origin(), p.Input.Origin())
		}
		s := p.Input.Shape()
		if len(s) != len(shape) || !s[1:].Equal(shape[1:]) {
			return nil, fmt.Errorf("join samples: input %d: %w: %v does not match %v",
				i+1, array.ErrInvalidShape, s, shape)
		}
	}

	shape[0] = rows
	out, err := first.Create(shape)
	if err != nil {
		return nil, fmt.Errorf("join samples: %w", err)
	}
	end := shape.Properties()
	for i, p := range inputs {
		if err := out.MoveSamplesFrom(p.Input, p.Samples, 0, end); err != nil {
			return nil, errors.Join(fmt.Errorf("join samples: input %d: %w", i, err), out.Destroy())
		}
	}
	return out, nil
}

// Select returns a new array holding the given rows of input, in order.
func Select(input *array.Record, rows []int) (*array.Record, error) {
	samples := make([]array.SampleMapping, len(rows))
	for i, r := range rows {
		samples[i] = array.SampleMapping{Input: r, Output: i}
	}
	out, err := JoinSamples([]Part{{Input: input, Samples: samples}}, len(rows))
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	return out, nil
}

// Job produces one assembled array.
type Job func(ctx context.Context) (*array.Record, error)

// Run runs jobs with at most concurrency of them in flight and returns their
// results in job order. A concurrency below 1 uses BLOCKSTORE_MERGE_CONCURRENCY.
// If any job fails the arrays produced by the others are destroyed and the
// first error is returned.
func Run(ctx context.Context, jobs []Job, concurrency int) ([]*array.Record, error) {
	if concurrency < 1 {
		concurrency = int(envconfig.MergeConcurrency())
	}

	results := make([]*array.Record, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := job(ctx)
			if err != nil {
				return fmt.Errorf("job %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, r := range results {
			if r != nil {
				_ = r.Destroy()
			}
		}
		return nil, err
	}
	return results, nil
}
