// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package assemble builds new arrays out of samples of existing ones.
//
// Example:
//
//	joined, err := assemble.JoinSamples([]assemble.Part{
//	    {Input: a, Samples: []array.SampleMapping{{Input: 0, Output: 0}}},
//	    {Input: b, Samples: []array.SampleMapping{{Input: 1, Output: 1}}},
//	}, 2)
package assemble

import (
	"context"

	"github.com/born-ml/blockstore/array"
	"github.com/born-ml/blockstore/internal/assemble"
)

// ErrNoInputs is returned by JoinSamples when there is nothing to join.
var ErrNoInputs = assemble.ErrNoInputs

// Part names the samples of one input that go into a joined array.
type Part = assemble.Part

// Job produces one assembled array.
type Job = assemble.Job

// JoinSamples creates an array with rows samples and fills it from inputs.
// The result belongs to the caller.
func JoinSamples(inputs []Part, rows int) (*array.Record, error) {
	return assemble.JoinSamples(inputs, rows)
}

// Select creates an array holding the given samples of input, in order.
func Select(input *array.Record, rows []int) (*array.Record, error) {
	return assemble.Select(input, rows)
}

// Run runs jobs concurrently and returns their results in order. On failure
// every result already produced is destroyed.
func Run(ctx context.Context, jobs []Job, concurrency int) ([]*array.Record, error) {
	return assemble.Run(ctx, jobs, concurrency)
}
