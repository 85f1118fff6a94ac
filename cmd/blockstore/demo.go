package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/blockstore/array"
	"github.com/born-ml/blockstore/backend/cpu"
	"github.com/born-ml/blockstore/backend/gonum"
	"github.com/born-ml/blockstore/tensor"
)

// demoSource holds its sample index in every element.
func demoSource(shape array.Shape) []float64 {
	values := make([]float64, shape.NumElements())
	rowSize := max(shape.NumElements()/max(shape.Samples(), 1), 1)
	for i := range values {
		values[i] = float64(i / rowSize)
	}
	return values
}

// wrapDemoSource wraps the demo source with the package-level bridge of backend.
func wrapDemoSource(backend, dtype string, shape array.Shape) (*array.Record, error) {
	values := demoSource(shape)
	switch backend {
	case "cpu":
		dt, ok := tensor.ParseDataType(dtype)
		if !ok {
			return nil, fmt.Errorf("unknown dtype %q", dtype)
		}
		raw, err := cpu.FromFloat64s(values, shape, dt)
		if err != nil {
			return nil, err
		}
		return cpu.Wrap(raw)
	case "gonum":
		a, err := gonum.NewArray(shape, values)
		if err != nil {
			return nil, err
		}
		return gonum.WrapArray(a)
	default:
		return nil, fmt.Errorf("%w: unknown backend %q", array.ErrUnsupportedBackend, backend)
	}
}

func newDemoCmd() *cobra.Command {
	var (
		backend string
		dtype   string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Move samples between two arrays and print the result",
		Long: `Creates a (3, 2, 5) source array whose elements hold their sample index,
allocates a zeroed (4, 2, 5) destination from it and copies sample 0 to 1 and
sample 2 to 3 over properties 1 to 4.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := wrapDemoSource(backend, dtype, array.Shape{3, 2, 5})
			if err != nil {
				return err
			}
			defer src.Destroy()

			scope := array.NewScope()
			defer scope.Close()

			dst, err := scope.Create(src, array.Shape{4, 2, 5})
			if err != nil {
				return err
			}
			samples := []array.SampleMapping{{Input: 0, Output: 1}, {Input: 2, Output: 3}}
			if err := dst.MoveSamplesFrom(src, samples, 1, 4); err != nil {
				return err
			}

			values, err := dst.Values()
			if err != nil {
				return err
			}
			shape := dst.Shape()
			name, err := array.OriginName(dst.Origin())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "origin %s, shape %v\n", name, []int(shape))

			props, components := shape.Properties(), shape.Components().NumElements()
			var data [][]string
			for row := 0; row < shape.Samples()*components; row++ {
				data = append(data, []string{
					fmt.Sprint(row / components), fmt.Sprint(row % components),
					formatValues(values[row*props : (row+1)*props]),
				})
			}
			table := newTable(cmd.OutOrStdout(), []string{"SAMPLE", "COMPONENT", "VALUES"})
			table.AppendBulk(data)
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "cpu", "Array backend (cpu, gonum)")
	cmd.Flags().StringVar(&dtype, "dtype", "float32", "Element type for the cpu backend")
	return cmd
}
