package array

import (
	"fmt"

	"github.com/born-ml/blockstore/internal/origin"
)

// mockOps keeps float64 arrays in a map. It trusts the Record checks and
// implements every operation naively.
type mockOps struct {
	origin  origin.ID
	next    uint32
	arrays  map[uint32]*mockArray
	destroy int
}

type mockArray struct {
	shape Shape
	data  []float64
}

func newMockOps(name string) *mockOps {
	return &mockOps{origin: origin.Register(name), arrays: make(map[uint32]*mockArray)}
}

func (m *mockOps) add(shape Shape, data []float64) Handle {
	if data == nil {
		data = make([]float64, shape.NumElements())
	}
	m.next++
	m.arrays[m.next] = &mockArray{shape: shape.Clone(), data: data}
	return Handle{Index: m.next, Generation: 1}
}

func (m *mockOps) get(h Handle) (*mockArray, error) {
	a, ok := m.arrays[h.Index]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDestroyed, h)
	}
	return a, nil
}

func (m *mockOps) record(shape Shape, data []float64) *Record {
	r, err := NewRecord(m, m.add(shape, data))
	if err != nil {
		panic(err)
	}
	return r
}

func (m *mockOps) Origin() origin.ID { return m.origin }

func (m *mockOps) Shape(h Handle) (Shape, error) {
	a, err := m.get(h)
	if err != nil {
		return nil, err
	}
	return a.shape.Clone(), nil
}

func (m *mockOps) Reshape(h Handle, shape Shape) error {
	a, err := m.get(h)
	if err != nil {
		return err
	}
	a.shape = shape
	return nil
}

func (m *mockOps) SwapAxes(h Handle, axis1, axis2 int) error {
	a, err := m.get(h)
	if err != nil {
		return err
	}
	out := make([]float64, len(a.data))
	SwapAxes(out, a.data, a.shape, 1, axis1, axis2)
	a.data = out
	a.shape = a.shape.Swapped(axis1, axis2)
	return nil
}

func (m *mockOps) Create(_ Handle, shape Shape) (Handle, error) {
	return m.add(shape, nil), nil
}

func (m *mockOps) Copy(h Handle) (Handle, error) {
	a, err := m.get(h)
	if err != nil {
		return Handle{}, err
	}
	return m.add(a.shape, append([]float64(nil), a.data...)), nil
}

func (m *mockOps) Destroy(h Handle) error {
	if _, err := m.get(h); err != nil {
		return err
	}
	delete(m.arrays, h.Index)
	m.destroy++
	return nil
}

func (m *mockOps) MoveSamplesFrom(h, input Handle, samples []SampleMapping, start, end int) error {
	dst, err := m.get(h)
	if err != nil {
		return err
	}
	src, err := m.get(input)
	if err != nil {
		return err
	}
	MoveSamples(dst.data, dst.shape, src.data, src.shape, 1, samples, start, end)
	return nil
}

func (m *mockOps) Values(h Handle) ([]float64, error) {
	a, err := m.get(h)
	if err != nil {
		return nil, err
	}
	return append([]float64(nil), a.data...), nil
}

// noValueOps hides the Values method of mockOps.
type noValueOps struct{ Ops }
