package tensor

import (
	"testing"
)

// RawTensor Tests

func TestRawTensorAsInt64(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Int64, CPU)
	data := raw.AsInt64()

	if len(data) != 6 {
		t.Errorf("AsInt64 length = %d, want 6", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsInt64()[0] != 42 {
		t.Error("AsInt64 should return zero-copy slice")
	}
}

func TestRawTensorAsUint8(t *testing.T) {
	raw, _ := NewRaw(Shape{4, 4}, Uint8, CPU)
	data := raw.AsUint8()

	if len(data) != 16 {
		t.Errorf("AsUint8 length = %d, want 16", len(data))
	}

	data[0] = 255
	if raw.AsUint8()[0] != 255 {
		t.Error("AsUint8 should return zero-copy slice")
	}
}

func TestRawTensorWrongDTypePanics(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Float32, CPU)
	defer func() {
		if recover() == nil {
			t.Error("AsFloat64 on a float32 tensor should panic")
		}
	}()
	raw.AsFloat64()
}

func TestRawTensorEmpty(t *testing.T) {
	raw, err := NewRaw(Shape{0, 3}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw with a zero dimension: %v", err)
	}
	if n := len(raw.AsFloat64()); n != 0 {
		t.Errorf("AsFloat64 length = %d, want 0", n)
	}
	if _, err := NewRaw(Shape{2, -1}, Float64, CPU); err == nil {
		t.Error("NewRaw should reject negative dimensions")
	}
}

func TestRawTensorView(t *testing.T) {
	raw, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, CPU)

	view, err := raw.View(Shape{3, 2})
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if !view.Shape().Equal(Shape{3, 2}) {
		t.Errorf("view shape = %v, want [3 2]", view.Shape())
	}
	if raw.IsUnique() {
		t.Error("a viewed tensor should share its buffer")
	}

	view.AsFloat32()[5] = 60
	if raw.AsFloat32()[5] != 60 {
		t.Error("view should alias the original buffer")
	}

	if _, err := raw.View(Shape{4, 2}); err == nil {
		t.Error("View should reject a different element count")
	}

	view.Release()
	if !raw.IsUnique() {
		t.Error("releasing the view should drop its reference")
	}
}

func TestRawTensorCopy(t *testing.T) {
	raw, _ := FromSlice([]int32{1, 2, 3, 4}, Shape{2, 2}, CPU)
	c := raw.Copy()

	c.AsInt32()[0] = 100
	if raw.AsInt32()[0] != 1 {
		t.Error("Copy should not share the buffer")
	}
	if !c.IsUnique() || !raw.IsUnique() {
		t.Error("Copy should allocate an independent buffer")
	}
}

func TestRawTensorRelease(_ *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Float32, CPU)

	// Should not panic
	raw.Release()
}
