package core

import "testing"

func TestBoxAround(t *testing.T) {
	b := BoxAround(100, 50, 12, 8)

	if b.MinX != 88 || b.MaxX != 112 {
		t.Errorf("x span = [%v, %v], expected [88, 112]", b.MinX, b.MaxX)
	}
	if b.MinY != 42 || b.MaxY != 58 {
		t.Errorf("y span = [%v, %v], expected [42, 58]", b.MinY, b.MaxY)
	}
}

func TestBoxOverlapsX(t *testing.T) {
	a := NewBox(0, 0, 10, 10)
	if !a.OverlapsX(NewBox(5, 100, 10, 10)) {
		t.Error("OverlapsX should ignore the vertical axis")
	}
	if a.OverlapsX(NewBox(10, 0, 10, 10)) {
		t.Error("OverlapsX should treat touching spans as disjoint")
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMax(t *testing.T) {
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}
