package geometry

import (
	"math"
	"testing"
)

func TestCircleArea(t *testing.T) {
	area := CircleArea(5)

	expected := 78.53981633974483
	if math.Abs(area-expected) > 1e-10 {
		t.Errorf("CircleArea failed: expected %v, got %v", expected, area)
	}
}

func TestArcSweep(t *testing.T) {
	tests := []struct {
		start, end, expected float64
	}{
		{0, 90, 90},
		{270, 90, 180},
		{350, 10, 20},
		{0, 360, 360},
		{45, 45, 360},
	}

	for _, tt := range tests {
		if got := ArcSweep(tt.start, tt.end); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("ArcSweep(%v, %v) failed: expected %v, got %v", tt.start, tt.end, tt.expected, got)
		}
	}
}

func TestArcPoints(t *testing.T) {
	points := ArcPoints(NewPoint(0, 0), 2, 0, 90, 2)

	if len(points) != 3 {
		t.Fatalf("ArcPoints failed: expected 3 points, got %d", len(points))
	}

	expected := []Point{
		NewPoint(2, 0),
		NewPoint(math.Sqrt2, math.Sqrt2),
		NewPoint(0, 2),
	}
	for i, p := range points {
		if Distance(p, expected[i]) > 1e-10 {
			t.Errorf("Point %d failed: expected %v, got %v", i, expected[i], p)
		}
	}
}
