package core

import (
	"math"
	"testing"
)

func TestPointDist(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Point
		expected float64
	}{
		{"same point", Pt(3, 4), Pt(3, 4), 0},
		{"3-4-5", Pt(0, 0), Pt(3, 4), 5},
		{"negative", Pt(-1, -1), Pt(2, 3), 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Dist(tc.b); math.Abs(got-tc.expected) > 1e-9 {
				t.Errorf("Dist() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{2.4, 2},
		{2.5, 3},
		{-2.5, -2},
		{-2.6, -3},
		{0, 0},
	}

	for _, tc := range tests {
		if got := Round(tc.in); got != tc.expected {
			t.Errorf("Round(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}

	p := Pt(1.5, -0.5).Round()
	if p.X != 2 || p.Y != 0 {
		t.Errorf("Point.Round() = %v, expected {2 0}", p)
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(1.4, 0.3, 1); got != 1 {
		t.Errorf("ClampF(1.4, 0.3, 1) = %v, expected 1", got)
	}
	if got := ClampF(0.1, 0.3, 1); got != 0.3 {
		t.Errorf("ClampF(0.1, 0.3, 1) = %v, expected 0.3", got)
	}
}
