package geom

import "testing"

func TestPointArithmetic(t *testing.T) {
	p, q := Pt(3, -1), Pt(1, 2)
	if got := p.Add(q); got != Pt(4, 1) {
		t.Errorf("Add() = %v", got)
	}
	if got := p.Sub(q); got != Pt(2, -3) {
		t.Errorf("Sub() = %v", got)
	}
	if got := p.String(); got != "(3,-1)" {
		t.Errorf("String() = %q", got)
	}
}

func TestPointDist(t *testing.T) {
	tests := []struct {
		a, b Point
		want float64
	}{
		{Origin, Origin, 0},
		{Origin, Pt(3, 4), 5},
		{Pt(-1, -1), Pt(2, 3), 5},
	}
	for _, tt := range tests {
		if got := tt.a.Dist(tt.b); got != tt.want {
			t.Errorf("%v.Dist(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Dist(tt.a); got != tt.want {
			t.Errorf("Dist is not symmetric for %v, %v", tt.a, tt.b)
		}
	}
}
