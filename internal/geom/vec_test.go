package geom

import (
	"math"
	"testing"
)

func TestVec2_Perp(t *testing.T) {
	tests := []struct {
		in   Vec2
		want Vec2
	}{
		{Vec(1, 0), Vec(0, 1)},
		{Vec(0, 1), Vec(-1, 0)},
		{Vec(3, 4), Vec(-4, 3)},
	}

	for _, tt := range tests {
		got := tt.in.Perp()
		if got != tt.want {
			t.Errorf("%v.Perp() = %v, want %v", tt.in, got, tt.want)
		}
		if d := got.Dot(tt.in); d != 0 {
			t.Errorf("%v.Perp() not orthogonal, dot = %v", tt.in, d)
		}
	}
}

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec(1, 2)
	b := Vec(4, 6)

	if got := a.Add(b); got != Vec(5, 8) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != Vec(3, 4) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Mul(2); got != Vec(2, 4) {
		t.Errorf("Mul failed: got %v", got)
	}
	if got := b.Div(2); got != Vec(2, 3) {
		t.Errorf("Div failed: got %v", got)
	}
	if got := b.Sub(a).Hypot(); got != 5 {
		t.Errorf("Hypot failed: got %v", got)
	}
	if got := a.Cross(b); got != -2 {
		t.Errorf("Cross failed: got %v", got)
	}
}

func TestPoint(t *testing.T) {
	p := Pt(1, 1)
	q := p.Translate(Vec(3, 4))
	if q != Pt(4, 5) {
		t.Errorf("Translate failed: got %v", q)
	}
	if d := p.Distance(q); d != 5 {
		t.Errorf("Distance = %v, want 5", d)
	}
	if q.Sub(p) != Vec(3, 4) {
		t.Errorf("Sub failed: got %v", q.Sub(p))
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want bool
	}{
		{"zero", Vec(0, 0), true},
		{"normal", Vec(1, -2), true},
		{"nan", Vec(math.NaN(), 0), false},
		{"inf", Vec(0, math.Inf(-1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
			if got := Point(tt.v).IsFinite(); got != tt.want {
				t.Errorf("Point.IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}
