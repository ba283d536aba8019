package engine

import (
	"math"
	"testing"

	"corrlens/internal/testkit"
)

func TestPearson_SelfCorrelation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	r := Pearson(x, x)
	if math.Abs(r-1.0) > 1e-12 {
		t.Errorf("Pearson(x, x) = %v, want 1.0", r)
	}
}

func TestPearson_Negation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = -v
	}
	r := Pearson(x, y)
	if math.Abs(r+1.0) > 1e-12 {
		t.Errorf("Pearson(x, -x) = %v, want -1.0", r)
	}
}

func TestPearson_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name string
		x, y []float64
	}{
		{"empty", []float64{}, []float64{}},
		{"length mismatch", []float64{1, 2, 3}, []float64{1, 2}},
		{"constant x", []float64{5, 5, 5}, []float64{1, 2, 3}},
		{"constant y", []float64{1, 2, 3}, []float64{7, 7, 7}},
		{"both constant", []float64{5, 5}, []float64{7, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if r := Pearson(tt.x, tt.y); r != 0 {
				t.Errorf("Pearson(%v, %v) = %v, want 0", tt.x, tt.y, r)
			}
		})
	}
}

func TestSpearman_MonotonicInvariance(t *testing.T) {
	kit := testkit.NewTestKit(42)
	x, y := kit.MonotonicPair(50)

	expY := make([]float64, len(y))
	for i, v := range y {
		expY[i] = math.Exp(v)
	}

	base := Spearman(x, y)
	transformed := Spearman(x, expY)
	if math.Abs(base-transformed) > 1e-12 {
		t.Errorf("Spearman not invariant under monotonic transform: %v vs %v", base, transformed)
	}
}

func TestSpearman_PerfectMonotonic(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 8, 16, 32} // strictly increasing, nonlinear
	r := Spearman(x, y)
	if math.Abs(r-1.0) > 1e-12 {
		t.Errorf("Spearman of strictly increasing pair = %v, want 1.0", r)
	}
}

func TestRanks_StableTieOrder(t *testing.T) {
	got := ranks([]float64{3, 1, 3, 2})
	// Ties broken by stable sort: the first 3 encountered ranks before the second
	want := []float64{3, 1, 4, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ranks = %v, want %v", got, want)
		}
	}
}

func TestPValue_Bounds(t *testing.T) {
	if p := PValue(0.9, 2); p != 1.0 {
		t.Errorf("PValue with n<3 = %v, want 1.0", p)
	}
	if p := PValue(1.0, 50); p != 0.0 {
		t.Errorf("PValue for perfect correlation = %v, want 0.0", p)
	}
	p := PValue(0.5, 30)
	if p <= 0 || p >= 1 {
		t.Errorf("PValue(0.5, 30) = %v, want value in (0, 1)", p)
	}
	strong := PValue(0.9, 30)
	if strong >= p {
		t.Errorf("stronger correlation should have smaller p-value: %v >= %v", strong, p)
	}
}
