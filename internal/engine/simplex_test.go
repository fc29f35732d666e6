package engine

import (
	"math"
	"testing"
)

func TestSolveMinLPBasic(t *testing.T) {
	// minimize 2x + 3y subject to x + y ≥ 4, x ≥ 1.
	x, ok := solveMinLP(
		[]float64{2, 3},
		[][]float64{{1, 1}, {1, 0}},
		[]float64{4, 1},
	)
	if !ok {
		t.Fatal("expected feasible")
	}
	// Cheapest fill is all x.
	if math.Abs(x[0]-4) > 1e-6 || math.Abs(x[1]) > 1e-6 {
		t.Errorf("x = %v, want [4 0]", x)
	}
}

func TestSolveMinLPMixedOptimum(t *testing.T) {
	// minimize x + 4y subject to x + y ≥ 2, 3y ≥ 3. The y constraint pins
	// y = 1; x covers the rest.
	x, ok := solveMinLP(
		[]float64{1, 4},
		[][]float64{{1, 1}, {0, 3}},
		[]float64{2, 3},
	)
	if !ok {
		t.Fatal("expected feasible")
	}
	if math.Abs(x[0]-1) > 1e-6 || math.Abs(x[1]-1) > 1e-6 {
		t.Errorf("x = %v, want [1 1]", x)
	}
}

func TestSolveMinLPInfeasible(t *testing.T) {
	// No non-negative x satisfies -x ≥ 1.
	_, ok := solveMinLP(
		[]float64{1},
		[][]float64{{-1}},
		[]float64{1},
	)
	if ok {
		t.Fatal("expected infeasible")
	}
}

func TestSolveMinLPNoConstraints(t *testing.T) {
	x, ok := solveMinLP([]float64{5, 5}, nil, nil)
	if !ok {
		t.Fatal("expected feasible")
	}
	if x[0] != 0 || x[1] != 0 {
		t.Errorf("x = %v, want origin", x)
	}
}
