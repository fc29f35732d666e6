package engine

import "math"

const lpEps = 1e-9

// solveMinLP solves
//
//	minimize c·x  subject to  A·x ≥ b,  x ≥ 0,  b ≥ 0
//
// with the two-phase simplex method on a dense tableau. Phase 1 drives the
// artificial variables to zero; a positive phase-1 optimum means no feasible
// point exists. Bland's rule (smallest entering index, smallest basis tie
// break) prevents cycling. Problem sizes here are tiny — a handful of
// constraints over nine variables — so no sparsity or revised-form tricks
// are needed.
func solveMinLP(c []float64, A [][]float64, b []float64) ([]float64, bool) {
	m, n := len(A), len(c)
	if m == 0 {
		return make([]float64, n), true
	}
	total := n + 2*m // structural + surplus + artificial

	t := make([][]float64, m)
	basis := make([]int, m)
	for i := 0; i < m; i++ {
		t[i] = make([]float64, total+1)
		copy(t[i], A[i])
		t[i][n+i] = -1
		t[i][n+m+i] = 1
		t[i][total] = b[i]
		basis[i] = n + m + i
	}

	pivot := func(row, col int) {
		scale := t[row][col]
		for j := 0; j <= total; j++ {
			t[row][j] /= scale
		}
		for i := 0; i < m; i++ {
			if i == row || t[i][col] == 0 {
				continue
			}
			factor := t[i][col]
			for j := 0; j <= total; j++ {
				t[i][j] -= factor * t[row][j]
			}
		}
		basis[row] = col
	}

	// run iterates to optimality for the given cost vector. Columns at or
	// beyond maxCol may leave the basis but never enter; phase 2 uses this
	// to bar the artificials.
	run := func(costs []float64, maxCol int) float64 {
		for {
			entering := -1
			for j := 0; j < maxCol; j++ {
				reduced := costs[j]
				for i := 0; i < m; i++ {
					reduced -= costs[basis[i]] * t[i][j]
				}
				if reduced < -lpEps {
					entering = j
					break
				}
			}
			if entering < 0 {
				break
			}
			leaving := -1
			best := math.Inf(1)
			for i := 0; i < m; i++ {
				if t[i][entering] <= lpEps {
					continue
				}
				ratio := t[i][total] / t[i][entering]
				if ratio < best-lpEps ||
					(ratio < best+lpEps && (leaving < 0 || basis[i] < basis[leaving])) {
					best, leaving = ratio, i
				}
			}
			if leaving < 0 {
				// Unbounded; cannot happen with the non-negative
				// objectives used here, but fail closed.
				return math.Inf(-1)
			}
			pivot(leaving, entering)
		}
		obj := 0.0
		for i := 0; i < m; i++ {
			obj += costs[basis[i]] * t[i][total]
		}
		return obj
	}

	// Phase 1: minimize the artificial sum.
	phase1 := make([]float64, total)
	for j := n + m; j < total; j++ {
		phase1[j] = 1
	}
	if run(phase1, total) > lpEps {
		return nil, false
	}

	// Phase 2: the real objective, artificials barred from entering. Any
	// artificial still basic sits at zero and is harmless.
	phase2 := make([]float64, total)
	copy(phase2, c)
	run(phase2, n+m)

	x := make([]float64, n)
	for i := 0; i < m; i++ {
		if basis[i] < n {
			x[basis[i]] = t[i][total]
		}
	}
	return x, true
}
