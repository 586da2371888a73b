package valuation

import (
	"testing"
)

func TestSensitivityCenterMatchesBaseCase(t *testing.T) {
	n := referenceInputs(t)
	base, err := computeNormalized(n, EqualWeights(), RecommendationConfig{})
	if err != nil {
		t.Fatal(err)
	}

	grid, err := ComputeSensitivity(n, EqualWeights(), GridConfig{})
	if err != nil {
		t.Fatal(err)
	}

	if len(grid.Values) != 5 || len(grid.Values[2]) != 5 {
		t.Fatalf("expected 5x5 grid, got %dx%d", len(grid.Values), len(grid.Values[0]))
	}

	center := grid.Values[2][2]
	if center == nil {
		t.Fatal("center cell flagged invalid")
	}
	// Exact equality: the center cell is the unperturbed base case.
	if *center != base.BlendedPrice {
		t.Errorf("center cell %v != base blended %v", *center, base.BlendedPrice)
	}
}

func TestSensitivityHeaders(t *testing.T) {
	n := referenceInputs(t)
	grid, err := ComputeSensitivity(n, EqualWeights(), GridConfig{})
	if err != nil {
		t.Fatal(err)
	}

	// Rows: WACC ± 2 steps of 0.5pp; cols: terminal growth likewise.
	wantRows := []float64{0.095, 0.100, 0.105, 0.110, 0.115}
	wantCols := []float64{0.020, 0.025, 0.030, 0.035, 0.040}
	for i := range wantRows {
		approx(t, "row header", grid.RowHeaders[i], wantRows[i], 1e-12)
		approx(t, "col header", grid.ColHeaders[i], wantCols[i], 1e-12)
	}
}

func TestSensitivityMonotonicInDiscountRate(t *testing.T) {
	// Holding growth fixed, a higher discount rate must never raise the
	// blended target price.
	n := referenceInputs(t)
	grid, err := ComputeSensitivity(n, EqualWeights(), GridConfig{})
	if err != nil {
		t.Fatal(err)
	}

	for col := 0; col < 5; col++ {
		for row := 1; row < 5; row++ {
			hi, lo := grid.Values[row-1][col], grid.Values[row][col]
			if hi == nil || lo == nil {
				continue
			}
			if *lo > *hi {
				t.Errorf("cell [%d][%d]=%f exceeds lower-rate cell %f", row, col, *lo, *hi)
			}
		}
	}
}

func TestSensitivityFlagsInvalidCells(t *testing.T) {
	// A tight spread between WACC and terminal growth pushes the extreme
	// corner (lowest rate, highest growth) into growth >= rate territory.
	n := referenceInputs(t)
	n.Assumptions.WACC = 0.05
	n.Assumptions.TerminalGrowth = 0.04

	grid, err := ComputeSensitivity(n, EqualWeights(), GridConfig{})
	if err != nil {
		t.Fatal(err)
	}

	// Row 0 shifts WACC to 4%, col 4 shifts growth to 5%: invalid.
	if grid.Values[0][4] != nil {
		t.Error("expected nil cell where growth >= discount rate")
	}
	// The center stays valid.
	if grid.Values[2][2] == nil {
		t.Error("center cell must remain valid")
	}
	// No cell may carry Inf or NaN: invalid combinations are nil instead.
	for i, row := range grid.Values {
		for j, cell := range row {
			if cell == nil {
				continue
			}
			if *cell != *cell || *cell > 1e18 || *cell < -1e18 {
				t.Errorf("cell [%d][%d] looks degenerate: %v", i, j, *cell)
			}
		}
	}
}

func TestSensitivityCustomGridSize(t *testing.T) {
	n := referenceInputs(t)
	grid, err := ComputeSensitivity(n, EqualWeights(), GridConfig{Size: 7, RateStep: 0.0025, GrowthStep: 0.0025})
	if err != nil {
		t.Fatal(err)
	}
	if len(grid.Values) != 7 || len(grid.RowHeaders) != 7 || len(grid.ColHeaders) != 7 {
		t.Fatalf("expected 7x7 grid")
	}
}

func TestSensitivityRejectsZeroWeights(t *testing.T) {
	n := referenceInputs(t)
	if _, err := ComputeSensitivity(n, ModelWeights{}, GridConfig{}); err == nil {
		t.Fatal("expected NoModelSelectedError")
	}
}
