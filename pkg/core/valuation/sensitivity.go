package valuation

// Sensitivity engine: re-values the blended target price across a square
// grid of discount-rate and growth-rate perturbations around the base
// assumptions. Rows shift both discount rates (required return and WACC)
// by the same delta, columns shift the terminal growth rate; row headers
// report the shifted WACC, column headers the shifted growth.

// GridConfig sizes the sensitivity grid. The zero value produces the
// standard 5×5 grid in 0.5 percentage-point steps.
type GridConfig struct {
	Size       int     // odd, >= 3; rows == cols == Size
	RateStep   float64 // per-row discount rate increment, as a fraction
	GrowthStep float64 // per-column growth rate increment, as a fraction
}

func (c GridConfig) withDefaults() GridConfig {
	if c.Size < 3 {
		c.Size = 5
	}
	if c.Size%2 == 0 {
		c.Size++
	}
	if c.RateStep <= 0 {
		c.RateStep = 0.005
	}
	if c.GrowthStep <= 0 {
		c.GrowthStep = 0.005
	}
	return c
}

// ComputeSensitivity builds the grid. The center cell re-runs the exact
// base-case arithmetic, so it reproduces the unperturbed blended price
// bit for bit. Cells whose perturbed growth meets or exceeds a perturbed
// discount rate are left nil rather than fed into an undefined perpetuity.
func ComputeSensitivity(n *NormalizedInputs, w ModelWeights, cfg GridConfig) (*SensitivityGrid, error) {
	if w.Sum() <= 0 {
		return nil, &NoModelSelectedError{}
	}
	cfg = cfg.withDefaults()
	half := cfg.Size / 2

	grid := &SensitivityGrid{
		RowHeaders: make([]float64, 0, cfg.Size),
		ColHeaders: make([]float64, 0, cfg.Size),
		Values:     make([][]*float64, 0, cfg.Size),
	}

	base := n.Assumptions
	for i := -half; i <= half; i++ {
		grid.RowHeaders = append(grid.RowHeaders, base.WACC+float64(i)*cfg.RateStep)
	}
	for j := -half; j <= half; j++ {
		grid.ColHeaders = append(grid.ColHeaders, base.TerminalGrowth+float64(j)*cfg.GrowthStep)
	}

	for i := -half; i <= half; i++ {
		row := make([]*float64, 0, cfg.Size)
		for j := -half; j <= half; j++ {
			cell := n.WithRates(float64(i)*cfg.RateStep, float64(j)*cfg.GrowthStep)
			if !cellValid(cell.Assumptions) {
				row = append(row, nil)
				continue
			}
			res, err := computeNormalized(cell, w, RecommendationConfig{})
			if err != nil {
				// Perturbation pushed the required return below the
				// implied multiple growth; the cell is invalid, the
				// grid is not.
				row = append(row, nil)
				continue
			}
			v := res.BlendedPrice
			row = append(row, &v)
		}
		grid.Values = append(grid.Values, row)
	}
	return grid, nil
}

// cellValid mirrors the normalizer's rate preconditions for a perturbed
// assumption set.
func cellValid(a AssumptionSet) bool {
	return a.RequiredReturn > 0 &&
		a.WACC > 0 &&
		a.RequiredReturn > a.TerminalGrowth &&
		a.WACC > a.TerminalGrowth
}
