// Package valuation implements the intrinsic-value engine: four independent
// per-share models (FCFE, FCFF, justified P/E, justified P/B), a weighted
// aggregator, a discount/growth sensitivity grid, and a margin-of-safety
// recommendation. The engine is stateless: every Compute call takes
// immutable inputs and returns a fresh result, so callers own caching and
// may invoke it concurrently without coordination.
package valuation

import (
	"fmt"
)

// ConfidenceLevel indicates how reliable a result is given the inputs that
// produced it. Degenerate-but-legal inputs (negative EPS feeding the P/E
// model, proxy-substituted balance sheet items) lower the level without
// failing the computation.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

// Recommendation is the directional call derived from blended target price
// versus current market price.
type Recommendation string

const (
	RecommendationBuy  Recommendation = "BUY"
	RecommendationSell Recommendation = "SELL"
	RecommendationHold Recommendation = "HOLD"
)

// DefaultMarginOfSafety is the upside threshold separating HOLD from
// BUY/SELL. Tunable per call through RecommendationConfig.
const DefaultMarginOfSafety = 0.15

// =============================================================================
// INPUTS
// =============================================================================

// FinancialSnapshot is the flat record of reported financial metrics for one
// security. The engine never fetches data; upstream retrieval fills this in.
// Optional pointer fields, when nil, are replaced by documented proxy
// estimates during normalization.
type FinancialSnapshot struct {
	Symbol            string  `json:"symbol"`
	CurrentPrice      float64 `json:"current_price"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	EPS               float64 `json:"eps"`                  // trailing twelve months
	BookValuePerShare float64 `json:"book_value_per_share"`
	NetIncome         float64 `json:"net_income"` // trailing twelve months

	TotalAssets *float64 `json:"total_assets,omitempty"`
	EBITDA      *float64 `json:"ebitda,omitempty"`
	TotalDebt   *float64 `json:"total_debt,omitempty"`
	Cash        *float64 `json:"cash,omitempty"`
	// BaseFCFE overrides the net-income proxy when an explicit
	// free-cash-flow-to-equity figure is available.
	BaseFCFE *float64 `json:"base_fcfe,omitempty"`
}

// AssumptionSet carries the user-supplied modeling parameters. Rates may be
// given as fractions (0.12) or whole percentages (12); the normalizer
// canonicalizes them to fractions.
type AssumptionSet struct {
	RevenueGrowth   float64 `json:"revenue_growth"`  // short-term cash flow growth
	TerminalGrowth  float64 `json:"terminal_growth"` // perpetuity growth
	RequiredReturn  float64 `json:"required_return"` // cost of equity, discounts FCFE
	WACC            float64 `json:"wacc"`            // discounts FCFF
	TaxRate         float64 `json:"tax_rate"`
	ProjectionYears int     `json:"projection_years"`
	PayoutRatio     float64 `json:"payout_ratio"`
	ROE             float64 `json:"roe"`
}

// ModelWeights selects and weights the four models. Weights need not sum to
// anything in particular; the aggregator normalizes by the sum. A zero
// weight disables a model's contribution.
type ModelWeights struct {
	FCFE        float64 `json:"fcfe"`
	FCFF        float64 `json:"fcff"`
	JustifiedPE float64 `json:"justified_pe"`
	JustifiedPB float64 `json:"justified_pb"`
}

// EqualWeights gives all four models the same weight.
func EqualWeights() ModelWeights {
	return ModelWeights{FCFE: 1, FCFF: 1, JustifiedPE: 1, JustifiedPB: 1}
}

// Sum returns the total weight across all models.
func (w ModelWeights) Sum() float64 {
	return w.FCFE + w.FCFF + w.JustifiedPE + w.JustifiedPB
}

// =============================================================================
// OUTPUTS
// =============================================================================

// DCFDetail holds the intermediates of a discounted-cash-flow model run,
// kept for export and audit.
type DCFDetail struct {
	BaseCashFlow       float64   `json:"base_cash_flow"`
	ProjectedCashFlows []float64 `json:"projected_cash_flows"`
	PVCashFlows        float64   `json:"pv_cash_flows"`
	TerminalValue      float64   `json:"terminal_value"`
	PVTerminal         float64   `json:"pv_terminal"`
	EnterpriseValue    float64   `json:"enterprise_value,omitempty"` // FCFF only
	EquityValue        float64   `json:"equity_value"`
	ShareValue         float64   `json:"share_value"`
}

// MultipleDetail holds the intermediates of a justified-multiple model run.
type MultipleDetail struct {
	ImpliedGrowth     float64 `json:"implied_growth"`
	JustifiedMultiple float64 `json:"justified_multiple"`
	Basis             float64 `json:"basis"` // EPS or book value per share
	ShareValue        float64 `json:"share_value"`
}

// Summary carries descriptive statistics over the four model values.
type Summary struct {
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Mean       float64 `json:"mean"`
	ModelsUsed int     `json:"models_used"` // models with weight > 0
}

// ValuationResult is the immutable output of one engine invocation.
type ValuationResult struct {
	Symbol       string  `json:"symbol"`
	CurrentPrice float64 `json:"current_price"`

	FCFE        DCFDetail      `json:"fcfe"`
	FCFF        DCFDetail      `json:"fcff"`
	JustifiedPE MultipleDetail `json:"justified_pe"`
	JustifiedPB MultipleDetail `json:"justified_pb"`

	BlendedPrice float64      `json:"blended_price"`
	Weights      ModelWeights `json:"weights"`
	Summary      Summary      `json:"summary"`

	Recommendation Recommendation  `json:"recommendation"`
	Upside         float64         `json:"upside"`
	Justification  string          `json:"justification"`
	Confidence     ConfidenceLevel `json:"confidence"`
	Flags          []string        `json:"flags,omitempty"`

	Sensitivity *SensitivityGrid `json:"sensitivity,omitempty"`
}

// ModelValues extracts the four per-share values, the immutable inputs to
// any reblend.
func (r *ValuationResult) ModelValues() [4]float64 {
	return [4]float64{
		r.FCFE.ShareValue,
		r.FCFF.ShareValue,
		r.JustifiedPE.ShareValue,
		r.JustifiedPB.ShareValue,
	}
}

// SensitivityGrid is the serialized two-way table of blended target prices.
// RowHeaders are discount rates, ColHeaders growth rates; Values is
// row-major and a nil cell marks an invalid (growth >= rate) combination.
type SensitivityGrid struct {
	RowHeaders []float64    `json:"row_headers"`
	ColHeaders []float64    `json:"col_headers"`
	Values     [][]*float64 `json:"values"`
}

// =============================================================================
// ERRORS
// =============================================================================

// InvalidInputError reports a precondition violation on the snapshot or
// assumption set. It is fatal: Compute returns no partial result.
type InvalidInputError struct {
	Field      string
	Constraint string
	Value      float64
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s (got %g)", e.Field, e.Constraint, e.Value)
}

// NoModelSelectedError reports that every model weight is zero, leaving
// nothing to blend.
type NoModelSelectedError struct{}

func (e *NoModelSelectedError) Error() string {
	return "no model selected: all weights are zero"
}
