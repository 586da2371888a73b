// Package assumption supplies default modeling assumptions, named presets
// loadable from hjson files, and helpers for deriving discount rates from
// their components when a caller has betas and capital weights instead of
// finished rates.
package assumption

import (
	"fmt"
	"os"
	"sort"

	hjson "github.com/hjson/hjson-go/v4"

	"fairval/pkg/core/calc"
	"fairval/pkg/core/valuation"
)

// Defaults returns the baseline assumption set: 8% growth, 3% terminal,
// 12% cost of equity, 10% WACC, 20% tax, 5-year horizon, 15% ROE, 40%
// payout.
func Defaults() valuation.AssumptionSet {
	return valuation.AssumptionSet{
		RevenueGrowth:   0.08,
		TerminalGrowth:  0.03,
		RequiredReturn:  0.12,
		WACC:            0.10,
		TaxRate:         0.20,
		ProjectionYears: 5,
		PayoutRatio:     0.40,
		ROE:             0.15,
	}
}

// Preset bundles a named assumption set with optional model weights.
type Preset struct {
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	Assumptions valuation.AssumptionSet `json:"assumptions"`
	Weights     *valuation.ModelWeights `json:"weights,omitempty"`
}

// BuiltinPresets are the scenario variants shipped with the engine.
func BuiltinPresets() map[string]Preset {
	return map[string]Preset{
		"base": {
			Name:        "base",
			Description: "baseline growth and discount assumptions",
			Assumptions: Defaults(),
		},
		"conservative": {
			Name:        "conservative",
			Description: "lower growth, higher discount rates",
			Assumptions: valuation.AssumptionSet{
				RevenueGrowth:   0.04,
				TerminalGrowth:  0.02,
				RequiredReturn:  0.14,
				WACC:            0.12,
				TaxRate:         0.20,
				ProjectionYears: 5,
				PayoutRatio:     0.40,
				ROE:             0.12,
			},
		},
		"aggressive": {
			Name:        "aggressive",
			Description: "higher growth, longer horizon",
			Assumptions: valuation.AssumptionSet{
				RevenueGrowth:   0.12,
				TerminalGrowth:  0.04,
				RequiredReturn:  0.11,
				WACC:            0.095,
				TaxRate:         0.20,
				ProjectionYears: 7,
				PayoutRatio:     0.30,
				ROE:             0.18,
			},
		},
	}
}

// LoadPresets parses a preset file. hjson is accepted so preset files can
// carry comments; plain JSON is valid hjson and works too. File presets
// override builtins with the same name.
func LoadPresets(path string) (map[string]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset file: %w", err)
	}

	var raw map[string]Preset
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse preset file %s: %w", path, err)
	}

	presets := BuiltinPresets()
	for name, p := range raw {
		p.Name = name
		presets[name] = p
	}
	return presets, nil
}

// Names returns preset names in stable order.
func Names(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RateComponents carries the raw ingredients for deriving discount rates.
type RateComponents struct {
	RiskFreeRate      float64 `json:"risk_free_rate"`
	Beta              float64 `json:"beta"`
	MarketRiskPremium float64 `json:"market_risk_premium"`
	CostOfDebt        float64 `json:"cost_of_debt"`
	DebtWeight        float64 `json:"debt_weight"`
	TaxRate           float64 `json:"tax_rate"`
}

// DeriveRates fills RequiredReturn (CAPM) and WACC on a copy of the
// assumption set from capital-structure components. Used by callers that
// track betas and leverage rather than finished rates.
func DeriveRates(as valuation.AssumptionSet, rc RateComponents) valuation.AssumptionSet {
	costOfEquity := calc.CostOfEquityCAPM(rc.RiskFreeRate, rc.Beta, rc.MarketRiskPremium)
	as.RequiredReturn = costOfEquity
	as.WACC = calc.WACC(rc.CostOfDebt, rc.TaxRate, rc.DebtWeight, costOfEquity, 1-rc.DebtWeight)
	return as
}
