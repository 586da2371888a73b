// Package calc provides deterministic discounting primitives shared by the
// valuation models: present values, Gordon growth terminal values, and the
// cost-of-capital building blocks (CAPM, WACC).
package calc

import (
	"math"
)

// =============================================================================
// COST OF CAPITAL
// =============================================================================

// CostOfEquityCAPM calculates required return on equity using CAPM.
//
// FORMULA: r_e = r_f + β × MRP
//
// Where:
//   - r_f = Risk-free rate (10-year government bond)
//   - β = Equity beta (market sensitivity)
//   - MRP = Market Risk Premium (expected market return - risk-free rate)
func CostOfEquityCAPM(riskFreeRate, beta, marketRiskPremium float64) float64 {
	return riskFreeRate + beta*marketRiskPremium
}

// WACC calculates the Weighted Average Cost of Capital.
//
// FORMULA: WACC = r_d × (1 - T) × (D/V) + r_e × (E/V)
//
// Where:
//   - r_d = Cost of debt (yield on debt)
//   - T = Corporate tax rate
//   - D/V = Debt weight in capital structure
//   - r_e = Cost of equity (from CAPM)
//   - E/V = Equity weight in capital structure
func WACC(costOfDebt, taxRate, debtWeight, costOfEquity, equityWeight float64) float64 {
	afterTaxDebtCost := costOfDebt * (1 - taxRate) * debtWeight
	equityCost := costOfEquity * equityWeight
	return afterTaxDebtCost + equityCost
}

// =============================================================================
// DISCOUNTING
// =============================================================================

// TerminalValueGordonGrowth capitalizes the final projected cash flow into a
// growing perpetuity.
//
// FORMULA: TV = CF_final × (1 + g) / (r - g)
//
// The growth rate must be strictly below the discount rate; the engine's
// input normalizer enforces that before any model runs, so the zero return
// here is a defensive guard, not a reachable code path.
func TerminalValueGordonGrowth(finalCF, discountRate, growthRate float64) float64 {
	if discountRate <= growthRate {
		return 0
	}
	return finalCF * (1 + growthRate) / (discountRate - growthRate)
}

// PresentValue calculates PV of a single cash flow received after `periods`
// full periods.
//
// FORMULA: PV = CF / (1 + r)^t
func PresentValue(cashFlow, discountRate float64, periods int) float64 {
	if periods < 0 {
		return 0
	}
	return cashFlow / math.Pow(1+discountRate, float64(periods))
}

// PresentValueOfCashFlows calculates PV of a series of end-of-period cash
// flows (ordinary annuity timing).
//
// FORMULA: PV = Σ [ CF_t / (1 + r)^t ]
func PresentValueOfCashFlows(cashFlows []float64, discountRate float64) float64 {
	var pv float64
	for t, cf := range cashFlows {
		pv += cf / math.Pow(1+discountRate, float64(t+1))
	}
	return pv
}

// ProjectGrowthSeries compounds a base amount forward for n periods.
//
// FORMULA: CF_t = base × (1 + g)^t, t = 1..n
func ProjectGrowthSeries(base, growthRate float64, periods int) []float64 {
	series := make([]float64, 0, periods)
	for t := 1; t <= periods; t++ {
		series = append(series, base*math.Pow(1+growthRate, float64(t)))
	}
	return series
}
