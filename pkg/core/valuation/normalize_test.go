package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSnapshot() FinancialSnapshot {
	return FinancialSnapshot{
		Symbol:            "HPG",
		CurrentPrice:      80000,
		SharesOutstanding: 1_000_000_000,
		EPS:               5000,
		BookValuePerShare: 40000,
		NetIncome:         5_000_000_000_000,
	}
}

func validAssumptions() AssumptionSet {
	return AssumptionSet{
		RevenueGrowth:   0.08,
		TerminalGrowth:  0.03,
		RequiredReturn:  0.12,
		WACC:            0.105,
		TaxRate:         0.20,
		ProjectionYears: 5,
		PayoutRatio:     0.40,
		ROE:             0.15,
	}
}

func TestNormalizeRejectsNonPositiveShares(t *testing.T) {
	snap := validSnapshot()
	snap.SharesOutstanding = 0

	_, err := Normalize(snap, validAssumptions(), nil)
	require.Error(t, err)

	var iie *InvalidInputError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "shares_outstanding", iie.Field)
}

func TestNormalizeRejectsGrowthAboveDiscountRate(t *testing.T) {
	// terminalGrowth 12% >= requiredReturn 10% leaves the perpetuity
	// undefined and must never return a value.
	as := validAssumptions()
	as.TerminalGrowth = 0.12
	as.RequiredReturn = 0.10

	_, err := Normalize(validSnapshot(), as, nil)
	var iie *InvalidInputError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "required_return", iie.Field)

	// The same check guards the WACC leg independently.
	as = validAssumptions()
	as.WACC = 0.02
	_, err = Normalize(validSnapshot(), as, nil)
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "wacc", iie.Field)
}

func TestNormalizeRejectsShortHorizon(t *testing.T) {
	as := validAssumptions()
	as.ProjectionYears = 0

	_, err := Normalize(validSnapshot(), as, nil)
	var iie *InvalidInputError
	require.ErrorAs(t, err, &iie)
	assert.Equal(t, "projection_years", iie.Field)
}

func TestNormalizeCanonicalizesPercentages(t *testing.T) {
	// Whole-percent inputs (12, 3, ...) must mean the same thing as
	// fraction inputs (0.12, 0.03, ...).
	as := AssumptionSet{
		RevenueGrowth:   8,
		TerminalGrowth:  3,
		RequiredReturn:  12,
		WACC:            10.5,
		TaxRate:         20,
		ProjectionYears: 5,
		PayoutRatio:     40,
		ROE:             15,
	}

	n, err := Normalize(validSnapshot(), as, nil)
	require.NoError(t, err)

	assert.InDelta(t, 0.08, n.Assumptions.RevenueGrowth, 1e-12)
	assert.InDelta(t, 0.03, n.Assumptions.TerminalGrowth, 1e-12)
	assert.InDelta(t, 0.12, n.Assumptions.RequiredReturn, 1e-12)
	assert.InDelta(t, 0.105, n.Assumptions.WACC, 1e-12)
	assert.InDelta(t, 0.20, n.Assumptions.TaxRate, 1e-12)
	assert.InDelta(t, 0.40, n.Assumptions.PayoutRatio, 1e-12)
	assert.InDelta(t, 0.15, n.Assumptions.ROE, 1e-12)
}

func TestNormalizeAppliesProxies(t *testing.T) {
	n, err := Normalize(validSnapshot(), validAssumptions(), nil)
	require.NoError(t, err)

	// EBITDA = NI × 1.4, debt = 0.35 × book equity, cash = 0.10 × mkt cap
	assert.InDelta(t, 7_000_000_000_000, n.EBITDA, 1)
	assert.InDelta(t, 14_000_000_000_000, n.TotalDebt, 1)
	assert.InDelta(t, 8_000_000_000_000, n.Cash, 1)
	assert.ElementsMatch(t, []string{FlagEBITDAProxied, FlagDebtProxied, FlagCashProxied}, n.Flags)

	// FCFE base defaults to net income without a flag.
	assert.Equal(t, 5_000_000_000_000.0, n.BaseFCFE)
}

func TestNormalizeHonorsExplicitFields(t *testing.T) {
	snap := validSnapshot()
	ebitda := 9_000_000_000_000.0
	debt := 2_000_000_000_000.0
	cash := 1_000_000_000_000.0
	fcfe := 4_500_000_000_000.0
	snap.EBITDA = &ebitda
	snap.TotalDebt = &debt
	snap.Cash = &cash
	snap.BaseFCFE = &fcfe

	n, err := Normalize(snap, validAssumptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, ebitda, n.EBITDA)
	assert.Equal(t, debt, n.TotalDebt)
	assert.Equal(t, cash, n.Cash)
	assert.Equal(t, fcfe, n.BaseFCFE)
	assert.Empty(t, n.Flags)
}

func TestNormalizeCustomProxies(t *testing.T) {
	p := ProxyConfig{EBITDAMarkup: 2.0, DebtToEquity: 0.5, CashToMarketCap: 0.05}
	n, err := Normalize(validSnapshot(), validAssumptions(), &p)
	require.NoError(t, err)

	assert.InDelta(t, 10_000_000_000_000, n.EBITDA, 1)
	assert.InDelta(t, 20_000_000_000_000, n.TotalDebt, 1)
	assert.InDelta(t, 4_000_000_000_000, n.Cash, 1)
}
