package valuation

// Input normalization: canonicalizes rates, validates preconditions, and
// fills missing balance-sheet items with overridable proxy estimates. All
// InvalidInputError cases in the engine originate here so the models can
// assume well-formed inputs.

// ProxyConfig controls the heuristic estimates substituted for missing
// optional snapshot fields. The defaults are rough, documented stand-ins,
// not economically rigorous figures; callers with better data should supply
// the real values in the snapshot instead.
type ProxyConfig struct {
	// EBITDAMarkup scales trailing net income into an EBITDA estimate.
	EBITDAMarkup float64
	// DebtToEquity estimates total debt as a fraction of book equity.
	DebtToEquity float64
	// CashToMarketCap estimates cash and equivalents as a fraction of
	// market capitalization.
	CashToMarketCap float64
}

// DefaultProxies returns the standard proxy ratios.
func DefaultProxies() ProxyConfig {
	return ProxyConfig{
		EBITDAMarkup:    1.4,
		DebtToEquity:    0.35,
		CashToMarketCap: 0.10,
	}
}

// Degradation flags appended when a proxy substitution or a degenerate
// input lowers confidence in the result.
const (
	FlagEBITDAProxied        = "ebitda_proxied_from_net_income"
	FlagDebtProxied          = "total_debt_proxied_from_book_equity"
	FlagCashProxied          = "cash_proxied_from_market_cap"
	FlagNonPositiveEPS       = "eps_non_positive"
	FlagNonPositiveBookValue = "book_value_non_positive"
)

// NormalizedInputs is the validated, canonicalized input set shared by the
// four models and the sensitivity engine. All rates are fractions, all
// optional fields are resolved, and every precondition has been checked.
type NormalizedInputs struct {
	Symbol            string
	CurrentPrice      float64
	SharesOutstanding float64
	EPS               float64
	BookValuePerShare float64
	NetIncome         float64

	BaseFCFE  float64
	EBITDA    float64
	TotalDebt float64
	Cash      float64

	Assumptions AssumptionSet

	// Flags records which proxies were substituted during normalization.
	Flags []string
}

// canonRate converts whole-percentage rates to fractions: 12 and 0.12 both
// mean 12%. Values at or below 1 pass through unchanged, so a genuine 150%
// growth assumption must be written as 1.5e2 percent, i.e. 150.
func canonRate(v float64) float64 {
	if v > 1.0 || v < -1.0 {
		return v / 100.0
	}
	return v
}

// Normalize validates a snapshot and assumption set and resolves proxies.
// A nil proxies argument selects DefaultProxies. No side effects.
func Normalize(snap FinancialSnapshot, as AssumptionSet, proxies *ProxyConfig) (*NormalizedInputs, error) {
	p := DefaultProxies()
	if proxies != nil {
		p = *proxies
	}

	a := AssumptionSet{
		RevenueGrowth:   canonRate(as.RevenueGrowth),
		TerminalGrowth:  canonRate(as.TerminalGrowth),
		RequiredReturn:  canonRate(as.RequiredReturn),
		WACC:            canonRate(as.WACC),
		TaxRate:         canonRate(as.TaxRate),
		ProjectionYears: as.ProjectionYears,
		PayoutRatio:     canonRate(as.PayoutRatio),
		ROE:             canonRate(as.ROE),
	}

	if snap.SharesOutstanding <= 0 {
		return nil, &InvalidInputError{Field: "shares_outstanding", Constraint: "must be > 0", Value: snap.SharesOutstanding}
	}
	if snap.CurrentPrice <= 0 {
		return nil, &InvalidInputError{Field: "current_price", Constraint: "must be > 0", Value: snap.CurrentPrice}
	}
	if a.ProjectionYears < 1 {
		return nil, &InvalidInputError{Field: "projection_years", Constraint: "must be >= 1", Value: float64(a.ProjectionYears)}
	}
	if a.RequiredReturn <= 0 {
		return nil, &InvalidInputError{Field: "required_return", Constraint: "must be > 0", Value: a.RequiredReturn}
	}
	if a.WACC <= 0 {
		return nil, &InvalidInputError{Field: "wacc", Constraint: "must be > 0", Value: a.WACC}
	}
	// The Gordon perpetuity is undefined when growth meets or exceeds the
	// discount rate, for either discount rate.
	if a.RequiredReturn <= a.TerminalGrowth {
		return nil, &InvalidInputError{Field: "required_return", Constraint: "must exceed terminal growth", Value: a.RequiredReturn}
	}
	if a.WACC <= a.TerminalGrowth {
		return nil, &InvalidInputError{Field: "wacc", Constraint: "must exceed terminal growth", Value: a.WACC}
	}

	n := &NormalizedInputs{
		Symbol:            snap.Symbol,
		CurrentPrice:      snap.CurrentPrice,
		SharesOutstanding: snap.SharesOutstanding,
		EPS:               snap.EPS,
		BookValuePerShare: snap.BookValuePerShare,
		NetIncome:         snap.NetIncome,
		Assumptions:       a,
	}

	// FCFE base: explicit figure wins, else the trailing net income proxy.
	if snap.BaseFCFE != nil {
		n.BaseFCFE = *snap.BaseFCFE
	} else {
		n.BaseFCFE = snap.NetIncome
	}

	if snap.EBITDA != nil {
		n.EBITDA = *snap.EBITDA
	} else {
		n.EBITDA = snap.NetIncome * p.EBITDAMarkup
		n.Flags = append(n.Flags, FlagEBITDAProxied)
	}

	bookEquity := snap.BookValuePerShare * snap.SharesOutstanding
	if snap.TotalDebt != nil {
		n.TotalDebt = *snap.TotalDebt
	} else {
		n.TotalDebt = p.DebtToEquity * bookEquity
		n.Flags = append(n.Flags, FlagDebtProxied)
	}

	marketCap := snap.CurrentPrice * snap.SharesOutstanding
	if snap.Cash != nil {
		n.Cash = *snap.Cash
	} else {
		n.Cash = p.CashToMarketCap * marketCap
		n.Flags = append(n.Flags, FlagCashProxied)
	}

	return n, nil
}

// WithRates returns a copy of the normalized inputs with both discount
// rates shifted by rateDelta and the terminal growth shifted by
// growthDelta. Used by the sensitivity engine; the zero-delta copy is
// bitwise identical to the base case.
func (n *NormalizedInputs) WithRates(rateDelta, growthDelta float64) *NormalizedInputs {
	out := *n
	out.Assumptions.RequiredReturn += rateDelta
	out.Assumptions.WACC += rateDelta
	out.Assumptions.TerminalGrowth += growthDelta
	return &out
}
