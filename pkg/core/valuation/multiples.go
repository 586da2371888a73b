package valuation

// Justified multiple models: theoretical P/E and P/B implied by
// fundamentals rather than observed market prices.

// runJustifiedPE derives a fair trailing P/E from the Gordon-growth
// relationship and applies it to EPS:
//
//	g   = ROE × (1 − payout)
//	P/E = payout / (r − g)
//
// The implied growth can meet or exceed the required return for
// high-ROE/low-payout inputs; that makes the denominator non-positive and
// is rejected rather than capped.
func runJustifiedPE(n *NormalizedInputs) (MultipleDetail, error) {
	a := n.Assumptions

	impliedGrowth := a.ROE * (1 - a.PayoutRatio)
	if a.RequiredReturn <= impliedGrowth {
		return MultipleDetail{}, &InvalidInputError{
			Field:      "roe/payout_ratio",
			Constraint: "implied growth ROE×(1−payout) must stay below required return",
			Value:      impliedGrowth,
		}
	}

	multiple := a.PayoutRatio / (a.RequiredReturn - impliedGrowth)

	return MultipleDetail{
		ImpliedGrowth:     impliedGrowth,
		JustifiedMultiple: multiple,
		Basis:             n.EPS,
		ShareValue:        multiple * n.EPS,
	}, nil
}

// runJustifiedPB applies the residual-income simplification
//
//	P/B = ROE / r
//
// to book value per share. The normalizer guarantees r > 0.
func runJustifiedPB(n *NormalizedInputs) MultipleDetail {
	a := n.Assumptions

	multiple := a.ROE / a.RequiredReturn

	return MultipleDetail{
		ImpliedGrowth:     a.ROE * (1 - a.PayoutRatio),
		JustifiedMultiple: multiple,
		Basis:             n.BookValuePerShare,
		ShareValue:        multiple * n.BookValuePerShare,
	}
}
