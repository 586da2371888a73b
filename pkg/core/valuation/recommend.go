package valuation

import (
	"fmt"
)

// RecommendationConfig tunes the margin-of-safety threshold. The zero
// value selects the default 15%.
type RecommendationConfig struct {
	MarginOfSafety float64
}

func (c RecommendationConfig) threshold() float64 {
	if c.MarginOfSafety <= 0 {
		return DefaultMarginOfSafety
	}
	return c.MarginOfSafety
}

// RecommendationResult pairs the classification with its numeric basis.
type RecommendationResult struct {
	Action        Recommendation
	Upside        float64
	Justification string
}

// Recommend classifies a (target, current) price pair. The rule is strict:
// upside must exceed +threshold for BUY and fall below −threshold for SELL;
// the boundaries themselves are HOLD.
func Recommend(targetPrice, currentPrice float64, cfg RecommendationConfig) RecommendationResult {
	threshold := cfg.threshold()
	upside := (targetPrice - currentPrice) / currentPrice

	action := RecommendationHold
	switch {
	case upside > threshold:
		action = RecommendationBuy
	case upside < -threshold:
		action = RecommendationSell
	}

	return RecommendationResult{
		Action: action,
		Upside: upside,
		Justification: fmt.Sprintf(
			"blended target %.2f vs market %.2f implies %+.1f%% upside against a %.0f%% margin of safety (FCFE, FCFF, justified P/E, justified P/B)",
			targetPrice, currentPrice, upside*100, threshold*100,
		),
	}
}
