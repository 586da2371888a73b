package valuation

import (
	"math"
)

// Blend combines four per-share model values into one weighted target
// price:
//
//	blended = Σ(value_i × weight_i) / Σ(weight_i), weight_i > 0
//
// The base values are already-computed, immutable inputs, so callers can
// reweight interactively without re-discounting any cash flows. Returns
// NoModelSelectedError when every weight is zero.
func Blend(values [4]float64, w ModelWeights) (float64, error) {
	weights := [4]float64{w.FCFE, w.FCFF, w.JustifiedPE, w.JustifiedPB}

	var weightedSum, totalWeight float64
	for i, weight := range weights {
		if weight <= 0 {
			continue
		}
		weightedSum += values[i] * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return 0, &NoModelSelectedError{}
	}
	return weightedSum / totalWeight, nil
}

// Reblend recomputes the blended price, recommendation, and summary of an
// existing result under new weights. The four model values are reused
// untouched; this is the cheap path for interactive weight changes.
func Reblend(base *ValuationResult, w ModelWeights, rc RecommendationConfig) (*ValuationResult, error) {
	blended, err := Blend(base.ModelValues(), w)
	if err != nil {
		return nil, err
	}

	out := *base
	out.Weights = w
	out.BlendedPrice = blended
	out.Summary = summarize(base.ModelValues(), w)
	out.Sensitivity = nil // grid was built under the old weights

	rec := Recommend(blended, base.CurrentPrice, rc)
	out.Recommendation = rec.Action
	out.Upside = rec.Upside
	out.Justification = rec.Justification
	return &out, nil
}

// summarize computes descriptive statistics over the model values that
// carry weight.
func summarize(values [4]float64, w ModelWeights) Summary {
	weights := [4]float64{w.FCFE, w.FCFF, w.JustifiedPE, w.JustifiedPB}

	s := Summary{Min: math.Inf(1), Max: math.Inf(-1)}
	var sum float64
	for i, weight := range weights {
		if weight <= 0 {
			continue
		}
		v := values[i]
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
		s.ModelsUsed++
	}
	if s.ModelsUsed > 0 {
		s.Mean = sum / float64(s.ModelsUsed)
	} else {
		s.Min, s.Max = 0, 0
	}
	return s
}
