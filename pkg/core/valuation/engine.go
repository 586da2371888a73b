package valuation

// Engine entry points. Compute runs the four models once over a normalized
// input set; everything it returns is derived from its arguments, so
// repeated calls with equal inputs produce equal results.

// Options adjusts a Compute call. The zero value selects default proxies,
// the default margin of safety, and no sensitivity grid.
type Options struct {
	Proxies        *ProxyConfig
	Recommendation RecommendationConfig
	// Sensitivity, when non-nil, attaches a grid built from the same
	// normalized inputs as the base case.
	Sensitivity *GridConfig
}

// Compute produces a full valuation with default options.
func Compute(snap FinancialSnapshot, as AssumptionSet, w ModelWeights) (*ValuationResult, error) {
	return ComputeWithOptions(snap, as, w, Options{})
}

// ComputeWithOptions normalizes the inputs, runs all four models, blends
// them under the given weights, and classifies the result. Fatal errors
// (InvalidInputError, NoModelSelectedError) return no partial result.
func ComputeWithOptions(snap FinancialSnapshot, as AssumptionSet, w ModelWeights, opts Options) (*ValuationResult, error) {
	if w.Sum() <= 0 {
		return nil, &NoModelSelectedError{}
	}

	n, err := Normalize(snap, as, opts.Proxies)
	if err != nil {
		return nil, err
	}

	res, err := computeNormalized(n, w, opts.Recommendation)
	if err != nil {
		return nil, err
	}

	if opts.Sensitivity != nil {
		grid, err := ComputeSensitivity(n, w, *opts.Sensitivity)
		if err != nil {
			return nil, err
		}
		res.Sensitivity = grid
	}
	return res, nil
}

// computeNormalized is the shared core of the base case and every
// sensitivity cell.
func computeNormalized(n *NormalizedInputs, w ModelWeights, rc RecommendationConfig) (*ValuationResult, error) {
	fcfe := runFCFE(n)
	fcff := runFCFF(n)
	pe, err := runJustifiedPE(n)
	if err != nil {
		return nil, err
	}
	pb := runJustifiedPB(n)

	values := [4]float64{fcfe.ShareValue, fcff.ShareValue, pe.ShareValue, pb.ShareValue}
	blended, err := Blend(values, w)
	if err != nil {
		return nil, err
	}

	flags := append([]string(nil), n.Flags...)
	if n.EPS <= 0 {
		flags = append(flags, FlagNonPositiveEPS)
	}
	if n.BookValuePerShare <= 0 {
		flags = append(flags, FlagNonPositiveBookValue)
	}

	rec := Recommend(blended, n.CurrentPrice, rc)

	return &ValuationResult{
		Symbol:         n.Symbol,
		CurrentPrice:   n.CurrentPrice,
		FCFE:           fcfe,
		FCFF:           fcff,
		JustifiedPE:    pe,
		JustifiedPB:    pb,
		BlendedPrice:   blended,
		Weights:        w,
		Summary:        summarize(values, w),
		Recommendation: rec.Action,
		Upside:         rec.Upside,
		Justification:  rec.Justification,
		Confidence:     confidenceFor(flags),
		Flags:          flags,
	}, nil
}

// confidenceFor maps degradation flags to a confidence level: pristine
// inputs are HIGH, one degradation MEDIUM, more LOW.
func confidenceFor(flags []string) ConfidenceLevel {
	switch {
	case len(flags) == 0:
		return ConfidenceHigh
	case len(flags) == 1:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
