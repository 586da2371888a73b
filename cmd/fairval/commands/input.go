package commands

import (
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"

	"fairval/pkg/core/assumption"
	"fairval/pkg/core/valuation"
)

// loadSnapshot reads a financial snapshot from an hjson (or plain JSON)
// file.
func loadSnapshot(path string) (valuation.FinancialSnapshot, error) {
	var snap valuation.FinancialSnapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	if err := hjson.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("failed to parse snapshot file %s: %w", path, err)
	}
	return snap, nil
}

// resolvePreset loads the preset table (builtins plus an optional file)
// and returns the named entry.
func resolvePreset() (assumption.Preset, error) {
	presets := assumption.BuiltinPresets()
	if presetsFile != "" {
		loaded, err := assumption.LoadPresets(presetsFile)
		if err != nil {
			return assumption.Preset{}, err
		}
		presets = loaded
	}
	p, ok := presets[presetName]
	if !ok {
		return assumption.Preset{}, fmt.Errorf("unknown preset %q (available: %v)",
			presetName, assumption.Names(presets))
	}
	return p, nil
}

// resolveAssumptions applies explicitly set override flags on top of the
// preset's assumption set. Flags left at their defaults are ignored, so a
// preset value is never clobbered by an unset zero.
func resolveAssumptions(p assumption.Preset) valuation.AssumptionSet {
	as := p.Assumptions
	if flagSet("growth") {
		as.RevenueGrowth = flagGrowth
	}
	if flagSet("terminal-growth") {
		as.TerminalGrowth = flagTerminalGrowth
	}
	if flagSet("required-return") {
		as.RequiredReturn = flagRequiredReturn
	}
	if flagSet("wacc") {
		as.WACC = flagWACC
	}
	if flagSet("tax") {
		as.TaxRate = flagTaxRate
	}
	if flagSet("years") {
		as.ProjectionYears = flagYears
	}
	if flagSet("payout") {
		as.PayoutRatio = flagPayout
	}
	if flagSet("roe") {
		as.ROE = flagROE
	}
	return as
}

// resolveWeights starts from the preset's weights (equal when absent) and
// applies any explicitly set per-model flags.
func resolveWeights(p assumption.Preset) valuation.ModelWeights {
	w := valuation.EqualWeights()
	if p.Weights != nil {
		w = *p.Weights
	}
	if flagSet("weight-fcfe") {
		w.FCFE = weightFCFE
	}
	if flagSet("weight-fcff") {
		w.FCFF = weightFCFF
	}
	if flagSet("weight-pe") {
		w.JustifiedPE = weightPE
	}
	if flagSet("weight-pb") {
		w.JustifiedPB = weightPB
	}
	return w
}

func flagSet(name string) bool {
	return rootCmd.PersistentFlags().Changed(name)
}
