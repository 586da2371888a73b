package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	presetName  string
	presetsFile string
	jsonOutput  bool

	// Assumption overrides, applied on top of the chosen preset
	flagGrowth         float64
	flagTerminalGrowth float64
	flagRequiredReturn float64
	flagWACC           float64
	flagTaxRate        float64
	flagYears          int
	flagPayout         float64
	flagROE            float64

	// Model weight overrides
	weightFCFE float64
	weightFCFF float64
	weightPE   float64
	weightPB   float64
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fairval",
	Short: "Intrinsic value calculator for listed stocks",
	Long: `fairval blends four valuation models (FCFE, FCFF, justified P/E,
justified P/B) into a single target price and a BUY/SELL/HOLD call.

Examples:
  fairval value snapshot.hjson
  fairval value snapshot.hjson --preset conservative --margin 0.10
  fairval sensitivity snapshot.hjson --size 7`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&presetName, "preset", "base", "assumption preset name")
	pf.StringVar(&presetsFile, "presets-file", "", "hjson file with extra presets")
	pf.BoolVar(&jsonOutput, "json", false, "print the raw result as JSON")

	pf.Float64Var(&flagGrowth, "growth", 0, "short-term cash flow growth (fraction or percent)")
	pf.Float64Var(&flagTerminalGrowth, "terminal-growth", 0, "perpetuity growth rate")
	pf.Float64Var(&flagRequiredReturn, "required-return", 0, "cost of equity discounting FCFE")
	pf.Float64Var(&flagWACC, "wacc", 0, "weighted average cost of capital discounting FCFF")
	pf.Float64Var(&flagTaxRate, "tax", 0, "effective tax rate")
	pf.IntVar(&flagYears, "years", 0, "explicit projection horizon in years")
	pf.Float64Var(&flagPayout, "payout", 0, "dividend payout ratio")
	pf.Float64Var(&flagROE, "roe", 0, "sustainable return on equity")

	pf.Float64Var(&weightFCFE, "weight-fcfe", 1, "FCFE model weight")
	pf.Float64Var(&weightFCFF, "weight-fcff", 1, "FCFF model weight")
	pf.Float64Var(&weightPE, "weight-pe", 1, "justified P/E model weight")
	pf.Float64Var(&weightPB, "weight-pb", 1, "justified P/B model weight")
}
