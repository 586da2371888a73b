package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"fairval/pkg/core/valuation"
)

// valueCmd represents the value command
var valueCmd = &cobra.Command{
	Use:   "value <snapshot-file>",
	Short: "Compute the blended fair value for one snapshot",
	Long: `Runs all four models over a financial snapshot and prints the
per-model values, the weighted blend, and the resulting call.

The snapshot file is hjson (plain JSON works too):

  {
    symbol: HPG
    current_price: 80000
    shares_outstanding: 1000000000
    eps: 5000
    book_value_per_share: 40000
    net_income: 5000000000000
  }

Example:
  fairval value hpg.hjson
  fairval value hpg.hjson --preset conservative --margin 0.10
  fairval value hpg.hjson --weight-fcfe 0 --weight-fcff 0`,
	Args: cobra.ExactArgs(1),
	RunE: runValue,
}

var valueMargin float64

func init() {
	rootCmd.AddCommand(valueCmd)
	valueCmd.Flags().Float64Var(&valueMargin, "margin", valuation.DefaultMarginOfSafety,
		"margin of safety separating HOLD from BUY/SELL")
}

func runValue(cmd *cobra.Command, args []string) error {
	snap, err := loadSnapshot(args[0])
	if err != nil {
		return err
	}
	preset, err := resolvePreset()
	if err != nil {
		return err
	}

	res, err := valuation.ComputeWithOptions(snap, resolveAssumptions(preset), resolveWeights(preset),
		valuation.Options{
			Recommendation: valuation.RecommendationConfig{MarginOfSafety: valueMargin},
		})
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	renderResult(os.Stdout, res)
	return nil
}

func renderResult(w io.Writer, res *valuation.ValuationResult) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("%s  (market %s)", res.Symbol, formatPrice(res.CurrentPrice))
	tw.AppendHeader(table.Row{"Model", "Fair Value", "Weight"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	tw.AppendRows([]table.Row{
		{"FCFE", formatPrice(res.FCFE.ShareValue), res.Weights.FCFE},
		{"FCFF", formatPrice(res.FCFF.ShareValue), res.Weights.FCFF},
		{"Justified P/E", formatPrice(res.JustifiedPE.ShareValue), res.Weights.JustifiedPE},
		{"Justified P/B", formatPrice(res.JustifiedPB.ShareValue), res.Weights.JustifiedPB},
	})
	tw.AppendFooter(table.Row{"Blended", formatPrice(res.BlendedPrice), ""})
	tw.Render()

	action := string(res.Recommendation)
	switch res.Recommendation {
	case valuation.RecommendationBuy:
		action = text.Colors{text.FgGreen}.Sprint(action)
	case valuation.RecommendationSell:
		action = text.Colors{text.FgRed}.Sprint(action)
	}
	fmt.Fprintf(w, "\n%s  upside %+.1f%%  confidence %s\n", action, res.Upside*100, res.Confidence)
	fmt.Fprintln(w, res.Justification)
	if len(res.Flags) > 0 {
		fmt.Fprintf(w, "flags: %v\n", res.Flags)
	}
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
