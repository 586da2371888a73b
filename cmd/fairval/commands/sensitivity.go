package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"fairval/pkg/core/valuation"
)

// sensitivityCmd represents the sensitivity command
var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity <snapshot-file>",
	Short: "Print a discount-rate / terminal-growth sensitivity grid",
	Long: `Recomputes the blended fair value across a grid of perturbed
discount and terminal growth rates. Rows vary the discount rates, columns
the terminal growth; the center cell is the unperturbed base case.
Combinations where growth reaches the discount rate are printed as "-".

Example:
  fairval sensitivity hpg.hjson
  fairval sensitivity hpg.hjson --size 7 --rate-step 0.01`,
	Args: cobra.ExactArgs(1),
	RunE: runSensitivity,
}

var (
	gridSize       int
	gridRateStep   float64
	gridGrowthStep float64
)

func init() {
	rootCmd.AddCommand(sensitivityCmd)
	sensitivityCmd.Flags().IntVar(&gridSize, "size", 5, "grid dimension (odd, even values are bumped)")
	sensitivityCmd.Flags().Float64Var(&gridRateStep, "rate-step", 0.005, "discount rate step between rows")
	sensitivityCmd.Flags().Float64Var(&gridGrowthStep, "growth-step", 0.005, "terminal growth step between columns")
}

func runSensitivity(cmd *cobra.Command, args []string) error {
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
			Sensitivity: &valuation.GridConfig{
				Size:       gridSize,
				RateStep:   gridRateStep,
				GrowthStep: gridGrowthStep,
			},
		})
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Sensitivity)
	}

	grid := res.Sensitivity
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	tw.SetTitle("%s  blended fair value, base %.2f", res.Symbol, res.BlendedPrice)

	header := table.Row{`WACC \ g`}
	for _, g := range grid.ColHeaders {
		header = append(header, fmt.Sprintf("%.2f%%", g*100))
	}
	tw.AppendHeader(header)

	center := len(grid.RowHeaders) / 2
	for i, rate := range grid.RowHeaders {
		row := table.Row{fmt.Sprintf("%.2f%%", rate*100)}
		for j, cell := range grid.Values[i] {
			switch {
			case cell == nil:
				row = append(row, "-")
			case i == center && j == center:
				row = append(row, text.Bold.Sprintf("%.2f", *cell))
			default:
				row = append(row, fmt.Sprintf("%.2f", *cell))
			}
		}
		tw.AppendRow(row)
	}

	cfgs := make([]table.ColumnConfig, 0, len(grid.ColHeaders)+1)
	for i := 0; i <= len(grid.ColHeaders); i++ {
		cfgs = append(cfgs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(cfgs)

	tw.Render()
	return nil
}
