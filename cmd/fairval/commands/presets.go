package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"fairval/pkg/core/assumption"
)

// presetsCmd represents the presets command
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List available assumption presets",
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	presets := assumption.BuiltinPresets()
	if presetsFile != "" {
		loaded, err := assumption.LoadPresets(presetsFile)
		if err != nil {
			return err
		}
		presets = loaded
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Name", "Growth", "g_term", "r", "WACC", "Years", "Description"})
	for _, name := range assumption.Names(presets) {
		p := presets[name]
		a := p.Assumptions
		tw.AppendRow(table.Row{
			name,
			percent(a.RevenueGrowth),
			percent(a.TerminalGrowth),
			percent(a.RequiredReturn),
			percent(a.WACC),
			a.ProjectionYears,
			p.Description,
		})
	}
	tw.Render()
	return nil
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
