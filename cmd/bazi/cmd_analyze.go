package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bazi-engine/internal/domain"
)

var analyzeFlags struct {
	jsonOut bool
	trace   bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <pillars>",
	Short: "Analyze one chart",
	Long: `Analyze recibe los cuatro pilares como tronco+rama separados por espacios.

Usage:
  bazi analyze "丁卯 壬寅 乙亥 辛巳"
  bazi analyze 丁卯 壬寅 乙亥 辛巳 --trace
  bazi analyze "庚午 辛巳 乙酉 壬午" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.BoolVar(&analyzeFlags.jsonOut, "json", false, "Print the full report as JSON")
	f.BoolVar(&analyzeFlags.trace, "trace", false, "Print the analysis trace after the summary")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	chart, err := domain.ParseChart(strings.Join(args, " "))
	if err != nil {
		return err
	}
	rep, err := newChartService().Analyze(cmd.Context(), chart)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if analyzeFlags.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	renderReport(out, rep)
	if analyzeFlags.trace {
		fmt.Fprintln(out)
		renderTrace(out, rep.Trace)
	}
	return nil
}
