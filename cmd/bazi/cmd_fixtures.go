package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bazi-engine/internal/fixtures"
	"bazi-engine/internal/regression"
)

var fixturesFlags struct {
	suite string
	check bool
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "List or check the embedded reference charts",
	RunE:  runFixtures,
}

func init() {
	f := fixturesCmd.Flags()
	f.StringVar(&fixturesFlags.suite, "suite", "", "Only this suite (default: all)")
	f.BoolVar(&fixturesFlags.check, "check", false, "Analyze every chart and compare with the expected result")
}

func runFixtures(cmd *cobra.Command, _ []string) error {
	var suites []fixtures.Suite
	if fixturesFlags.suite != "" {
		s, err := fixtures.LoadSuite(fixturesFlags.suite)
		if err != nil {
			return err
		}
		suites = []fixtures.Suite{*s}
	} else {
		all, err := fixtures.LoadAll()
		if err != nil {
			return err
		}
		suites = all
	}

	out := cmd.OutOrStdout()
	if !fixturesFlags.check {
		for _, s := range suites {
			fmt.Fprintf(out, "%s (%d): %s\n", s.Name, len(s.Cases), s.Description)
			for _, c := range s.Cases {
				fmt.Fprintf(out, "  %-32s %s -> %s %s\n", c.Name, c.Pillars, c.Expect.Geju, c.Expect.Strength)
			}
		}
		return nil
	}

	sum, err := regression.Run(cmd.Context(), newChartService(), suites, cli.cfg.BatchParallel)
	if err != nil {
		return err
	}
	for _, r := range sum.Results {
		mark := "ok"
		if !r.OK() {
			mark = "MISMATCH"
		}
		fmt.Fprintf(out, "%-10s %-32s %-12s %-12s %-6s %-6s %s\n",
			r.Suite, r.Case, r.Got.Geju, r.Expect.Geju, r.Got.Strength, r.Expect.Strength, mark)
	}
	fmt.Fprintf(out, "geju %.1f%% (%d/%d), strength %.1f%% (%d/%d)\n",
		sum.GejuAccuracy()*100, sum.GejuOK, sum.Total,
		sum.StrengthAccuracy()*100, sum.StrengthOK, sum.Total)
	if !sum.Passed() {
		return fmt.Errorf("fixture check failed")
	}
	return nil
}
