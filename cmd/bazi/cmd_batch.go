package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"bazi-engine/internal/domain"
)

var batchFlags struct {
	file     string
	parallel int
	jsonOut  bool
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze many charts, one per line",
	Long: `Batch lee una carta por línea (las líneas vacías y las que empiezan con # se
ignoran) y las analiza en paralelo. Un error en una carta no detiene al resto.

Usage:
  bazi batch --file charts.txt
  cat charts.txt | bazi batch --parallel 8 --json`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.StringVarP(&batchFlags.file, "file", "f", "-", "Input file (- for stdin)")
	f.IntVar(&batchFlags.parallel, "parallel", 0, "Concurrent analyses (default: $BATCH_PARALLEL)")
	f.BoolVar(&batchFlags.jsonOut, "json", false, "Print one JSON report per line")
}

type batchLine struct {
	line  int
	text  string
	chart domain.Chart
	err   error
}

func readBatch(r io.Reader) ([]batchLine, error) {
	var out []batchLine
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		chart, err := domain.ParseChart(text)
		out = append(out, batchLine{line: n, text: text, chart: chart, err: err})
	}
	return out, sc.Err()
}

func runBatch(cmd *cobra.Command, _ []string) error {
	in := cmd.InOrStdin()
	if batchFlags.file != "-" {
		f, err := os.Open(batchFlags.file)
		if err != nil {
			return fmt.Errorf("open batch file: %w", err)
		}
		defer f.Close()
		in = f
	}
	lines, err := readBatch(in)
	if err != nil {
		return fmt.Errorf("read batch: %w", err)
	}

	parallel := batchFlags.parallel
	if parallel <= 0 {
		parallel = cli.cfg.BatchParallel
	}
	charts := make([]domain.Chart, len(lines))
	for i, l := range lines {
		charts[i] = l.chart
	}
	results, err := newChartService().AnalyzeBatch(cmd.Context(), charts, parallel)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	failed := 0
	for i, r := range results {
		l := lines[i]
		if l.err != nil {
			r.Err = l.err
		}
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "line %d (%s): %v\n", l.line, l.text, r.Err)
			continue
		}
		if batchFlags.jsonOut {
			if err := enc.Encode(r.Report); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(out, "%-14s %-10s %-14s %-4s 用神%s\n",
			r.Report.Pillars, r.Report.Geju.Name, r.Report.Geju.StatusText(),
			r.Report.Analysis.StrengthLevel, r.Report.Analysis.YongShen)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d charts failed", failed, len(lines))
	}
	return nil
}
