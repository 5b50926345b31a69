package main

import (
	"fmt"
	"io"
	"strings"

	"bazi-engine/internal/service"
)

func renderReport(w io.Writer, rep service.Report) {
	fmt.Fprintf(w, "四柱  %s   日主 %s(%s)\n", rep.Pillars, rep.DayMaster, rep.DayElement)

	parts := make([]string, 0, len(rep.Scores.Entries))
	for _, e := range rep.Scores.Entries {
		parts = append(parts, fmt.Sprintf("%s %.1f[%s]", e.Element, e.Score, e.Stage))
	}
	fmt.Fprintf(w, "五行  %s\n", strings.Join(parts, "  "))

	if len(rep.Interactions) == 0 {
		fmt.Fprintln(w, "合冲  无")
	}
	for i, in := range rep.Interactions {
		label := "      "
		if i == 0 {
			label = "合冲  "
		}
		suffix := ""
		if in.Transform != "" {
			if in.IsTransformed {
				suffix = " 化"
			} else {
				suffix = " 不化"
			}
		}
		fmt.Fprintf(w, "%s%s%s\n", label, in.Desc, suffix)
	}

	fmt.Fprintf(w, "格局  %s %s (%s, %s)\n", rep.Geju.Name, rep.Geju.StatusText(), rep.Geju.Type, rep.Geju.Source)
	a := rep.Analysis
	fmt.Fprintf(w, "强弱  %s %.2f%%  生助 %.1f / 泄耗 %.1f\n", a.StrengthLevel, a.StrengthScore, a.Support, a.Drain)
	fmt.Fprintf(w, "用神  %s  喜神 %s  忌神 %s  仇神 %s  (%s)\n", a.YongShen, a.XiShen, a.JiShen, a.ChouShen, a.LogicType)
}

func renderTrace(w io.Writer, entries []service.TraceEntry) {
	for _, e := range entries {
		fmt.Fprintf(w, "[%s] %s\n", e.Module, e.Desc)
	}
}
