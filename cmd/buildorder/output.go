package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/napolitain/buildorder/internal/converter"
	"github.com/napolitain/buildorder/internal/order"
	"github.com/napolitain/buildorder/internal/simulation"
)

func printReport(w io.Writer, report converter.Report) {
	infoColor := color.New(color.FgYellow)
	infoColor.Fprintf(w, "📊 Simulated %s: mineral=%.0f gas=%.0f supply=%d/%d\n",
		formatTime(report.MaxTime),
		report.Final.Mineral,
		report.Final.Gas,
		report.Final.Supply,
		report.Final.MaxSupply)

	if len(report.Diagnostics) == 0 {
		color.New(color.FgGreen, color.Bold).Fprintln(w, "✓ Build order is valid")
		return
	}

	color.New(color.FgRed, color.Bold).Fprintf(w, "✗ %d violation(s)\n", len(report.Diagnostics))
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"#", "Time", "Action", "Problem"}),
	)
	for _, d := range report.Diagnostics {
		index := "-"
		if d.Index >= 0 {
			index = fmt.Sprintf("%d", d.Index)
		}
		problem := d.Label
		if d.Addon != "" {
			problem = fmt.Sprintf("%s (%s)", d.Label, d.Addon)
		}
		_ = table.Append([]string{index, formatTime(d.Time), d.Action, problem})
	}
	_ = table.Render()
}

func printTimeline(w io.Writer, result *simulation.Result, step int) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Time", "Mineral", "Gas", "Supply", "OK", "In production"}),
	)
	for t := 0; t <= result.MaxTime; t += step {
		in := result.At(t)
		ok := "✓"
		if !in.IsPossible() {
			ok = "✗"
		}
		queue := make([]string, 0, len(in.Queue))
		for _, a := range in.Queue {
			queue = append(queue, a.Label())
		}
		_ = table.Append([]string{
			formatTime(t),
			fmt.Sprintf("%.0f", in.Mineral),
			fmt.Sprintf("%.0f", in.Gas),
			fmt.Sprintf("%d/%d", in.Supply.Current, in.Supply.Max),
			ok,
			strings.Join(queue, ", "),
		})
	}
	_ = table.Render()
}

func printActions(w io.Writer, factories []order.Factory, earliest []order.Second) {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeader([]string{"Action", "Earliest"}),
	)
	for i, f := range factories {
		when := "never"
		if earliest[i] != order.Infinity {
			when = formatTime(earliest[i])
		}
		_ = table.Append([]string{f.Label(), when})
	}
	_ = table.Render()
}

func formatTime(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
