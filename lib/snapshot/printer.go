// Copyright 2026 The Skim Authors
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
)

// Printer renders cut-flow reports. Terminals get a bordered table;
// anything else (batch logs, pipes) gets one plain line per stage so
// that the output greps well.
type Printer struct {
	writer io.Writer
	styled bool
}

// NewPrinter returns a printer for w, styled when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	styled := false
	if file, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(file.Fd()))
	}
	return &Printer{writer: w, styled: styled}
}

// NewPlainPrinter returns a printer that never styles its output.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{writer: w}
}

// row is one rendered cut-flow line.
type row struct {
	label      string
	passed     int64
	previous   int64
	efficiency float64
	cumulative float64
}

func rows(report *Report) []row {
	result := make([]row, 0, len(report.Stages))
	previous := report.Input
	for _, stage := range report.Stages {
		result = append(result, row{
			label:      stage.Label,
			passed:     stage.Passed,
			previous:   previous,
			efficiency: percent(stage.Passed, previous),
			cumulative: percent(stage.Passed, report.Input),
		})
		previous = stage.Passed
	}
	return result
}

func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}

// Print writes the cut flow of report.
func (p *Printer) Print(report *Report) error {
	var text string
	if p.styled {
		text = renderTable(report)
	} else {
		text = renderPlain(report)
	}
	_, err := io.WriteString(p.writer, text)
	return err
}

func title(report *Report) string {
	return fmt.Sprintf("Cut flow: %s %s (%d events in)", report.Process, report.Partition, report.Input)
}

func renderPlain(report *Report) string {
	var builder strings.Builder
	builder.WriteString(title(report))
	builder.WriteByte('\n')

	width := 0
	for _, stage := range report.Stages {
		width = max(width, len(stage.Label))
	}
	for _, line := range rows(report) {
		fmt.Fprintf(&builder, "%-*s: pass=%-10d all=%-10d -- eff=%.2f %% cumulative eff=%.2f %%\n",
			width, line.label, line.passed, line.previous, line.efficiency, line.cumulative)
	}
	return builder.String()
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

func renderTable(report *Report) string {
	cutFlow := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Stage", "Pass", "All", "Eff", "Cumulative").
		StyleFunc(func(rowIndex, column int) lipgloss.Style {
			switch {
			case rowIndex == table.HeaderRow:
				return headerStyle
			case column == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
	for _, line := range rows(report) {
		cutFlow.Row(
			line.label,
			strconv.FormatInt(line.passed, 10),
			strconv.FormatInt(line.previous, 10),
			fmt.Sprintf("%.2f %%", line.efficiency),
			fmt.Sprintf("%.2f %%", line.cumulative),
		)
	}
	return titleStyle.Render(title(report)) + "\n" + cutFlow.Render() + "\n"
}
