package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/wbrown/img2paint"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - headings
	colorGreen = lipgloss.Color("35")  // Green - success
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - borders
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// printSummary writes a per-pass table of the render.
func printSummary(w io.Writer, output string, cfg img2paint.Config, res img2paint.Result) {
	mode := "uniform"
	if cfg.Oriented {
		mode = fmt.Sprintf("oriented, %d angles", cfg.Angles)
	}

	rows := make([][]string, 0, len(res.Passes))
	for _, p := range res.Passes {
		rows = append(rows, []string{
			strconv.Itoa(p.Pass),
			strconv.Itoa(p.Size),
			strconv.Itoa(p.Target),
			fmt.Sprintf("%.3f", p.AcceptanceRate),
			strconv.Itoa(p.Iterations),
			strconv.Itoa(p.Accepted),
			p.Elapsed.Round(time.Millisecond).String(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Pass", "Size", "Target", "Rate", "Iterations", "Accepted", "Time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	fmt.Fprintln(w, styleTitle.Render("img2paint")+" "+mode+", seed "+strconv.FormatUint(cfg.Seed, 10))
	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, styleSuccess.Render("✓")+" wrote "+output)
}
