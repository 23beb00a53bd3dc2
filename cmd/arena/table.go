package main

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/snapllm/arena/internal/models"
)

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// renderTable formats rows as an aligned text table with a header rule.
func renderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(padRight(cell, widths[i]))
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	total := 0
	for _, w := range widths {
		total += w
	}
	b.WriteString(strings.Repeat("-", total+2*(len(headers)-1)))
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}

// truncate shortens s to max display columns, appending an ellipsis.
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}

func formatWinRate(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

// trendGlyph renders a leaderboard trend as a signed rating movement.
func trendGlyph(e models.LeaderboardEntry) string {
	switch e.Trend {
	case models.TrendUp:
		return fmt.Sprintf("^ %+d", e.LastChange)
	case models.TrendDown:
		return fmt.Sprintf("v %+d", e.LastChange)
	default:
		return "-"
	}
}
