package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const maxErrorWidth = 60

var reportHeader = []string{"SOURCE", "NAME", "COLUMN", "RAW", "ITEMS", "RESOLVABLE", "RESOLVED", "LATENCY", "ERROR"}

// renderTable lays results out in aligned columns. Source names are mostly CJK, so
// widths are measured in terminal cells rather than runes.
func renderTable(results []Result) string {
	rows := make([][]string, 0, len(results)+1)
	rows = append(rows, reportHeader)
	failed := 0
	for _, r := range results {
		errText := ""
		if r.Error != "" {
			failed++
			errText = runewidth.Truncate(r.ErrorType+": "+r.Error, maxErrorWidth, "...")
		}
		rows = append(rows, []string{
			r.ID,
			r.Name,
			r.Column,
			strconv.Itoa(r.Raw),
			strconv.Itoa(r.Items),
			strconv.Itoa(r.Resolvable),
			strconv.Itoa(r.Resolved),
			fmt.Sprintf("%dms", r.LatencyMS),
			errText,
		})
	}

	widths := make([]int, len(reportHeader))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "\n%d sources, %d failed\n", len(results), failed)
	return sb.String()
}
