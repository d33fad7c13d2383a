// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wlactions/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// FormatDuration renders an elapsed duration as "Xm Ys" past a minute and
// "Xs" below it.
func FormatDuration(d time.Duration) string {
	secs := int64(d.Seconds())
	if secs < 0 {
		secs = 0
	}
	if secs >= 60 {
		return fmt.Sprintf("%dm %ds", secs/60, secs%60)
	}
	return fmt.Sprintf("%ds", secs)
}

// ActionsPerMinute computes the rate for total actions over an elapsed
// duration. Zero elapsed yields 0 rather than a division fault.
func ActionsPerMinute(total uint64, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(total) / secs * 60
}

// RenderSummary writes the end-of-run report. Scroll steps appear in their
// own row but are excluded from the total and the rate; the note on both
// rows says so.
func RenderSummary(w io.Writer, sum model.Summary, useColor bool) error {
	style := func(s lipgloss.Style, text string) string {
		if !useColor {
			return text
		}
		return s.Render(text)
	}

	rows := [][]string{
		{"Duration", FormatDuration(sum.Elapsed)},
		{"Key presses", fmt.Sprintf("%d", sum.Counts.KeyPresses)},
		{"Button clicks", fmt.Sprintf("%d", sum.Counts.ButtonClicks)},
		{"Scroll steps", fmt.Sprintf("%d", sum.Counts.ScrollSteps) + " (tracked separately)"},
		{"Touch taps", fmt.Sprintf("%d", sum.Counts.TouchTaps)},
		{"Total actions", fmt.Sprintf("%d", sum.Counts.Total()) + " (keys + clicks + taps)"},
		{"Actions per minute", fmt.Sprintf("%.1f", ActionsPerMinute(sum.Counts.Total(), sum.Elapsed))},
	}

	if _, err := fmt.Fprintln(w, style(titleStyle, "=== Action Summary ===")); err != nil {
		return err
	}
	if !useColor {
		for _, line := range formatTable(nil, rows, nil) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	} else {
		// Styling happens after padding: ANSI escapes would throw off the
		// width calculation.
		labelWidth := 0
		for _, row := range rows {
			if lw := displayWidth(row[0]); lw > labelWidth {
				labelWidth = lw
			}
		}
		for _, row := range rows {
			pad := strings.Repeat(" ", labelWidth-displayWidth(row[0]))
			line := style(labelStyle, row[0]) + pad + " " + style(valueStyle, row[1])
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintln(w, style(noteStyle, "Scroll steps are counted but excluded from the total.")); err != nil {
		return err
	}
	return nil
}
