package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	"autotap/internal/core/autoclicker"
	"autotap/internal/event"
)

var (
	startedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	stoppedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
	countStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	disabledRow  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// crlfWriter turns \n into \r\n while the terminal is in raw mode, where the
// tty no longer does it for us.
type crlfWriter struct {
	w   io.Writer
	raw *atomic.Bool
	mu  sync.Mutex
}

func newCRLFWriter(w io.Writer, raw *atomic.Bool) *crlfWriter {
	return &crlfWriter{w: w, raw: raw}
}

func (c *crlfWriter) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.raw.Load() {
		return c.w.Write(p)
	}
	converted := strings.ReplaceAll(string(p), "\n", "\r\n")
	if _, err := io.WriteString(c.w, converted); err != nil {
		return 0, err
	}
	return len(p), nil
}

// statusPrinter renders scheduler events as one styled line each.
type statusPrinter struct {
	out io.Writer
}

func (p *statusPrinter) handle(e event.Event) {
	if line := formatEvent(e); line != "" {
		fmt.Fprintln(p.out, line)
	}
}

func formatEvent(e event.Event) string {
	switch ev := e.(type) {
	case event.StartedEvent:
		return startedStyle.Render("started") + mutedStyle.Render(fmt.Sprintf(" session %d, %d enabled point(s)", ev.Session, ev.Points))
	case event.StoppedEvent:
		return stoppedStyle.Render("stopped") + mutedStyle.Render(fmt.Sprintf(" session %d after %d tap(s) (%s)", ev.Session, ev.TapCount, ev.Reason))
	case event.CountUpdatedEvent:
		target := "fallback"
		if ev.PointID != 0 {
			target = "point " + strconv.Itoa(ev.PointID)
		}
		return countStyle.Render(fmt.Sprintf("taps %d", ev.Count)) + mutedStyle.Render(" "+target)
	case event.PointsChangedEvent:
		return mutedStyle.Render(fmt.Sprintf("points: %d total, %d enabled", ev.Total, ev.Enabled))
	default:
		return ""
	}
}

func renderPointTable(points []autoclicker.ClickPoint) string {
	if len(points) == 0 {
		return mutedStyle.Render("no click points")
	}

	headers := []string{"ID", "X", "Y", "INTERVAL", "ENABLED", "REPEAT"}
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		repeat := "unlimited"
		if p.Repeat != autoclicker.RepeatUnlimited {
			repeat = strconv.Itoa(p.Repeat)
		}
		rows = append(rows, []string{
			strconv.Itoa(p.ID),
			formatCoord(p.X),
			formatCoord(p.Y),
			p.Interval.String(),
			strconv.FormatBool(p.Enabled),
			repeat,
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var sb strings.Builder
	sb.WriteString(renderRow(headers, widths, headerStyle))
	for i, row := range rows {
		sb.WriteString("\n")
		style := lipgloss.NewStyle()
		if !points[i].Enabled {
			style = disabledRow
		}
		sb.WriteString(renderRow(row, widths, style))
	}
	return sb.String()
}

func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	rendered := make([]string, len(cells))
	for i, cell := range cells {
		rendered[i] = style.Width(widths[i]).Render(cell)
	}
	return strings.Join(rendered, "  ")
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
