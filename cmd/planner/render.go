// ABOUTME: Terminal rendering of the table, board and calendar views
// ABOUTME: Uses lipgloss styles; renderers are pure so they can be tested without a terminal

package main

import (
	"fmt"
	"strings"
	"time"

	"content-planner-api/core/domain"
	"content-planner-api/core/locale"
	"content-planner-api/core/views"
	timeutil "content-planner-api/pkg/utils/time"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("226"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	todayStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46"))

	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			Width(22)

	sponsoredMark = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("$")
)

// renderer formats views for one locale and time zone
type renderer struct {
	lang locale.Locale
	loc  *time.Location
}

func (r renderer) date(t time.Time) string {
	if t.IsZero() {
		return dimStyle.Render("-")
	}
	return timeutil.FormatDate(t, r.loc)
}

func (r renderer) title(item domain.ContentItem) string {
	if item.IsSponsored {
		return item.Title + " " + sponsoredMark
	}
	return item.Title
}

// Table renders rows with search matches highlighted
func (r renderer) Table(view views.TableView) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("ID", "TITLE", "PLATFORM", "STATUS", "TYPE", "DATE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(view.Rows) && view.Rows[row].Highlighted {
				return highlightStyle
			}
			return lipgloss.NewStyle()
		})

	for _, row := range view.Rows {
		item := row.Item
		t.Row(
			shortID(item.ID),
			r.title(item),
			r.lang.Platform(item.Platform),
			r.lang.Status(item.Status),
			r.lang.Type(item.Type),
			r.date(item.TargetDate),
		)
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	if view.Matches > 0 {
		fmt.Fprintf(&b, "%d match(es), first: %s\n", view.Matches, shortID(view.ScrollTo))
	}
	return b.String()
}

// Board renders one bordered column per status
func (r renderer) Board(board views.Board) string {
	cols := make([]string, 0, len(board.Columns))
	for _, col := range board.Columns {
		var b strings.Builder
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d)", r.lang.Status(col.Status), len(col.Items))))
		for _, item := range col.Items {
			b.WriteString("\n")
			b.WriteString(r.title(item))
			b.WriteString("\n")
			b.WriteString(dimStyle.Render(r.lang.Platform(item.Platform) + " · " + r.date(item.TargetDate)))
		}
		cols = append(cols, columnStyle.Render(b.String()))
	}

	out := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	if len(board.Unplaced) > 0 {
		out += "\n" + dimStyle.Render(fmt.Sprintf("%d item(s) with an unknown status", len(board.Unplaced)))
	}
	return out + "\n"
}

// Month renders the grid with up to two titles per day and a "+n" marker
func (r renderer) Month(month views.Month) string {
	const cellWidth = 16

	var b strings.Builder
	b.WriteString(headerStyle.Render(r.lang.MonthYear(month.Start)))
	b.WriteString("\n")

	cell := lipgloss.NewStyle().Width(cellWidth)
	days := make([]string, 0, 7)
	for _, d := range r.lang.Weekdays() {
		days = append(days, cell.Render(headerStyle.Render(d)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, days...))
	b.WriteString("\n")

	for _, week := range month.Weeks {
		cells := make([]string, 0, len(week))
		for _, d := range week {
			cells = append(cells, cell.Render(r.dayCell(d, cellWidth-1)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}

func (r renderer) dayCell(d views.Day, width int) string {
	label := fmt.Sprintf("%2d", d.Date.Day())
	switch {
	case d.IsToday:
		label = todayStyle.Render(label)
	case !d.InMonth:
		label = dimStyle.Render(label)
	}

	lines := []string{label}
	for _, item := range d.Visible {
		lines = append(lines, truncate(item.Title, width))
	}
	if d.Overflow > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("+%d", d.Overflow)))
	}
	return strings.Join(lines, "\n")
}

// Agenda renders the compact list used with --mobile
func (r renderer) Agenda(month time.Time, days []views.AgendaDay) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(r.lang.MonthYear(month)))
	b.WriteString("\n")
	if len(days) == 0 {
		b.WriteString(dimStyle.Render("(no items)"))
		b.WriteString("\n")
		return b.String()
	}
	weekdays := r.lang.Weekdays()
	for _, d := range days {
		fmt.Fprintf(&b, "%s %d\n", weekdays[d.Date.Weekday()], d.Date.Day())
		for _, item := range d.Items {
			fmt.Fprintf(&b, "  %s  %s\n", r.title(item), dimStyle.Render(r.lang.Status(item.Status)))
		}
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
