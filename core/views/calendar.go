// ABOUTME: Calendar projection lays items out on a Sunday-first month grid
// ABOUTME: Items are grouped by the local calendar day of their target date

package views

import (
	"time"

	"content-planner-api/core/domain"
)

// VisiblePerDay is how many items a day cell shows before overflowing
const VisiblePerDay = 2

// Day is one cell of the month grid
type Day struct {
	Date    time.Time
	InMonth bool
	IsToday bool

	// Items holds every item on this day; Visible is the prefix a cell shows
	Items   []domain.ContentItem
	Visible []domain.ContentItem

	// Overflow counts the items hidden behind "see all"
	Overflow int
}

// Month is a rendered month: whole weeks from the Sunday on or before the
// first of the month to the Saturday on or after the last
type Month struct {
	Start time.Time
	Weeks [][]Day
}

// AgendaDay is one entry of the compact list used on narrow screens
type AgendaDay struct {
	Date  time.Time
	Items []domain.ContentItem
}

// Calendar groups items by day in a fixed location
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar creates a calendar for loc; nil means time.Local
func NewCalendar(loc *time.Location, now func() time.Time) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &Calendar{loc: loc, now: now}
}

// Location returns the zone days are computed in
func (c *Calendar) Location() *time.Location { return c.loc }

// StartOfMonth returns midnight of the first day of t's month
func (c *Calendar) StartOfMonth(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, c.loc)
}

// Next returns the first day of the following month
func (c *Calendar) Next(month time.Time) time.Time {
	return c.StartOfMonth(month).AddDate(0, 1, 0)
}

// Prev returns the first day of the preceding month
func (c *Calendar) Prev(month time.Time) time.Time {
	return c.StartOfMonth(month).AddDate(0, -1, 0)
}

// MonthGrid builds the grid for the month containing month
func (c *Calendar) MonthGrid(month time.Time, items []domain.ContentItem) Month {
	now := c.now()
	byDay := c.group(items, now)
	today := c.dayOf(now)

	first := c.StartOfMonth(month)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	grid := Month{Start: first}
	var week []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dayItems := byDay[d]
		cell := Day{
			Date:    d,
			InMonth: d.Month() == first.Month(),
			IsToday: d.Equal(today),
			Items:   dayItems,
			Visible: dayItems,
		}
		if len(dayItems) > VisiblePerDay {
			cell.Visible = dayItems[:VisiblePerDay]
			cell.Overflow = len(dayItems) - VisiblePerDay
		}
		week = append(week, cell)
		if len(week) == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = nil
		}
	}
	return grid
}

// DayItems returns every item on the day containing day
func (c *Calendar) DayItems(day time.Time, items []domain.ContentItem) []domain.ContentItem {
	return c.group(items, c.now())[c.dayOf(day)]
}

// Agenda lists the days of month that have at least one item, in date order
func (c *Calendar) Agenda(month time.Time, items []domain.ContentItem) []AgendaDay {
	var out []AgendaDay
	for _, week := range c.MonthGrid(month, items).Weeks {
		for _, d := range week {
			if d.InMonth && len(d.Items) > 0 {
				out = append(out, AgendaDay{Date: d.Date, Items: d.Items})
			}
		}
	}
	return out
}

func (c *Calendar) dayOf(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// group keys items by local day; items without a date fall on today
func (c *Calendar) group(items []domain.ContentItem, now time.Time) map[time.Time][]domain.ContentItem {
	out := make(map[time.Time][]domain.ContentItem)
	for _, item := range items {
		day := c.dayOf(item.TargetOr(now))
		out[day] = append(out[day], item)
	}
	return out
}
