// ABOUTME: iCalendar export renders planned items as all-day VEVENTs
// ABOUTME: Used by the calendar.ics endpoint and the CLI calendar command

package views

import (
	"fmt"
	"io"
	"time"

	"content-planner-api/core/domain"
	"github.com/emersion/go-ical"
)

// PropContentStatus carries the workflow status on each event
const PropContentStatus = "X-CONTENT-STATUS"

const productID = "-//Content Planner//Calendar Export//ES"

// ToICalendar builds a calendar with one all-day event per item. Items
// without a target date are placed on the day of now, in now's location.
func ToICalendar(items []domain.ContentItem, now time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	loc := now.Location()
	for _, item := range items {
		t := item.TargetOr(now).In(loc)
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, item.ID)
		event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
		event.Props.SetDate(ical.PropDateTimeStart, day)
		event.Props.SetDate(ical.PropDateTimeEnd, day.AddDate(0, 0, 1))
		event.Props.SetText(ical.PropSummary, item.Title)
		if item.Notes != "" {
			event.Props.SetText(ical.PropDescription, item.Notes)
		}
		event.Props.SetText(ical.PropCategories, string(item.Platform))

		status := ical.NewProp(PropContentStatus)
		status.Value = string(item.Status)
		event.Props[PropContentStatus] = []ical.Prop{*status}

		cal.Children = append(cal.Children, event.Component)
	}
	return cal
}

// WriteICS encodes items as an iCalendar document
func WriteICS(w io.Writer, items []domain.ContentItem, now time.Time) error {
	if err := ical.NewEncoder(w).Encode(ToICalendar(items, now)); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}
