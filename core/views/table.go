// ABOUTME: Table projection sorts and searches the shared item list
// ABOUTME: Sorting is stable and case-insensitive with target date as tiebreak

package views

import (
	"sort"
	"strings"
	"time"

	"content-planner-api/core/domain"
)

// SortKey names a sortable table column
type SortKey string

const (
	SortNone     SortKey = ""
	SortTitle    SortKey = "title"
	SortPlatform SortKey = "platform"
	SortStatus   SortKey = "status"
	SortTarget   SortKey = "target_date"
)

// ParseSortKey validates a column name
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortNone, SortTitle, SortPlatform, SortStatus, SortTarget:
		return k, true
	}
	return SortNone, false
}

// SortState is the active sort. The zero value sorts by target date ascending.
type SortState struct {
	Key  SortKey
	Desc bool
}

// Toggle returns the state after clicking the header of key: the same key
// flips direction, a new key starts ascending
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		return SortState{Key: key, Desc: !s.Desc}
	}
	return SortState{Key: key}
}

// SortItems returns a sorted copy of items. now stands in for missing dates.
func SortItems(items []domain.ContentItem, s SortState, now time.Time) []domain.ContentItem {
	out := make([]domain.ContentItem, len(items))
	copy(out, items)

	sort.SliceStable(out, func(i, j int) bool {
		if c := compareBy(out[i], out[j], s.Key, now); c != 0 {
			if s.Desc {
				return c > 0
			}
			return c < 0
		}
		// Secondary order is always target date ascending
		return out[i].TargetOr(now).Before(out[j].TargetOr(now))
	})
	return out
}

func compareBy(a, b domain.ContentItem, key SortKey, now time.Time) int {
	switch key {
	case SortTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortPlatform:
		return strings.Compare(strings.ToLower(string(a.Platform)), strings.ToLower(string(b.Platform)))
	case SortStatus:
		return strings.Compare(strings.ToLower(string(a.Status)), strings.ToLower(string(b.Status)))
	case SortTarget:
		return a.TargetOr(now).Compare(b.TargetOr(now))
	default:
		return 0
	}
}

// Row is one rendered table row
type Row struct {
	Item        domain.ContentItem
	Highlighted bool
}

// TableView is the table ready to draw
type TableView struct {
	Rows []Row

	// Matches is the number of highlighted rows
	Matches int

	// FirstMatch is the row index of the first highlighted row, or -1
	FirstMatch int

	// ScrollTo is the id of the first highlighted row, empty when none
	ScrollTo string
}

// Table holds the user's sort and search settings
type Table struct {
	Sort  SortState
	Query string
}

// Render sorts items and marks rows matching the search query
func (t Table) Render(items []domain.ContentItem, now time.Time) TableView {
	return Search(SortItems(items, t.Sort, now), t.Query)
}

// Search marks the rows of items matching query, keeping their order
func Search(items []domain.ContentItem, query string) TableView {
	view := TableView{Rows: make([]Row, len(items)), FirstMatch: -1}

	for i, item := range items {
		hit := Matches(item, query)
		view.Rows[i] = Row{Item: item, Highlighted: hit}
		if hit {
			view.Matches++
			if view.FirstMatch < 0 {
				view.FirstMatch = i
				view.ScrollTo = item.ID
			}
		}
	}
	return view
}

// Matches reports a case-insensitive substring match of query against the
// title, platform or type. An empty query matches nothing.
func Matches(item domain.ContentItem, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	for _, field := range []string{item.Title, string(item.Platform), item.Type} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
