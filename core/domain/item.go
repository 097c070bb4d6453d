// ABOUTME: ContentItem domain model represents one planned piece of content
// ABOUTME: Defines the fixed platform and workflow status enums with validation

package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Platform is the channel a piece of content is published on
type Platform string

const (
	PlatformYouTube Platform = "YouTube"
	PlatformShort   Platform = "Short"
	PlatformReel    Platform = "Reel"
	PlatformPodcast Platform = "Podcast"
	PlatformEmail   Platform = "Email"
)

// Status is a step of the content workflow. The order of Statuses() is the
// canonical board order; transitions between statuses are not restricted.
type Status string

const (
	StatusIdea      Status = "Idea"
	StatusScripting Status = "Scripting"
	StatusRecording Status = "Recording"
	StatusEditing   Status = "Editing"
	StatusScheduled Status = "Scheduled"
	StatusPublished Status = "Published"
)

var (
	platforms = []Platform{PlatformYouTube, PlatformShort, PlatformReel, PlatformPodcast, PlatformEmail}
	statuses  = []Status{StatusIdea, StatusScripting, StatusRecording, StatusEditing, StatusScheduled, StatusPublished}
)

// Defaults applied to new items when the caller leaves a field empty
const (
	DefaultPlatform = PlatformYouTube
	DefaultStatus   = StatusIdea
)

var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrInvalidPlatform = errors.New("invalid platform")
	ErrInvalidStatus   = errors.New("invalid status")
)

// Platforms returns all platforms in display order
func Platforms() []Platform {
	out := make([]Platform, len(platforms))
	copy(out, platforms)
	return out
}

// Statuses returns all statuses in canonical workflow order
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

// ParsePlatform validates a platform name
func ParsePlatform(s string) (Platform, error) {
	for _, p := range platforms {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPlatform, s)
}

// ParseStatus validates a status name
func ParseStatus(s string) (Status, error) {
	for _, st := range statuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// IsValid reports whether p is one of the fixed platforms
func (p Platform) IsValid() bool {
	_, err := ParsePlatform(string(p))
	return err == nil
}

// IsValid reports whether s is one of the fixed statuses
func (s Status) IsValid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// Index returns the position of s in the workflow, or -1
func (s Status) Index() int {
	for i, st := range statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// ContentItem is a planned piece of content and its workflow metadata
type ContentItem struct {
	// ID is assigned by the store on creation and never changes
	ID string

	Title    string
	Platform Platform
	Status   Status

	// Type is a free-text classification such as "Tutorial" or "Vlog"
	Type string

	// TargetDate is the planned publish time. The zero value means the
	// date was missing or could not be parsed.
	TargetDate time.Time

	IsSponsored bool
	Notes       string

	// OwnerID is only known to the persistence service; it never crosses the wire
	OwnerID string
}

// TargetOr returns the target date, or now when it is missing
func (c ContentItem) TargetOr(now time.Time) time.Time {
	if c.TargetDate.IsZero() {
		return now
	}
	return c.TargetDate
}

// Validate checks the invariants every stored item must hold
func (c ContentItem) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyTitle
	}
	if !c.Platform.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPlatform, c.Platform)
	}
	if !c.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, c.Status)
	}
	return nil
}

// WithDefaults fills empty enum fields with the creation defaults
func (c ContentItem) WithDefaults() ContentItem {
	if c.Platform == "" {
		c.Platform = DefaultPlatform
	}
	if c.Status == "" {
		c.Status = DefaultStatus
	}
	return c
}
