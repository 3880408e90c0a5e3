package domain

import (
	"context"
	"time"
)

// RSVP statuses. Anything else in storage is treated as corrupt and skipped
// by aggregation.
const (
	StatusGoing   = "going"
	StatusMaybe   = "maybe"
	StatusDecline = "decline"
)

// StatusDisplayOrder is the fixed order statuses appear in summaries.
var StatusDisplayOrder = []string{StatusGoing, StatusMaybe, StatusDecline}

// ValidStatus reports whether s is one of the three known RSVP statuses.
func ValidStatus(s string) bool {
	return s == StatusGoing || s == StatusMaybe || s == StatusDecline
}

// RSVP is a user's attendance response to an event. At most one exists per
// (user, event) pair.
// swagger:model RSVP
type RSVP struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	EventID   string    `json:"event_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RSVPWithEvent is an RSVP joined with its event's details and organizer
// name, annotated with a past/upcoming label derived at read time.
// swagger:model RSVPWithEvent
type RSVPWithEvent struct {
	RSVP
	Title         string `json:"title"`
	Description   string `json:"description"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Location      string `json:"location"`
	OrganizerName string `json:"organizer_name"`
	EventStatus   string `json:"event_status"`
}

// RSVPRepository defines the interface for RSVP storage.
type RSVPRepository interface {
	// Upsert atomically creates the (user, event) record or updates its
	// status, leaving created_at untouched on update. The bool reports
	// whether a new record was created.
	Upsert(ctx context.Context, userID, eventID, status string) (*RSVP, bool, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID string) (*RSVPWithEvent, error)
	Delete(ctx context.Context, userID, eventID string) error
	ListByUser(ctx context.Context, userID string, p PaginationParams) ([]*RSVPWithEvent, error)
	CountByStatusForEvent(ctx context.Context, eventID string) ([]*StatusCount, error)
	ListAttendeesByEvent(ctx context.Context, eventID string) (map[string][]*Attendee, error)
	CountUpcomingByStatusForUser(ctx context.Context, userID, today string) ([]*StatusCount, error)
}

// RSVPService defines RSVP operations for the owning user.
type RSVPService interface {
	// Upsert responds to an event. The bool reports whether a new RSVP was
	// created (used only to shape the response message).
	Upsert(ctx context.Context, userID, eventID, status string) (*RSVP, bool, error)
	GetForEvent(ctx context.Context, userID, eventID string) (*RSVPWithEvent, error)
	Delete(ctx context.Context, userID, eventID string) error
	ListForUser(ctx context.Context, userID string, p PaginationParams) ([]*RSVPWithEvent, error)
	UserStats(ctx context.Context, userID string) ([]*StatusCount, error)
}
