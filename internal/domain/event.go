package domain

import (
	"context"
	"time"
)

// Event is a scheduled gathering. Date is a calendar day in "2006-01-02"
// form; StartTime and EndTime are times of day in "15:04" form. ISO strings
// compare lexicographically, so ordering and past/upcoming checks are plain
// string comparisons.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Location    string    `json:"location"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(title, description, date, startTime, endTime, location, createdBy string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		Location:    location,
		CreatedBy:   createdBy,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// EventWithCounts is an event augmented with its creator's name and RSVP
// counts computed at read time.
// swagger:model EventWithCounts
type EventWithCounts struct {
	Event
	CreatedByName string `json:"created_by_name"`
	TotalRSVPs    int    `json:"total_rsvps"`
	GoingCount    int    `json:"going_count"`
	MaybeCount    int    `json:"maybe_count"`
	DeclineCount  int    `json:"decline_count"`
}

// EventUpdate holds the mutable event fields. Nil means "leave unchanged".
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *string
	StartTime   *string
	EndTime     *string
	Location    *string
}

// IsEmpty reports whether the update would change nothing.
func (u EventUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Date == nil &&
		u.StartTime == nil && u.EndTime == nil && u.Location == nil
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetByIDWithCounts(ctx context.Context, id string) (*EventWithCounts, error)
	List(ctx context.Context, p PaginationParams, upcomingAfter string) ([]*EventWithCounts, error)
	Update(ctx context.Context, event *Event) error
	// DeleteCascade removes the event and every RSVP referencing it in one
	// transaction. Returns ErrNotFound when the event does not exist.
	DeleteCascade(ctx context.Context, id string) error
}

// StatusCount is one row of an RSVP summary.
// swagger:model StatusCount
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Attendee is a user's entry in an event's per-status attendee list.
// swagger:model Attendee
type Attendee struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	RSVPDate time.Time `json:"rsvp_date"`
}

// RSVPSummary pairs status counts with the per-status attendee lists for an
// event. Summary rows appear in going, maybe, decline order; Users always has
// all three keys, empty when nobody holds that status.
// swagger:model RSVPSummary
type RSVPSummary struct {
	Summary []StatusCount          `json:"summary"`
	Users   map[string][]*Attendee `json:"users"`
}

// EventService defines event management and RSVP aggregation.
type EventService interface {
	Create(ctx context.Context, createdBy string, title, description, date, startTime, endTime, location string) (*Event, error)
	GetByID(ctx context.Context, id string) (*EventWithCounts, error)
	List(ctx context.Context, p PaginationParams, upcomingOnly bool) ([]*EventWithCounts, error)
	Update(ctx context.Context, id string, update EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	Summarize(ctx context.Context, eventID string) (*RSVPSummary, error)
}
