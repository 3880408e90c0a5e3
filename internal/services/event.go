package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"eventrsvp/internal/domain"
)

const dateLayout = "2006-01-02"

// timeOfDayRegexp matches "HH:MM" times of day (leading zero optional).
var timeOfDayRegexp = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// today returns the current calendar day as an ISO date string.
func today() string {
	return time.Now().Format(dateLayout)
}

// eventEnded reports whether the event's end date-time is before now.
// ISO date and HH:MM strings compare lexicographically.
func eventEnded(date, endTime string, now time.Time) bool {
	nowDate := now.Format(dateLayout)
	return date < nowDate || (date == nowDate && endTime < now.Format("15:04"))
}

type eventService struct {
	eventRepo domain.EventRepository
	rsvpRepo  domain.RSVPRepository
}

// NewEventService creates an EventService with the given repositories.
func NewEventService(eventRepo domain.EventRepository, rsvpRepo domain.RSVPRepository) domain.EventService {
	return &eventService{
		eventRepo: eventRepo,
		rsvpRepo:  rsvpRepo,
	}
}

// validateSchedule enforces the temporal invariants: a well-formed date no
// earlier than today, well-formed times, and end strictly after start.
func validateSchedule(date, startTime, endTime string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be in YYYY-MM-DD format", domain.ErrInvalidInput)
	}
	if !timeOfDayRegexp.MatchString(startTime) {
		return fmt.Errorf("%w: start_time must be in HH:MM format", domain.ErrInvalidInput)
	}
	if !timeOfDayRegexp.MatchString(endTime) {
		return fmt.Errorf("%w: end_time must be in HH:MM format", domain.ErrInvalidInput)
	}
	if date < today() {
		return fmt.Errorf("%w: event date cannot be in the past", domain.ErrInvalidInput)
	}
	if endTime <= startTime {
		return fmt.Errorf("%w: end time must be after start time", domain.ErrInvalidInput)
	}
	return nil
}

func (s *eventService) Create(ctx context.Context, createdBy string, title, description, date, startTime, endTime, location string) (*domain.Event, error) {
	if err := validateSchedule(date, startTime, endTime); err != nil {
		return nil, err
	}

	now := time.Now()
	event := domain.NewEvent(strings.TrimSpace(title), strings.TrimSpace(description), date, startTime, endTime, strings.TrimSpace(location), createdBy, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.EventWithCounts, error) {
	event, err := s.eventRepo.GetByIDWithCounts(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, p domain.PaginationParams, upcomingOnly bool) ([]*domain.EventWithCounts, error) {
	after := ""
	if upcomingOnly {
		after = today()
	}
	events, err := s.eventRepo.List(ctx, p, after)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// Update merges the partial update onto the stored event and validates the
// merged result against the same temporal invariants as Create.
func (s *eventService) Update(ctx context.Context, id string, update domain.EventUpdate) (*domain.Event, error) {
	if update.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if update.Title != nil {
		event.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		event.Description = strings.TrimSpace(*update.Description)
	}
	if update.Date != nil {
		event.Date = *update.Date
	}
	if update.StartTime != nil {
		event.StartTime = *update.StartTime
	}
	if update.EndTime != nil {
		event.EndTime = *update.EndTime
	}
	if update.Location != nil {
		event.Location = strings.TrimSpace(*update.Location)
	}

	if err := validateSchedule(event.Date, event.StartTime, event.EndTime); err != nil {
		return nil, err
	}

	event.UpdatedAt = time.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if err := s.eventRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// Summarize returns the event's RSVP counts in fixed going, maybe, decline
// display order, plus the per-status attendee lists. Stored statuses outside
// the three known values are excluded rather than rejected.
func (s *eventService) Summarize(ctx context.Context, eventID string) (*domain.RSVPSummary, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	counts, err := s.rsvpRepo.CountByStatusForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count rsvps: %w", err)
	}
	countByStatus := make(map[string]int, len(counts))
	for _, c := range counts {
		countByStatus[c.Status] = c.Count
	}
	summary := make([]domain.StatusCount, 0, len(domain.StatusDisplayOrder))
	for _, status := range domain.StatusDisplayOrder {
		if n, ok := countByStatus[status]; ok {
			summary = append(summary, domain.StatusCount{Status: status, Count: n})
		}
	}

	users, err := s.rsvpRepo.ListAttendeesByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}

	return &domain.RSVPSummary{Summary: summary, Users: users}, nil
}
