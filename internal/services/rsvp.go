package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventrsvp/internal/adapters/email"
	"eventrsvp/internal/domain"
)

type rsvpService struct {
	rsvpRepo  domain.RSVPRepository
	eventRepo domain.EventRepository
	userRepo  domain.UserRepository
	mailer    domain.Mailer
	logger    *slog.Logger
}

// NewRSVPService creates an RSVPService. The mailer may be nil to disable
// confirmation email entirely.
func NewRSVPService(rsvpRepo domain.RSVPRepository, eventRepo domain.EventRepository, userRepo domain.UserRepository, mailer domain.Mailer, logger *slog.Logger) domain.RSVPService {
	return &rsvpService{
		rsvpRepo:  rsvpRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		mailer:    mailer,
		logger:    logger,
	}
}

// Upsert records the user's response to an event. The event must exist and
// must not already have ended. Note the unprotected window between the event
// lookup and the insert: an event deletion committing in between leaves an
// orphan RSVP, which list queries skip. The store resolves concurrent upserts
// for the same pair last-writer-wins.
func (s *rsvpService) Upsert(ctx context.Context, userID, eventID, status string) (*domain.RSVP, bool, error) {
	if !domain.ValidStatus(status) {
		return nil, false, fmt.Errorf("%w: status must be going, maybe, or decline", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}
	if eventEnded(event.Date, event.EndTime, time.Now()) {
		return nil, false, domain.ErrEventPast
	}

	rsvp, created, err := s.rsvpRepo.Upsert(ctx, userID, eventID, status)
	if err != nil {
		return nil, false, fmt.Errorf("upsert rsvp: %w", err)
	}

	if created && s.mailer != nil {
		s.sendConfirmation(ctx, userID, event, status)
	}
	return rsvp, created, nil
}

// sendConfirmation is best-effort: failures are logged, never surfaced.
func (s *rsvpService) sendConfirmation(ctx context.Context, userID string, event *domain.Event, status string) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "rsvp confirmation skipped", "event_id", event.ID, "err", err)
		return
	}
	subject, htmlBody, textBody := email.RSVPConfirmation(&domain.RSVPConfirmationData{
		Email:      user.Email,
		Name:       user.Name,
		EventTitle: event.Title,
		EventDate:  event.Date,
		StartTime:  event.StartTime,
		Location:   event.Location,
		Status:     status,
	})
	if err := s.mailer.Send(user.Email, subject, htmlBody, textBody); err != nil {
		s.logger.WarnContext(ctx, "rsvp confirmation failed", "event_id", event.ID, "err", err)
	}
}

func (s *rsvpService) GetForEvent(ctx context.Context, userID, eventID string) (*domain.RSVPWithEvent, error) {
	item, err := s.rsvpRepo.GetByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrRSVPNotFound) {
			return nil, domain.ErrRSVPNotFound
		}
		return nil, fmt.Errorf("get rsvp: %w", err)
	}
	annotateEventStatus(item, time.Now())
	return item, nil
}

func (s *rsvpService) Delete(ctx context.Context, userID, eventID string) error {
	if err := s.rsvpRepo.Delete(ctx, userID, eventID); err != nil {
		if errors.Is(err, domain.ErrRSVPNotFound) {
			return domain.ErrRSVPNotFound
		}
		return fmt.Errorf("delete rsvp: %w", err)
	}
	return nil
}

func (s *rsvpService) ListForUser(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.RSVPWithEvent, error) {
	items, err := s.rsvpRepo.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	now := time.Now()
	for _, item := range items {
		annotateEventStatus(item, now)
	}
	return items, nil
}

// UserStats returns the user's RSVP counts by status over upcoming events, in
// fixed display order.
func (s *rsvpService) UserStats(ctx context.Context, userID string) ([]*domain.StatusCount, error) {
	counts, err := s.rsvpRepo.CountUpcomingByStatusForUser(ctx, userID, today())
	if err != nil {
		return nil, fmt.Errorf("count rsvps: %w", err)
	}
	countByStatus := make(map[string]int, len(counts))
	for _, c := range counts {
		countByStatus[c.Status] = c.Count
	}
	ordered := make([]*domain.StatusCount, 0, len(domain.StatusDisplayOrder))
	for _, status := range domain.StatusDisplayOrder {
		if n, ok := countByStatus[status]; ok {
			ordered = append(ordered, &domain.StatusCount{Status: status, Count: n})
		}
	}
	return ordered, nil
}

// annotateEventStatus labels the joined event past or upcoming by comparing
// its end date-time with now.
func annotateEventStatus(item *domain.RSVPWithEvent, now time.Time) {
	if eventEnded(item.Date, item.EndTime, now) {
		item.EventStatus = "past"
	} else {
		item.EventStatus = "upcoming"
	}
}
