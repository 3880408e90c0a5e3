package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"eventrsvp/internal/domain"
)

type rsvpRepository struct {
	DB *sql.DB
}

func NewRSVPRepository(db *sql.DB) domain.RSVPRepository {
	return &rsvpRepository{DB: db}
}

// Upsert inserts or updates the (user, event) record in one statement. The
// unique index on (user_id, event_id) makes concurrent upserts last-writer-
// wins; created_at is only set on insert. (xmax = 0) is true exactly when the
// returned row was freshly inserted.
func (r *rsvpRepository) Upsert(ctx context.Context, userID, eventID, status string) (*domain.RSVP, bool, error) {
	query := `
		INSERT INTO rsvps (user_id, event_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id, event_id)
		DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted
	`
	now := time.Now()
	rsvp := &domain.RSVP{
		UserID:  userID,
		EventID: eventID,
		Status:  status,
	}
	var created bool
	err := r.DB.QueryRowContext(ctx, query, userID, eventID, status, now).Scan(
		&rsvp.ID, &rsvp.CreatedAt, &rsvp.UpdatedAt, &created,
	)
	if err != nil {
		return nil, false, err
	}
	return rsvp, created, nil
}

func (r *rsvpRepository) GetByUserAndEvent(ctx context.Context, userID, eventID string) (*domain.RSVPWithEvent, error) {
	query := `
		SELECT r.id, r.user_id, r.event_id, r.status, r.created_at, r.updated_at,
		       e.title, e.description, e.date, e.start_time, e.end_time, e.location,
		       COALESCE(u.name, '') AS organizer_name
		FROM rsvps r
		JOIN events e ON e.id = r.event_id
		LEFT JOIN users u ON u.id = e.created_by
		WHERE r.user_id = $1 AND r.event_id = $2
	`
	item := &domain.RSVPWithEvent{}
	err := r.DB.QueryRowContext(ctx, query, userID, eventID).Scan(
		&item.ID, &item.UserID, &item.EventID, &item.Status, &item.CreatedAt, &item.UpdatedAt,
		&item.Title, &item.Description, &item.Date, &item.StartTime, &item.EndTime, &item.Location,
		&item.OrganizerName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRSVPNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *rsvpRepository) Delete(ctx context.Context, userID, eventID string) error {
	query := `DELETE FROM rsvps WHERE user_id = $1 AND event_id = $2`
	result, err := r.DB.ExecContext(ctx, query, userID, eventID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRSVPNotFound
	}
	return nil
}

// ListByUser returns the user's RSVPs joined with event details and the
// organizer's name, newest event first. The past/upcoming label is derived by
// the service, not stored.
func (r *rsvpRepository) ListByUser(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.RSVPWithEvent, error) {
	query := `
		SELECT r.id, r.user_id, r.event_id, r.status, r.created_at, r.updated_at,
		       e.title, e.description, e.date, e.start_time, e.end_time, e.location,
		       COALESCE(u.name, '') AS organizer_name
		FROM rsvps r
		JOIN events e ON e.id = r.event_id
		LEFT JOIN users u ON u.id = e.created_by
		WHERE r.user_id = $1
		ORDER BY e.date DESC, e.start_time DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, p.PageSize, p.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]*domain.RSVPWithEvent, 0)
	for rows.Next() {
		item := &domain.RSVPWithEvent{}
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.EventID, &item.Status, &item.CreatedAt, &item.UpdatedAt,
			&item.Title, &item.Description, &item.Date, &item.StartTime, &item.EndTime, &item.Location,
			&item.OrganizerName,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *rsvpRepository) CountByStatusForEvent(ctx context.Context, eventID string) ([]*domain.StatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM rsvps
		WHERE event_id = $1
		GROUP BY status
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make([]*domain.StatusCount, 0)
	for rows.Next() {
		c := &domain.StatusCount{}
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// ListAttendeesByEvent returns the event's attendees grouped by status,
// sorted by name within each group. Rows with unknown statuses are filtered
// out in SQL; the three known keys are always present in the result.
func (r *rsvpRepository) ListAttendeesByEvent(ctx context.Context, eventID string) (map[string][]*domain.Attendee, error) {
	query := `
		SELECT r.status, u.id, u.name, u.email, r.created_at
		FROM rsvps r
		JOIN users u ON u.id = r.user_id
		WHERE r.event_id = $1 AND r.status IN ('going', 'maybe', 'decline')
		ORDER BY u.name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	byStatus := make(map[string][]*domain.Attendee, len(domain.StatusDisplayOrder))
	for _, status := range domain.StatusDisplayOrder {
		byStatus[status] = []*domain.Attendee{}
	}
	for rows.Next() {
		var status string
		a := &domain.Attendee{}
		if err := rows.Scan(&status, &a.UserID, &a.Name, &a.Email, &a.RSVPDate); err != nil {
			return nil, err
		}
		byStatus[status] = append(byStatus[status], a)
	}
	return byStatus, rows.Err()
}

func (r *rsvpRepository) CountUpcomingByStatusForUser(ctx context.Context, userID, today string) ([]*domain.StatusCount, error) {
	query := `
		SELECT r.status, COUNT(*)
		FROM rsvps r
		JOIN events e ON e.id = r.event_id
		WHERE r.user_id = $1 AND e.date >= $2
		GROUP BY r.status
	`
	rows, err := r.DB.QueryContext(ctx, query, userID, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	counts := make([]*domain.StatusCount, 0)
	for rows.Next() {
		c := &domain.StatusCount{}
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
