package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"eventrsvp/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, start_time, end_time, location, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.StartTime, e.EndTime, e.Location, e.CreatedBy, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT id, title, description, date, start_time, end_time, location, created_by, created_at, updated_at
		FROM events
		WHERE id = $1
	`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.StartTime, &e.EndTime, &e.Location, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// withCountsColumns joins the creator's name and RSVP counts computed at
// read time. Counts are never denormalized onto the events table.
const withCountsColumns = `
		e.id, e.title, e.description, e.date, e.start_time, e.end_time, e.location, e.created_by, e.created_at, e.updated_at,
		COALESCE(u.name, '') AS created_by_name,
		COUNT(r.id) AS total_rsvps,
		COUNT(r.id) FILTER (WHERE r.status = 'going') AS going_count,
		COUNT(r.id) FILTER (WHERE r.status = 'maybe') AS maybe_count,
		COUNT(r.id) FILTER (WHERE r.status = 'decline') AS decline_count
`

func scanEventWithCounts(scan func(dest ...any) error) (*domain.EventWithCounts, error) {
	e := &domain.EventWithCounts{}
	err := scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.StartTime, &e.EndTime, &e.Location, &e.CreatedBy, &e.CreatedAt, &e.UpdatedAt,
		&e.CreatedByName, &e.TotalRSVPs, &e.GoingCount, &e.MaybeCount, &e.DeclineCount,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetByIDWithCounts(ctx context.Context, id string) (*domain.EventWithCounts, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		LEFT JOIN users u ON u.id = e.created_by
		LEFT JOIN rsvps r ON r.event_id = e.id
		WHERE e.id = $1
		GROUP BY e.id, u.name
	`, withCountsColumns)
	row := r.DB.QueryRowContext(ctx, query, id)
	e, err := scanEventWithCounts(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns events ordered by date then start time, ascending. When
// upcomingAfter is non-empty, only events with date >= upcomingAfter are
// returned (ISO dates compare lexicographically).
func (r *eventRepository) List(ctx context.Context, p domain.PaginationParams, upcomingAfter string) ([]*domain.EventWithCounts, error) {
	where := ""
	args := []any{p.PageSize, p.Offset()}
	if upcomingAfter != "" {
		where = "WHERE e.date >= $3"
		args = append(args, upcomingAfter)
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM events e
		LEFT JOIN users u ON u.id = e.created_by
		LEFT JOIN rsvps r ON r.event_id = e.id
		%s
		GROUP BY e.id, u.name
		ORDER BY e.date ASC, e.start_time ASC
		LIMIT $1 OFFSET $2
	`, withCountsColumns, where)
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.EventWithCounts, 0)
	for rows.Next() {
		e, err := scanEventWithCounts(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events
		SET title = $1, description = $2, date = $3, start_time = $4, end_time = $5, location = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.Title, e.Description, e.Date, e.StartTime, e.EndTime, e.Location, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the event's RSVPs and then the event inside a single
// transaction, so callers never observe the event without its RSVPs gone too.
func (r *eventRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rsvps WHERE event_id = $1`, id); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return tx.Commit()
}
