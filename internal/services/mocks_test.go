package services

import (
	"context"
	"errors"
	"time"

	"eventrsvp/internal/domain"
)

// Hand-written fakes for the repository and adapter ports, shared by the
// service tests in this package.

type mockUserRepo struct {
	users     map[string]*domain.User // by id
	byEmail   map[string]*domain.User
	createErr error
	updateErr error
	deleteErr error
	created   *domain.User
	updated   *domain.User
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	u.ID = "new-user-id"
	m.created = u
	return nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = u
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, p domain.PaginationParams) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

type mockEventRepo struct {
	events      map[string]*domain.Event
	withCounts  map[string]*domain.EventWithCounts
	listResult  []*domain.EventWithCounts
	listAfter   string
	createErr   error
	updateErr   error
	deleteErr   error
	deletedID   string
	updated     *domain.Event
}

func (m *mockEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if m.createErr != nil {
		return m.createErr
	}
	e.ID = "new-event-id"
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventRepo) GetByIDWithCounts(ctx context.Context, id string) (*domain.EventWithCounts, error) {
	if e, ok := m.withCounts[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventRepo) List(ctx context.Context, p domain.PaginationParams, upcomingAfter string) ([]*domain.EventWithCounts, error) {
	m.listAfter = upcomingAfter
	return m.listResult, nil
}

func (m *mockEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = e
	return nil
}

func (m *mockEventRepo) DeleteCascade(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	m.deletedID = id
	return nil
}

type mockRSVPRepo struct {
	upsertResult   *domain.RSVP
	upsertCreated  bool
	upsertErr      error
	byUserAndEvent map[string]*domain.RSVPWithEvent // key: userID+":"+eventID
	listResult     []*domain.RSVPWithEvent
	deleteErr      error
	counts         []*domain.StatusCount
	attendees      map[string][]*domain.Attendee
	userCounts     []*domain.StatusCount
	lastUpsert     [3]string
}

func (m *mockRSVPRepo) Upsert(ctx context.Context, userID, eventID, status string) (*domain.RSVP, bool, error) {
	m.lastUpsert = [3]string{userID, eventID, status}
	if m.upsertErr != nil {
		return nil, false, m.upsertErr
	}
	return m.upsertResult, m.upsertCreated, nil
}

func (m *mockRSVPRepo) GetByUserAndEvent(ctx context.Context, userID, eventID string) (*domain.RSVPWithEvent, error) {
	if item, ok := m.byUserAndEvent[userID+":"+eventID]; ok {
		return item, nil
	}
	return nil, domain.ErrRSVPNotFound
}

func (m *mockRSVPRepo) Delete(ctx context.Context, userID, eventID string) error {
	return m.deleteErr
}

func (m *mockRSVPRepo) ListByUser(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.RSVPWithEvent, error) {
	return m.listResult, nil
}

func (m *mockRSVPRepo) CountByStatusForEvent(ctx context.Context, eventID string) ([]*domain.StatusCount, error) {
	return m.counts, nil
}

func (m *mockRSVPRepo) ListAttendeesByEvent(ctx context.Context, eventID string) (map[string][]*domain.Attendee, error) {
	if m.attendees != nil {
		return m.attendees, nil
	}
	out := make(map[string][]*domain.Attendee)
	for _, s := range domain.StatusDisplayOrder {
		out[s] = []*domain.Attendee{}
	}
	return out, nil
}

func (m *mockRSVPRepo) CountUpcomingByStatusForUser(ctx context.Context, userID, today string) ([]*domain.StatusCount, error) {
	return m.userCounts, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeIssuer struct {
	err error
}

func (f fakeIssuer) Issue(userID, email, role string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

type recordingMailer struct {
	sent []string
	err  error
}

func (m *recordingMailer) Send(to, subject, html, text string) error {
	m.sent = append(m.sent, to)
	return m.err
}
