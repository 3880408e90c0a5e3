package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

const testEventID = "5f1c9b2e-0a3d-4e8f-9b6a-1c2d3e4f5a6b"

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	event      *domain.Event
	withCounts *domain.EventWithCounts
	list       []*domain.EventWithCounts
	summary    *domain.RSVPSummary
	err        error
	deletedID  string
	lastUpdate domain.EventUpdate
}

func (f *fakeEventService) Create(ctx context.Context, createdBy, title, description, date, startTime, endTime, location string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) GetByID(ctx context.Context, id string) (*domain.EventWithCounts, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.withCounts, nil
}

func (f *fakeEventService) List(ctx context.Context, p domain.PaginationParams, upcomingOnly bool) ([]*domain.EventWithCounts, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeEventService) Update(ctx context.Context, id string, update domain.EventUpdate) (*domain.Event, error) {
	f.lastUpdate = update
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deletedID = id
	return nil
}

func (f *fakeEventService) Summarize(ctx context.Context, eventID string) (*domain.RSVPSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func adminContext(req *http.Request) *http.Request {
	return req.WithContext(middleware.SetClaims(req.Context(), &domain.TokenClaims{UserID: "admin-1", Role: domain.RoleAdmin}))
}

func TestEventController_List(t *testing.T) {
	svc := &fakeEventService{list: []*domain.EventWithCounts{
		{Event: domain.Event{ID: testEventID, Title: "Standup"}, GoingCount: 3},
	}}
	ctrl := NewEventController(testLogger, svc)
	req := httptest.NewRequest(http.MethodGet, "http://test/api/events?page=2&limit=5", nil)
	rr := httptest.NewRecorder()

	ctrl.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	envelope := decodeEnvelope(t, rr)
	require.True(t, envelope.Success)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var resp ListEventsResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, 3, resp.Events[0].GoingCount)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 5, resp.Pagination.Limit)
	assert.Equal(t, 1, resp.Pagination.Count)
}

func TestEventController_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEventService{withCounts: &domain.EventWithCounts{
			Event: domain.Event{ID: testEventID, Title: "Standup"}, TotalRSVPs: 7,
		}}
		ctrl := NewEventController(testLogger, svc)
		req := httptest.NewRequest(http.MethodGet, "http://test/api/events/"+testEventID, nil)
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()

		ctrl.Get(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{})
		req := httptest.NewRequest(http.MethodGet, "http://test/api/events/not-a-uuid", nil)
		req.SetPathValue("eventID", "not-a-uuid")
		rr := httptest.NewRecorder()

		ctrl.Get(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{err: domain.ErrNotFound})
		req := httptest.NewRequest(http.MethodGet, "http://test/api/events/"+testEventID, nil)
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()

		ctrl.Get(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestEventController_Create(t *testing.T) {
	validBody := `{"title":"Standup","description":"Daily sync","date":"2031-05-01","start_time":"09:00","end_time":"09:30","location":"Room A"}`

	t.Run("success", func(t *testing.T) {
		svc := &fakeEventService{event: &domain.Event{ID: testEventID, Title: "Standup"}}
		ctrl := NewEventController(testLogger, svc)
		req := adminContext(httptest.NewRequest(http.MethodPost, "http://test/api/events", bytes.NewBufferString(validBody)))
		rr := httptest.NewRecorder()

		ctrl.Create(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		envelope := decodeEnvelope(t, rr)
		assert.Equal(t, "Event created successfully", envelope.Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{})
		req := adminContext(httptest.NewRequest(http.MethodPost, "http://test/api/events",
			bytes.NewBufferString(`{"title":"Standup"}`)))
		rr := httptest.NewRecorder()

		ctrl.Create(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		envelope := decodeEnvelope(t, rr)
		assert.NotEmpty(t, envelope.Details)
	})

	t.Run("schedule rejected by service", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{err: domain.ErrInvalidInput})
		req := adminContext(httptest.NewRequest(http.MethodPost, "http://test/api/events", bytes.NewBufferString(validBody)))
		rr := httptest.NewRecorder()

		ctrl.Create(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no claims", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{})
		req := httptest.NewRequest(http.MethodPost, "http://test/api/events", bytes.NewBufferString(validBody))
		rr := httptest.NewRecorder()

		ctrl.Create(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestEventController_Update(t *testing.T) {
	t.Run("partial update", func(t *testing.T) {
		svc := &fakeEventService{event: &domain.Event{ID: testEventID, Location: "Room B"}}
		ctrl := NewEventController(testLogger, svc)
		req := adminContext(httptest.NewRequest(http.MethodPut, "http://test/api/events/"+testEventID,
			bytes.NewBufferString(`{"location":"Room B"}`)))
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()

		ctrl.Update(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, svc.lastUpdate.Location)
		assert.Equal(t, "Room B", *svc.lastUpdate.Location)
		assert.Nil(t, svc.lastUpdate.Title)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{err: domain.ErrNotFound})
		req := adminContext(httptest.NewRequest(http.MethodPut, "http://test/api/events/"+testEventID,
			bytes.NewBufferString(`{"location":"Room B"}`)))
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()

		ctrl.Update(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestEventController_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc)
		req := adminContext(httptest.NewRequest(http.MethodDelete, "http://test/api/events/"+testEventID, nil))
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()

		ctrl.Delete(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, testEventID, svc.deletedID)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewEventController(testLogger, &fakeEventService{err: domain.ErrNotFound})
		req := adminContext(httptest.NewRequest(http.MethodDelete, "http://test/api/events/"+testEventID, nil))
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()

		ctrl.Delete(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestEventController_RSVPSummary(t *testing.T) {
	svc := &fakeEventService{summary: &domain.RSVPSummary{
		Summary: []domain.StatusCount{{Status: "going", Count: 2}},
		Users: map[string][]*domain.Attendee{
			"going":   {{UserID: "u1", Name: "Alice", Email: "a@b.com"}, {UserID: "u2", Name: "Bob", Email: "b@b.com"}},
			"maybe":   {},
			"decline": {},
		},
	}}
	ctrl := NewEventController(testLogger, svc)
	req := adminContext(httptest.NewRequest(http.MethodGet, "http://test/api/events/"+testEventID+"/rsvp-summary", nil))
	req.SetPathValue("eventID", testEventID)
	rr := httptest.NewRecorder()

	ctrl.RSVPSummary(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	envelope := decodeEnvelope(t, rr)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var summary domain.RSVPSummary
	require.NoError(t, json.Unmarshal(data, &summary))
	require.Len(t, summary.Summary, 1)
	assert.Equal(t, 2, summary.Summary[0].Count)
	assert.Len(t, summary.Users["going"], 2)
	assert.Empty(t, summary.Users["maybe"])
}
