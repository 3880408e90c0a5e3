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

// fakeRSVPService implements domain.RSVPService for handler tests.
type fakeRSVPService struct {
	rsvp      *domain.RSVP
	created   bool
	withEvent *domain.RSVPWithEvent
	list      []*domain.RSVPWithEvent
	stats     []*domain.StatusCount
	err       error
}

func (f *fakeRSVPService) Upsert(ctx context.Context, userID, eventID, status string) (*domain.RSVP, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.rsvp, f.created, nil
}

func (f *fakeRSVPService) GetForEvent(ctx context.Context, userID, eventID string) (*domain.RSVPWithEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.withEvent, nil
}

func (f *fakeRSVPService) Delete(ctx context.Context, userID, eventID string) error {
	return f.err
}

func (f *fakeRSVPService) ListForUser(ctx context.Context, userID string, p domain.PaginationParams) ([]*domain.RSVPWithEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeRSVPService) UserStats(ctx context.Context, userID string) ([]*domain.StatusCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.stats, nil
}

func userContext(req *http.Request) *http.Request {
	return req.WithContext(middleware.SetClaims(req.Context(), &domain.TokenClaims{UserID: "user-1", Role: domain.RoleUser}))
}

func TestRSVPController_Upsert(t *testing.T) {
	body := `{"event_id":"` + testEventID + `","status":"going"}`

	t.Run("created responds 201", func(t *testing.T) {
		svc := &fakeRSVPService{rsvp: &domain.RSVP{ID: "rsvp-1", Status: "going"}, created: true}
		ctrl := NewRSVPController(testLogger, svc)
		req := userContext(httptest.NewRequest(http.MethodPost, "http://test/api/rsvps", bytes.NewBufferString(body)))
		rr := httptest.NewRecorder()

		ctrl.Upsert(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		envelope := decodeEnvelope(t, rr)
		assert.Equal(t, "RSVP created successfully", envelope.Message)
	})

	t.Run("updated responds 200", func(t *testing.T) {
		svc := &fakeRSVPService{rsvp: &domain.RSVP{ID: "rsvp-1", Status: "decline"}, created: false}
		ctrl := NewRSVPController(testLogger, svc)
		req := userContext(httptest.NewRequest(http.MethodPost, "http://test/api/rsvps",
			bytes.NewBufferString(`{"event_id":"`+testEventID+`","status":"decline"}`)))
		rr := httptest.NewRecorder()

		ctrl.Upsert(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		envelope := decodeEnvelope(t, rr)
		assert.Equal(t, "RSVP updated successfully", envelope.Message)
	})

	t.Run("invalid status", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeRSVPService{})
		req := userContext(httptest.NewRequest(http.MethodPost, "http://test/api/rsvps",
			bytes.NewBufferString(`{"event_id":"`+testEventID+`","status":"attending"}`)))
		rr := httptest.NewRecorder()

		ctrl.Upsert(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		envelope := decodeEnvelope(t, rr)
		assert.NotEmpty(t, envelope.Details)
	})

	t.Run("event not found", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeRSVPService{err: domain.ErrNotFound})
		req := userContext(httptest.NewRequest(http.MethodPost, "http://test/api/rsvps", bytes.NewBufferString(body)))
		rr := httptest.NewRecorder()

		ctrl.Upsert(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("past event", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeRSVPService{err: domain.ErrEventPast})
		req := userContext(httptest.NewRequest(http.MethodPost, "http://test/api/rsvps", bytes.NewBufferString(body)))
		rr := httptest.NewRecorder()

		ctrl.Upsert(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no claims", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeRSVPService{})
		req := httptest.NewRequest(http.MethodPost, "http://test/api/rsvps", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()

		ctrl.Upsert(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRSVPController_GetForEvent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeRSVPService{withEvent: &domain.RSVPWithEvent{
			RSVP: domain.RSVP{ID: "rsvp-1", Status: "going"}, Title: "Standup", EventStatus: "upcoming",
		}}
		ctrl := NewRSVPController(testLogger, svc)
		req := userContext(httptest.NewRequest(http.MethodGet, "http://test/api/rsvps/event/"+testEventID, nil))
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()

		ctrl.GetForEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeRSVPService{err: domain.ErrRSVPNotFound})
		req := userContext(httptest.NewRequest(http.MethodGet, "http://test/api/rsvps/event/"+testEventID, nil))
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()

		ctrl.GetForEvent(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRSVPController_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeRSVPService{})
		req := userContext(httptest.NewRequest(http.MethodDelete, "http://test/api/rsvps/event/"+testEventID, nil))
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()

		ctrl.Delete(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		envelope := decodeEnvelope(t, rr)
		assert.Equal(t, "RSVP deleted successfully", envelope.Message)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewRSVPController(testLogger, &fakeRSVPService{err: domain.ErrRSVPNotFound})
		req := userContext(httptest.NewRequest(http.MethodDelete, "http://test/api/rsvps/event/"+testEventID, nil))
		req.SetPathValue("eventID", testEventID)
		rr := httptest.NewRecorder()

		ctrl.Delete(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRSVPController_MyRSVPs(t *testing.T) {
	svc := &fakeRSVPService{list: []*domain.RSVPWithEvent{
		{RSVP: domain.RSVP{ID: "rsvp-1"}, Title: "Standup", EventStatus: "upcoming"},
		{RSVP: domain.RSVP{ID: "rsvp-2"}, Title: "Retro", EventStatus: "past"},
	}}
	ctrl := NewRSVPController(testLogger, svc)
	req := userContext(httptest.NewRequest(http.MethodGet, "http://test/api/rsvps/my-rsvps", nil))
	rr := httptest.NewRecorder()

	ctrl.MyRSVPs(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	envelope := decodeEnvelope(t, rr)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var resp MyRSVPsResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.Len(t, resp.RSVPs, 2)
	assert.Equal(t, "upcoming", resp.RSVPs[0].EventStatus)
	assert.Equal(t, "past", resp.RSVPs[1].EventStatus)
}

func TestRSVPController_MyStats(t *testing.T) {
	svc := &fakeRSVPService{stats: []*domain.StatusCount{
		{Status: "going", Count: 4},
		{Status: "maybe", Count: 1},
	}}
	ctrl := NewRSVPController(testLogger, svc)
	req := userContext(httptest.NewRequest(http.MethodGet, "http://test/api/rsvps/my-stats", nil))
	rr := httptest.NewRecorder()

	ctrl.MyStats(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	envelope := decodeEnvelope(t, rr)
	data, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var stats []*domain.StatusCount
	require.NoError(t, json.Unmarshal(data, &stats))
	require.Len(t, stats, 2)
	assert.Equal(t, "going", stats[0].Status)
}
