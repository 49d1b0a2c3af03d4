package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurza/mandala/app/server/mocks"
	"github.com/gurza/mandala/app/store"
)

func TestServer_HandleActivityQuery(t *testing.T) {
	newSrv := func(t *testing.T, activity ActivityStore) *Server {
		srv, err := New(Deps{Store: &mocks.GoalStoreMock{}, Activity: activity},
			Config{ActivityEnabled: true})
		require.NoError(t, err)
		return srv
	}

	t.Run("returns entries with total", func(t *testing.T) {
		activity := &mocks.ActivityStoreMock{
			QueryActivityFunc: func(ctx context.Context, q store.ActivityQuery) ([]store.ActivityEntry, int, error) {
				return []store.ActivityEntry{
					{ID: 1, Action: store.ActionUpdate, GoalID: "g1", Result: store.ResultSuccess},
				}, 7, nil
			},
		}
		srv := newSrv(t, activity)

		body := bytes.NewBufferString(`{"goal_id":"g1","limit":1}`)
		req := httptest.NewRequest(http.MethodPost, "/api/activity/query", body)
		rec := httptest.NewRecorder()
		srv.routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp activityQueryResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 7, resp.Total)
		require.Len(t, resp.Entries, 1)
		assert.Equal(t, "g1", resp.Entries[0].GoalID)

		require.Len(t, activity.QueryActivityCalls(), 1)
		assert.Equal(t, "g1", activity.QueryActivityCalls()[0].Q.GoalID)
		assert.Equal(t, 1, activity.QueryActivityCalls()[0].Q.Limit)
	})

	t.Run("time range parsed from RFC3339", func(t *testing.T) {
		activity := &mocks.ActivityStoreMock{
			QueryActivityFunc: func(ctx context.Context, q store.ActivityQuery) ([]store.ActivityEntry, int, error) {
				return nil, 0, nil
			},
		}
		srv := newSrv(t, activity)

		body := bytes.NewBufferString(`{"from":"2026-08-01T00:00:00Z","to":"2026-08-02T00:00:00Z"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/activity/query", body)
		rec := httptest.NewRecorder()
		srv.routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		q := activity.QueryActivityCalls()[0].Q
		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), q.From.UTC())
		assert.Equal(t, time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC), q.To.UTC())
	})

	t.Run("invalid timestamp rejected", func(t *testing.T) {
		srv := newSrv(t, &mocks.ActivityStoreMock{})

		body := bytes.NewBufferString(`{"from":"yesterday"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/activity/query", body)
		rec := httptest.NewRecorder()
		srv.routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("limit capped at configured maximum", func(t *testing.T) {
		activity := &mocks.ActivityStoreMock{
			QueryActivityFunc: func(ctx context.Context, q store.ActivityQuery) ([]store.ActivityEntry, int, error) {
				return nil, 0, nil
			},
		}
		srv, err := New(Deps{Store: &mocks.GoalStoreMock{}, Activity: activity},
			Config{ActivityEnabled: true, ActivityQueryLimit: 50})
		require.NoError(t, err)

		body := bytes.NewBufferString(`{"limit":100000}`)
		req := httptest.NewRequest(http.MethodPost, "/api/activity/query", body)
		rec := httptest.NewRecorder()
		srv.routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 50, activity.QueryActivityCalls()[0].Q.Limit)
	})

	t.Run("route absent when activity disabled", func(t *testing.T) {
		srv, err := New(Deps{Store: &mocks.GoalStoreMock{}}, Config{})
		require.NoError(t, err)

		body := bytes.NewBufferString(`{}`)
		req := httptest.NewRequest(http.MethodPost, "/api/activity/query", body)
		rec := httptest.NewRecorder()
		srv.routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_ActivityMiddleware(t *testing.T) {
	newSrv := func(t *testing.T, st GoalStore, activity ActivityStore) *Server {
		srv, err := New(Deps{Store: st, Activity: activity}, Config{ActivityEnabled: true})
		require.NoError(t, err)
		return srv
	}

	t.Run("mutation logged with success result", func(t *testing.T) {
		st := &mocks.GoalStoreMock{
			CreateChartFunc: func(ctx context.Context, title string) (store.Chart, error) {
				return store.Chart{ID: "c1", Title: title}, nil
			},
		}
		logged := make(chan store.ActivityEntry, 1)
		activity := &mocks.ActivityStoreMock{
			LogActivityFunc: func(ctx context.Context, entry store.ActivityEntry) error {
				logged <- entry
				return nil
			},
		}
		srv := newSrv(t, st, activity)

		body := bytes.NewBufferString(`{"title":"audited chart"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/charts", body)
		req.Header.Set("User-Agent", "test-agent")
		rec := httptest.NewRecorder()
		srv.routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		entry := <-logged
		assert.Equal(t, store.ActionCreate, entry.Action)
		assert.Equal(t, store.ResultSuccess, entry.Result)
		assert.Equal(t, "test-agent", entry.UserAgent)
	})

	t.Run("conflict recorded distinctly", func(t *testing.T) {
		latest := testGoal("g1")
		st := &mocks.GoalStoreMock{
			UpdateGoalWithVersionFunc: func(ctx context.Context, g store.Goal, expected time.Time) (store.Goal, error) {
				return store.Goal{}, &store.ConflictError{Expected: expected, Actual: latest.UpdatedAt, Current: latest}
			},
		}
		logged := make(chan store.ActivityEntry, 1)
		activity := &mocks.ActivityStoreMock{
			LogActivityFunc: func(ctx context.Context, entry store.ActivityEntry) error {
				logged <- entry
				return nil
			},
		}
		srv := newSrv(t, st, activity)

		body := bytes.NewBufferString(`{"chart_id":"c1","kind":"subgoal","title":"mine","expected_version":1000}`)
		req := httptest.NewRequest(http.MethodPut, "/api/goals/g1", body)
		rec := httptest.NewRecorder()
		srv.routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		entry := <-logged
		assert.Equal(t, store.ActionUpdate, entry.Action)
		assert.Equal(t, store.ResultConflict, entry.Result)
		assert.Equal(t, "g1", entry.GoalID)
	})

	t.Run("chart id extracted from mounted path", func(t *testing.T) {
		st := &mocks.GoalStoreMock{
			DeleteChartFunc: func(ctx context.Context, id string) error { return nil },
		}
		logged := make(chan store.ActivityEntry, 1)
		activity := &mocks.ActivityStoreMock{
			LogActivityFunc: func(ctx context.Context, entry store.ActivityEntry) error {
				logged <- entry
				return nil
			},
		}
		srv := newSrv(t, st, activity)

		req := httptest.NewRequest(http.MethodDelete, "/api/charts/c42", http.NoBody)
		rec := httptest.NewRecorder()
		srv.routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		entry := <-logged
		assert.Equal(t, store.ActionDelete, entry.Action)
		assert.Equal(t, "c42", entry.ChartID)
	})

	t.Run("reads not logged", func(t *testing.T) {
		st := &mocks.GoalStoreMock{
			ListChartsFunc: func(ctx context.Context) ([]store.Chart, error) { return nil, nil },
		}
		activity := &mocks.ActivityStoreMock{}
		srv := newSrv(t, st, activity)

		req := httptest.NewRequest(http.MethodGet, "/api/charts", http.NoBody)
		rec := httptest.NewRecorder()
		srv.routes().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, activity.LogActivityCalls())
	})
}

func TestAuditable(t *testing.T) {
	// the middleware runs inside the /api mount, requests carry the full prefix
	tbl := []struct {
		method string
		path   string
		want   bool
	}{
		{http.MethodPost, "/api/charts", true},
		{http.MethodDelete, "/api/charts/c1", true},
		{http.MethodPut, "/api/goals/g1", true},
		{http.MethodPost, "/api/generate/subgoals", true},
		{http.MethodGet, "/api/charts", false},
		{http.MethodGet, "/api/goals/g1", false},
		{http.MethodPost, "/api/activity/query", false},
	}

	for _, tt := range tbl {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			assert.Equal(t, tt.want, auditable(req))
		})
	}
}
