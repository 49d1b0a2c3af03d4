package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurza/mandala/app/server/mocks"
	"github.com/gurza/mandala/app/store"
)

func TestNewServer(t *testing.T) {
	t.Run("store required", func(t *testing.T) {
		_, err := New(Deps{}, Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store is required")
	})

	t.Run("minimal deps", func(t *testing.T) {
		srv, err := New(Deps{Store: &mocks.GoalStoreMock{}}, Config{})
		require.NoError(t, err)
		assert.NotNil(t, srv)
	})
}

func TestServer_Ping(t *testing.T) {
	srv := newTestServer(t, &mocks.GoalStoreMock{})

	req := httptest.NewRequest(http.MethodGet, "/ping", http.NoBody)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestServer_AppInfoHeader(t *testing.T) {
	st := &mocks.GoalStoreMock{
		ListChartsFunc: func(ctx context.Context) ([]store.Chart, error) { return nil, nil },
	}
	srv, err := New(Deps{Store: st}, Config{Version: "v1.2.3"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/charts", http.NoBody)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	assert.Equal(t, "mandala", rec.Header().Get("App-Name"))
	assert.Equal(t, "v1.2.3", rec.Header().Get("App-Version"))
}

func TestServer_BaseURL(t *testing.T) {
	st := &mocks.GoalStoreMock{
		ListChartsFunc: func(ctx context.Context) ([]store.Chart, error) { return nil, nil },
	}
	srv, err := New(Deps{Store: st}, Config{BaseURL: "/mandala"})
	require.NoError(t, err)
	handler := srv.handler()

	t.Run("routes served under prefix", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/mandala/api/charts", http.NoBody)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bare prefix redirects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/mandala", http.NoBody)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMovedPermanently, rec.Code)
		assert.Equal(t, "/mandala/", rec.Header().Get("Location"))
	})

	t.Run("unprefixed path not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/charts", http.NoBody)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestServer_BodySizeLimit(t *testing.T) {
	srv, err := New(Deps{Store: &mocks.GoalStoreMock{}}, Config{BodySizeLimit: 16})
	require.NoError(t, err)

	body := strings.NewReader(`{"title":"this body is comfortably over sixteen bytes"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/charts", body)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
