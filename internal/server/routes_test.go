package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"foodorder/internal/config"
	"foodorder/internal/events"
)

func TestHealthReportsStreamSubscribers(t *testing.T) {
	bus := events.NewBus()
	srv := New(config.Config{Port: "0"}, bus, Handlers{})

	_, unsubscribe := bus.Subscribe(7)
	defer unsubscribe()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 1, body["stream_subscribers"])
}
