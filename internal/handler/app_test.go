package handler_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skarim/filecabinet/internal/handler"
	"github.com/skarim/filecabinet/internal/service"
)

func TestHandleStatus(t *testing.T) {
	mock := &mockAppAPI{ReturnStatus: service.Status{Redis: true, DB: false}}
	h := handler.NewAppHandler(mock, testLogger())

	rr := httptest.NewRecorder()
	h.HandleStatus(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, rr.Code, "status is 200 even when a store is down")
	assert.JSONEq(t, `{"redis":true,"db":false}`, rr.Body.String())
}

func TestHandleStats(t *testing.T) {
	t.Run("counts", func(t *testing.T) {
		mock := &mockAppAPI{ReturnStats: service.Stats{Users: 12, Files: 1231}}
		h := handler.NewAppHandler(mock, testLogger())

		rr := httptest.NewRecorder()
		h.HandleStats(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"users":12,"files":1231}`, rr.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		mock := &mockAppAPI{ReturnErr: errors.New("no reachable servers")}
		h := handler.NewAppHandler(mock, testLogger())

		rr := httptest.NewRecorder()
		h.HandleStats(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "no reachable servers")
	})
}
