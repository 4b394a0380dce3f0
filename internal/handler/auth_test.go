package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skarim/filecabinet/internal/apperror"
	"github.com/skarim/filecabinet/internal/handler"
)

func TestHandleConnect(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		mock := &mockAuthAPI{ReturnToken: "tok-123"}
		h := handler.NewAuthHandler(mock, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/connect", nil)
		req.SetBasicAuth("a@x.com", "pw")
		rr := httptest.NewRecorder()

		h.HandleConnect(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "a@x.com", mock.GotEmail)
		assert.Equal(t, "pw", mock.GotPassword)

		var body handler.TokenResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
		assert.Equal(t, "tok-123", body.Token)
	})

	t.Run("missing basic header", func(t *testing.T) {
		h := handler.NewAuthHandler(&mockAuthAPI{}, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/connect", nil)
		rr := httptest.NewRecorder()

		h.HandleConnect(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
	})

	t.Run("bad credentials", func(t *testing.T) {
		mock := &mockAuthAPI{ReturnErr: apperror.Unauthorized()}
		h := handler.NewAuthHandler(mock, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/connect", nil)
		req.SetBasicAuth("a@x.com", "wrong")
		rr := httptest.NewRecorder()

		h.HandleConnect(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
	})
}

func TestHandleDisconnect(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		mock := &mockAuthAPI{}
		h := handler.NewAuthHandler(mock, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/disconnect", nil)
		req.Header.Set("X-Token", "tok-123")
		rr := httptest.NewRecorder()

		h.HandleDisconnect(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String(), "logout has no response body")
		assert.Equal(t, "tok-123", mock.GotToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		mock := &mockAuthAPI{ReturnErr: apperror.Unauthorized()}
		h := handler.NewAuthHandler(mock, testLogger())

		req := httptest.NewRequest(http.MethodGet, "/disconnect", nil)
		req.Header.Set("X-Token", "bogus")
		rr := httptest.NewRecorder()

		h.HandleDisconnect(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
