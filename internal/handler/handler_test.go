package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skarim/filecabinet/internal/model"
	"github.com/skarim/filecabinet/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withURLParam attaches a chi route parameter to a request built with
// httptest.NewRequest, which bypasses the router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// --- mocks ---

type mockAuthAPI struct {
	ReturnToken string
	ReturnErr   error

	GotEmail    string
	GotPassword string
	GotToken    string
}

func (m *mockAuthAPI) Login(_ context.Context, email, password string) (string, error) {
	m.GotEmail, m.GotPassword = email, password
	return m.ReturnToken, m.ReturnErr
}

func (m *mockAuthAPI) Logout(_ context.Context, token string) error {
	m.GotToken = token
	return m.ReturnErr
}

type mockUserAPI struct {
	ReturnUser *model.User
	ReturnErr  error

	GotEmail    string
	GotPassword string
	GotToken    string
}

func (m *mockUserAPI) Register(_ context.Context, email, password string) (*model.User, error) {
	m.GotEmail, m.GotPassword = email, password
	return m.ReturnUser, m.ReturnErr
}

func (m *mockUserAPI) GetSelf(_ context.Context, token string) (*model.User, error) {
	m.GotToken = token
	return m.ReturnUser, m.ReturnErr
}

type mockFileAPI struct {
	ReturnFile    *model.File
	ReturnFiles   []model.File
	ReturnContent *service.ContentResult
	ReturnErr     error

	GotToken    string
	GotID       string
	GotInput    service.UploadInput
	GotParentID string
	GotPage     int64
	GotPublic   bool
	GotSize     string
}

func (m *mockFileAPI) Upload(_ context.Context, token string, in service.UploadInput) (*model.File, error) {
	m.GotToken, m.GotInput = token, in
	return m.ReturnFile, m.ReturnErr
}

func (m *mockFileAPI) Get(_ context.Context, token, id string) (*model.File, error) {
	m.GotToken, m.GotID = token, id
	return m.ReturnFile, m.ReturnErr
}

func (m *mockFileAPI) List(_ context.Context, token, parentID string, page int64) ([]model.File, error) {
	m.GotToken, m.GotParentID, m.GotPage = token, parentID, page
	return m.ReturnFiles, m.ReturnErr
}

func (m *mockFileAPI) SetVisibility(_ context.Context, token, id string, public bool) (*model.File, error) {
	m.GotToken, m.GotID, m.GotPublic = token, id, public
	return m.ReturnFile, m.ReturnErr
}

func (m *mockFileAPI) Content(_ context.Context, token, id, size string) (*service.ContentResult, error) {
	m.GotToken, m.GotID, m.GotSize = token, id, size
	return m.ReturnContent, m.ReturnErr
}

type mockAppAPI struct {
	ReturnStatus service.Status
	ReturnStats  service.Stats
	ReturnErr    error
}

func (m *mockAppAPI) Status(context.Context) service.Status { return m.ReturnStatus }

func (m *mockAppAPI) Stats(context.Context) (service.Stats, error) {
	return m.ReturnStats, m.ReturnErr
}
