package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/skarim/filecabinet/internal/apperror"
	"github.com/skarim/filecabinet/internal/model"
	"github.com/skarim/filecabinet/internal/service"
)

// FileAPI is the surface of the file-metadata manager the handlers need.
type FileAPI interface {
	Upload(ctx context.Context, token string, in service.UploadInput) (*model.File, error)
	Get(ctx context.Context, token, id string) (*model.File, error)
	List(ctx context.Context, token, parentID string, page int64) ([]model.File, error)
	SetVisibility(ctx context.Context, token, id string, public bool) (*model.File, error)
	Content(ctx context.Context, token, id, size string) (*service.ContentResult, error)
}

// FileHandler serves the /files routes.
type FileHandler struct {
	files  FileAPI
	logger *slog.Logger
}

// NewFileHandler creates a FileHandler.
func NewFileHandler(files FileAPI, logger *slog.Logger) *FileHandler {
	return &FileHandler{files: files, logger: logger}
}

// flexibleID accepts the parent id either as a string or as the literal
// number 0 (the root sentinel as some clients send it).
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(strconv.FormatInt(n, 10))
	return nil
}

type uploadRequest struct {
	Name     string     `json:"name"`
	Type     string     `json:"type"`
	ParentID flexibleID `json:"parentId"`
	IsPublic bool       `json:"isPublic"`
	Data     string     `json:"data"`
}

// HandleUpload creates a file, image or folder record.
//
// POST /files, header: X-Token → 201 with the created record; the content
// reference appears only when one exists.
func (h *FileHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.Validation("Missing name"))
		return
	}

	file, err := h.files.Upload(r.Context(), r.Header.Get(tokenHeader), service.UploadInput{
		Name:     req.Name,
		Type:     req.Type,
		ParentID: string(req.ParentID),
		IsPublic: req.IsPublic,
		Data:     req.Data,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, file)
}

// HandleGet returns one of the caller's records, content reference
// included.
//
// GET /files/{id}, header: X-Token.
func (h *FileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	file, err := h.files.Get(r.Context(), r.Header.Get(tokenHeader), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, file)
}

// HandleList returns one page of the caller's records under a parent.
//
// GET /files?parentId=...&page=N, header: X-Token. An empty page is
// 200 [].
func (h *FileHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil {
		page = 0
	}

	files, err := h.files.List(r.Context(), r.Header.Get(tokenHeader), r.URL.Query().Get("parentId"), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, files)
}

// HandlePublish makes a record public.
//
// PUT /files/{id}/publish, header: X-Token.
func (h *FileHandler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	h.setVisibility(w, r, true)
}

// HandleUnpublish makes a record private again.
//
// PUT /files/{id}/unpublish, header: X-Token.
func (h *FileHandler) HandleUnpublish(w http.ResponseWriter, r *http.Request) {
	h.setVisibility(w, r, false)
}

func (h *FileHandler) setVisibility(w http.ResponseWriter, r *http.Request, public bool) {
	file, err := h.files.SetVisibility(r.Context(), r.Header.Get(tokenHeader), chi.URLParam(r, "id"), public)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, file)
}

// HandleContent serves the raw bytes behind a record.
//
// GET /files/{id}/data?size=100|250|500. No token is required for public
// records; private records 404 for anyone but their owner.
func (h *FileHandler) HandleContent(w http.ResponseWriter, r *http.Request) {
	res, err := h.files.Content(r.Context(),
		r.Header.Get(tokenHeader),
		chi.URLParam(r, "id"),
		r.URL.Query().Get("size"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Data); err != nil {
		h.logger.Error("failed to write content response", slog.String("error", err.Error()))
	}
}
