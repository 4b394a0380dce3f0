package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"

	"github.com/skarim/filecabinet/internal/apperror"
	"github.com/skarim/filecabinet/internal/model"
	"github.com/skarim/filecabinet/internal/queue"
	"github.com/skarim/filecabinet/internal/repository"
	"github.com/skarim/filecabinet/internal/storage"
)

// Supported image size variants for the content endpoint.
var sizeVariants = map[string]bool{"100": true, "250": true, "500": true}

// FileService is the file-metadata state machine: it creates file/folder
// records, enforces hierarchy and ownership rules, toggles visibility and
// resolves content for retrieval.
type FileService struct {
	files    repository.FileRepository
	store    storage.Store
	resolver TokenResolver
	jobs     queue.Enqueuer
	logger   *slog.Logger
}

// NewFileService creates a FileService with all required dependencies.
func NewFileService(
	files repository.FileRepository,
	store storage.Store,
	resolver TokenResolver,
	jobs queue.Enqueuer,
	logger *slog.Logger,
) *FileService {
	return &FileService{
		files:    files,
		store:    store,
		resolver: resolver,
		jobs:     jobs,
		logger:   logger,
	}
}

// UploadInput carries the client-supplied fields of an upload. Data is the
// base64-encoded payload, required for files and images and ignored for
// folders.
type UploadInput struct {
	Name     string
	Type     string
	ParentID string
	IsPublic bool
	Data     string
}

// Upload creates a file/folder record owned by the caller.
//
// Non-folder payloads are written to content storage under a fresh opaque
// handle before the record is inserted; the record is inserted exactly
// once. Image uploads additionally queue a thumbnail job, whose failure is
// logged but never fails the upload.
func (s *FileService) Upload(ctx context.Context, token string, in UploadInput) (*model.File, error) {
	userID, err := s.requireIdentity(ctx, token)
	if err != nil {
		return nil, err
	}

	if in.Name == "" {
		return nil, apperror.Validation("Missing name")
	}
	if !model.ValidType(in.Type) {
		return nil, apperror.Validation("Missing type")
	}
	if in.Type != model.TypeFolder && in.Data == "" {
		return nil, apperror.Validation("Missing data")
	}

	parentID := in.ParentID
	if parentID == "" {
		parentID = model.RootParent
	}
	if parentID != model.RootParent {
		parent, err := s.files.GetByID(ctx, parentID)
		if err != nil {
			if errors.Is(err, apperror.ErrNotFound) {
				return nil, apperror.Validation("Parent not found")
			}
			return nil, fmt.Errorf("service/file: fetching parent %s: %w", parentID, err)
		}
		if parent.Type != model.TypeFolder {
			return nil, apperror.Validation("Parent is not a folder")
		}
		parentID = parent.ID.Hex()
	}

	file := &model.File{
		UserID:   userID,
		Name:     in.Name,
		Type:     in.Type,
		IsPublic: in.IsPublic,
		ParentID: parentID,
	}

	if in.Type != model.TypeFolder {
		payload, err := base64.StdEncoding.DecodeString(in.Data)
		if err != nil {
			return nil, apperror.Validation("Missing data")
		}
		handle, err := s.store.Write(ctx, payload)
		if err != nil {
			return nil, fmt.Errorf("service/file: storing content: %w", err)
		}
		file.LocalPath = handle
	}

	if err := s.files.Create(ctx, file); err != nil {
		return nil, fmt.Errorf("service/file: creating record: %w", err)
	}

	if file.Type == model.TypeImage {
		// Fire-and-forget: the upload already succeeded.
		if err := s.jobs.EnqueueThumbnail(ctx, userID, file.ID.Hex()); err != nil {
			s.logger.Warn("thumbnail job not enqueued",
				slog.String("fileId", file.ID.Hex()),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.Info("file uploaded",
		slog.String("fileId", file.ID.Hex()),
		slog.String("type", file.Type),
		slog.String("userId", userID),
	)
	return file, nil
}

// Get fetches a record by id, scoped to the caller. A record owned by
// another user returns Not Found, never Forbidden — information hiding,
// not an oversight. The response keeps LocalPath; listings do not.
func (s *FileService) Get(ctx context.Context, token, id string) (*model.File, error) {
	userID, err := s.requireIdentity(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.files.GetOwned(ctx, id, userID)
}

// List returns one page (20 records, newest first) of the caller's records
// under parentID. An empty page is a normal outcome and returns an empty
// slice, not an error. The projection excludes LocalPath.
func (s *FileService) List(ctx context.Context, token, parentID string, page int64) ([]model.File, error) {
	userID, err := s.requireIdentity(ctx, token)
	if err != nil {
		return nil, err
	}

	if parentID == "" {
		parentID = model.RootParent
	}
	if page < 0 {
		page = 0
	}

	files, err := s.files.ListOwned(ctx, userID, repository.ListOptions{ParentID: parentID, Page: page})
	if err != nil {
		return nil, fmt.Errorf("service/file: listing: %w", err)
	}

	listed := make([]model.File, len(files))
	for i, f := range files {
		listed[i] = f.Listed()
	}
	return listed, nil
}

// SetVisibility publishes or unpublishes the caller's record and returns
// it as updated. Only the owner can toggle visibility; anyone else sees
// Not Found.
func (s *FileService) SetVisibility(ctx context.Context, token, id string, public bool) (*model.File, error) {
	userID, err := s.requireIdentity(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.files.SetVisibility(ctx, id, userID, public)
}

// ContentResult is the resolved payload of a content request.
type ContentResult struct {
	Data        []byte
	ContentType string
}

// Content resolves the raw bytes behind a record.
//
// Public records are readable by anyone, token or not. Private records
// require the caller to resolve to the owner; any other outcome is the
// same Not Found as a missing record. Folders have no content (400).
// A supported size on an image substitutes the size-suffixed variant
// handle, which 404s until the variant exists in storage.
func (s *FileService) Content(ctx context.Context, token, id, size string) (*ContentResult, error) {
	file, err := s.files.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if file.Type == model.TypeFolder {
		return nil, apperror.Validation("A folder doesn't have content")
	}

	if !file.IsPublic {
		userID, err := s.resolver.ResolveIdentity(ctx, token)
		if err != nil {
			return nil, err
		}
		if userID == "" || userID != file.UserID {
			return nil, apperror.NotFound()
		}
	}

	handle := file.LocalPath
	if sizeVariants[size] && file.Type == model.TypeImage {
		handle = storage.SizeVariant(handle, size)
	}

	if !s.store.Exists(handle) {
		return nil, apperror.NotFound()
	}

	data, err := s.store.Read(handle)
	if err != nil {
		return nil, fmt.Errorf("service/file: reading content: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(file.Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &ContentResult{Data: data, ContentType: contentType}, nil
}

func (s *FileService) requireIdentity(ctx context.Context, token string) (string, error) {
	userID, err := s.resolver.ResolveIdentity(ctx, token)
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", apperror.Unauthorized()
	}
	return userID, nil
}
