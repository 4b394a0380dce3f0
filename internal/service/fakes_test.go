package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/skarim/filecabinet/internal/apperror"
	"github.com/skarim/filecabinet/internal/model"
	"github.com/skarim/filecabinet/internal/repository"
)

// In-memory fakes implementing the store interfaces. They keep the tests
// free of any running mongo/redis and let error paths be forced at will.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- users ---

type fakeUserRepo struct {
	users   []*model.User
	failure error // when set, every call fails with it
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	if f.failure != nil {
		return f.failure
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return apperror.Conflict("Already exist")
		}
	}
	user.ID = primitive.NewObjectID()
	stored := *user
	f.users = append(f.users, &stored)
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound()
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if f.failure != nil {
		return nil, f.failure
	}
	for _, u := range f.users {
		if u.ID.Hex() == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperror.NotFound()
}

func (f *fakeUserRepo) Count(context.Context) (int64, error) {
	if f.failure != nil {
		return 0, f.failure
	}
	return int64(len(f.users)), nil
}

// --- files ---

type fakeFileRepo struct {
	files []*model.File
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{}
}

func (f *fakeFileRepo) Create(_ context.Context, file *model.File) error {
	file.ID = primitive.NewObjectID()
	stored := *file
	f.files = append(f.files, &stored)
	return nil
}

func (f *fakeFileRepo) GetByID(_ context.Context, id string) (*model.File, error) {
	for _, fl := range f.files {
		if fl.ID.Hex() == id {
			copied := *fl
			return &copied, nil
		}
	}
	return nil, apperror.NotFound()
}

func (f *fakeFileRepo) GetOwned(_ context.Context, id, userID string) (*model.File, error) {
	for _, fl := range f.files {
		if fl.ID.Hex() == id && fl.UserID == userID {
			copied := *fl
			return &copied, nil
		}
	}
	return nil, apperror.NotFound()
}

func (f *fakeFileRepo) ListOwned(_ context.Context, userID string, opts repository.ListOptions) ([]model.File, error) {
	matched := []model.File{}
	// Insertion order is creation order; walk backwards for newest-first.
	for i := len(f.files) - 1; i >= 0; i-- {
		fl := f.files[i]
		if fl.UserID == userID && fl.ParentID == opts.ParentID {
			matched = append(matched, *fl)
		}
	}

	skip := int(opts.Page * repository.PageSize)
	if skip >= len(matched) {
		return []model.File{}, nil
	}
	matched = matched[skip:]
	if len(matched) > repository.PageSize {
		matched = matched[:repository.PageSize]
	}
	return matched, nil
}

func (f *fakeFileRepo) SetVisibility(_ context.Context, id, userID string, public bool) (*model.File, error) {
	for _, fl := range f.files {
		if fl.ID.Hex() == id && fl.UserID == userID {
			fl.IsPublic = public
			copied := *fl
			return &copied, nil
		}
	}
	return nil, apperror.NotFound()
}

func (f *fakeFileRepo) Count(context.Context) (int64, error) {
	return int64(len(f.files)), nil
}

// --- sessions ---

type fakeSessionStore struct {
	sessions map[string]string
	lastTTL  time.Duration
	failure  error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]string)}
}

func (f *fakeSessionStore) Get(_ context.Context, token string) (string, error) {
	if f.failure != nil {
		return "", f.failure
	}
	return f.sessions[token], nil
}

func (f *fakeSessionStore) Set(_ context.Context, token, userID string, ttl time.Duration) error {
	if f.failure != nil {
		return f.failure
	}
	f.sessions[token] = userID
	f.lastTTL = ttl
	return nil
}

func (f *fakeSessionStore) Del(_ context.Context, token string) error {
	if f.failure != nil {
		return f.failure
	}
	delete(f.sessions, token)
	return nil
}

// --- content storage ---

type fakeContentStore struct {
	blobs  map[string][]byte
	nextID int
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{blobs: make(map[string][]byte)}
}

func (f *fakeContentStore) Write(_ context.Context, data []byte) (string, error) {
	f.nextID++
	handle := fmt.Sprintf("/blobs/%d", f.nextID)
	f.blobs[handle] = append([]byte(nil), data...)
	return handle, nil
}

func (f *fakeContentStore) Exists(handle string) bool {
	_, ok := f.blobs[handle]
	return ok
}

func (f *fakeContentStore) Read(handle string) ([]byte, error) {
	data, ok := f.blobs[handle]
	if !ok {
		return nil, errors.New("fake store: no such handle")
	}
	return data, nil
}

// put stores content under an explicit handle, for seeding size variants.
func (f *fakeContentStore) put(handle string, data []byte) {
	f.blobs[handle] = data
}

// --- queue ---

type fakeEnqueuer struct {
	thumbnails []string // fileIDs
	welcomes   []string // userIDs
	failure    error
}

func (f *fakeEnqueuer) EnqueueThumbnail(_ context.Context, _, fileID string) error {
	if f.failure != nil {
		return f.failure
	}
	f.thumbnails = append(f.thumbnails, fileID)
	return nil
}

func (f *fakeEnqueuer) EnqueueWelcome(_ context.Context, userID string) error {
	if f.failure != nil {
		return f.failure
	}
	f.welcomes = append(f.welcomes, userID)
	return nil
}

// --- liveness ---

type fakePinger struct{ alive bool }

func (f fakePinger) Alive(context.Context) bool { return f.alive }

// staticResolver implements TokenResolver with a fixed mapping.
type staticResolver map[string]string

func (r staticResolver) ResolveIdentity(_ context.Context, token string) (string, error) {
	return r[token], nil
}
