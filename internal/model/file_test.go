package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidType(t *testing.T) {
	assert.True(t, ValidType(TypeFolder))
	assert.True(t, ValidType(TypeFile))
	assert.True(t, ValidType(TypeImage))
	assert.False(t, ValidType(""))
	assert.False(t, ValidType("symlink"))
}

func TestListedDropsLocalPath(t *testing.T) {
	f := File{Name: "notes.txt", Type: TypeFile, LocalPath: "/tmp/files_manager/abc"}

	listed := f.Listed()

	assert.Empty(t, listed.LocalPath)
	assert.Equal(t, "notes.txt", listed.Name)
	assert.NotEmpty(t, f.LocalPath, "the original record keeps its handle")
}

func TestFileJSONOmitsEmptyLocalPath(t *testing.T) {
	folder := File{ID: primitive.NewObjectID(), Name: "Docs", Type: TypeFolder, ParentID: RootParent}

	body, err := json.Marshal(folder)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "localPath")
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	u := User{ID: primitive.NewObjectID(), Email: "a@x.com", PasswordHash: "digest"}

	body, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "digest")
	assert.Contains(t, string(body), "a@x.com")
}
