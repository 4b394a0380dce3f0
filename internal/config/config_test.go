package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, 27017, cfg.DBPort)
	assert.Equal(t, "files_manager", cfg.DBName)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, "/tmp/files_manager", cfg.FolderPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DB_HOST", "mongo.internal")
	t.Setenv("DB_DATABASE", "files_test")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("FOLDER_PATH", "/var/lib/filecabinet")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "mongo.internal", cfg.DBHost)
	assert.Equal(t, "files_test", cfg.DBName)
	assert.Equal(t, 6380, cfg.RedisPort)
	assert.Equal(t, "/var/lib/filecabinet", cfg.FolderPath)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("PORT", "99999")

	_, err := Load()
	assert.Error(t, err)
}

func TestConnectionStrings(t *testing.T) {
	cfg := Config{DBHost: "db1", DBPort: 27018, RedisHost: "cache1", RedisPort: 6390}

	assert.Equal(t, "mongodb://db1:27018", cfg.MongoURI())
	assert.Equal(t, "cache1:6390", cfg.RedisAddr())
}
