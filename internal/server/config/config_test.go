package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, ":8081", c.EndpointAddrHTTP)
	assert.Equal(t, "json", c.StorageBackend)
	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 24*time.Hour, c.RefreshTokenValidityDuration)
	assert.False(t, c.CaseInsensitiveUsernames)
	assert.Equal(t, 0, c.HistoryRetention)
	assert.Equal(t, 0, c.HistoryTruncate)
	assert.Equal(t, 50, c.HistoryPageSize)
	assert.Equal(t, "admin", c.RootAdmin)
	assert.Equal(t, "Translator_History.txt", c.TextLogPath)
	assert.Equal(t, 10*time.Second, c.CollaboratorTimeout)
	assert.Equal(t, TranslatorLibre, c.TranslatorBackend)
	assert.Equal(t, "exports", c.S3Bucket)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "http://127.0.0.1:9000/", c.S3BaseEndpoint)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Setenv(TranslatorAPIKeyEnv, "")

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestLoadConfig_Layers(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage_backend: sqlite\nhistory_retention: 20\n"), 0o600))

	os.Args = []string{"testbin", "-c", path, "-n", "10"}
	t.Setenv(TranslatorAPIKeyEnv, "k-123")

	c := LoadConfig()

	assert.Equal(t, "sqlite", c.StorageBackend)
	assert.Equal(t, 10, c.HistoryRetention, "flags win over the file")
	assert.Equal(t, "k-123", c.TranslatorAPIKey)
}
