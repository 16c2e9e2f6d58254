package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		path := filepath.Join(dir, "cli.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"server_endpoint_addr":"www.example:9000","request_timeout":"10s"}`), 0o600))
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{OutputDir: "keep"}
		parseFile(cfg)

		assert.Equal(t, "www.example:9000", cfg.ServerEndpointAddr)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "keep", cfg.OutputDir)
	})

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "cli.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output_dir: downloads\nrequest_timeout: 1m\n"), 0o600))
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{ServerEndpointAddr: "defaults:1234"}
		parseFile(cfg)

		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
		assert.Equal(t, time.Minute, cfg.RequestTimeout)
		assert.Equal(t, "downloads", cfg.OutputDir)
	})

	t.Run("no flag", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{ServerEndpointAddr: "defaults:1234"}
		parseFile(cfg)
		assert.Equal(t, "defaults:1234", cfg.ServerEndpointAddr)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
