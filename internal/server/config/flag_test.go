package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-o", ":9091", "-k", "postgres", "-d", "db", "-f", "/var/lib/tk", "-s", "secret",
			"-t", "1", "-r", "3", "-i", "-n", "10", "-x", "200", "-m", "root", "-l", "", "-w", "5", "-q", "http://libre",
			"-u", "user", "-p", "password", "-b", "bucket", "-g", "us-west-1", "-e", "http://endpoint", "-L", "debug",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrGRPC:             "127.0.0.1:9090",
				EndpointAddrHTTP:             ":9091",
				StorageBackend:               "postgres",
				DatabaseDSN:                  "db",
				DataDir:                      "/var/lib/tk",
				SecretKey:                    "secret",
				AccessTokenValidityDuration:  1 * time.Minute,
				RefreshTokenValidityDuration: 3 * time.Minute,
				CaseInsensitiveUsernames:     true,
				HistoryRetention:             10,
				HistoryTruncate:              200,
				RootAdmin:                    "root",
				TextLogPath:                  "",
				CollaboratorTimeout:          5 * time.Second,
				TranslatorURL:                "http://libre",
				S3RootUser:                   "user",
				S3RootPassword:               "password",
				S3Bucket:                     "bucket",
				S3Region:                     "us-west-1",
				S3BaseEndpoint:               "http://endpoint",
				LogLevel:                     "debug",
			}},
		{name: "Unset durations are kept", args: []string{"cmd", "-a", ":1"},
			expected: &Config{
				EndpointAddrGRPC:             ":1",
				AccessTokenValidityDuration:  30 * time.Second,
				RefreshTokenValidityDuration: 90 * time.Second,
				CollaboratorTimeout:          1500 * time.Millisecond,
			}},
		{name: "Bad int panics", args: []string{"cmd", "-n", "ten"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{
				AccessTokenValidityDuration:  30 * time.Second,
				RefreshTokenValidityDuration: 90 * time.Second,
				CollaboratorTimeout:          1500 * time.Millisecond,
			}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
