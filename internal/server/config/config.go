// Package config handles configuration for the server component,
// including defaults, a JSON or YAML file overlay, command-line flags and
// the translation backend credentials taken from the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// TranslatorAPIKeyEnv names the environment variable holding the translation
// backend API key. It may also come from a .env file in the working directory.
const TranslatorAPIKeyEnv = "TRANSLATOR_API_KEY"

// Translator backends.
const (
	TranslatorLibre   = "libre"
	TranslatorOffline = "offline"
)

// Config holds runtime settings for the transkeeper server.
//
// Fields:
//   - EndpointAddrGRPC / EndpointAddrHTTP: bind addresses of the gRPC service and the ops endpoint.
//   - StorageBackend: json, sqlite or postgres. DatabaseDSN is used by the SQL backends,
//     DataDir by the JSON backend and as the default home of the SQLite file.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - CaseInsensitiveUsernames: fold usernames to lower case before any lookup.
//   - HistoryRetention: newest entries kept per user, 0 keeps all.
//   - HistoryTruncate: max runes stored per input/output, 0 keeps the text whole.
//   - RootAdmin: protected administrator; RootAdminPassword bootstraps it when absent.
//   - TextLogPath: human-readable translation log, empty disables it.
//   - CollaboratorTimeout: deadline for every translator/TTS/STT call.
type Config struct {
	EndpointAddrGRPC             string
	EndpointAddrHTTP             string
	StorageBackend               string
	DatabaseDSN                  string
	DataDir                      string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	CaseInsensitiveUsernames     bool
	HistoryRetention             int
	HistoryTruncate              int
	HistoryPageSize              int
	RootAdmin                    string
	RootAdminPassword            string
	TextLogPath                  string
	CollaboratorTimeout          time.Duration
	TranslatorBackend            string
	TranslatorURL                string
	TranslatorAPIKey             string
	TTSURL                       string
	STTURL                       string
	AuthRatePerMinute            int
	S3RootUser                   string
	S3RootPassword               string
	S3Bucket                     string
	S3Region                     string
	S3BaseEndpoint               string
	LogLevel                     string
	LogFormat                    string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.EndpointAddrHTTP = ":8081"
	c.StorageBackend = "json"
	c.DatabaseDSN = ""
	c.DataDir = "data"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
	c.CaseInsensitiveUsernames = false
	c.HistoryRetention = 0
	c.HistoryTruncate = 0
	c.HistoryPageSize = 50
	c.RootAdmin = "admin"
	c.RootAdminPassword = ""
	c.TextLogPath = "Translator_History.txt"
	c.CollaboratorTimeout = 10 * time.Second
	c.TranslatorBackend = TranslatorLibre
	c.TranslatorURL = "http://127.0.0.1:5000"
	c.TTSURL = ""
	c.STTURL = ""
	c.AuthRatePerMinute = 10
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "exports"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, then from command-line flags and finally
// reading the translator API key from the environment.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	parseEnv(cfg)
	return cfg
}

// parseEnv loads .env when present; variables already set in the process
// environment win over the file.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(TranslatorAPIKeyEnv); v != "" {
		config.TranslatorAPIKey = v
	}
}
