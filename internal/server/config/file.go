package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/transkeeper/internal/flagx"
	"github.com/dmitrijs2005/transkeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the server configuration. Durations
// use timex.Duration so both "90s" and integer nanoseconds are accepted.
// Only the keys present in the file override the defaults.
type FileConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	EndpointAddrHTTP             string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	StorageBackend               string         `json:"storage_backend" yaml:"storage_backend"`
	DatabaseDSN                  string         `json:"database_dsn" yaml:"database_dsn"`
	DataDir                      string         `json:"data_dir" yaml:"data_dir"`
	SecretKey                    string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	CaseInsensitiveUsernames     *bool          `json:"case_insensitive_usernames" yaml:"case_insensitive_usernames"`
	HistoryRetention             *int           `json:"history_retention" yaml:"history_retention"`
	HistoryTruncate              *int           `json:"history_truncate" yaml:"history_truncate"`
	HistoryPageSize              int            `json:"history_page_size" yaml:"history_page_size"`
	RootAdmin                    string         `json:"root_admin" yaml:"root_admin"`
	RootAdminPassword            string         `json:"root_admin_password" yaml:"root_admin_password"`
	TextLogPath                  *string        `json:"text_log_path" yaml:"text_log_path"`
	CollaboratorTimeout          timex.Duration `json:"collaborator_timeout" yaml:"collaborator_timeout"`
	TranslatorBackend            string         `json:"translator_backend" yaml:"translator_backend"`
	TranslatorURL                string         `json:"translator_url" yaml:"translator_url"`
	TTSURL                       string         `json:"tts_url" yaml:"tts_url"`
	STTURL                       string         `json:"stt_url" yaml:"stt_url"`
	AuthRatePerMinute            int            `json:"auth_rate_per_minute" yaml:"auth_rate_per_minute"`
	S3RootUser                   string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket                     string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region                     string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	LogLevel                     string         `json:"log_level" yaml:"log_level"`
	LogFormat                    string         `json:"log_format" yaml:"log_format"`
}

// parseFile loads the file named by -c/-config into config. Files ending in
// .yaml or .yml are decoded as YAML, everything else as JSON. Without the
// flag nothing is loaded; an unreadable or invalid file panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.DataDir, c.DataDir)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.CaseInsensitiveUsernames != nil {
		config.CaseInsensitiveUsernames = *c.CaseInsensitiveUsernames
	}
	if c.HistoryRetention != nil {
		config.HistoryRetention = *c.HistoryRetention
	}
	if c.HistoryTruncate != nil {
		config.HistoryTruncate = *c.HistoryTruncate
	}
	if c.HistoryPageSize > 0 {
		config.HistoryPageSize = c.HistoryPageSize
	}
	setString(&config.RootAdmin, c.RootAdmin)
	setString(&config.RootAdminPassword, c.RootAdminPassword)
	if c.TextLogPath != nil {
		config.TextLogPath = *c.TextLogPath
	}
	if c.CollaboratorTimeout.Duration > 0 {
		config.CollaboratorTimeout = c.CollaboratorTimeout.Duration
	}
	setString(&config.TranslatorBackend, c.TranslatorBackend)
	setString(&config.TranslatorURL, c.TranslatorURL)
	setString(&config.TTSURL, c.TTSURL)
	setString(&config.STTURL, c.STTURL)
	if c.AuthRatePerMinute > 0 {
		config.AuthRatePerMinute = c.AuthRatePerMinute
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
