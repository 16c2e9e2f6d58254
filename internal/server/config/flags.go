package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-o string   ops HTTP bind address (e.g., ":8081")
//	-k string   storage backend: json, sqlite or postgres
//	-d string   database DSN
//	-f string   data directory
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-i          case-insensitive usernames
//	-n int      history entries kept per user (0 = all)
//	-x int      max runes stored per history text (0 = unlimited)
//	-m string   root admin username
//	-l string   text log path ("" disables it)
//	-w int      collaborator timeout, seconds
//	-q string   translator URL
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-L string   log level
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs. Durations are given as whole minutes or seconds.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:],
		[]string{"-a", "-o", "-k", "-d", "-f", "-s", "-t", "-r", "-n", "-x", "-m", "-l", "-w", "-q",
			"-u", "-p", "-b", "-g", "-e", "-L"},
		"-i")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.EndpointAddrHTTP, "o", config.EndpointAddrHTTP, "address and port of the ops endpoint")
	fs.StringVar(&config.StorageBackend, "k", config.StorageBackend, "storage backend (json, sqlite, postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.DataDir, "f", config.DataDir, "data directory")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	refreshTokenValidityDuration := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh_token_validity_duration (in minutes)")

	fs.BoolVar(&config.CaseInsensitiveUsernames, "i", config.CaseInsensitiveUsernames, "case-insensitive usernames")
	fs.IntVar(&config.HistoryRetention, "n", config.HistoryRetention, "history entries kept per user (0 = all)")
	fs.IntVar(&config.HistoryTruncate, "x", config.HistoryTruncate, "max runes per stored text (0 = unlimited)")
	fs.StringVar(&config.RootAdmin, "m", config.RootAdmin, "root admin username")
	fs.StringVar(&config.TextLogPath, "l", config.TextLogPath, "text log path")

	collaboratorTimeout := fs.Int("w", int(config.CollaboratorTimeout.Seconds()), "collaborator timeout (in seconds)")

	fs.StringVar(&config.TranslatorURL, "q", config.TranslatorURL, "translator URL")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "L", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Durations from a config file may be finer than the flag units,
	// so only flags given explicitly replace them.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshTokenValidityDuration) * time.Minute
		case "w":
			config.CollaboratorTimeout = time.Duration(*collaboratorTimeout) * time.Second
		}
	})
}
