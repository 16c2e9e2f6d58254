package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/dmitrijs2005/transkeeper/internal/logging"
	sc "github.com/dmitrijs2005/transkeeper/internal/server/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// exportURLValidity bounds how long a presigned download link works.
const exportURLValidity = 15 * time.Minute

// Export describes an uploaded history snapshot.
type Export struct {
	Key     string
	URL     string
	Entries int
}

type exportDocument struct {
	Owner      string        `json:"owner"`
	ExportedAt string        `json:"exported_at"`
	Entries    []exportEntry `json:"entries"`
}

type exportEntry struct {
	Time   string `json:"time"`
	From   string `json:"from"`
	To     string `json:"to"`
	Input  string `json:"input"`
	Output string `json:"output"`
}

// ExportService uploads a user's history to object storage and returns a
// presigned link to it.
type ExportService struct {
	history *HistoryService
	config  *sc.Config
	logger  logging.Logger
	now     func() time.Time
}

func NewExportService(history *HistoryService, config *sc.Config, logger logging.Logger) *ExportService {
	return &ExportService{
		history: history,
		config:  config,
		logger:  logger.With("module", "export"),
		now:     time.Now,
	}
}

// ExportKey returns exports/<owner>/<yyyy>/<mm>/<dd>/<uuid>.json.
func ExportKey(owner string, d time.Time) string {
	return fmt.Sprintf("exports/%s/%04d/%02d/%02d/%v.json", owner, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *ExportService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Export serialises the whole history of owner, uploads it and returns a
// presigned GET URL.
func (s *ExportService) Export(ctx context.Context, owner string) (*Export, error) {
	entries, err := s.history.List(ctx, owner, math.MaxInt32)
	if err != nil {
		return nil, err
	}

	now := s.now()
	doc := exportDocument{
		Owner:      owner,
		ExportedAt: now.Format(common.TimeLayout),
		Entries:    make([]exportEntry, 0, len(entries)),
	}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, exportEntry{
			Time:   e.Timestamp(),
			From:   e.From,
			To:     e.To,
			Input:  e.Input,
			Output: e.Output,
		})
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error configuring object storage: %w", errors.Join(common.ErrStorage, err))
	}

	bucket := s.config.S3Bucket
	key := ExportKey(owner, now)

	if _, err := putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return nil, fmt.Errorf("error uploading export: %w", errors.Join(common.ErrStorage, err))
	}

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(exportURLValidity))
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", errors.Join(common.ErrStorage, err))
	}

	s.logger.Info(ctx, "history exported", "owner", owner, "key", key, "entries", len(doc.Entries))
	return &Export{Key: key, URL: req.URL, Entries: len(doc.Entries)}, nil
}
