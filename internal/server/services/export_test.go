package services

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/transkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubAWS(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origPut := putObject
	origPresign := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		putObject = origPut
		presignGetObject = origPresign
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{Region: lo.Region}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		assert.Equal(t, "http://127.0.0.1:9000/", *opts.BaseEndpoint)
		assert.True(t, opts.UsePathStyle)
		return s3.New(opts)
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	stubAWS(t)

	cfg := testConfig()
	s, h, _ := newServices(t, cfg)
	mustCreate(t, s, "alice", "pw")
	require.NoError(t, h.Append(ctx, entryAt(t, "alice", "hello", "bonjour", time.Now().Add(-time.Minute))))
	require.NoError(t, h.Append(ctx, entryAt(t, "alice", "thank you", "merci", time.Now())))

	var (
		gotBucket, gotKey string
		gotBody           []byte
	)
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotBucket, gotKey = *in.Bucket, *in.Key
		var err error
		gotBody, err = io.ReadAll(in.Body)
		require.NoError(t, err)
		return &s3.PutObjectOutput{}, nil
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		assert.Equal(t, gotKey, *in.Key)
		return &v4.PresignedHTTPRequest{URL: "http://127.0.0.1:9000/exports/" + *in.Key + "?sig"}, nil
	}

	svc := NewExportService(h, cfg, testLogger(t))
	out, err := svc.Export(ctx, "alice")
	require.NoError(t, err)

	assert.Equal(t, "exports", gotBucket)
	assert.Equal(t, gotKey, out.Key)
	assert.Regexp(t, `^exports/alice/\d{4}/\d{2}/\d{2}/[0-9a-f-]{36}\.json$`, out.Key)
	assert.Contains(t, out.URL, out.Key)
	assert.Equal(t, 2, out.Entries)

	var doc exportDocument
	require.NoError(t, json.Unmarshal(gotBody, &doc))
	assert.Equal(t, "alice", doc.Owner)
	require.Len(t, doc.Entries, 2)
	assert.Equal(t, "thank you", doc.Entries[0].Input)
	assert.Equal(t, "bonjour", doc.Entries[1].Output)
}

func TestExport_UploadFailure(t *testing.T) {
	stubAWS(t)

	cfg := testConfig()
	s, h, _ := newServices(t, cfg)
	mustCreate(t, s, "alice", "pw")

	putObject = func(*s3.Client, context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errBoom
	}

	_, err := NewExportService(h, cfg, testLogger(t)).Export(context.Background(), "alice")
	assert.ErrorIs(t, err, common.ErrStorage)
	assert.ErrorIs(t, err, errBoom)
}

func TestExport_PresignFailure(t *testing.T) {
	stubAWS(t)

	cfg := testConfig()
	s, h, _ := newServices(t, cfg)
	mustCreate(t, s, "alice", "pw")

	putObject = func(*s3.Client, context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return &s3.PutObjectOutput{}, nil
	}
	presignGetObject = func(*s3.PresignClient, context.Context, *s3.GetObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errBoom
	}

	_, err := NewExportService(h, cfg, testLogger(t)).Export(context.Background(), "alice")
	assert.ErrorIs(t, err, errBoom)
}

func TestExportKey(t *testing.T) {
	key := ExportKey("bob", time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC))
	assert.Regexp(t, `^exports/bob/2024/03/07/[0-9a-f-]{36}\.json$`, key)
}
