package blob

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	sc "github.com/cryptvault-io/cryptvault/internal/server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func testConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestNewS3Store_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("config load failed")
	}
	defer func() { loadDefaultAWSConfig = orig }()

	_, err := NewS3Store(context.Background(), testConfig())
	if err == nil {
		t.Fatal("expected error from config load")
	}
}

func TestPut_PassesInput(t *testing.T) {
	var got *s3.PutObjectInput
	orig := putObject
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		got = in
		return &s3.PutObjectOutput{}, nil
	}
	defer func() { putObject = orig }()

	store := &S3Store{bucket: "cryptvault"}
	err := store.Put(context.Background(), "vaults/v1/key", strings.NewReader("hello"), "text/plain", 5)
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if *got.Bucket != "cryptvault" || *got.Key != "vaults/v1/key" {
		t.Errorf("input bucket/key = %q/%q", *got.Bucket, *got.Key)
	}
	if *got.ContentType != "text/plain" || *got.ContentLength != 5 {
		t.Errorf("content type/length = %q/%d", *got.ContentType, *got.ContentLength)
	}
}

func TestDelete_PropagatesError(t *testing.T) {
	orig := deleteObject
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return nil, errors.New("delete failed")
	}
	defer func() { deleteObject = orig }()

	store := &S3Store{bucket: "cryptvault"}
	if err := store.Delete(context.Background(), "vaults/v1/key"); err == nil {
		t.Fatal("expected error from delete")
	}
}

func TestSignedGetURL(t *testing.T) {
	orig := presignGetObject
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return &v4.PresignedHTTPRequest{URL: "https://signed.example/" + *in.Key}, nil
	}
	defer func() { presignGetObject = orig }()

	store := &S3Store{bucket: "cryptvault"}
	url, err := store.SignedGetURL(context.Background(), "vaults/v1/key", 5*time.Minute)
	if err != nil {
		t.Fatalf("SignedGetURL error: %v", err)
	}
	if url != "https://signed.example/vaults/v1/key" {
		t.Errorf("url = %q", url)
	}
}
