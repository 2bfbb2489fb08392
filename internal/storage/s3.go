package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/nguyentantai21042004/meeting-processor/internal/config"
)

// ErrObjectNotFound is returned by SignedURL when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

type headAPI interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Signer presigns GET requests against one bucket.
type S3Signer struct {
	bucket  string
	head    headAPI
	presign presignAPI
}

// NewS3Signer builds an S3 client from cfg. Static keys are used when set,
// otherwise the default AWS credential chain.
func NewS3Signer(ctx context.Context, cfg config.StorageConfig) (*S3Signer, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3Signer(cfg.Bucket, client, s3.NewPresignClient(client)), nil
}

func newS3Signer(bucket string, head headAPI, presign presignAPI) *S3Signer {
	return &S3Signer{bucket: bucket, head: head, presign: presign}
}

// SignedURL checks the object exists, then presigns a GET for it.
// Presigning alone never fails for a missing key, hence the HEAD.
func (s *S3Signer) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if _, err := s.head.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("head object %s/%s: %w", s.bucket, key, ErrObjectNotFound)
		}
		return "", fmt.Errorf("head object %s/%s: %w", s.bucket, key, err)
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", s.bucket, key, err)
	}
	return req.URL, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "NotFound", "NoSuchKey":
		return true
	}
	return false
}
