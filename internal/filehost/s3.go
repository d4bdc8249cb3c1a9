package filehost

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Host publishes to an S3 bucket fronted by the public base origin. Object
// ETags serve as revision tokens and conditional puts provide the
// check-and-write semantics.
type S3Host struct {
	client *s3.Client
	bucket string
}

func NewS3Host(ctx context.Context, bucket, region string) (*S3Host, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &S3Host{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

func (h *S3Host) Revision(ctx context.Context, path string) (string, error) {
	out, err := h.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(h.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		var notFound *types.NotFound
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("checking S3 object %s: %w", path, err)
	}
	return strings.Trim(aws.ToString(out.ETag), "\""), nil
}

func (h *S3Host) Put(ctx context.Context, path string, content []byte, revision string) error {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("text/html; charset=utf-8"),
	}
	if revision != "" {
		input.IfMatch = aws.String(revision)
	} else {
		input.IfNoneMatch = aws.String("*")
	}
	if _, err := h.client.PutObject(ctx, input); err != nil {
		return &PublishError{Path: path, Status: 0, Body: err.Error()}
	}
	return nil
}
