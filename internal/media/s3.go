package media

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the subset of the S3 client the uploader needs.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores objects in an S3-compatible bucket.
type S3Uploader struct {
	client  PutObjectAPI
	bucket  string
	baseURL string
}

// NewS3Uploader builds an uploader for bucket. baseURL is the public prefix
// object keys are appended to when building URLs.
func NewS3Uploader(client PutObjectAPI, bucket, baseURL string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// PublicBaseURL picks the URL prefix for objects in bucket: an explicit
// public URL wins, then a path-style custom endpoint, then the AWS
// virtual-hosted style address.
func PublicBaseURL(publicURL, endpoint, bucket, region string) string {
	if publicURL != "" {
		return strings.TrimSuffix(publicURL, "/")
	}
	if endpoint != "" {
		return strings.TrimSuffix(endpoint, "/") + "/" + bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
}

// Upload writes obj under a fresh key and returns its public URL.
func (u *S3Uploader) Upload(ctx context.Context, obj Object) (string, error) {
	key := ObjectKey(obj)
	input := &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        obj.Body,
		ContentType: aws.String(defaultContentType(obj)),
	}
	if obj.Size > 0 {
		input.ContentLength = aws.Int64(obj.Size)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return u.baseURL + "/" + (&url.URL{Path: key}).EscapedPath(), nil
}
