// Package s3client stores uploaded images in S3 and hands back public
// urls. Transformation is delegated entirely to the storage side.
package s3client

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/tranphattrien/easycode-server/apperr"
)

const uploadFolder = "easycode-blogging"

type S3Client struct {
	uploader *s3manager.Uploader
	bucket   string
	region   string
}

func NewS3Client() (*S3Client, error) {
	region := os.Getenv("AWS_REGION")
	bucket := os.Getenv("S3_BUCKET")
	if len(region) == 0 || len(bucket) == 0 {
		return nil, apperr.New(apperr.Upstream, "AWS_REGION and S3_BUCKET must be configured")
	}

	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed creating aws session", err)
	}

	return &S3Client{
		uploader: s3manager.NewUploader(sess),
		bucket:   bucket,
		region:   region,
	}, nil
}

// Upload stores the image bytes under a random key and returns the
// public url. Failures are reported to the caller, not retried.
func (c *S3Client) Upload(ctx context.Context, data []byte, contentType, extension string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", uploadFolder, uuid.NewString(), extension)

	_, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
	})
	if err != nil {
		return "", apperr.Wrap(apperr.Upstream, "failed uploading image", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.bucket, c.region, key), nil
}
