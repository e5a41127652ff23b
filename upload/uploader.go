// Package upload implements the local upload proxy: it accepts a
// multipart file on POST /api/upload and forwards it to object storage,
// answering with the public URL. The web client never holds storage
// credentials; this proxy does.
package upload

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/amane-app/amane-go/internal/config"
)

// ConfigurationS3MissingMsg is returned verbatim in the error payload
// when the proxy runs without storage credentials.
const ConfigurationS3MissingMsg = "Configuration S3 manquante (bucket, region, credentials)"

// ErrMissingS3Config reports absent storage configuration. The server
// keeps running and surfaces it per request instead of crashing.
var ErrMissingS3Config = errors.New(ConfigurationS3MissingMsg)

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// S3Uploader forwards files to an S3 bucket.
type S3Uploader struct {
	client *s3.Client
	bucket string
	region string
}

var _ Uploader = (*S3Uploader)(nil)

// NewS3Uploader builds the S3 client from configuration. It returns
// ErrMissingS3Config when bucket, region or credentials are absent.
func NewS3Uploader(ctx context.Context, cfg config.StorageConfig) (*S3Uploader, error) {
	bucket := cfg.GetS3Bucket()
	region := cfg.GetS3Region()
	accessKey := cfg.GetS3AccessKey()
	secretKey := cfg.GetS3SecretKey()

	if bucket == "" || region == "" || accessKey == "" || secretKey == "" {
		return nil, ErrMissingS3Config
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[NewS3Uploader] loading aws config")
	}

	return &S3Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: bucket,
		region: region,
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrapf(err, "[S3Uploader.Upload] putting %s", key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}
