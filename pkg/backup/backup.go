// Package backup copies the word database to S3-compatible object storage.
//
//	client := backup.NewS3Client(backup.ClientOptions{Region: "eu-west-1"})
//	target := backup.NewS3Target(client, "my-bucket", "rusty-words/")
//	key, err := target.Backup(ctx, store)
package backup

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/oversys/Rusty-Words/internal/errors"
)

// ContentType is the media type of uploaded snapshots.
const ContentType = "application/vnd.sqlite3"

// Snapshotter writes a consistent database copy to a new file.
// *words.Store implements it.
type Snapshotter interface {
	Snapshot(ctx context.Context, dst string) error
}

// ObjectPutter is the part of *s3.Client the target uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Target uploads snapshots under a key prefix in one bucket.
type S3Target struct {
	client ObjectPutter
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Target creates a target. prefix may be empty.
func NewS3Target(client ObjectPutter, bucket, prefix string) *S3Target {
	return &S3Target{
		client: client,
		bucket: bucket,
		prefix: prefix,
		now:    time.Now,
	}
}

// Key returns the object key for a snapshot taken at t.
func (t *S3Target) Key(at time.Time) string {
	return t.prefix + "rusty_words-" + at.UTC().Format("20060102T150405Z") + ".db"
}

// Backup snapshots src and uploads it, returning the object key.
func (t *S3Target) Backup(ctx context.Context, src Snapshotter) (string, error) {
	dir, err := os.MkdirTemp("", "rustywords-backup-")
	if err != nil {
		return "", errors.New("E303").Wrap(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "snapshot.db")
	if err := src.Snapshot(ctx, path); err != nil {
		return "", errors.New("E303").WithDetail("taking snapshot").Wrap(err)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errors.New("E303").Wrap(err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", errors.New("E303").Wrap(err)
	}

	taken := t.now()
	key := t.Key(taken)
	_, err = t.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(t.bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(ContentType),
		Metadata: map[string]string{
			"snapshot-time": taken.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New("E303").
			WithDetailf("uploading s3://%s/%s", t.bucket, key).
			WithSuggestion("Check the bucket name and the AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY environment").
			Wrap(err)
	}
	return key, nil
}

// ClientOptions configures NewS3Client.
type ClientOptions struct {
	Region string

	// Endpoint overrides the service endpoint for S3-compatible stores
	// such as MinIO.
	Endpoint string

	// PathStyle addresses buckets as endpoint/bucket instead of
	// bucket.endpoint.
	PathStyle bool
}

// NewS3Client creates a client that reads static credentials from
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN.
func NewS3Client(opts ClientOptions) *s3.Client {
	o := s3.Options{
		Region:       opts.Region,
		Credentials:  aws.NewCredentialsCache(aws.CredentialsProviderFunc(envCredentials)),
		UsePathStyle: opts.PathStyle,
	}
	if opts.Endpoint != "" {
		o.BaseEndpoint = aws.String(opts.Endpoint)
	}
	return s3.New(o)
}

func envCredentials(context.Context) (aws.Credentials, error) {
	creds := aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "Environment",
	}
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return aws.Credentials{}, errors.New("E303").WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}
	return creds, nil
}
