package backup

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/oversys/Rusty-Words/internal/errors"
)

type fakeSnapshotter struct {
	data []byte
	err  error
}

func (f fakeSnapshotter) Snapshot(_ context.Context, dst string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dst, f.data, 0o600)
}

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func fixedTarget(client ObjectPutter) *S3Target {
	target := NewS3Target(client, "words-bucket", "nightly/")
	target.now = func() time.Time {
		return time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	}
	return target
}

func TestBackupUploadsSnapshot(t *testing.T) {
	putter := &fakePutter{}
	data := []byte("SQLite format 3\x00rest")

	key, err := fixedTarget(putter).Backup(context.Background(), fakeSnapshotter{data: data})
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}

	if want := "nightly/rusty_words-20260304T050607Z.db"; key != want {
		t.Errorf("key = %q, want %q", key, want)
	}
	if got := aws.ToString(putter.in.Bucket); got != "words-bucket" {
		t.Errorf("Bucket = %q", got)
	}
	if got := aws.ToString(putter.in.Key); got != key {
		t.Errorf("Key = %q, want %q", got, key)
	}
	if got := aws.ToString(putter.in.ContentType); got != ContentType {
		t.Errorf("ContentType = %q", got)
	}
	if got := aws.ToInt64(putter.in.ContentLength); got != int64(len(data)) {
		t.Errorf("ContentLength = %d, want %d", got, len(data))
	}
	if got := putter.in.Metadata["snapshot-time"]; got != "2026-03-04T05:06:07Z" {
		t.Errorf("snapshot-time = %q", got)
	}
	if !bytes.Equal(putter.body, data) {
		t.Errorf("body = %q, want %q", putter.body, data)
	}
}

func TestBackupErrors(t *testing.T) {
	tests := []struct {
		name   string
		src    Snapshotter
		putErr error
	}{
		{"snapshot fails", fakeSnapshotter{err: stderrors.New("disk full")}, nil},
		{"upload fails", fakeSnapshotter{data: []byte("db")}, stderrors.New("access denied")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixedTarget(&fakePutter{err: tt.putErr}).Backup(context.Background(), tt.src)
			if !errors.HasCode(err, "E303") {
				t.Errorf("err = %v, want E303", err)
			}
		})
	}
}

func TestEnvCredentials(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
	if _, err := envCredentials(context.Background()); !errors.HasCode(err, "E303") {
		t.Errorf("missing credentials err = %v, want E303", err)
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "SECRET")
	creds, err := envCredentials(context.Background())
	if err != nil {
		t.Fatalf("envCredentials: %v", err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "SECRET" {
		t.Errorf("creds = %+v", creds)
	}
}

func TestNewS3Client(t *testing.T) {
	client := NewS3Client(ClientOptions{Region: "eu-west-1", Endpoint: "http://localhost:9000", PathStyle: true})

	o := client.Options()
	if o.Region != "eu-west-1" {
		t.Errorf("Region = %q", o.Region)
	}
	if got := aws.ToString(o.BaseEndpoint); got != "http://localhost:9000" {
		t.Errorf("BaseEndpoint = %q", got)
	}
	if !o.UsePathStyle {
		t.Error("UsePathStyle = false")
	}
}
