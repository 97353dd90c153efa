package publish_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vrender/pkg/publish"
)

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

func TestParseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    publish.Location
		wantErr bool
	}{
		{raw: "s3://bucket/key.html", want: publish.Location{Bucket: "bucket", Key: "key.html"}},
		{raw: "s3://bucket/a/b/c.png", want: publish.Location{Bucket: "bucket", Key: "a/b/c.png"}},
		{raw: "https://bucket/key", wantErr: true},
		{raw: "s3://bucket", wantErr: true},
		{raw: "s3:///key", wantErr: true},
		{raw: "s3://bucket/dir/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := publish.ParseURL(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected an error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.raw {
				t.Errorf("String() = %q, want %q", got.String(), tt.raw)
			}
		})
	}
}

func TestPublish(t *testing.T) {
	fake := &fakeS3{}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := publish.New(fake, publish.Options{
		Prefix:       "previews",
		CacheControl: "no-cache",
		Now:          func() time.Time { return now },
	})

	loc, err := p.Publish(context.Background(), "s3://site/counter.html", "", []byte("<p>hi</p>"))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	if loc.String() != "s3://site/previews/counter.html" {
		t.Errorf("unexpected location %s", loc)
	}
	if len(fake.inputs) != 1 {
		t.Fatalf("expected one upload, got %d", len(fake.inputs))
	}
	in := fake.inputs[0]
	if aws.ToString(in.Bucket) != "site" || aws.ToString(in.Key) != "previews/counter.html" {
		t.Errorf("unexpected target %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}
	if aws.ToString(in.ContentType) != "text/html; charset=utf-8" {
		t.Errorf("unexpected content type %q", aws.ToString(in.ContentType))
	}
	if aws.ToString(in.CacheControl) != "no-cache" {
		t.Errorf("unexpected cache control %q", aws.ToString(in.CacheControl))
	}
	if aws.ToInt64(in.ContentLength) != 9 || fake.bodies[0] != "<p>hi</p>" {
		t.Errorf("unexpected body %q", fake.bodies[0])
	}
	if in.Metadata["rendered-at"] != "2026-01-02T03:04:05Z" {
		t.Errorf("unexpected metadata %v", in.Metadata)
	}
}

func TestPublish_Errors(t *testing.T) {
	fake := &fakeS3{err: errors.New("access denied")}
	p := publish.New(fake, publish.Options{})

	if _, err := p.Publish(context.Background(), "not-a-url", "", nil); err == nil {
		t.Error("expected an error for an invalid URL")
	}

	_, err := p.Publish(context.Background(), "s3://b/k.png", "", []byte{1})
	if err == nil || !errors.Is(err, fake.err) {
		t.Errorf("expected wrapped upload error, got %v", err)
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"a.html": "text/html; charset=utf-8",
		"a.PNG":  "image/png",
		"a.txt":  "text/plain; charset=utf-8",
		"a":      "application/octet-stream",
	}
	for key, want := range tests {
		if got := publish.ContentType(key); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestNewS3Client(t *testing.T) {
	env := map[string]string{
		"AWS_REGION":            "eu-west-1",
		"AWS_ACCESS_KEY_ID":     "id",
		"AWS_SECRET_ACCESS_KEY": "secret",
	}
	getenv := func(k string) string { return env[k] }

	client, err := publish.NewS3Client(publish.S3Config{Endpoint: "http://localhost:9000", Getenv: getenv})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	opts := client.Options()
	if opts.Region != "eu-west-1" || !opts.UsePathStyle || aws.ToString(opts.BaseEndpoint) != "http://localhost:9000" {
		t.Errorf("unexpected options region=%s pathStyle=%v endpoint=%s", opts.Region, opts.UsePathStyle, aws.ToString(opts.BaseEndpoint))
	}

	creds, err := opts.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if creds.AccessKeyID != "id" || creds.SecretAccessKey != "secret" {
		t.Errorf("unexpected credentials %+v", creds)
	}

	if _, err := publish.NewS3Client(publish.S3Config{Getenv: func(string) string { return "" }}); err == nil {
		t.Error("expected an error without a region")
	}
}
