// Package publish uploads rendered output to S3-compatible object storage.
//
// Example usage:
//
//	client, _ := publish.NewS3Client(publish.S3Config{Region: "eu-west-1"})
//	p := publish.New(client, publish.Options{Prefix: "previews/"})
//	url, err := p.Publish(ctx, "s3://my-bucket/counter.html", "", html)
package publish

import (
	"bytes"
	"context"
	"mime"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/vrender/internal/errors"
)

// PutObjectAPI is the part of the S3 client a Publisher needs.
// *s3.Client satisfies it.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Location is an object address.
type Location struct {
	Bucket string
	Key    string
}

// String returns the s3:// URL of the location.
func (l Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

// IsURL reports whether s looks like an s3:// URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "s3://")
}

// ParseURL parses "s3://bucket/key".
func ParseURL(raw string) (Location, error) {
	rest, ok := strings.CutPrefix(raw, "s3://")
	if !ok {
		return Location{}, errors.New("E080").WithDetailf("%q does not start with s3://", raw)
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return Location{}, errors.New("E080").WithDetailf("%q needs a bucket and an object key", raw)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

// Options configures a Publisher.
type Options struct {
	// Prefix is prepended to every key (e.g., "previews/").
	Prefix string

	// CacheControl is sent with every object when set.
	CacheControl string

	// Now is used for the rendered-at metadata. Defaults to time.Now.
	Now func() time.Time
}

// Publisher uploads rendered documents.
type Publisher struct {
	client PutObjectAPI
	opts   Options
}

// New creates a Publisher.
func New(client PutObjectAPI, opts Options) *Publisher {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Publisher{client: client, opts: opts}
}

// Publish uploads data to the s3:// URL dest. An empty contentType is
// derived from the key's extension. It returns the final location.
func (p *Publisher) Publish(ctx context.Context, dest, contentType string, data []byte) (Location, error) {
	loc, err := ParseURL(dest)
	if err != nil {
		return Location{}, err
	}
	if p.opts.Prefix != "" {
		loc.Key = path.Join(p.opts.Prefix, loc.Key)
	}
	if contentType == "" {
		contentType = ContentType(loc.Key)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(loc.Bucket),
		Key:           aws.String(loc.Key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
		Metadata: map[string]string{
			"generator":   "vrender",
			"rendered-at": p.opts.Now().UTC().Format(time.RFC3339),
		},
	}
	if p.opts.CacheControl != "" {
		input.CacheControl = aws.String(p.opts.CacheControl)
	}

	if _, err := p.client.PutObject(ctx, input); err != nil {
		return Location{}, errors.New("E081").WithDetailf("uploading %s", loc).Wrap(err)
	}
	return loc, nil
}

// ContentType guesses the MIME type of key from its extension.
func ContentType(key string) string {
	switch ext := strings.ToLower(path.Ext(key)); ext {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".txt", ".ans":
		return "text/plain; charset=utf-8"
	case ".png":
		return "image/png"
	case "":
		return "application/octet-stream"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}

// S3Config configures NewS3Client.
type S3Config struct {
	Region string

	// Endpoint overrides the S3 endpoint, e.g. for MinIO. Path-style
	// addressing is used when set.
	Endpoint string

	// Getenv reads credentials. Defaults to os.Getenv.
	Getenv func(string) string
}

// NewS3Client builds an S3 client. Credentials come from AWS_ACCESS_KEY_ID,
// AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN; the region falls back to
// AWS_REGION.
func NewS3Client(cfg S3Config) (*s3.Client, error) {
	getenv := cfg.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	region := cfg.Region
	if region == "" {
		region = getenv("AWS_REGION")
	}
	if region == "" {
		return nil, errors.New("E061").WithDetail("publish region is not set").
			WithSuggestion("Set publish.region in vrender.json or AWS_REGION")
	}

	provider := aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		id, secret := getenv("AWS_ACCESS_KEY_ID"), getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, errors.New("E081").WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    getenv("AWS_SESSION_TOKEN"),
			Source:          "Environment",
		}, nil
	})

	awsCfg := aws.Config{
		Region:      region,
		Credentials: aws.NewCredentialsCache(provider),
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}
