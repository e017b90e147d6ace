// Package storage presigns uploads against an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/folio-labs/portfolio-api/internal/core/domain"
	"github.com/folio-labs/portfolio-api/internal/core/ports"
)

// S3Config holds the bucket coordinates and credentials. Endpoint is set for
// MinIO and other S3-compatible stores; path-style addressing is used then.
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// S3Presigner issues presigned PUT URLs for carousel images and inspects the
// objects uploaded through them.
type S3Presigner struct {
	client  *s3.Client
	presign *s3.PresignClient
	cfg     S3Config
}

// NewS3Presigner loads the AWS configuration and builds a presign client.
// Static credentials take precedence over the default provider chain.
func NewS3Presigner(ctx context.Context, cfg S3Config) (*S3Presigner, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 presigner: bucket is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Presigner{client: client, presign: s3.NewPresignClient(client), cfg: cfg}, nil
}

// PresignPut returns a URL that accepts a PUT of key until ttl elapses,
// along with the headers the client must send. The signature only covers the
// signed headers, so Content-Type is returned for the client to set and
// checked later with ContentType.
func (p *S3Presigner) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (ports.PresignedPut, error) {
	req, err := p.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return ports.PresignedPut{}, fmt.Errorf("presign put %s: %w", key, err)
	}
	return ports.PresignedPut{URL: req.URL, Headers: uploadHeaders(req.SignedHeader, contentType)}, nil
}

// uploadHeaders flattens the signed headers the client has to replay. Host
// is set by the HTTP client from the URL.
func uploadHeaders(signed http.Header, contentType string) map[string]string {
	out := map[string]string{"Content-Type": contentType}
	for k, v := range signed {
		if strings.EqualFold(k, "Host") || len(v) == 0 {
			continue
		}
		out[http.CanonicalHeaderKey(k)] = v[0]
	}
	return out
}

// ContentType returns the Content-Type key was stored with.
func (p *S3Presigner) ContentType(ctx context.Context, key string) (string, error) {
	out, err := p.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return "", fmt.Errorf("object %s: %w", key, domain.ErrNotFound)
		}
		return "", fmt.Errorf("head object %s: %w", key, err)
	}
	return aws.ToString(out.ContentType), nil
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}

// PublicURL is where the object is readable once uploaded.
func (p *S3Presigner) PublicURL(key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()

	switch {
	case p.cfg.PublicBaseURL != "":
		return strings.TrimRight(p.cfg.PublicBaseURL, "/") + "/" + escaped
	case p.cfg.Endpoint != "":
		return strings.TrimRight(p.cfg.Endpoint, "/") + "/" + p.cfg.Bucket + "/" + escaped
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", p.cfg.Bucket, p.cfg.Region, escaped)
	}
}

var _ ports.UploadPresigner = (*S3Presigner)(nil)
