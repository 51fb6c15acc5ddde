package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrNoCookies means no session blob was ever uploaded.
var ErrNoCookies = errors.New("no session cookies stored")

// CookieStore persists the opaque session-cookie blob the like verifier
// logs in with.
type CookieStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
}

type FileCookieStore struct {
	path string
}

func NewFileCookieStore(path string) *FileCookieStore {
	return &FileCookieStore{path: path}
}

func (s *FileCookieStore) Load(_ context.Context) ([]byte, error) {
	blob, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoCookies
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies: %w", err)
	}
	return blob, nil
}

// Save replaces the file through a rename so a crash never leaves a
// half-written blob behind.
func (s *FileCookieStore) Save(_ context.Context, blob []byte) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".cookies-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp cookie file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cookies: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cookies: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("failed to set cookie file mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace cookies: %w", err)
	}
	return nil
}

// SpacesCookieStore keeps the blob as a private object in a DigitalOcean
// Spaces (S3 compatible) bucket.
type SpacesCookieStore struct {
	client *s3.Client
	bucket string
	key    string
	logger *slog.Logger
}

func NewSpacesCookieStore(ctx context.Context, spacesKey, spacesSecret, region, bucket, key string) (*SpacesCookieStore, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load Spaces config: %w", err)
	}

	return &SpacesCookieStore{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		key:    key,
		logger: slog.With(slog.String("service", "cookie_store")),
	}, nil
}

func (s *SpacesCookieStore) Load(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNoCookies
		}
		return nil, fmt.Errorf("failed to fetch cookies from Spaces: %w", err)
	}
	defer out.Body.Close()

	blob, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies from Spaces: %w", err)
	}
	return blob, nil
}

func (s *SpacesCookieStore) Save(ctx context.Context, blob []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(blob),
		ContentType: aws.String("application/json"),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload cookies to Spaces: %w", err)
	}

	s.logger.Debug("Cookies uploaded",
		slog.String("type", "sys"),
		slog.String("key", s.key),
		slog.Int("bytes", len(blob)))
	return nil
}

// ReplaceCookies validates an uploaded blob and stores it.
func ReplaceCookies(ctx context.Context, store CookieStore, blob []byte) (int, error) {
	params, err := ParseCookies(blob)
	if err != nil {
		return 0, err
	}
	if err := store.Save(ctx, blob); err != nil {
		return 0, err
	}
	return len(params), nil
}
