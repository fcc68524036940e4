package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/soundrift/soundrift-backend/pkg/config"
	"github.com/soundrift/soundrift-backend/pkg/logger"
)

const (
	contentRoot = "user-content"
	pingTimeout = 5 * time.Second
)

// Client wraps an S3-compatible object store holding uploaded release assets.
type Client struct {
	store   objectAPI
	bucket  string
	nowFunc func() time.Time
}

// Pinger exposes the health-check surface.
type Pinger interface {
	Ping(ctx context.Context) error
}

type objectAPI interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	BucketExists(ctx context.Context, bucketName string) (bool, error)
}

// New bootstraps the object-store client, ensures the bucket exists, and
// verifies connectivity.
func New(ctx context.Context, cfg config.StorageConfig, logg *logger.Logger) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("creating object store client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	exists, err := mc.BucketExists(checkCtx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket: %w", err)
	}
	if !exists {
		if err := mc.MakeBucket(checkCtx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("creating bucket: %w", err)
		}
	}

	if logg != nil {
		logg.Info(ctx, "object store client initialized")
	}

	return &Client{store: mc, bucket: cfg.Bucket, nowFunc: time.Now}, nil
}

// Upload writes an object and returns a signed URL for reading it back.
func (c *Client) Upload(ctx context.Context, objectPath string, r io.Reader, size int64, contentType string) (string, error) {
	if c == nil || c.store == nil {
		return "", errors.New("object store not initialized")
	}
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := c.store.PutObject(ctx, c.bucket, objectPath, r, size, opts); err != nil {
		return "", fmt.Errorf("uploading %s: %w", objectPath, err)
	}
	return c.SignedURL(ctx, objectPath)
}

// SignedURL returns a presigned GET URL for the object. URLs expire at the
// next UTC day boundary so repeated reads within a day share a cacheable URL
// lifetime.
func (c *Client) SignedURL(ctx context.Context, objectPath string) (string, error) {
	if c == nil || c.store == nil {
		return "", errors.New("object store not initialized")
	}
	expiry := untilNextUTCDay(c.now())
	u, err := c.store.PresignedGetObject(ctx, c.bucket, objectPath, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("signing %s: %w", objectPath, err)
	}
	return u.String(), nil
}

// Delete removes a single object. Missing objects are not an error.
func (c *Client) Delete(ctx context.Context, objectPath string) error {
	if c == nil || c.store == nil {
		return errors.New("object store not initialized")
	}
	return c.store.RemoveObject(ctx, c.bucket, objectPath, minio.RemoveObjectOptions{})
}

// DeleteByPrefix removes every object under the given prefix.
func (c *Client) DeleteByPrefix(ctx context.Context, prefix string) error {
	if c == nil || c.store == nil {
		return errors.New("object store not initialized")
	}
	objects := c.store.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for obj := range objects {
		if obj.Err != nil {
			return fmt.Errorf("listing %s: %w", prefix, obj.Err)
		}
		if err := c.store.RemoveObject(ctx, c.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("removing %s: %w", obj.Key, err)
		}
	}
	return nil
}

// Ping verifies the bucket is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.store == nil {
		return errors.New("object store not initialized")
	}
	checkCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	_, err := c.store.BucketExists(checkCtx, c.bucket)
	return err
}

func (c *Client) now() time.Time {
	if c.nowFunc == nil {
		return time.Now()
	}
	return c.nowFunc()
}

// untilNextUTCDay returns the duration from now until the next UTC midnight.
func untilNextUTCDay(now time.Time) time.Duration {
	utc := now.UTC()
	next := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return next.Sub(utc)
}

// AlbumPrefix returns the storage prefix holding every asset of an album.
func AlbumPrefix(albumFingerprint string) string {
	return fmt.Sprintf("%s/albums/%s/", contentRoot, albumFingerprint)
}

// AlbumArtPath returns the object path for an album's cover art.
func AlbumArtPath(albumFingerprint, format string) string {
	return fmt.Sprintf("%s/albums/%s/art/%s.%s", contentRoot, albumFingerprint, albumFingerprint, strings.TrimPrefix(format, "."))
}

// SongMasterPath returns the object path for a song's master audio file.
func SongMasterPath(albumFingerprint, songFingerprint, format string) string {
	return fmt.Sprintf("%s/albums/%s/songs/%s.%s", contentRoot, albumFingerprint, songFingerprint, strings.TrimPrefix(format, "."))
}

// SongPrefix returns the storage prefix holding a single song's assets.
func SongPrefix(albumFingerprint, songFingerprint string) string {
	return fmt.Sprintf("%s/albums/%s/songs/%s", contentRoot, albumFingerprint, songFingerprint)
}
