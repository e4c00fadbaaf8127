// Package media stores uploaded principal images in a gocloud.dev blob bucket.
package media

import (
	"context"
	"io"
	"log/slog"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets
	_ "gocloud.dev/blob/s3blob"   // s3:// buckets

	"warden/config"
	"warden/internal/domain/service"
	"warden/internal/errors"
)

const defaultContentType = "application/octet-stream"

// Params defines the dependencies of the blob media store
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type blobStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
	uploadTimeout time.Duration
	logger        *slog.Logger
}

// NewBlobStore opens the configured bucket and closes it on shutdown.
func NewBlobStore(params Params) (service.MediaStore, error) {
	cfg := params.Config.Media
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("media.bucketUrl must be configured")
	}

	bucket, err := blob.OpenBucket(context.Background(), cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open media bucket %s", cfg.BucketURL)
	}

	params.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return bucket.Close()
		},
	})

	return newBlobStore(bucket, cfg.PublicBaseURL, cfg.UploadTimeout, params.Logger), nil
}

func newBlobStore(bucket *blob.Bucket, publicBaseURL string, timeout time.Duration, logger *slog.Logger) *blobStore {
	return &blobStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		uploadTimeout: timeout,
		logger:        logger,
	}
}

// Upload streams file into folder under a random key and returns its public URL.
func (s *blobStore) Upload(ctx context.Context, folder service.MediaFolder, file *service.MediaFile) (string, error) {
	if file == nil || file.Open == nil {
		return "", errors.New("no file to upload")
	}

	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	src, err := file.Open()
	if err != nil {
		return "", errors.Wrap(err, "open upload")
	}
	defer src.Close()

	key := objectKey(folder, file.Filename)
	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType(file),
	})
	if err != nil {
		return "", errors.Wrapf(err, "create writer for %s", key)
	}

	if _, err := io.Copy(writer, src); err != nil {
		_ = writer.Close()

		return "", errors.Wrapf(err, "write %s", key)
	}

	// Close commits the object; a failure here means nothing was stored.
	if err := writer.Close(); err != nil {
		return "", errors.Wrapf(err, "commit %s", key)
	}

	s.logger.DebugContext(ctx, "Media uploaded", slog.String("key", key), slog.Int64("size", file.Size))

	return s.publicURL(key), nil
}

func (s *blobStore) publicURL(key string) string {
	if s.publicBaseURL == "" {
		return "/" + key
	}

	return s.publicBaseURL + "/" + key
}

func objectKey(folder service.MediaFolder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))

	return path.Join(string(folder), uuid.NewString()+ext)
}

func contentType(file *service.MediaFile) string {
	if file.ContentType != "" {
		return file.ContentType
	}
	if byExt := mime.TypeByExtension(filepath.Ext(file.Filename)); byExt != "" {
		return byExt
	}

	return defaultContentType
}
