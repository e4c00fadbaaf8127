package media

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/memblob"

	"warden/internal/domain/service"
	"warden/internal/errors"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMemFile(name, contentType, body string) *service.MediaFile {
	return &service.MediaFile{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

func TestBlobStore_Upload(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := newBlobStore(bucket, "https://cdn.example.com/media/", 0, newDiscardLogger())

	url, err := store.Upload(context.Background(), service.MediaFolderAvatars, newMemFile("Me.PNG", "image/png", "png-bytes"))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "https://cdn.example.com/media/avatars/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	key := strings.TrimPrefix(url, "https://cdn.example.com/media/")
	content, err := bucket.ReadAll(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))

	attrs, err := bucket.Attributes(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "image/png", attrs.ContentType)
}

func TestBlobStore_UploadKeysAreUnique(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := newBlobStore(bucket, "", 0, newDiscardLogger())

	first, err := store.Upload(context.Background(), service.MediaFolderCovers, newMemFile("c.jpg", "", "a"))
	require.NoError(t, err)
	second, err := store.Upload(context.Background(), service.MediaFolderCovers, newMemFile("c.jpg", "", "b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "/covers/"))
}

func TestBlobStore_UploadOpenFailure(t *testing.T) {
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })

	store := newBlobStore(bucket, "", 0, newDiscardLogger())
	file := &service.MediaFile{
		Filename: "a.png",
		Open: func() (io.ReadCloser, error) {
			return nil, errors.New("multipart part gone")
		},
	}

	_, err := store.Upload(context.Background(), service.MediaFolderAvatars, file)
	require.Error(t, err)

	_, err = store.Upload(context.Background(), service.MediaFolderAvatars, nil)
	require.Error(t, err)

	iter := bucket.List(&blob.ListOptions{})
	_, err = iter.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/gif", contentType(&service.MediaFile{ContentType: "image/gif"}))
	assert.Equal(t, "image/png", contentType(&service.MediaFile{Filename: "x.png"}))
	assert.Equal(t, defaultContentType, contentType(&service.MediaFile{Filename: "x"}))
}

func TestObjectKey(t *testing.T) {
	key := objectKey(service.MediaFolderAvatars, "../../etc/Passwd.JPG")
	assert.True(t, strings.HasPrefix(key, "avatars/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.False(t, bytes.Contains([]byte(key), []byte("..")))
}
