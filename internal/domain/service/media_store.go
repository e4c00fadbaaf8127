package service

import (
	"context"
	"io"
)

// MediaFolder groups uploaded objects by purpose.
type MediaFolder string

const (
	MediaFolderAvatars MediaFolder = "avatars"
	MediaFolderCovers  MediaFolder = "covers"
)

// MediaFile is an upload handed over by the transport.
type MediaFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// MediaStore uploads opaque blobs and returns their public URL.
type MediaStore interface {
	Upload(ctx context.Context, folder MediaFolder, file *MediaFile) (string, error)
}
