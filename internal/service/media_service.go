package service

import (
	"context"
	"io"

	"joelearn/media-api/internal/storage"
)

// MediaService fronts the storage provider for the two flows that do not
// touch metadata records: issuing direct-upload credentials and the legacy
// raw upload path where this server relays the file bytes itself.
type MediaService interface {
	// GenerateSignature signs a server-side timestamp merged with the
	// caller's parameters (e.g. destination folder).
	GenerateSignature(ctx context.Context, params map[string]string) (*storage.SignedUpload, error)
	// UploadRaw forwards a file stream unmodified to the provider.
	UploadRaw(ctx context.Context, file io.Reader, folder, filename, contentType string) (*storage.StoredObject, error)
}

type mediaService struct {
	mediaStorage storage.MediaStorage
}

// NewMediaService creates a new instance of mediaService.
func NewMediaService(mediaStorage storage.MediaStorage) MediaService {
	return &mediaService{mediaStorage: mediaStorage}
}

func (s *mediaService) GenerateSignature(ctx context.Context, params map[string]string) (*storage.SignedUpload, error) {
	return s.mediaStorage.SignUpload(ctx, params)
}

func (s *mediaService) UploadRaw(ctx context.Context, file io.Reader, folder, filename, contentType string) (*storage.StoredObject, error) {
	if file == nil {
		return nil, ErrValidationFailed
	}
	return s.mediaStorage.Upload(ctx, file, folder, filename, contentType)
}
