package storage

import (
	"context"
	"io"
	"time"
)

// Default expiry duration for presigned upload URLs (S3 provider only;
// Cloudinary signatures carry their own timestamp-based validity window).
const DefaultPresignedURLExpiry = 15 * time.Minute

// SignedUpload is the credential a client needs to upload a file directly
// to the storage provider, bypassing this server for the file bytes. The
// provider secret is never part of it.
type SignedUpload struct {
	Signature string `json:"signature,omitempty"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"api_key,omitempty"`
	CloudName string `json:"cloud_name,omitempty"`
	// UploadURL is set by providers that convey the authorization inside
	// the URL itself (presigned PUT) instead of a detached signature.
	UploadURL string `json:"upload_url,omitempty"`
}

// StoredObject describes an object after it has landed with the provider.
type StoredObject struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// MediaStorage defines the narrow capability set the server needs from the
// storage provider: issue upload credentials, forward a raw file stream
// (legacy path), and destroy an object by its public identifier.
type MediaStorage interface {
	// SignUpload merges a server-generated timestamp with the given
	// client-supplied parameters and returns a credential authorizing a
	// direct upload. Deterministic for a fixed timestamp and parameter set.
	SignUpload(ctx context.Context, params map[string]string) (*SignedUpload, error)

	// Upload forwards a file stream unmodified to the provider and returns
	// the resulting URL and public identifier.
	Upload(ctx context.Context, file io.Reader, folder, filename, contentType string) (*StoredObject, error)

	// Destroy removes the object identified by publicID. resourceType is
	// provider terminology ("video", "image", "raw"); implementations that
	// do not distinguish types may ignore it.
	Destroy(ctx context.Context, publicID, resourceType string) error
}
