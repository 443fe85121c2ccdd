package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"joelearn/media-api/internal/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Parameter names that are never part of the signed set. The secret itself
// is appended to the digest input, not signed as a parameter.
var unsignedParams = map[string]bool{
	"file":          true,
	"cloud_name":    true,
	"resource_type": true,
	"api_key":       true,
	"signature":     true,
}

// cloudinaryStorage implements MediaStorage on the official Cloudinary SDK.
// The SDK handles transport and request signing for upload/destroy; this
// wrapper keeps the credential issuing deterministic and maps responses
// onto the narrow interface the rest of the server sees.
type cloudinaryStorage struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	apiKey    string
	apiSecret string
	now       func() time.Time
}

// NewCloudinaryStorage creates a Cloudinary-backed storage service. The
// account credentials are required startup configuration with no default.
func NewCloudinaryStorage(cfg config.CloudinaryConfig) (MediaStorage, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary cloud_name, api_key and api_secret are required")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, err
	}
	if cfg.UploadPrefix != "" {
		// Cloudinary stores its configuration by value and Upload keeps its
		// own copy, so the override must land on the copy Upload reads.
		cld.Config.API.UploadPrefix = strings.TrimSuffix(cfg.UploadPrefix, "/")
		cld.Upload.Config.API.UploadPrefix = cld.Config.API.UploadPrefix
	}

	log.Printf("Cloudinary storage service initialized for cloud: %s", cfg.CloudName)

	return &cloudinaryStorage{
		cld:       cld,
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		now:       time.Now,
	}, nil
}

// SignUpload merges a server-generated timestamp (second resolution) with
// the client-supplied parameters and signs the set using the SDK's
// implementation of the provider formula (sorted key=value pairs joined
// with "&", secret appended, SHA-1 hex). The response carries the public
// account identifiers a client needs to complete the direct upload, never
// the secret.
func (c *cloudinaryStorage) SignUpload(_ context.Context, params map[string]string) (*SignedUpload, error) {
	timestamp := c.now().Unix()

	signable := url.Values{}
	for k, v := range params {
		if v == "" || unsignedParams[k] {
			continue
		}
		signable.Set(k, v)
	}
	signable.Set("timestamp", strconv.FormatInt(timestamp, 10))

	signature, err := api.SignParameters(signable, c.apiSecret)
	if err != nil {
		return nil, err
	}

	return &SignedUpload{
		Signature: signature,
		Timestamp: timestamp,
		APIKey:    c.apiKey,
		CloudName: c.cloudName,
	}, nil
}

// Upload forwards a raw file stream to the provider's auto-detect upload
// endpoint. Legacy path; the preferred flow is a client-side direct upload
// with a credential from SignUpload.
func (c *cloudinaryStorage) Upload(ctx context.Context, file io.Reader, folder, filename, _ string) (*StoredObject, error) {
	params := uploader.UploadParams{Folder: folder}
	if filename != "" {
		params.FilenameOverride = filename
	}

	resp, err := c.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return nil, err
	}
	if resp.Error.Message != "" {
		log.Printf("ERROR: Cloudinary upload of '%s' failed: %s", filename, resp.Error.Message)
		return nil, fmt.Errorf("upload rejected by storage provider: %s", resp.Error.Message)
	}

	resultURL := resp.SecureURL
	if resultURL == "" {
		resultURL = resp.URL
	}

	return &StoredObject{URL: resultURL, PublicID: resp.PublicID}, nil
}

// Destroy removes the object identified by publicID via the provider's
// signed destroy endpoint. An already-absent object counts as success; the
// cascade from record deletion is best-effort.
func (c *cloudinaryStorage) Destroy(ctx context.Context, publicID, resourceType string) error {
	if publicID == "" {
		return errors.New("public_id is required")
	}
	if resourceType == "" {
		resourceType = "image"
	}

	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return err
	}
	if resp.Error.Message != "" {
		log.Printf("ERROR: Cloudinary destroy of '%s' failed: %s", publicID, resp.Error.Message)
		return fmt.Errorf("destroy rejected by storage provider: %s", resp.Error.Message)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		log.Printf("ERROR: Cloudinary destroy of '%s' returned result %q", publicID, resp.Result)
		return fmt.Errorf("storage provider refused destroy: %s", resp.Result)
	}

	log.Printf("INFO: Destroyed object '%s' (%s)", publicID, resourceType)
	return nil
}
