package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"joelearn/media-api/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config" // Alias config to avoid clash
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// s3Storage implements the MediaStorage interface using an S3-compatible
// backend (MinIO, DigitalOcean Spaces, AWS). It is selected by setting
// storage.provider to "s3" and exists for self-hosted deployments that do
// not want a managed CDN account.
type s3Storage struct {
	client        *s3.Client        // Regular client for PutObject/DeleteObject
	presignClient *s3.PresignClient // Special client for generating presigned URLs
	bucketName    string
	endpoint      string
	useSSL        bool
}

// NewS3Storage creates a new S3 storage service instance.
func NewS3Storage(cfg config.S3Config) (MediaStorage, error) {
	// Custom resolver for S3-compatible endpoints (like MinIO, DigitalOcean Spaces)
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if cfg.Endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		}
		// Fall back to default AWS endpoint resolution if no custom endpoint is set
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awsSDKConfig, err := awsCfg.LoadDefaultConfig(context.TODO(),
		awsCfg.WithRegion(cfg.Region),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
		awsCfg.WithEndpointResolverWithOptions(customResolver),
	)
	if err != nil {
		log.Printf("ERROR: Failed to load AWS SDK config for S3: %v", err)
		return nil, err
	}

	// Force path-style addressing required by most S3-compatible services
	s3Client := s3.NewFromConfig(awsSDKConfig, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	presignClient := s3.NewPresignClient(s3Client)

	log.Printf("S3 storage service initialized for endpoint: %s, bucket: %s", cfg.Endpoint, cfg.BucketName)

	return &s3Storage{
		client:        s3Client,
		presignClient: presignClient,
		bucketName:    cfg.BucketName,
		endpoint:      strings.TrimSuffix(cfg.Endpoint, "/"),
		useSSL:        cfg.UseSSL,
	}, nil
}

// SignUpload issues a presigned PUT URL for a direct upload. S3 conveys the
// authorization inside the URL itself, so there is no detached signature or
// public key pair; the client PUTs the file to UploadURL and reports the
// object key back as public_id.
func (s *s3Storage) SignUpload(ctx context.Context, params map[string]string) (*SignedUpload, error) {
	timestamp := time.Now().Unix()

	objectKey := path.Join(params["folder"], uuid.NewString())

	presignParams := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
	}
	if contentType := params["content_type"]; contentType != "" {
		presignParams.ContentType = aws.String(contentType)
	}

	req, err := s.presignClient.PresignPutObject(ctx, presignParams, s3.WithPresignExpires(DefaultPresignedURLExpiry))
	if err != nil {
		log.Printf("ERROR: Failed to generate presigned PUT URL for key '%s': %v", objectKey, err)
		return nil, err
	}

	return &SignedUpload{
		Timestamp: timestamp,
		UploadURL: req.URL,
	}, nil
}

// Upload forwards the file stream to the bucket under a unique key.
func (s *s3Storage) Upload(ctx context.Context, file io.Reader, folder, filename, contentType string) (*StoredObject, error) {
	objectKey := path.Join(folder, uuid.NewString()+"-"+filename)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(objectKey),
		Body:   file,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.Printf("ERROR: Failed to upload object '%s' to bucket '%s': %v", objectKey, s.bucketName, err)
		return nil, err
	}

	return &StoredObject{
		URL:      s.objectURL(objectKey),
		PublicID: objectKey,
	}, nil
}

// Destroy removes an object from the bucket. resourceType carries no meaning
// for S3 and is ignored.
func (s *s3Storage) Destroy(ctx context.Context, publicID, _ string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(publicID),
	})

	if err != nil {
		log.Printf("ERROR: Failed to delete object '%s' from bucket '%s': %v", publicID, s.bucketName, err)
		return err
	}

	log.Printf("INFO: Deleted object '%s' from bucket '%s'", publicID, s.bucketName)
	return nil
}

// objectURL builds the public path-style URL for a stored object.
func (s *s3Storage) objectURL(objectKey string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucketName, objectKey)
	}
	scheme := "https"
	if !s.useSSL {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s.s3.amazonaws.com/%s", scheme, s.bucketName, objectKey)
}
