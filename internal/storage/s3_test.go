package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"joelearn/media-api/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestS3(t *testing.T, endpoint string) *s3Storage {
	t.Helper()
	ms, err := NewS3Storage(config.S3Config{
		Endpoint:        endpoint,
		Region:          "us-east-1",
		AccessKeyID:     "test-access",
		SecretAccessKey: "test-secret",
		BucketName:      "joelearn-media",
	})
	require.NoError(t, err)
	return ms.(*s3Storage)
}

func TestS3ObjectURL(t *testing.T) {
	custom := &s3Storage{bucketName: "media", endpoint: "http://localhost:9000"}
	require.Equal(t, "http://localhost:9000/media/joe-learn-videos/abc", custom.objectURL("joe-learn-videos/abc"))

	ssl := &s3Storage{bucketName: "media", useSSL: true}
	require.Equal(t, "https://media.s3.amazonaws.com/joe-learn-videos/abc", ssl.objectURL("joe-learn-videos/abc"))

	plain := &s3Storage{bucketName: "media"}
	require.Equal(t, "http://media.s3.amazonaws.com/joe-learn-videos/abc", plain.objectURL("joe-learn-videos/abc"))
}

func TestS3SignUpload(t *testing.T) {
	s := newTestS3(t, "http://localhost:9000")

	signed, err := s.SignUpload(context.Background(), map[string]string{
		"folder":       "joe-learn-videos",
		"content_type": "video/mp4",
	})
	require.NoError(t, err)
	require.NotZero(t, signed.Timestamp)

	// The authorization lives inside the URL, not in a detached signature.
	require.Empty(t, signed.Signature)
	require.Empty(t, signed.APIKey)
	require.NotEmpty(t, signed.UploadURL)

	u, err := url.Parse(signed.UploadURL)
	require.NoError(t, err)
	require.Equal(t, "localhost:9000", u.Host)
	require.True(t, strings.HasPrefix(u.Path, "/joelearn-media/joe-learn-videos/"))

	// The object key is a fresh UUID under the requested folder.
	key := strings.TrimPrefix(u.Path, "/joelearn-media/joe-learn-videos/")
	_, err = uuid.Parse(key)
	require.NoError(t, err)

	require.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	require.Contains(t, u.Query().Get("X-Amz-SignedHeaders"), "content-type")
}

func TestS3SignUploadUniqueKeys(t *testing.T) {
	s := newTestS3(t, "http://localhost:9000")

	first, err := s.SignUpload(context.Background(), map[string]string{"folder": "f"})
	require.NoError(t, err)
	second, err := s.SignUpload(context.Background(), map[string]string{"folder": "f"})
	require.NoError(t, err)

	require.NotEqual(t, first.UploadURL, second.UploadURL)
}

func TestS3UploadAndDestroy(t *testing.T) {
	var putPaths, deletePaths []string
	var gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			putPaths = append(putPaths, r.URL.Path)
			gotContentType = r.Header.Get("Content-Type")
			gotBody, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		case http.MethodDelete:
			deletePaths = append(deletePaths, r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	s := newTestS3(t, srv.URL)

	object, err := s.Upload(context.Background(), strings.NewReader("fake video bytes"), "joe-learn-videos", "lesson.mp4", "video/mp4")
	require.NoError(t, err)

	require.Len(t, putPaths, 1)
	require.Equal(t, "/joelearn-media/"+object.PublicID, putPaths[0])
	require.Equal(t, "video/mp4", gotContentType)
	require.Equal(t, "fake video bytes", string(gotBody))

	require.True(t, strings.HasPrefix(object.PublicID, "joe-learn-videos/"))
	require.True(t, strings.HasSuffix(object.PublicID, "-lesson.mp4"))
	require.Equal(t, srv.URL+"/joelearn-media/"+object.PublicID, object.URL)

	require.NoError(t, s.Destroy(context.Background(), object.PublicID, ""))
	require.Len(t, deletePaths, 1)
	require.Equal(t, "/joelearn-media/"+object.PublicID, deletePaths[0])
}
