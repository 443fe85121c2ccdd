package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"joelearn/media-api/internal/config"

	"github.com/stretchr/testify/require"
)

// shaHex is the provider's published verification formula, restated
// independently of the implementation under test.
func shaHex(toSign, secret string) string {
	sum := sha1.Sum([]byte(toSign + secret))
	return hex.EncodeToString(sum[:])
}

func newTestCloudinary(t *testing.T, baseURL string) *cloudinaryStorage {
	t.Helper()
	ms, err := NewCloudinaryStorage(config.CloudinaryConfig{
		CloudName:    "demo",
		APIKey:       "key123",
		APISecret:    "secret456",
		UploadPrefix: baseURL,
	})
	require.NoError(t, err)
	return ms.(*cloudinaryStorage)
}

func TestNewCloudinaryStorageRequiresCredentials(t *testing.T) {
	_, err := NewCloudinaryStorage(config.CloudinaryConfig{CloudName: "demo"})
	require.Error(t, err)
}

func TestSignUpload(t *testing.T) {
	cs := newTestCloudinary(t, "")
	cs.now = func() time.Time { return time.Unix(1700000000, 0) }

	signed, err := cs.SignUpload(context.Background(), map[string]string{"folder": "joe-learn-videos"})
	require.NoError(t, err)

	require.Equal(t, int64(1700000000), signed.Timestamp)
	require.Equal(t, "key123", signed.APIKey)
	require.Equal(t, "demo", signed.CloudName)

	toSign := "folder=joe-learn-videos&timestamp=" + strconv.FormatInt(signed.Timestamp, 10)
	require.Equal(t, shaHex(toSign, "secret456"), signed.Signature)

	// The secret must not leak into anything handed to the client.
	require.NotContains(t, signed.Signature, "secret456")
	require.Empty(t, signed.UploadURL)
}

func TestSignUploadSortsAndSkipsReservedParams(t *testing.T) {
	cs := newTestCloudinary(t, "")
	cs.now = func() time.Time { return time.Unix(42, 0) }

	signed, err := cs.SignUpload(context.Background(), map[string]string{
		"z_last":        "1",
		"a_first":       "2",
		"empty":         "",
		"api_key":       "123",
		"file":          "data",
		"resource_type": "video",
		"signature":     "bogus",
	})
	require.NoError(t, err)

	require.Equal(t, shaHex("a_first=2&timestamp=42&z_last=1", "secret456"), signed.Signature)
}

func TestSignUploadDeterministic(t *testing.T) {
	cs := newTestCloudinary(t, "")
	cs.now = func() time.Time { return time.Unix(42, 0) }

	first, err := cs.SignUpload(context.Background(), map[string]string{"folder": "f"})
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := cs.SignUpload(context.Background(), map[string]string{"folder": "f"})
		require.NoError(t, err)
		require.Equal(t, first.Signature, again.Signature)
	}
}

func TestSignUploadEmptyParams(t *testing.T) {
	cs := newTestCloudinary(t, "")
	cs.now = func() time.Time { return time.Unix(1700000000, 0) }

	signed, err := cs.SignUpload(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, shaHex("timestamp=1700000000", "secret456"), signed.Signature)
}

func TestDestroy(t *testing.T) {
	var calls int
	var gotPath string
	var gotPublicID, gotSignature, gotTimestamp string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotPath = r.URL.Path
		gotPublicID = r.PostFormValue("public_id")
		gotSignature = r.PostFormValue("signature")
		gotTimestamp = r.PostFormValue("timestamp")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"ok"}`))
	}))
	defer srv.Close()

	cs := newTestCloudinary(t, srv.URL)

	err := cs.Destroy(context.Background(), "joe-learn-assessments/abc123", "image")
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Equal(t, "/v1_1/demo/image/destroy", gotPath)
	require.Equal(t, "joe-learn-assessments/abc123", gotPublicID)

	toSign := "public_id=joe-learn-assessments/abc123&timestamp=" + gotTimestamp
	require.Equal(t, shaHex(toSign, "secret456"), gotSignature)
}

func TestDestroyMissingObjectIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"result":"not found"}`))
	}))
	defer srv.Close()

	cs := newTestCloudinary(t, srv.URL)
	require.NoError(t, cs.Destroy(context.Background(), "gone", ""))
}

func TestDestroyProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid Signature"}}`))
	}))
	defer srv.Close()

	cs := newTestCloudinary(t, srv.URL)
	require.Error(t, cs.Destroy(context.Background(), "whatever", "image"))
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/v1_1/demo/"))
		require.True(t, strings.HasSuffix(r.URL.Path, "/upload"))

		require.Equal(t, "key123", r.PostFormValue("api_key"))
		require.Equal(t, "joe-learn-assessments", r.PostFormValue("folder"))
		require.NotEmpty(t, r.PostFormValue("signature"))

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://res.example.com/q1.pdf","public_id":"joe-learn-assessments/abc123"}`))
	}))
	defer srv.Close()

	cs := newTestCloudinary(t, srv.URL)

	object, err := cs.Upload(context.Background(), strings.NewReader("%PDF-1.4"), "joe-learn-assessments", "q1.pdf", "application/pdf")
	require.NoError(t, err)
	require.Equal(t, "https://res.example.com/q1.pdf", object.URL)
	require.Equal(t, "joe-learn-assessments/abc123", object.PublicID)
}

func TestUploadProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Upload preset required"}}`))
	}))
	defer srv.Close()

	cs := newTestCloudinary(t, srv.URL)
	_, err := cs.Upload(context.Background(), strings.NewReader("x"), "", "x.bin", "")
	require.Error(t, err)
}
