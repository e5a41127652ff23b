package upload_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/amane-app/amane-go/upload"
)

type fakeUploader struct {
	lastKey         string
	lastContentType string
	lastBody        []byte
	err             error
}

func (f *fakeUploader) Upload(_ context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastKey = key
	f.lastContentType = contentType
	f.lastBody, _ = io.ReadAll(body)
	return "https://bucket.s3.eu-west-3.amazonaws.com/" + key, nil
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestUploadWithoutStorageConfigReturnsConfigurationError(t *testing.T) {
	server := upload.NewServer(nil, upload.WithServerLogger(zerolog.Nop()))

	body, contentType := multipartBody(t, "file", "photo.jpg", []byte("img"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "Configuration S3 manquante (bucket, region, credentials)", payload["error"])
}

func TestUploadForwardsFileAndReturnsURL(t *testing.T) {
	uploader := &fakeUploader{}
	server := upload.NewServer(uploader, upload.WithServerLogger(zerolog.Nop()))

	body, contentType := multipartBody(t, "file", "photo.jpg", []byte("img-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Contains(t, payload["url"], uploader.lastKey)
	require.Equal(t, []byte("img-bytes"), uploader.lastBody)
	require.Contains(t, uploader.lastKey, ".jpg", "object key keeps the file extension")
}

func TestUploadMissingFileFieldIsBadRequest(t *testing.T) {
	server := upload.NewServer(&fakeUploader{}, upload.WithServerLogger(zerolog.Nop()))

	body, contentType := multipartBody(t, "document", "doc.pdf", []byte("pdf"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotEmpty(t, payload["error"])
}

func TestUploadFailureIsServerError(t *testing.T) {
	uploader := &fakeUploader{err: io.ErrUnexpectedEOF}
	server := upload.NewServer(uploader, upload.WithServerLogger(zerolog.Nop()))

	body, contentType := multipartBody(t, "file", "photo.jpg", []byte("img"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUploadRejectsGet(t *testing.T) {
	server := upload.NewServer(&fakeUploader{}, upload.WithServerLogger(zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthz(t *testing.T) {
	server := upload.NewServer(nil, upload.WithServerLogger(zerolog.Nop()))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
