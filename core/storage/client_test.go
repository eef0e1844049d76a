package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"deploy-launcher/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secretsBody = "DB_PASSWORD=hunter2\nAPI_KEY=abc\n"

// newS3Stub serves a single bucket holding prod.env. Authentication is not
// checked.
func newS3Stub(t *testing.T) storage.Config {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimSuffix(r.URL.Path, "/") {
		case "/deploy-secrets":
			w.WriteHeader(http.StatusOK)
		case "/deploy-secrets/prod.env":
			w.Header().Set("Content-Length", strconv.Itoa(len(secretsBody)))
			w.Header().Set("Content-Type", "text/plain")
			w.Header().Set("ETag", `"5d41402abc4b2a76b9719d911017c592"`)
			w.Header().Set("Last-Modified", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Format(http.TimeFormat))
			w.WriteHeader(http.StatusOK)
			if r.Method == http.MethodGet {
				_, _ = io.WriteString(w, secretsBody)
			}
		default:
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			if r.Method != http.MethodHead {
				_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			}
		}
	}))
	t.Cleanup(srv.Close)

	return storage.Config{
		Endpoint:       srv.URL,
		AccessKey:      "testkey",
		SecretKey:      "testsecret",
		UseSSL:         false,
		Region:         "us-east-1",
		TimeoutSeconds: 5,
	}
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		useSSL   bool
	}{
		{"Bare Host", "localhost:9000", false},
		{"HTTP Scheme", "http://localhost:9000", false},
		{"HTTPS Scheme", "https://s3.amazonaws.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(storage.Config{
				Endpoint:  tt.endpoint,
				AccessKey: "testkey",
				SecretKey: "testsecret",
				UseSSL:    tt.useSSL,
				Region:    "us-east-1",
			})
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestClient_BucketExists(t *testing.T) {
	client, err := storage.NewClient(newS3Stub(t))
	require.NoError(t, err)

	ok, err := client.BucketExists(context.Background(), "deploy-secrets")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_GetObject(t *testing.T) {
	client, err := storage.NewClient(newS3Stub(t))
	require.NoError(t, err)

	t.Run("Existing Object", func(t *testing.T) {
		obj, err := client.GetObject(context.Background(), "deploy-secrets", "prod.env", minio.GetObjectOptions{})
		require.NoError(t, err)
		defer obj.Close()

		body, err := io.ReadAll(obj)
		require.NoError(t, err)
		assert.Equal(t, secretsBody, string(body))
	})

	t.Run("Missing Key Fails Before Read", func(t *testing.T) {
		obj, err := client.GetObject(context.Background(), "deploy-secrets", "staging.env", minio.GetObjectOptions{})
		require.Error(t, err)
		assert.Nil(t, obj)
		assert.Equal(t, "NoSuchKey", minio.ToErrorResponse(err).Code)
	})
}
