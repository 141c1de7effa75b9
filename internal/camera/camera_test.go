package camera

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/mshelton/booklog/internal/config"
)

func TestCapture(t *testing.T) {
	imageBody := []byte("jpeg-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/shot.jpg" {
			http.NotFound(w, r)
			return
		}
		if _, err := w.Write(imageBody); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	client := New(config.Camera{URL: server.URL, CaptureDir: dir})

	path, err := client.Capture(context.Background())
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	// Files are named with a second-resolution timestamp.
	pattern := regexp.MustCompile(`^captured_\d{8}_\d{6}\.jpg$`)
	if !pattern.MatchString(filepath.Base(path)) {
		t.Errorf("Unexpected capture filename: %s", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Read captured file: %v", err)
	}
	if string(data) != string(imageBody) {
		t.Errorf("Captured file content mismatch: %q", data)
	}
}

func TestCaptureFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		noURL   bool
		wantErr error
	}{
		{name: "missing URL", noURL: true, wantErr: ErrNotConfigured},
		{name: "server error", status: http.StatusInternalServerError},
		{name: "not found", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url := ""
			if !tt.noURL {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				}))
				defer server.Close()
				url = server.URL
			}

			client := New(config.Camera{URL: url, CaptureDir: t.TempDir()})
			_, err := client.Capture(context.Background())
			if err == nil {
				t.Fatal("Expected capture to fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCaptureUnreachableCamera(t *testing.T) {
	// A closed server yields a transport error, not a status error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := New(config.Camera{URL: server.URL, CaptureDir: t.TempDir()})
	if _, err := client.Capture(context.Background()); err == nil {
		t.Fatal("Expected capture to fail against unreachable camera")
	}
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "captured_20240101_120000.jpg")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	client := New(config.Camera{CaptureDir: dir})
	client.Cleanup(path)

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected captured image to be deleted")
	}

	// Deleting a missing file is best-effort, never a panic.
	client.Cleanup(path)
}
