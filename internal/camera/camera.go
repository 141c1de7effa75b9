package camera

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/mshelton/booklog/internal/config"
)

// ErrNotConfigured is returned when no camera URL has been set.
var ErrNotConfigured = errors.New("camera URL not configured")

// captureTimeout bounds the /shot.jpg request. The camera is on the local
// network; anything slower than this is treated as unreachable.
const captureTimeout = 10 * time.Second

// Client captures still images from an IP webcam over HTTP.
type Client struct {
	baseURL    string
	captureDir string
	HTTPClient *http.Client
}

// New creates a capture client for the configured camera.
func New(cfg config.Camera) *Client {
	return &Client{
		baseURL:    cfg.URL,
		captureDir: cfg.CaptureDir,
		HTTPClient: &http.Client{
			Timeout: captureTimeout,
		},
	}
}

// Capture requests a single frame from the camera and saves it under the
// capture directory. It returns the path of the saved file. There is no
// retry; the operator re-invokes on failure.
func (c *Client) Capture(ctx context.Context) (string, error) {
	if c.baseURL == "" {
		return "", ErrNotConfigured
	}

	// IP Webcam exposes single frames at /shot.jpg.
	captureURL := c.baseURL + "/shot.jpg"
	slog.Info("Requesting image from camera", "url", captureURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, captureURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create capture request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to capture image from camera: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("camera returned status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	if err := os.MkdirAll(c.captureDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create capture directory: %w", err)
	}

	filename := fmt.Sprintf("captured_%s.jpg", time.Now().Format("20060102_150405"))
	path := filepath.Join(c.captureDir, filename)

	if err := os.WriteFile(path, imageData, 0644); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	slog.Info("Image captured", "path", path, "bytes", len(imageData))
	return path, nil
}

// Cleanup deletes a captured image. Deletion is best-effort: a missing file
// or a removal error is logged, never surfaced.
func (c *Client) Cleanup(path string) {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Captured image already gone", "path", path)
			return
		}
		slog.Error("Failed to delete captured image", "path", path, "err", err)
		return
	}
	slog.Info("Deleted captured image", "path", path)
}
