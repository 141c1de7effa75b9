package providers

import (
	"context"
)

// Request represents one completion request to an LLM provider.
type Request struct {
	Model       string
	Temperature float64
	// System is the fixed instruction constraining the output format.
	System string
	// Prompt is the user-facing content of the request.
	Prompt string
	// Images holds base64-encoded JPEG attachments for vision requests.
	Images []string
	// JSONResponse asks the provider for a JSON object response where the
	// backend supports it. The reply is still treated as raw text.
	JSONResponse bool
}

// Provider defines the interface for an LLM completion provider.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}
