// Package oracle wraps the vision-capable completion service behind the two
// calls the workflow needs: bibliographic extraction from a title page image
// and subject classification against the catalogue's existing values.
package oracle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/mshelton/booklog/internal/book"
	"github.com/mshelton/booklog/internal/config"
	"github.com/mshelton/booklog/internal/gemini"
	"github.com/mshelton/booklog/internal/ollama"
	"github.com/mshelton/booklog/internal/openai"
	"github.com/mshelton/booklog/internal/providers"
)

// ErrParse indicates the oracle's reply was not a JSON object even after the
// repair pass.
var ErrParse = errors.New("oracle response is not valid JSON")

// Oracle issues completion requests for the extraction and classification
// stages of the workflow.
type Oracle struct {
	provider    providers.Provider
	model       string
	temperature float64
}

// New builds an oracle for the configured provider. An unsupported provider
// name is a configuration error.
func New(cfg config.LLM) (*Oracle, error) {
	var provider providers.Provider
	switch cfg.Provider {
	case "openai":
		provider = openai.New()
	case "ollama":
		provider = ollama.New()
	case "gemini":
		provider = gemini.New()
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel(cfg.Provider)
	}

	return &Oracle{
		provider:    provider,
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

func defaultModel(provider string) string {
	switch provider {
	case "openai":
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			return "gpt-4o"
		}
		return model
	case "ollama":
		model := os.Getenv("OLLAMA_MODEL")
		if model == "" {
			return "mistral-small3.2:24b"
		}
		return model
	case "gemini":
		model := os.Getenv("GEMINI_MODEL")
		if model == "" {
			return "gemini-2.0-flash"
		}
		return model
	default:
		return ""
	}
}

// Extract sends the title page image to the completion service and parses
// the bibliographic fields out of its reply. Transport and parse failures
// are both fatal to the current workflow run.
func (o *Oracle) Extract(ctx context.Context, imagePath string) (book.Fields, error) {
	imageData, err := os.ReadFile(imagePath)
	if err != nil {
		return book.Fields{}, fmt.Errorf("failed to read image: %w", err)
	}

	raw, err := o.provider.Complete(ctx, providers.Request{
		Model:        o.model,
		Temperature:  o.temperature,
		System:       extractionSystemPrompt,
		Prompt:       extractionPrompt,
		Images:       []string{base64.StdEncoding.EncodeToString(imageData)},
		JSONResponse: true,
	})
	if err != nil {
		return book.Fields{}, fmt.Errorf("extraction request failed: %w", err)
	}

	var fields book.Fields
	if err := parseObject(raw, &fields); err != nil {
		return book.Fields{}, err
	}

	slog.Info("Extracted book fields",
		"title", book.Value(fields.Title),
		"author", book.Value(fields.Author))
	return fields, nil
}

// Classify sends the extracted fields plus the catalogue's distinct subject
// lists and parses the inferred classification. Callers treat any failure as
// non-fatal and proceed with null subjects.
func (o *Oracle) Classify(ctx context.Context, fields book.Fields, subjects, specifics []string) (book.Subjects, error) {
	bookJSON, err := json.Marshal(fields)
	if err != nil {
		return book.Subjects{}, fmt.Errorf("failed to marshal book fields: %w", err)
	}

	raw, err := o.provider.Complete(ctx, providers.Request{
		Model:        o.model,
		Temperature:  o.temperature,
		System:       classificationSystemPrompt,
		Prompt:       classificationPrompt(subjects, specifics) + "\n\n" + string(bookJSON),
		JSONResponse: true,
	})
	if err != nil {
		return book.Subjects{}, fmt.Errorf("classification request failed: %w", err)
	}

	var result book.Subjects
	if err := parseObject(raw, &result); err != nil {
		return book.Subjects{}, err
	}

	slog.Info("Inferred subjects",
		"subject", book.Value(result.Subject),
		"subject_specific", book.Value(result.SubjectSpecific))
	return result, nil
}

// parseObject runs the repair pass over the raw reply and unmarshals it.
func parseObject(raw string, v any) error {
	repaired := Repair(raw)
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		slog.Error("Failed to parse oracle response", "err", err, "raw", raw)
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}
