package oracle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mshelton/booklog/internal/book"
	"github.com/mshelton/booklog/internal/config"
	"github.com/mshelton/booklog/internal/providers"
)

func bookFields(title *string) book.Fields {
	return book.Fields{Title: title}
}

type fakeProvider struct {
	reply    string
	err      error
	lastReq  providers.Request
	requests int
}

func (f *fakeProvider) Complete(_ context.Context, req providers.Request) (string, error) {
	f.lastReq = req
	f.requests++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "captured_20240101_120000.jpg")
	if err := os.WriteFile(path, []byte("not-really-a-jpeg"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name        string
		reply       string
		wantTitle   string
		wantNilDesc bool
		wantErr     bool
	}{
		{
			name:      "well formed reply",
			reply:     `{"Title":"Dune","Author":"Frank Herbert","Publisher":"Chilton","Description":"A novel"}`,
			wantTitle: "Dune",
		},
		{
			name:        "null description preserved",
			reply:       `{"Title":"Dune","Author":"Frank Herbert","Publisher":null,"Description":null}`,
			wantTitle:   "Dune",
			wantNilDesc: true,
		},
		{
			name:      "trailing comma repaired",
			reply:     "{\n\"Title\":\"Dune\",\n\"Author\":\"Frank Herbert\",\n}",
			wantTitle: "Dune",
		},
		{
			name:    "unparseable reply is fatal",
			reply:   "I could not read the title page, sorry.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{reply: tt.reply}
			o := &Oracle{provider: provider, model: "test-model", temperature: 0.2}

			fields, err := o.Extract(context.Background(), writeTestImage(t))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected an error")
				}
				if !errors.Is(err, ErrParse) {
					t.Errorf("Expected ErrParse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}

			if fields.Title == nil || *fields.Title != tt.wantTitle {
				t.Errorf("Expected title %q, got %v", tt.wantTitle, fields.Title)
			}
			if tt.wantNilDesc && fields.Description != nil {
				t.Errorf("Expected nil description, got %q", *fields.Description)
			}

			// The image must travel with the request.
			if len(provider.lastReq.Images) != 1 {
				t.Errorf("Expected 1 image attachment, got %d", len(provider.lastReq.Images))
			}
			if provider.lastReq.System == "" {
				t.Error("Expected a system instruction on the request")
			}
		})
	}
}

func TestExtractMissingImage(t *testing.T) {
	o := &Oracle{provider: &fakeProvider{reply: "{}"}, model: "test-model"}

	if _, err := o.Extract(context.Background(), filepath.Join(t.TempDir(), "nope.jpg")); err == nil {
		t.Fatal("Expected an error for a missing image file")
	}
}

func TestExtractTransportError(t *testing.T) {
	o := &Oracle{provider: &fakeProvider{err: errors.New("connection refused")}, model: "test-model"}

	if _, err := o.Extract(context.Background(), writeTestImage(t)); err == nil {
		t.Fatal("Expected a transport error to surface")
	}
}

func TestClassify(t *testing.T) {
	provider := &fakeProvider{reply: `{"Subject":"Fiction","SubjectSpecific":"Science Fiction"}`}
	o := &Oracle{provider: provider, model: "test-model", temperature: 0.2}

	title := "Dune"
	fields := bookFields(&title)
	subjects, err := o.Classify(context.Background(), fields,
		[]string{"Fiction", "History"}, []string{"Science Fiction"})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	if subjects.Subject == nil || *subjects.Subject != "Fiction" {
		t.Errorf("Expected subject Fiction, got %v", subjects.Subject)
	}
	if subjects.SubjectSpecific == nil || *subjects.SubjectSpecific != "Science Fiction" {
		t.Errorf("Expected specific subject Science Fiction, got %v", subjects.SubjectSpecific)
	}

	// The known value lists must be offered to the oracle.
	if !strings.Contains(provider.lastReq.Prompt, "Fiction, History") {
		t.Errorf("Expected subjects list in prompt, got: %s", provider.lastReq.Prompt)
	}
	// The extracted fields ride along as JSON.
	if !strings.Contains(provider.lastReq.Prompt, `"Title":"Dune"`) {
		t.Errorf("Expected book fields in prompt, got: %s", provider.lastReq.Prompt)
	}
}

func TestClassifyNullSubjects(t *testing.T) {
	provider := &fakeProvider{reply: `{"Subject":null,"SubjectSpecific":null}`}
	o := &Oracle{provider: provider, model: "test-model"}

	subjects, err := o.Classify(context.Background(), bookFields(nil), nil, nil)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if subjects.Subject != nil || subjects.SubjectSpecific != nil {
		t.Errorf("Expected null subjects, got %v / %v", subjects.Subject, subjects.SubjectSpecific)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		wantErr  bool
	}{
		{name: "openai", provider: "openai"},
		{name: "ollama", provider: "ollama"},
		{name: "gemini", provider: "gemini"},
		{name: "unsupported", provider: "watson", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := New(config.LLM{Provider: tt.provider, Temperature: 0.2})
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected an error for unsupported provider")
				}
				return
			}
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}
			if o.model == "" {
				t.Error("Expected a default model to be resolved")
			}
		})
	}
}
