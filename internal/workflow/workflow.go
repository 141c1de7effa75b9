// Package workflow sequences one cataloguing run: capture a title page image,
// extract bibliographic fields, classify against the existing catalogue,
// collect a reading status from the operator, persist the merged record, and
// delete the local image copy.
package workflow

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mshelton/booklog/internal/book"
)

// Camera is the image source for a workflow run.
type Camera interface {
	Capture(ctx context.Context) (string, error)
	Cleanup(path string)
}

// Oracle provides the two completion calls of the pipeline.
type Oracle interface {
	Extract(ctx context.Context, imagePath string) (book.Fields, error)
	Classify(ctx context.Context, fields book.Fields, subjects, specifics []string) (book.Subjects, error)
}

// Catalog is the persistence surface the orchestrator needs.
type Catalog interface {
	Insert(ctx context.Context, rec *book.Record) error
	DistinctValues(column string) []string
}

// Orchestrator runs the cataloguing workflow against injected dependencies.
type Orchestrator struct {
	camera   Camera
	oracle   Oracle
	catalog  Catalog
	location string

	in  *bufio.Reader
	out io.Writer
}

// New assembles an orchestrator. location may be empty; in and out carry the
// operator console.
func New(camera Camera, oracle Oracle, catalog Catalog, location string, in io.Reader, out io.Writer) *Orchestrator {
	return &Orchestrator{
		camera:   camera,
		oracle:   oracle,
		catalog:  catalog,
		location: location,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Run executes one complete workflow. The captured image is deleted on every
// path after a successful capture, including persist failure. Classification
// failure degrades to null subjects rather than aborting.
func (o *Orchestrator) Run(ctx context.Context) (*book.Record, error) {
	slog.Info("Workflow stage", "stage", "capturing")
	imagePath, err := o.camera.Capture(ctx)
	if err != nil {
		return nil, fmt.Errorf("capture failed: %w", err)
	}

	slog.Info("Workflow stage", "stage", "extracting", "image", imagePath)
	fields, err := o.oracle.Extract(ctx, imagePath)
	if err != nil {
		o.camera.Cleanup(imagePath)
		return nil, fmt.Errorf("extraction failed: %w", err)
	}

	slog.Info("Workflow stage", "stage", "classifying")
	rec := &book.Record{}
	rec.Merge(fields)

	subjects, err := o.oracle.Classify(ctx, fields,
		o.catalog.DistinctValues("Subject"),
		o.catalog.DistinctValues("SubjectSpecific"))
	if err != nil {
		// Non-fatal: the record proceeds with both subject fields null.
		slog.Warn("Classification failed, continuing without subjects", "err", err)
	} else {
		rec.MergeSubjects(subjects)
	}

	if o.location != "" {
		rec.Location = book.String(o.location)
	}

	slog.Info("Workflow stage", "stage", "awaiting_status")
	rec.ReadingStatus = o.readStatus()

	o.printRecord(rec)

	slog.Info("Workflow stage", "stage", "persisting")
	if err := o.catalog.Insert(ctx, rec); err != nil {
		o.camera.Cleanup(imagePath)
		return nil, fmt.Errorf("persist failed: %w", err)
	}

	slog.Info("Workflow stage", "stage", "cleaning_up")
	o.camera.Cleanup(imagePath)

	fmt.Fprintln(o.out, "Workflow completed. Ready for next book.")
	return rec, nil
}

func (o *Orchestrator) printRecord(rec *book.Record) {
	fmt.Fprintln(o.out, "\nFinal book information:")
	fmt.Fprintln(o.out, "----------------------------------------")
	fmt.Fprintf(o.out, "Title: %s\n", book.Value(rec.Title))
	fmt.Fprintf(o.out, "Author: %s\n", book.Value(rec.Author))
	fmt.Fprintf(o.out, "Publisher: %s\n", book.Value(rec.Publisher))
	fmt.Fprintf(o.out, "Description: %s\n", book.Value(rec.Description))
	fmt.Fprintf(o.out, "Subject: %s\n", book.Value(rec.Subject))
	fmt.Fprintf(o.out, "SubjectSpecific: %s\n", book.Value(rec.SubjectSpecific))
	fmt.Fprintf(o.out, "Location: %s\n", book.Value(rec.Location))
	fmt.Fprintf(o.out, "ReadingStatus: %s\n", rec.ReadingStatus)
	fmt.Fprintln(o.out, "----------------------------------------")
}
