package book

import (
	"encoding/json"
	"testing"
)

func TestStatusForKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
		ok       bool
	}{
		{key: "c", expected: StatusComplete, ok: true},
		{key: "p", expected: StatusPartial, ok: true},
		{key: "n", expected: StatusNotStarted, ok: true},
		{key: "x", ok: false},
		{key: "", ok: false},
		{key: "complete", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			status, ok := StatusForKey(tt.key)
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if status != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, status)
			}
		})
	}
}

func TestRecordFields(t *testing.T) {
	title := "Dune"
	rec := Record{
		Title:         &title,
		ReadingStatus: StatusComplete,
	}

	fields := rec.Fields()
	if fields["Title"] != "Dune" {
		t.Errorf("Expected Title Dune, got %v", fields["Title"])
	}
	if fields["Author"] != nil {
		t.Errorf("Expected nil Author, got %v", fields["Author"])
	}
	if fields["ReadingStatus"] != StatusComplete {
		t.Errorf("Expected ReadingStatus %q, got %v", StatusComplete, fields["ReadingStatus"])
	}

	// The field list drives insert column order; every name must resolve.
	for _, name := range FieldNames {
		if _, ok := fields[name]; !ok {
			t.Errorf("FieldNames entry %q missing from Fields()", name)
		}
	}
	if len(fields) != len(FieldNames) {
		t.Errorf("Fields() has %d entries, FieldNames has %d", len(fields), len(FieldNames))
	}
}

func TestFieldsJSONNulls(t *testing.T) {
	// Oracle replies use JSON null for unknown fields; they must decode to
	// nil pointers, not empty strings.
	var f Fields
	if err := json.Unmarshal([]byte(`{"Title":"X","Author":null,"Publisher":null,"Description":null}`), &f); err != nil {
		t.Fatal(err)
	}
	if f.Title == nil || *f.Title != "X" {
		t.Errorf("Expected title X, got %v", f.Title)
	}
	if f.Author != nil {
		t.Errorf("Expected nil author, got %q", *f.Author)
	}
}

func TestMerge(t *testing.T) {
	title := "Dune"
	author := "Frank Herbert"
	subject := "Fiction"

	var rec Record
	rec.Merge(Fields{Title: &title, Author: &author})
	rec.MergeSubjects(Subjects{Subject: &subject})

	if rec.Title == nil || *rec.Title != title {
		t.Errorf("Expected title %q, got %v", title, rec.Title)
	}
	if rec.Author == nil || *rec.Author != author {
		t.Errorf("Expected author %q, got %v", author, rec.Author)
	}
	if rec.Subject == nil || *rec.Subject != subject {
		t.Errorf("Expected subject %q, got %v", subject, rec.Subject)
	}
	if rec.SubjectSpecific != nil {
		t.Errorf("Expected nil specific subject, got %q", *rec.SubjectSpecific)
	}
}
