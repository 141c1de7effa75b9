package book

// Reading status values stored in master_table.
const (
	StatusComplete   = "Complete"
	StatusPartial    = "Partially Complete"
	StatusNotStarted = "Not Started"
)

// statusKeys maps the operator's single-character command to a status value.
var statusKeys = map[string]string{
	"c": StatusComplete,
	"p": StatusPartial,
	"n": StatusNotStarted,
}

// StatusForKey resolves a single-character operator command (case-insensitive
// callers should lowercase first) to a reading status.
func StatusForKey(key string) (string, bool) {
	status, ok := statusKeys[key]
	return status, ok
}

// Fields holds the bibliographic fields extracted from a title page image.
// Pointers distinguish "unknown" (JSON null) from an empty string.
type Fields struct {
	Title       *string `json:"Title"`
	Author      *string `json:"Author"`
	Publisher   *string `json:"Publisher"`
	Description *string `json:"Description"`
}

// Subjects holds the inferred classification. Both values are drawn from the
// catalogue's existing distinct values; null means nothing fit.
type Subjects struct {
	Subject         *string `json:"Subject"`
	SubjectSpecific *string `json:"SubjectSpecific"`
}

// Record is one row of master_table, built up across the extraction,
// classification, and operator-input stages of a workflow run.
type Record struct {
	ID              int64
	Title           *string
	Author          *string
	Publisher       *string
	Description     *string
	Subject         *string
	SubjectSpecific *string
	Location        *string
	ReadingStatus   string
}

// Merge copies extracted fields into the record.
func (r *Record) Merge(f Fields) {
	r.Title = f.Title
	r.Author = f.Author
	r.Publisher = f.Publisher
	r.Description = f.Description
}

// MergeSubjects copies the inferred classification into the record.
func (r *Record) MergeSubjects(s Subjects) {
	r.Subject = s.Subject
	r.SubjectSpecific = s.SubjectSpecific
}

// FieldNames lists the record's field names in persistence order.
var FieldNames = []string{
	"Title",
	"Author",
	"Publisher",
	"Description",
	"Subject",
	"SubjectSpecific",
	"Location",
	"ReadingStatus",
}

// Fields returns the field-name to value mapping persisted to the store,
// excluding the primary key. Nil pointers become SQL NULLs.
func (r *Record) Fields() map[string]any {
	return map[string]any{
		"Title":           nullable(r.Title),
		"Author":          nullable(r.Author),
		"Publisher":       nullable(r.Publisher),
		"Description":     nullable(r.Description),
		"Subject":         nullable(r.Subject),
		"SubjectSpecific": nullable(r.SubjectSpecific),
		"Location":        nullable(r.Location),
		"ReadingStatus":   r.ReadingStatus,
	}
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// String pointer helper used when merging operator-supplied values.
func String(s string) *string {
	return &s
}

// Value dereferences a nullable field for display, with a placeholder for
// null.
func Value(s *string) string {
	if s == nil {
		return "(none)"
	}
	return *s
}
