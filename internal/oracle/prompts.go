package oracle

import (
	"fmt"
	"strings"
)

const extractionPrompt = "This is an image of a title page of a book."

const extractionSystemPrompt = `You are an expert bibliographic extractor.
When the user shows you a book title page image, return ONLY a JSON object with all text exactly as printed and any visible numeric identifiers.
Use null if an element is not identifiable. For authors, include all contributors and an abbreviation of their role, e.g. ed. for the editor, trans. for the translator, etc. The JSON object should be in the following format:
{
    "Title": "The title of the book",
    "Author": "The author and other contributors of the book",
    "Publisher": "The publisher of the book",
    "Description": "A short description of the book"
}
Please infer the description from your knowledge of the book. If you cannot, then return null.`

const classificationSystemPrompt = `You are an expert bibliographic subject and specific subject classifier.
When the user gives you a JSON object with the title, author, publisher, and description of a book, infer the subject and specific subject of the book and return ONLY a JSON object with the following format:
{
    "Subject": "The subject of the book",
    "SubjectSpecific": "The specific subject of the book"
}
Pick values from the lists the user provides. Do not invent new categories.`

// classificationPrompt asks the oracle to pick from the catalogue's existing
// distinct values, or null when nothing fits.
func classificationPrompt(subjects, specifics []string) string {
	return fmt.Sprintf(`Given the following subjects and specific subjects, and information about a book, infer the subject and specific subject of the book.
Subjects: [%s].
Specific Subjects: [%s].
If you believe the book does not fit into any of the subjects, then return null.`,
		strings.Join(subjects, ", "),
		strings.Join(specifics, ", "))
}
