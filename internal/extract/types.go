package extract

// Document is the raw study material handed to the extractor.
type Document struct {
	Title string // display name, usually the source file name
	Text  string // full plain-text content
}

// ExtractionError indicates the model returned concepts that don't form a
// usable graph (duplicate IDs, self-dependencies, or no concepts at all).
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return "concept extraction: " + e.Reason + ": " + e.Err.Error()
	}
	return "concept extraction: " + e.Reason
}

func (e *ExtractionError) Unwrap() error { return e.Err }
