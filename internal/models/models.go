package models

// Document is one ingest unit as received from a caller.
type Document struct {
	Type     string         `json:"type"`     // txt | pdf | json | md | html | csv | docx | ...
	Content  string         `json:"content"`  // raw text, base64 for binary formats, or empty
	Metadata map[string]any `json:"metadata"` // caller supplied; never mutated
}

// Chunk is a slice of a document produced by a chunking strategy.
type Chunk struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata"`
}

// Record is the wire-level output handed to the embedding service.
type Record struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata"`
}

// SourceFile is a file found by a directory listing.
type SourceFile struct {
	Text       string `json:"text"`
	SourcePath string `json:"source_path"`
	Type       string `json:"type"`
}
