package metadata

import (
	"path"
	"strings"
)

// Document types understood by the validator.
const (
	TypePDF      = "pdf_document"
	TypeText     = "text_document"
	TypeJSON     = "json_document"
	TypeWord     = "word_document"
	TypeMarkdown = "markdown_document"
	TypeXML      = "xml_document"
	TypeCSV      = "csv_document"
	TypeHTML     = "html_document"
	TypeUnknown  = "unknown_document"
)

var extensionTypes = map[string]string{
	".pdf":  TypePDF,
	".txt":  TypeText,
	".json": TypeJSON,
	".doc":  TypeWord,
	".docx": TypeWord,
	".md":   TypeMarkdown,
	".xml":  TypeXML,
	".csv":  TypeCSV,
	".html": TypeHTML,
	".htm":  TypeHTML,
}

// TypeForSource maps a file name or URL to its document type by extension.
func TypeForSource(source string) string {
	if t, ok := extensionTypes[strings.ToLower(path.Ext(source))]; ok {
		return t
	}
	return TypeUnknown
}
