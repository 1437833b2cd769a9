package ingestion_engine

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode"

	"code.sajari.com/docconv"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"

	"github.com/markdave123-py/Chunkwise/internal/core"
	objectclient "github.com/markdave123-py/Chunkwise/internal/core/object-client"
	"github.com/markdave123-py/Chunkwise/internal/logger"
	"github.com/markdave123-py/Chunkwise/internal/models"
)

var _ core.DocumentExtractor = (*DocumentExtractor)(nil)

// binaryTypes arrive base64 encoded when sent inline.
var binaryTypes = map[string]bool{
	"pdf":  true,
	"doc":  true,
	"docx": true,
	"odt":  true,
	"rtf":  true,
}

// DocumentExtractor implements core.DocumentExtractor with docconv for
// office formats and HTML, and ledongthuc/pdf for PDFs.
type DocumentExtractor struct {
	useReadability bool
	obj            core.ObjectClient
}

// NewDocumentExtractor builds an extractor. obj may be nil, in which case
// documents referencing object storage fail to extract.
func NewDocumentExtractor(useReadability bool, obj core.ObjectClient) *DocumentExtractor {
	return &DocumentExtractor{useReadability: useReadability, obj: obj}
}

func (e *DocumentExtractor) Extract(ctx context.Context, doc models.Document) (core.ExtractedText, error) {
	typ := normalizeType(doc.Type)

	if doc.Content == "" {
		if source, _ := doc.Metadata["source"].(string); source != "" {
			if bucket, key, ok := objectclient.ParseURI(source); ok {
				return e.extractObject(ctx, typ, bucket, key)
			}
		}
	}

	if binaryTypes[typ] {
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(doc.Content))
		if err != nil {
			return core.ExtractedText{}, fmt.Errorf("%w: invalid %s content encoding", core.ErrExtraction, strings.ToUpper(typ))
		}
		return e.extractBytes(typ, data)
	}
	return e.extractBytes(typ, []byte(doc.Content))
}

func (e *DocumentExtractor) extractObject(ctx context.Context, typ, bucket, key string) (core.ExtractedText, error) {
	if e.obj == nil {
		return core.ExtractedText{}, fmt.Errorf("%w: object storage is not configured", core.ErrExtraction)
	}
	data, err := e.obj.GetFile(ctx, bucket, key)
	if err != nil {
		return core.ExtractedText{}, fmt.Errorf("%w: %v", core.ErrExtraction, err)
	}
	if typ == "" {
		typ = normalizeType(path.Ext(key))
	}
	if _, known := knownTypes[typ]; !known {
		sniffed := mimetype.Detect(data)
		logger.FromContext(ctx).Debug("sniffed object type", "key", key, "mime", sniffed.String())
		typ = normalizeType(sniffed.Extension())
	}
	return e.extractBytes(typ, data)
}

var knownTypes = map[string]struct{}{
	"txt": {}, "pdf": {}, "json": {}, "md": {}, "xml": {}, "csv": {},
	"html": {}, "htm": {}, "doc": {}, "docx": {}, "odt": {}, "rtf": {},
}

func (e *DocumentExtractor) extractBytes(typ string, data []byte) (core.ExtractedText, error) {
	switch typ {
	case "", "txt":
		return core.ExtractedText{Text: cleanText(string(data))}, nil
	case "pdf":
		return extractPDF(data)
	case "doc", "docx", "odt", "rtf":
		text, err := e.convert(data, docconv.MimeTypeByExtension("document."+typ))
		if err != nil {
			return core.ExtractedText{}, err
		}
		return core.ExtractedText{Text: text}, nil
	case "html", "htm":
		text, meta := parseHTML(data)
		if e.useReadability {
			// empty when readability finds no article
			if article, err := e.convert(data, "text/html"); err == nil && article != "" {
				text = article
			}
		}
		return core.ExtractedText{Text: text, Metadata: meta}, nil
	case "csv":
		text := string(data)
		return core.ExtractedText{Text: text, Metadata: csvMetadata(text)}, nil
	case "json", "md", "xml":
		return core.ExtractedText{Text: string(data)}, nil
	default:
		return core.ExtractedText{}, fmt.Errorf("%w: unsupported document type %q", core.ErrExtraction, typ)
	}
}

func (e *DocumentExtractor) convert(data []byte, mimeType string) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), mimeType, e.useReadability)
	if err != nil {
		return "", fmt.Errorf("%w: convert %s: %v", core.ErrExtraction, mimeType, err)
	}
	return strings.TrimSpace(res.Body), nil
}

// extractPDF reads every page's text. The parser panics on some corrupt
// inputs, so panics are reported as extraction errors.
func extractPDF(data []byte) (out core.ExtractedText, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: corrupt PDF: %v", core.ErrExtraction, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return core.ExtractedText{}, fmt.Errorf("%w: open PDF: %v", core.ErrExtraction, err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return core.ExtractedText{}, fmt.Errorf("%w: read PDF text: %v", core.ErrExtraction, err)
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return core.ExtractedText{}, fmt.Errorf("%w: read PDF text: %v", core.ErrExtraction, err)
	}
	return core.ExtractedText{
		Text:     strings.TrimSpace(string(text)),
		Metadata: map[string]any{"page_count": reader.NumPage()},
	}, nil
}

// cleanText drops non-printable runes and collapses whitespace runs.
func cleanText(s string) string {
	printable := strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(printable), " ")
}

func normalizeType(t string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "."))
}
