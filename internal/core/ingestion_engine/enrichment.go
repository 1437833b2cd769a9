package ingestion_engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// htmlMetadata describes the structure of an HTML page in the fields the
// html_document schema validates.
func htmlMetadata(data []byte) map[string]any {
	_, meta := parseHTML(data)
	return meta
}

// parseHTML returns the visible body text of a page along with its
// structural metadata. Scripts and styles are counted, then dropped from
// the text.
func parseHTML(data []byte) (string, map[string]any) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", nil
	}

	meta := map[string]any{
		"has_doctype": false,
		"css_count":   doc.Find(`link[rel="stylesheet"], style`).Length(),
		"js_count":    doc.Find("script").Length(),
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		meta["title"] = title
	}

	for _, root := range doc.Nodes {
		for n := root.FirstChild; n != nil; n = n.NextSibling {
			if n.Type != html.DoctypeNode {
				continue
			}
			doctype := classifyDoctype(n)
			meta["has_doctype"] = true
			meta["doctype"] = doctype
			meta["html_version"] = doctype
		}
	}

	doc.Find("script, style, noscript, template").Remove()
	var parts []string
	for _, n := range doc.Find("body").Nodes {
		parts = appendText(parts, n)
	}
	return cleanText(strings.Join(parts, " ")), meta
}

// appendText collects text nodes in document order so adjacent block
// elements stay separated.
func appendText(parts []string, n *html.Node) []string {
	if n.Type == html.TextNode {
		return append(parts, n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		parts = appendText(parts, c)
	}
	return parts
}

func classifyDoctype(n *html.Node) string {
	var public string
	for _, a := range n.Attr {
		if a.Key == "public" {
			public = strings.ToLower(a.Val)
		}
	}
	switch {
	case public == "":
		return "html5"
	case strings.Contains(public, "xhtml"):
		return "xhtml"
	case strings.Contains(public, "html 4"):
		return "html4"
	default:
		return "legacy"
	}
}

// csvMetadata sniffs the delimiter and counts columns and data rows.
// The first record is treated as a header when none of its cells is numeric.
func csvMetadata(text string) map[string]any {
	delim := sniffDelimiter(text)
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil
	}

	header := looksLikeHeader(records[0])
	rows := len(records)
	meta := map[string]any{
		"column_count": len(records[0]),
		"delimiter":    string(delim),
		"header_row":   header,
		"has_quotes":   strings.Contains(text, `"`),
	}
	if header {
		rows--
		names := make([]any, len(records[0]))
		for i, name := range records[0] {
			names[i] = strings.TrimSpace(name)
		}
		meta["column_names"] = names
	}
	meta["row_count"] = rows
	return meta
}

func sniffDelimiter(text string) rune {
	first, _, _ := strings.Cut(text, "\n")
	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t', '|'} {
		if c := strings.Count(first, string(d)); c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}

func looksLikeHeader(rec []string) bool {
	for _, cell := range rec {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			return false
		}
		if strings.IndexFunc(cell, func(r rune) bool { return r < '0' || r > '9' }) == -1 {
			return false
		}
	}
	return true
}
