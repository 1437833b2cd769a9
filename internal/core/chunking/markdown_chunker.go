package chunking

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/markdave123-py/Chunkwise/internal/models"
)

const StrategyMarkdown = "markdown_heading"

var markdownDefaults = Params{
	HeadingLevel: Int(2),
}

type markdownSettings struct {
	HeadingLevel int `json:"heading_level" validate:"gte=1,lte=6"`
}

// MarkdownChunker cuts a markdown document into sections at headings of
// level heading_level or higher. Deeper headings stay inside their section.
type MarkdownChunker struct {
	md goldmark.Markdown
}

func NewMarkdownChunker() *MarkdownChunker {
	return &MarkdownChunker{md: goldmark.New()}
}

func (c *MarkdownChunker) Name() string {
	return StrategyMarkdown
}

func (c *MarkdownChunker) ValidateParams(p Params) error {
	_, err := c.resolve(&p)
	return err
}

func (c *MarkdownChunker) resolve(p *Params) (markdownSettings, error) {
	merged, err := withDefaults(p, markdownDefaults)
	if err != nil {
		return markdownSettings{}, err
	}
	s := markdownSettings{HeadingLevel: deref(merged.HeadingLevel)}
	return s, checkSettings(s)
}

type section struct {
	title string
	level int
	body  strings.Builder
}

func (c *MarkdownChunker) ChunkDocument(content string, metadata map[string]any, p *Params) ([]models.Chunk, error) {
	s, err := c.resolve(p)
	if err != nil {
		return nil, err
	}
	source := []byte(content)
	doc := c.md.Parser().Parse(text.NewReader(source))

	var sections []*section
	current := &section{}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Kind() == ast.KindParagraph {
				current.body.WriteString("\n\n")
			}
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			title := inlineText(node, source)
			if node.Level <= s.HeadingLevel {
				sections = append(sections, current)
				current = &section{title: title, level: node.Level}
				current.body.WriteString(title + "\n\n")
			} else {
				current.body.WriteString("\n" + title + "\n\n")
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				current.body.Write(seg.Value(source))
			}
			current.body.WriteString("\n")
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			current.body.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				current.body.WriteString("\n")
			}
		case *ast.String:
			current.body.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})
	sections = append(sections, current)

	chunks := make([]models.Chunk, 0, len(sections))
	for _, sec := range sections {
		body := strings.TrimSpace(sec.body.String())
		if body == "" {
			continue
		}
		chunks = append(chunks, models.Chunk{
			Content: body,
			Metadata: chunkMetadata(metadata, map[string]any{
				"strategy":      StrategyMarkdown,
				"chunk_index":   len(chunks),
				"section":       sec.title,
				"heading_level": sec.level,
			}),
		})
	}
	return chunks, nil
}

// inlineText collects the literal text under a node.
func inlineText(n ast.Node, source []byte) string {
	var buf strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(source))
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}
