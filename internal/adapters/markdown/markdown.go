// Package markdown converts document source into hypertext. The conversion
// itself is delegated to goldmark; this package owns the pre-processing
// (fence dedent, diagram tagging) and post-processing (diagram class
// injection) around that call.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/docview/docview/internal/domain/ports"
)

// titlePattern matches the first top-level heading and captures its text.
var titlePattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// diagramPattern matches fenced diagram blocks in either spelling.
var diagramPattern = regexp.MustCompile("(?s)```(?:plantuml|puml)\n(.*?)```")

// GoldmarkRenderer renders markdown with GitHub-flavored tables, heading
// anchors, and chroma-highlighted code fences.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

var _ ports.Renderer = (*GoldmarkRenderer)(nil)

// New creates a renderer. Raw HTML in documents passes through unescaped;
// the served files are local and trusted.
func New() *GoldmarkRenderer {
	return &GoldmarkRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render converts raw markdown into a hypertext body and extracts the title
// from the first top-level heading. The title comes from the same
// preprocessed text that is handed to conversion, so title and body never
// disagree about which heading leads the document.
func (r *GoldmarkRenderer) Render(raw string) (string, string, error) {
	src := normalize(raw)
	src = DedentFences(src)
	src = tagDiagramFences(src)

	title := extractTitle(src)

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", "", fmt.Errorf("converting markdown: %w", err)
	}

	return injectDiagramClass(buf.String()), title, nil
}

// normalize folds all line ending variants to plain newlines.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// tagDiagramFences rewrites puml fences to the canonical plantuml info
// string so conversion emits a language-plantuml class for them.
func tagDiagramFences(s string) string {
	return diagramPattern.ReplaceAllString(s, "```plantuml\n$1```")
}

// injectDiagramClass marks converted diagram blocks with an extra class so
// the client-side diagram renderer can find them. Chroma has no lexer for
// plantuml, so these blocks come out of conversion as plain tagged code.
func injectDiagramClass(body string) string {
	return strings.ReplaceAll(body,
		`<pre><code class="language-plantuml">`,
		`<pre><code class="language-plantuml plantuml">`)
}

// extractTitle returns the text of the first top-level heading, or the empty
// string when the document has none.
func extractTitle(src string) string {
	m := titlePattern.FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
