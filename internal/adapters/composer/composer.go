// Package composer assembles complete pages from rendered parts.
package composer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/docview/docview/internal/domain/entities"
	"github.com/docview/docview/internal/domain/ports"
)

//go:embed templates/*
var templatesFS embed.FS

// TemplateComposer renders the page shell around a converted document body.
// Pure substitution: the only logic in the template is the nav active flag
// and the breadcrumb link choice. html/template handles escaping, so odd
// filenames cannot break attribute positions.
type TemplateComposer struct {
	tmpl        *template.Template
	projectName string
	defaultFile string
}

var _ ports.Composer = (*TemplateComposer)(nil)

// pageData is the template input.
type pageData struct {
	Title       string
	ProjectName string
	Nav         []entities.NavEntry
	Breadcrumb  entities.Breadcrumb
	Body        template.HTML
	DefaultFile string
}

// New parses the embedded page template. The project name heads the sidebar;
// the default file is what the live-reload client polls for on the root path.
func New(projectName, defaultFile string) (*TemplateComposer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &TemplateComposer{
		tmpl:        tmpl,
		projectName: projectName,
		defaultFile: defaultFile,
	}, nil
}

// Compose renders the full page for one request.
func (c *TemplateComposer) Compose(page entities.Page) ([]byte, error) {
	var buf bytes.Buffer
	err := c.tmpl.ExecuteTemplate(&buf, "page.html", pageData{
		Title:       page.Title,
		ProjectName: c.projectName,
		Nav:         page.Nav,
		Breadcrumb:  page.Breadcrumb,
		Body:        template.HTML(page.Body),
		DefaultFile: c.defaultFile,
	})
	if err != nil {
		return nil, fmt.Errorf("composing page: %w", err)
	}
	return buf.Bytes(), nil
}
