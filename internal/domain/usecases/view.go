// Package usecases contains application business rules.
// Usecases orchestrate entities through port interfaces and carry no
// framework code.
package usecases

import (
	"context"
	"fmt"

	"github.com/docview/docview/internal/domain/entities"
	"github.com/docview/docview/internal/domain/ports"
)

// ViewUseCase renders one document request into a complete page.
type ViewUseCase struct {
	loader      ports.Loader
	index       ports.Index
	renderer    ports.Renderer
	composer    ports.Composer
	defaultFile string
}

// NewViewUseCase creates a ViewUseCase with injected dependencies.
func NewViewUseCase(
	loader ports.Loader,
	index ports.Index,
	renderer ports.Renderer,
	composer ports.Composer,
	defaultFile string,
) *ViewUseCase {
	if defaultFile == "" {
		defaultFile = "README.md"
	}
	return &ViewUseCase{
		loader:      loader,
		index:       index,
		renderer:    renderer,
		composer:    composer,
		defaultFile: defaultFile,
	}
}

// View renders the named document into a full page. An empty name means the
// default document. Navigation is recomputed on every call so the sidebar
// reflects the directory as it is served, never a cached snapshot.
func (uc *ViewUseCase) View(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		name = uc.defaultFile
	}

	// 1. Load the document
	doc, err := uc.loader.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	// 2. Convert to hypertext and pull the title
	body, title, err := uc.renderer.Render(doc.Raw)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	if title == "" {
		title = doc.Stem()
	}

	// 3. Recompute navigation against the current directory
	nav, err := uc.index.List(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	// 4. Compose the final page
	page := entities.Page{
		Title:      title,
		Nav:        nav,
		Breadcrumb: uc.breadcrumb(name),
		Body:       body,
	}
	return uc.composer.Compose(page)
}

// breadcrumb builds the trail segment. The default document reads as plain
// text; everything else links to itself.
func (uc *ViewUseCase) breadcrumb(name string) entities.Breadcrumb {
	if name == uc.defaultFile {
		return entities.Breadcrumb{Label: name}
	}
	return entities.Breadcrumb{Label: name, Href: "/" + name}
}
