// Package ports defines the interfaces between the document-serving core and
// its collaborators. Usecases depend on these abstractions; adapters under
// internal/adapters implement them.
package ports

import (
	"context"

	"github.com/docview/docview/internal/domain/entities"
)

// Index produces the ordered navigation list for the document root.
// The scan happens on every call: the directory is allowed to change between
// requests and the index holds no state beyond its configuration.
type Index interface {
	// List returns every non-excluded document in the root as a navigation
	// entry, the default document first and the rest in lexicographic order.
	// The entry whose filename equals active is flagged.
	List(ctx context.Context, active string) ([]entities.NavEntry, error)
}

// Loader reads documents from the document root.
type Loader interface {
	// Load reads the named document. Returns entities.ErrNotFound if the
	// file does not exist and entities.ErrNotDocument if the name does not
	// resolve to a servable document.
	Load(ctx context.Context, name string) (*entities.Document, error)
}

// Renderer converts raw markdown into hypertext.
type Renderer interface {
	// Render returns the converted body and the title extracted from the
	// first top-level heading of the preprocessed source. Title is empty
	// when the document has no such heading; callers fall back to the
	// filename stem.
	Render(raw string) (body string, title string, err error)
}

// Composer assembles a complete page from its structured parts.
type Composer interface {
	Compose(page entities.Page) ([]byte, error)
}

// ChangeWatcher answers "has this document changed" polls. It is stateless:
// every call re-reads the filesystem, and failures are reported inside the
// status value so the polling client can always parse the response.
type ChangeWatcher interface {
	CheckUpdate(ctx context.Context, file string) entities.UpdateStatus
}

// FileWatcher monitors a directory for document changes. It observes only;
// nothing in the reload protocol depends on it.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events until ctx is
	// cancelled.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent is a single observed file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)

// String returns the operation name used in log output.
func (op FileOperation) String() string {
	switch op {
	case FileCreated:
		return "created"
	case FileModified:
		return "modified"
	case FileDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}
