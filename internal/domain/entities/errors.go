package entities

import "errors"

// Error taxonomy shared across the module. Per-document failures wrap these
// so handlers can map them to a response without string matching; only
// ErrRootInvalid is fatal, and only during startup.
var (
	// ErrNotFound means the requested document does not exist under the root.
	ErrNotFound = errors.New("document not found")

	// ErrNotDocument means the path resolves to something that is not a
	// servable document (wrong extension, a directory, or outside the root).
	ErrNotDocument = errors.New("not a document")

	// ErrRootInvalid means the configured document root does not exist or is
	// not a directory. The server must not begin listening in this state.
	ErrRootInvalid = errors.New("document root invalid")
)
