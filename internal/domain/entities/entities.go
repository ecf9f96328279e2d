// Package entities contains core business entities.
// These are pure domain objects with no knowledge of HTTP, templates, or the
// directory they came from.
package entities

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Document is one markdown document loaded from the document root.
type Document struct {
	Name    string // filename relative to the root, e.g. "README.md"
	Path    string // absolute path on disk
	Raw     string // raw markdown source as read
	ModTime time.Time
}

// Stem returns the document name with its extension removed.
// Used as the fallback title and description.
func (d Document) Stem() string {
	return Stem(d.Name)
}

// Stem strips the extension from a document filename.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Extension is the filename extension that marks a servable document.
const Extension = ".md"

// IsDocument reports whether name has the document extension. The comparison
// is case-insensitive so Readme.MD is treated like readme.md.
func IsDocument(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Extension)
}

// ResolveDocument maps a root-relative document name to an absolute path
// under root. Names that are empty, escape the root, or lack the document
// extension are rejected with ErrNotDocument.
func ResolveDocument(root, name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" || !filepath.IsLocal(name) || !IsDocument(name) {
		return "", fmt.Errorf("%w: %q", ErrNotDocument, name)
	}
	return filepath.Join(root, filepath.FromSlash(name)), nil
}

// NavEntry is one row of the sidebar navigation.
// Entries are recomputed on every request; the directory may change between
// requests, so they are never cached.
type NavEntry struct {
	Filename    string // link target, e.g. "HLD_System_Design.md"
	DisplayName string // human form, e.g. "HLD - System Design"
	Description string // tooltip derived from the document's first heading
	Active      bool   // true for the document currently being viewed
}

// Breadcrumb is the trail segment shown above the content area.
// An empty Href renders as plain text instead of a link.
type Breadcrumb struct {
	Label string
	Href  string
}

// Page is the assembled input for one rendered response. It lives for a
// single request/response cycle and is owned by the handler that built it.
type Page struct {
	Title      string
	Nav        []NavEntry
	Breadcrumb Breadcrumb
	Body       string // hypertext produced by the renderer
}

// UpdateStatus is the change-check answer for one document. It is a value,
// not an error: the polling client parses the same payload shape whether the
// check succeeded or failed.
type UpdateStatus struct {
	File     string `json:"file"`
	Modified string `json:"modified,omitempty"` // opaque comparable token
	Err      string `json:"error,omitempty"`
}

// OK reports whether the check produced a usable token.
func (s UpdateStatus) OK() bool {
	return s.Err == ""
}
