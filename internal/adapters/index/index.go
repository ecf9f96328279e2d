// Package index scans the document root and produces the ordered navigation
// list for the sidebar.
package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docview/docview/internal/domain/entities"
	"github.com/docview/docview/internal/domain/ports"
)

// DirIndex lists and loads documents from a single directory. It holds only
// configuration fixed at startup; every call re-reads the filesystem, so the
// navigation always reflects the directory as it is right now.
type DirIndex struct {
	root        string
	defaultFile string
	exclusions  map[string]struct{}
}

var (
	_ ports.Index  = (*DirIndex)(nil)
	_ ports.Loader = (*DirIndex)(nil)
)

// New creates an index over root. The default file sorts first in listings.
// Exclusion tokens are matched case-insensitively against path segments.
func New(root, defaultFile string, exclusions []string) *DirIndex {
	set := make(map[string]struct{}, len(exclusions))
	for _, token := range exclusions {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			set[token] = struct{}{}
		}
	}
	return &DirIndex{root: root, defaultFile: defaultFile, exclusions: set}
}

// List returns every document directly under the root as a navigation entry.
// The default document sorts first, the rest lexicographically by filename.
// The entry whose filename equals active is flagged.
func (d *DirIndex) List(ctx context.Context, active string) ([]entities.NavEntry, error) {
	dirents, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("scanning document root: %w", err)
	}

	entries := make([]entities.NavEntry, 0, len(dirents))
	for _, ent := range dirents {
		if ent.IsDir() || !entities.IsDocument(ent.Name()) {
			continue
		}
		if d.excluded(filepath.Join(d.root, ent.Name())) {
			continue
		}
		entries = append(entries, entities.NavEntry{
			Filename:    ent.Name(),
			DisplayName: FormatDisplayName(ent.Name()),
			Description: d.describe(ent.Name()),
			Active:      ent.Name() == active,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		di := entries[i].Filename == d.defaultFile
		dj := entries[j].Filename == d.defaultFile
		if di != dj {
			return di
		}
		return entries[i].Filename < entries[j].Filename
	})
	return entries, nil
}

// Load reads one document by its root-relative name.
func (d *DirIndex) Load(ctx context.Context, name string) (*entities.Document, error) {
	path, err := entities.ResolveDocument(d.root, name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", entities.ErrNotFound, name)
		}
		return nil, fmt.Errorf("stating %s: %w", name, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", entities.ErrNotDocument, name)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return &entities.Document{
		Name:    name,
		Path:    path,
		Raw:     string(raw),
		ModTime: info.ModTime(),
	}, nil
}

// excluded reports whether any lowercase segment of the absolute path is in
// the exclusion set. Matching the full path catches documents reached through
// an excluded directory, not just direct children.
func (d *DirIndex) excluded(path string) bool {
	if len(d.exclusions) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	for _, segment := range strings.Split(abs, string(filepath.Separator)) {
		if _, ok := d.exclusions[strings.ToLower(segment)]; ok {
			return true
		}
	}
	return false
}
