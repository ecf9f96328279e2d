// Package changewatch answers document change polls from filesystem
// modification times.
package changewatch

import (
	"context"
	"os"
	"strconv"

	"github.com/docview/docview/internal/domain/entities"
	"github.com/docview/docview/internal/domain/ports"
)

// StatWatcher derives change tokens from file modification times. It holds
// no state: authority over "has this changed" stays in the filesystem, the
// polling client keeps the only baseline, and a server restart loses
// nothing.
type StatWatcher struct {
	root string
}

var _ ports.ChangeWatcher = (*StatWatcher)(nil)

// New creates a watcher over root.
func New(root string) *StatWatcher {
	return &StatWatcher{root: root}
}

// CheckUpdate returns the current change token for file. Failures come back
// inside the status value, never as an error: the client polls this
// continuously and must always be able to parse the body. The token is the
// modification time in nanoseconds; calls without an intervening write
// return the same token, any write moves it.
func (w *StatWatcher) CheckUpdate(ctx context.Context, file string) entities.UpdateStatus {
	path, err := entities.ResolveDocument(w.root, file)
	if err != nil {
		return entities.UpdateStatus{File: file, Err: "File not found"}
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return entities.UpdateStatus{File: file, Err: "File not found"}
	}

	return entities.UpdateStatus{
		File:     file,
		Modified: strconv.FormatInt(info.ModTime().UnixNano(), 10),
	}
}
