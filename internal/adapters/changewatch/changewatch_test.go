package changewatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatWatcher_CheckUpdate(t *testing.T) {
	t.Parallel()

	t.Run("token is stable without writes", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.md"), []byte("# One\n"), 0o644))

		w := New(dir)
		first := w.CheckUpdate(context.Background(), "doc.md")
		second := w.CheckUpdate(context.Background(), "doc.md")

		require.True(t, first.OK())
		require.True(t, second.OK())
		assert.Equal(t, first.Modified, second.Modified)
		assert.Equal(t, "doc.md", first.File)
	})

	t.Run("token moves when the file is written", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "doc.md")
		require.NoError(t, os.WriteFile(path, []byte("# One\n"), 0o644))

		w := New(dir)
		before := w.CheckUpdate(context.Background(), "doc.md")
		require.True(t, before.OK())

		later := time.Now().Add(3 * time.Second)
		require.NoError(t, os.Chtimes(path, later, later))

		after := w.CheckUpdate(context.Background(), "doc.md")
		require.True(t, after.OK())
		assert.NotEqual(t, before.Modified, after.Modified)
	})

	t.Run("missing file degrades to an error payload", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		w := New(dir)

		status := w.CheckUpdate(context.Background(), "does-not-exist.md")
		assert.False(t, status.OK())
		assert.Equal(t, "File not found", status.Err)
		assert.Equal(t, "does-not-exist.md", status.File)
		assert.Empty(t, status.Modified)

		// The watcher keeps answering after a failed check.
		require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.md"), []byte("# Hi\n"), 0o644))
		assert.True(t, w.CheckUpdate(context.Background(), "doc.md").OK())
	})

	t.Run("non-document names are rejected", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "script.sh"), []byte("x"), 0o644))

		w := New(dir)
		status := w.CheckUpdate(context.Background(), "script.sh")
		assert.False(t, status.OK())
	})

	t.Run("names escaping the root are rejected", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		root := filepath.Join(base, "docs")
		require.NoError(t, os.Mkdir(root, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(base, "secret.md"), []byte("# S\n"), 0o644))

		w := New(root)
		status := w.CheckUpdate(context.Background(), "../secret.md")
		assert.False(t, status.OK())
	})

	t.Run("directories are not documents", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.md"), 0o755))

		w := New(dir)
		status := w.CheckUpdate(context.Background(), "folder.md")
		assert.False(t, status.OK())
	})
}
