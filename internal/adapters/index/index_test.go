package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docview/docview/internal/domain/entities"
)

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func names(entries []entities.NavEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Filename
	}
	return out
}

func TestDirIndex_List(t *testing.T) {
	t.Parallel()

	t.Run("default document sorts first then lexicographic", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, dir, "ZZZ.md", "# World\n")
		writeDoc(t, dir, "AAA.md", "# Alpha\n")
		writeDoc(t, dir, "README.md", "# Hello\n")
		writeDoc(t, dir, "MMM.md", "# Middle\n")

		idx := New(dir, "README.md", nil)
		entries, err := idx.List(context.Background(), "")
		require.NoError(t, err)

		assert.Equal(t, []string{"README.md", "AAA.md", "MMM.md", "ZZZ.md"}, names(entries))
	})

	t.Run("skips subdirectories and non-documents", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, dir, "README.md", "# Hello\n")
		writeDoc(t, dir, "style.css", "body {}\n")
		writeDoc(t, dir, "notes.txt", "plain\n")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
		writeDoc(t, filepath.Join(dir, "nested"), "deep.md", "# Deep\n")

		idx := New(dir, "README.md", nil)
		entries, err := idx.List(context.Background(), "")
		require.NoError(t, err)

		assert.Equal(t, []string{"README.md"}, names(entries))
	})

	t.Run("marks the active entry", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, dir, "README.md", "# Hello\n")
		writeDoc(t, dir, "guide.md", "# Guide\n")

		idx := New(dir, "README.md", nil)
		entries, err := idx.List(context.Background(), "guide.md")
		require.NoError(t, err)

		require.Len(t, entries, 2)
		assert.False(t, entries[0].Active)
		assert.True(t, entries[1].Active)
	})

	t.Run("exclusion matches path segments case-insensitively", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		root := filepath.Join(base, "Archive")
		require.NoError(t, os.Mkdir(root, 0o755))
		writeDoc(t, root, "README.md", "# Hidden\n")

		idx := New(root, "README.md", []string{"ARCHIVE"})
		entries, err := idx.List(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, entries)

		// Same root without the exclusion lists normally.
		idx = New(root, "README.md", nil)
		entries, err = idx.List(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("exclusion can target a single document by name", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, dir, "README.md", "# Hello\n")
		writeDoc(t, dir, "DRAFT.md", "# Draft\n")

		idx := New(dir, "README.md", []string{"draft.md"})
		entries, err := idx.List(context.Background(), "")
		require.NoError(t, err)

		assert.Equal(t, []string{"README.md"}, names(entries))
	})

	t.Run("derives descriptions from first heading", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, dir, "README.md", "# ⭐ Architecture Overview\n\nBody.\n")
		writeDoc(t, dir, "bare.md", "no heading here\njust prose\n")

		idx := New(dir, "README.md", nil)
		entries, err := idx.List(context.Background(), "")
		require.NoError(t, err)

		require.Len(t, entries, 2)
		assert.Equal(t, "Architecture Overview", entries[0].Description)
		assert.Equal(t, "bare", entries[1].Description)
	})

	t.Run("missing root is an error", func(t *testing.T) {
		t.Parallel()
		idx := New(filepath.Join(t.TempDir(), "gone"), "README.md", nil)
		_, err := idx.List(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestDirIndex_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads content and modification time", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, dir, "README.md", "# Hello\n")

		idx := New(dir, "README.md", nil)
		doc, err := idx.Load(context.Background(), "README.md")
		require.NoError(t, err)

		assert.Equal(t, "README.md", doc.Name)
		assert.Equal(t, "# Hello\n", doc.Raw)
		assert.Equal(t, filepath.Join(dir, "README.md"), doc.Path)
		assert.False(t, doc.ModTime.IsZero())
	})

	t.Run("loads documents from subdirectories", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
		writeDoc(t, filepath.Join(dir, "sub"), "deep.md", "# Deep\n")

		idx := New(dir, "README.md", nil)
		doc, err := idx.Load(context.Background(), "sub/deep.md")
		require.NoError(t, err)
		assert.Equal(t, "# Deep\n", doc.Raw)
	})

	t.Run("missing document returns ErrNotFound", func(t *testing.T) {
		t.Parallel()
		idx := New(t.TempDir(), "README.md", nil)
		_, err := idx.Load(context.Background(), "gone.md")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("rejects names that escape the root", func(t *testing.T) {
		t.Parallel()
		idx := New(t.TempDir(), "README.md", nil)
		_, err := idx.Load(context.Background(), "../outside.md")
		assert.ErrorIs(t, err, entities.ErrNotDocument)
	})

	t.Run("rejects non-document names", func(t *testing.T) {
		t.Parallel()
		idx := New(t.TempDir(), "README.md", nil)
		_, err := idx.Load(context.Background(), "script.sh")
		assert.ErrorIs(t, err, entities.ErrNotDocument)
	})

	t.Run("rejects a directory named like a document", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.md"), 0o755))

		idx := New(dir, "README.md", nil)
		_, err := idx.Load(context.Background(), "folder.md")
		assert.ErrorIs(t, err, entities.ErrNotDocument)
	})
}

func TestFormatDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     string
	}{
		{"README.md", "README"},
		{"readme.md", "README"},
		{"ZZZ.md", "Zzz"},
		{"HLD_System_Design.md", "HLD - System Design"},
		{"HLD_HIGH_LEVEL_DESIGN.md", "HLD - High Level Design"},
		{"API_Design.md", "API - Design"},
		{"API.md", "Api"},
		{"system_design.md", "System Design"},
		{"SYSTEM_design.md", "System Design"},
		{"notes.md", "Notes"},
		{"a_b_c.md", "A B C"},
		{"V2_migration_plan.md", "V2 - Migration Plan"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatDisplayName(tt.filename))
		})
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	t.Run("heading past the read window falls back", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, dir, "late.md", "\n\n\n\n\n# Too Late\n")

		idx := New(dir, "README.md", nil)
		assert.Equal(t, "late", idx.describe("late.md"))
	})

	t.Run("heading inside the window wins", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, dir, "intro.md", "\n\n# 🔧 Setup Guide\n")

		idx := New(dir, "README.md", nil)
		assert.Equal(t, "Setup Guide", idx.describe("intro.md"))
	})

	t.Run("unreadable file falls back to stem", func(t *testing.T) {
		t.Parallel()
		idx := New(t.TempDir(), "README.md", nil)
		assert.Equal(t, "ghost", idx.describe("ghost.md"))
	})

	t.Run("heading of only decorations falls back", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeDoc(t, dir, "deco.md", "# ⭐📖\n")

		idx := New(dir, "README.md", nil)
		assert.Equal(t, "deco", idx.describe("deco.md"))
	})
}
