package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestScan_FindsMarkdownOrdered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blog/zebra.md", "z")
	writeFile(t, dir, "blog/alpha.md", "a")
	writeFile(t, dir, "newsletter/issue-1.md", "n")
	writeFile(t, dir, "blog/notes.txt", "skip me")

	sources, err := NewScanner(dir, []string{".md"}).Scan()
	require.NoError(t, err)
	require.Len(t, sources, 3)
	require.Equal(t, "blog/alpha.md", sources[0].RelPath)
	require.Equal(t, "blog/zebra.md", sources[1].RelPath)
	require.Equal(t, "newsletter/issue-1.md", sources[2].RelPath)
	require.Equal(t, []byte("a"), sources[0].Raw)
}

func TestScan_SkipsHidden(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blog/post.md", "p")
	writeFile(t, dir, ".drafts/wip.md", "w")
	writeFile(t, dir, "blog/.hidden.md", "h")

	sources, err := NewScanner(dir, []string{".md"}).Scan()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	require.Equal(t, "blog/post.md", sources[0].RelPath)
}

func TestScan_EmptyDir(t *testing.T) {
	sources, err := NewScanner(t.TempDir(), []string{".md"}).Scan()
	require.NoError(t, err)
	require.Empty(t, sources)
}
