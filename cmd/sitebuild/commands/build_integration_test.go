package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nathanjclark/www/internal/manifest"
)

// testSite writes a config file plus content tree and returns the config path.
func testSite(t *testing.T) (configPath, outputDir string) {
	t.Helper()
	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	outputDir = filepath.Join(root, "public")

	require.NoError(t, os.MkdirAll(filepath.Join(contentDir, "blog"), 0o755))
	post := "---\ntitle: Hello World\nauthor: nathan\ndate: 2023-08-28\ntags: [go]\n---\nFirst post.\n\n:icon{wave}\n"
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "blog", "hello.md"), []byte(post), 0o644))

	cfg := fmt.Sprintf(`site:
  title: Test Site
  base_url: https://example.com
content:
  dir: %s
build:
  output_dir: %s
  cache_dir: %s
feed:
  enabled: true
authors:
  - id: nathan
    name: Nathan Clark
`, contentDir, outputDir, filepath.Join(root, ".cache"))

	configPath = filepath.Join(root, "site.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0o644))
	return configPath, outputDir
}

func TestBuildCommandEndToEnd(t *testing.T) {
	configPath, outputDir := testSite(t)

	cmd := &BuildCmd{}
	root := &CLI{Config: configPath}
	require.NoError(t, cmd.Run(&Global{}, root))

	data, err := os.ReadFile(filepath.Join(outputDir, "manifest.json"))
	require.NoError(t, err)
	m, err := manifest.FromJSON(data)
	require.NoError(t, err)
	require.Contains(t, m.Entries, "/blog/hello/")
	require.Equal(t, 1, m.Stats.Documents)

	sitemap, err := os.ReadFile(filepath.Join(outputDir, "sitemap.txt"))
	require.NoError(t, err)
	require.Contains(t, string(sitemap), "https://example.com/blog/hello/")

	feed, err := os.ReadFile(filepath.Join(outputDir, "feed.xml"))
	require.NoError(t, err)
	require.Contains(t, string(feed), "<title>Hello World</title>")
}

func TestBuildCommandIncrementalSecondRun(t *testing.T) {
	configPath, outputDir := testSite(t)

	root := &CLI{Config: configPath}
	require.NoError(t, (&BuildCmd{}).Run(&Global{}, root))
	require.NoError(t, (&BuildCmd{}).Run(&Global{}, root))

	data, err := os.ReadFile(filepath.Join(outputDir, "manifest.json"))
	require.NoError(t, err)
	m, err := manifest.FromJSON(data)
	require.NoError(t, err)
	require.Equal(t, 1, m.Stats.CacheHits)
	require.Zero(t, m.Stats.CacheMisses)
}

func TestBuildCommandFreshFlagClearsCache(t *testing.T) {
	configPath, outputDir := testSite(t)

	root := &CLI{Config: configPath}
	require.NoError(t, (&BuildCmd{}).Run(&Global{}, root))
	require.NoError(t, (&BuildCmd{Fresh: true}).Run(&Global{}, root))

	data, err := os.ReadFile(filepath.Join(outputDir, "manifest.json"))
	require.NoError(t, err)
	m, err := manifest.FromJSON(data)
	require.NoError(t, err)
	require.Zero(t, m.Stats.CacheHits)
	require.Equal(t, 1, m.Stats.CacheMisses)
}
