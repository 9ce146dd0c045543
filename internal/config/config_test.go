package config

import (
	"os"
	"testing"

	apperrors "github.com/nathanjclark/www/internal/errors"
)

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("site:\n  title: Notes\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Content.Dir != "./content" {
		t.Errorf("expected default content dir, got %s", cfg.Content.Dir)
	}
	if len(cfg.Content.Extensions) != 1 || cfg.Content.Extensions[0] != ".md" {
		t.Errorf("expected default extensions, got %v", cfg.Content.Extensions)
	}
	if cfg.Build.Workers != 4 {
		t.Errorf("expected default workers 4, got %d", cfg.Build.Workers)
	}
	if cfg.Feed.Limit != 20 {
		t.Errorf("expected default feed limit 20, got %d", cfg.Feed.Limit)
	}
}

func TestParseEnvExpansion(t *testing.T) {
	os.Setenv("TEST_CONTENT_DIR", "/tmp/site-content")
	defer os.Unsetenv("TEST_CONTENT_DIR")

	data := []byte("content:\n  dir: ${TEST_CONTENT_DIR}\n")
	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Content.Dir != "/tmp/site-content" {
		t.Errorf("expected expanded dir, got %s", cfg.Content.Dir)
	}
}

func TestValidateDuplicateAuthor(t *testing.T) {
	data := []byte(`
authors:
  - id: nathan
    name: Nathan Clark
  - id: nathan
    name: Another Nathan
`)
	_, err := Parse(data)
	if err == nil {
		t.Fatal("expected duplicate author error")
	}
	if !apperrors.IsCategory(err, apperrors.CategoryConfig) {
		t.Errorf("expected config category, got %v", apperrors.GetCategory(err))
	}
	if !apperrors.IsFatal(err) {
		t.Error("config errors are fatal")
	}
}

func TestAuthorSet(t *testing.T) {
	cfg, err := Parse([]byte(`
authors:
  - id: nathan
    name: Nathan Clark
    url: https://example.com
`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	set := cfg.AuthorSet()
	a, ok := set["nathan"]
	if !ok {
		t.Fatal("expected nathan in author set")
	}
	if a.Name != "Nathan Clark" {
		t.Errorf("unexpected author name %q", a.Name)
	}
}
