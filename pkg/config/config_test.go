package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "h_gap: 32\ntruncate_len: 40\n")

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.HGap != 32 {
		t.Errorf("h_gap = %v, want 32", opts.HGap)
	}
	if opts.TruncateLen != 40 {
		t.Errorf("truncate_len = %d, want 40", opts.TruncateLen)
	}
	// Untouched keys keep their defaults.
	if opts.VGap != Defaults().VGap {
		t.Errorf("v_gap = %v, want default %v", opts.VGap, Defaults().VGap)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "hgap: 32\n")
	if _, err := Load(path); err == nil {
		t.Error("misspelled key should be an error, not silently ignored")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	for name, content := range map[string]string{
		"negative gap":  "h_gap: -5\n",
		"zero height":   "node_height: 0\n",
		"zero truncate": "truncate_len: 0\n",
	} {
		path := writeConfig(t, t.TempDir(), content)
		opts, err := Load(path)
		if err == nil {
			t.Errorf("%s: expected error", name)
		}
		if opts != Defaults() {
			t.Errorf("%s: invalid file should fall back to defaults", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	opts, err := Load(filepath.Join(t.TempDir(), FileName))
	if err == nil {
		t.Error("missing file should report an error")
	}
	if opts != Defaults() {
		t.Error("missing file should still hand back defaults")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "expand_depth: 5\n")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	opts, found := Discover(nested)
	if !strings.HasPrefix(found, root) {
		t.Errorf("found %q, want file under %q", found, root)
	}
	if opts.ExpandDepth != 5 {
		t.Errorf("expand_depth = %d, want 5", opts.ExpandDepth)
	}
}

func TestDiscoverNearestWins(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "expand_depth: 1\n")
	child := filepath.Join(root, "sub")
	if err := os.Mkdir(child, 0o755); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, child, "expand_depth: 9\n")

	opts, found := Discover(child)
	if filepath.Dir(found) != child {
		t.Errorf("found %q, want the nearer file in %q", found, child)
	}
	if opts.ExpandDepth != 9 {
		t.Errorf("expand_depth = %d, want 9", opts.ExpandDepth)
	}
}

func TestDiscoverNoFile(t *testing.T) {
	opts, found := Discover(t.TempDir())
	if found != "" {
		t.Errorf("found %q in an empty tree", found)
	}
	if opts != Defaults() {
		t.Error("no file should yield defaults")
	}
}
