package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "blockrt.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[trace]
enabled = true
capacity = 4096
store-path = "traces/run.db"

[heap]
poison-on-free = true
`)

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !m.Trace.Enabled || m.Trace.Capacity != 4096 {
		t.Errorf("trace config = %+v", m.Trace)
	}
	if !m.Heap.PoisonOnFree {
		t.Error("poison-on-free not parsed")
	}
	want := filepath.Join(m.Dir, "traces", "run.db")
	if got := m.StorePath(); got != want {
		t.Errorf("StorePath = %q, want %q", got, want)
	}
}

func TestLoadRejectsNegativeCapacity(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `
[trace]
capacity = -1
`)
	if _, err := Load(dir); err == nil {
		t.Error("expected error for negative capacity")
	}
}

func TestLoadParseError(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `[trace`)
	if _, err := Load(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[trace]\nenabled = true\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if m == nil || !m.Trace.Enabled {
		t.Fatalf("manifest not found from nested dir: %+v", m)
	}
}

func TestFindAndLoadMissing(t *testing.T) {
	m, err := FindAndLoad(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Errorf("expected nil manifest, got %+v", m)
	}
}

func TestDefault(t *testing.T) {
	m := Default()
	if m.Trace.Enabled || m.Heap.PoisonOnFree {
		t.Errorf("defaults not zero: %+v", m)
	}
	if m.StorePath() != "" {
		t.Errorf("default store path = %q, want empty", m.StorePath())
	}
}
