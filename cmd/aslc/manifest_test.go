package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	content := `
[package]
name = "demo"

[build]
main = "src/main.asl"
out_dir = "out"
max_diagnostics = 25
jobs = 2
`
	if err := os.WriteFile(filepath.Join(dir, "aslc.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	nested := filepath.Join(dir, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	// Discovery walks upward from a nested directory.
	m, ok, err := loadManifest(nested)
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if !ok {
		t.Fatalf("manifest not found")
	}
	if m.Root != dir {
		t.Fatalf("root = %q, want %q", m.Root, dir)
	}
	if m.Config.Package.Name != "demo" || m.Config.Build.Main != "src/main.asl" {
		t.Fatalf("config = %+v", m.Config)
	}
	if m.Config.Build.MaxDiagnostics != 25 || m.Config.Build.Jobs != 2 {
		t.Fatalf("build config = %+v", m.Config.Build)
	}
}

func TestLoadManifestAbsent(t *testing.T) {
	_, ok, err := loadManifest(t.TempDir())
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if ok {
		t.Fatalf("found a manifest in an empty directory")
	}
}

func TestTacOutputPath(t *testing.T) {
	if got := tacOutputPath(filepath.Join("src", "prog.asl"), nil); got != filepath.Join("src", "prog.t") {
		t.Fatalf("path = %q", got)
	}

	m := &manifest{Root: "proj", Config: manifestConfig{Build: buildConfig{OutDir: "out"}}}
	if got := tacOutputPath(filepath.Join("proj", "src", "prog.asl"), m); got != filepath.Join("proj", "out", "prog.t") {
		t.Fatalf("path = %q", got)
	}
}
