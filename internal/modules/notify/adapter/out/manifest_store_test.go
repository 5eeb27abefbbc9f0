package out_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mcad/internal/modules/notify/adapter/out"
)

func TestLoadMissingManifestIsNotAnError(t *testing.T) {
	t.Parallel()
	store := out.NewFileManifestStore(filepath.Join(t.TempDir(), "notifier.yml"))
	_, found, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("missing file must read as no notifier configured")
	}
}

func TestLoadManifestResolvesRelativeBinary(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "notifier.yml")
	content := strings.Join([]string{
		"name: chat-notifier",
		"version: 1.0.0",
		"binary: bin/chat-notifier",
		"sha256: " + strings.Repeat("ab", 32),
		"enabled: true",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	store := out.NewFileManifestStore(path)
	manifest, found, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatalf("manifest must be found")
	}
	if manifest.Binary != filepath.Join(dir, "bin", "chat-notifier") {
		t.Fatalf("relative binary must resolve against the manifest dir, got %s", manifest.Binary)
	}
	if err := manifest.Validate(); err != nil {
		t.Fatalf("manifest must validate: %v", err)
	}
}

func TestLoadManifestRejectsBadYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "notifier.yml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if _, _, err := out.NewFileManifestStore(path).Load(context.Background()); err == nil {
		t.Fatalf("unreadable manifest must error")
	}
}
