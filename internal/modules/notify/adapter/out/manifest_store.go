package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"mcad/internal/modules/notify/domain"
	notifyout "mcad/internal/modules/notify/port/out"

	"gopkg.in/yaml.v3"
)

// FileManifestStore reads the single notifier manifest from a yaml file
// next to the rest of the data directory. A missing file means no notifier
// is configured, which is not an error.
type FileManifestStore struct {
	path string
}

func NewFileManifestStore(path string) notifyout.ManifestStore {
	return &FileManifestStore{path: path}
}

func (s *FileManifestStore) Load(_ context.Context) (domain.Manifest, bool, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Manifest{}, false, nil
		}
		return domain.Manifest{}, false, fmt.Errorf("read notifier manifest: %w", err)
	}
	var manifest domain.Manifest
	if err := yaml.Unmarshal(b, &manifest); err != nil {
		return domain.Manifest{}, false, fmt.Errorf("decode notifier manifest: %w", err)
	}
	if manifest.Binary != "" && !filepath.IsAbs(manifest.Binary) {
		manifest.Binary = filepath.Clean(filepath.Join(filepath.Dir(s.path), manifest.Binary))
	}
	return manifest, true, nil
}
