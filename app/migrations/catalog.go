package migrations

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/FelixBlom97/EloStealo/app/models"
)

// Catalog is the versioned rule list in rules.json.
type Catalog struct {
	Version uint64        `json:"version"`
	Rules   []models.Rule `json:"rules"`
}

// VersionFile is the applied catalog version, kept in migrations.yml.
type VersionFile struct {
	Version uint64 `yaml:"version"`
}

// LoadCatalog reads the embedded rules.json.
func LoadCatalog() (Catalog, error) {
	return ReadCatalog(FS, "rules.json")
}

func ReadCatalog(fsys fs.FS, name string) (Catalog, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Catalog{}, fmt.Errorf("read %s: %w", name, err)
	}
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("decode %s: %w", name, err)
	}
	seen := make(map[int]bool, len(c.Rules))
	for _, r := range c.Rules {
		if seen[r.ID] {
			return Catalog{}, fmt.Errorf("%s: duplicate rule id %d", name, r.ID)
		}
		seen[r.ID] = true
	}
	return c, nil
}

// ReadVersion returns the applied version, 0 if the file does not exist yet.
func ReadVersion(path string) (uint64, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	var v VersionFile
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return v.Version, nil
}

func WriteVersion(path string, version uint64) error {
	raw, err := yaml.Marshal(VersionFile{Version: version})
	if err != nil {
		return fmt.Errorf("encode version: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
