package pkgmeta

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrMarshalManifest indicates the manifest could not be serialized.
var ErrMarshalManifest = errors.New("marshal manifest")

// ManifestFile is the descriptor file name the simulator probes for.
const ManifestFile = "manifest.json"

// Dependency names another package this package requires at load time.
type Dependency struct {
	Name           string `json:"name"`
	PackageVersion string `json:"package_version"`
}

// Manifest mirrors the manifest.json document shape. Field order follows the
// files the simulator itself ships.
type Manifest struct {
	Dependencies       []Dependency `json:"dependencies"`
	ContentType        string       `json:"content_type"`
	Title              string       `json:"title"`
	Manufacturer       string       `json:"manufacturer"`
	Creator            string       `json:"creator"`
	PackageVersion     string       `json:"package_version"`
	MinimumGameVersion string       `json:"minimum_game_version"`
	ReleaseNotes       ReleaseNotes `json:"release_notes"`
}

type ReleaseNotes struct {
	Neutral ReleaseNote `json:"neutral"`
}

type ReleaseNote struct {
	LastUpdate   string `json:"LastUpdate"`
	OlderHistory string `json:"OlderHistory"`
}

// Marshal renders the manifest as indented JSON with a trailing newline.
func (m Manifest) Marshal() ([]byte, error) {
	if m.Dependencies == nil {
		// The simulator wants an explicit empty list, not null.
		m.Dependencies = []Dependency{}
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshalManifest, err)
	}

	return append(data, '\n'), nil
}

// Write places manifest.json into the package root.
func (m Manifest) Write(root string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}

	path := filepath.Join(root, ManifestFile)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	return nil
}
