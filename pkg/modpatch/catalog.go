package modpatch

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var (
	// ErrInvalidCatalog indicates a catalog that could not be decoded or that
	// holds an incomplete record.
	ErrInvalidCatalog = errors.New("invalid modification catalog")

	// ErrEmptyCatalog indicates a catalog without any records.
	ErrEmptyCatalog = errors.New("empty modification catalog")
)

// Record describes one knob whose momentary push interaction is replaced.
// ButtonId names the component to delete, KnobId the component whose template
// reference is rewritten; the remaining four fields become the parameters of
// the injected infinite-push template use.
type Record struct {
	ButtonId       string `yaml:"ButtonId"`
	KnobId         string `yaml:"KnobId"`
	KnobAnimName   string `yaml:"KnobAnimName"`
	KnobChangeName string `yaml:"KnobChangeName"`
	PushAnimName   string `yaml:"PushAnimName"`
	PushName       string `yaml:"PushName"`
}

// Catalog is an ordered list of modification records. Records are
// independent; order only affects diagnostics.
type Catalog struct {
	Modifications []Record `yaml:"Modifications"`
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() (Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// ParseCatalog decodes and validates a YAML catalog document.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}

	if len(c.Modifications) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}

	for i, rec := range c.Modifications {
		if rec.ButtonId == "" || rec.KnobId == "" {
			return Catalog{}, fmt.Errorf("%w: record %d is missing ButtonId or KnobId", ErrInvalidCatalog, i)
		}
	}

	return c, nil
}
