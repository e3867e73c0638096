package buildcmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/crjtools/knobpatch/pkg/modpatch"
)

// ErrInvalidConfig indicates a package configuration that cannot build.
var ErrInvalidConfig = errors.New("invalid package config")

// Variant is one aircraft variant of the vendor package. Folder is the
// variant directory relative to the package root; its model* subdirectories
// each hold one copy of InteriorFile.
type Variant struct {
	Name         string
	Folder       string
	InteriorFile string
}

// Package is the full configuration of one override package build. All
// process-wide constants (names, versions, the variant set) live here rather
// than in file-scope state, so tests substitute them freely.
type Package struct {
	// PackagesPath is the simulator packages root. Empty means discover it
	// through UserCfg.opt.
	PackagesPath string

	// UserCfgPath overrides the UserCfg.opt location used for discovery.
	UserCfgPath string

	// OutputPath overrides the output directory. Empty means
	// Community/<Name> under the packages root.
	OutputPath string

	Name               string
	Title              string
	Manufacturer       string
	Creator            string
	PackageVersion     string
	MinimumGameVersion string
	ReleaseNote        string

	VendorPackage   string
	TemplateDefsDir string
	TemplateFile    string

	Variants []Variant
	Catalog  modpatch.Catalog
}

// NewPackage returns the CRJ override package configuration with the
// embedded catalog, adjusted by opts.
func NewPackage(opts ...Option) (*Package, error) {
	catalog, err := modpatch.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	p := &Package{
		Name:               "aerosoft-crj-infinite-knobs",
		Title:              "Aerosoft CRJ Infinite Knob Push",
		Manufacturer:       "Aerosoft",
		Creator:            "crjtools",
		PackageVersion:     "0.1.0",
		MinimumGameVersion: "1.18.13",
		ReleaseNote:        "Replaces momentary knob pushes with infinite push interactions.",
		VendorPackage:      "aerosoft-crj",
		TemplateDefsDir:    filepath.Join("ModelBehaviorDefs", "ASCRJ"),
		TemplateFile:       "ASCRJ_Templates.xml",
		Variants: []Variant{
			{
				Name:         "CRJ550",
				Folder:       filepath.Join("SimObjects", "Airplanes", "Aerosoft_CRJ_550"),
				InteriorFile: "CRJ550_Interior.xml",
			},
			{
				Name:         "CRJ700",
				Folder:       filepath.Join("SimObjects", "Airplanes", "Aerosoft_CRJ_700"),
				InteriorFile: "CRJ700_Interior.xml",
			},
		},
		Catalog: catalog,
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Package) validate() error {
	if p.Name == "" || p.VendorPackage == "" {
		return fmt.Errorf("%w: package and vendor names are required", ErrInvalidConfig)
	}

	if len(p.Variants) == 0 {
		return fmt.Errorf("%w: at least one variant is required", ErrInvalidConfig)
	}

	for _, v := range p.Variants {
		if v.Folder == "" || v.InteriorFile == "" {
			return fmt.Errorf("%w: variant %q is missing folder or interior file", ErrInvalidConfig, v.Name)
		}
	}

	if len(p.Catalog.Modifications) == 0 {
		return modpatch.ErrEmptyCatalog
	}

	return nil
}

// Option adjusts a Package under construction.
type Option func(*Package)

// WithPackagesPath pins the packages root, skipping UserCfg.opt discovery.
func WithPackagesPath(path string) Option {
	return func(p *Package) {
		p.PackagesPath = path
	}
}

// WithUserCfgPath reads InstalledPackagesPath from an explicit UserCfg.opt.
func WithUserCfgPath(path string) Option {
	return func(p *Package) {
		p.UserCfgPath = path
	}
}

// WithOutputPath writes the package to an explicit directory instead of the
// Community folder.
func WithOutputPath(path string) Option {
	return func(p *Package) {
		p.OutputPath = path
	}
}

// WithPackageVersion overrides the version stamped into the manifest.
func WithPackageVersion(version string) Option {
	return func(p *Package) {
		p.PackageVersion = version
	}
}

// WithCatalog replaces the embedded modification catalog.
func WithCatalog(catalog modpatch.Catalog) Option {
	return func(p *Package) {
		p.Catalog = catalog
	}
}

// WithVariants replaces the aircraft variant set.
func WithVariants(variants ...Variant) Option {
	return func(p *Package) {
		p.Variants = variants
	}
}
