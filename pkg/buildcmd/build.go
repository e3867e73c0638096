package buildcmd

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	cp "github.com/otiai10/copy"

	"github.com/crjtools/knobpatch/pkg/msfs"
	"github.com/crjtools/knobpatch/pkg/pkgmeta"
)

// templateFragment is the infinite-push template definition appended to the
// vendor's template file. Its Name attribute must stay in lockstep with
// modpatch.TemplateName.
//
//go:embed templates/knob_infinite_push.xml
var templateFragment []byte

// Build produces the override package. Steps run strictly in sequence and
// the first failure aborts the build; the partially written output directory
// is left behind and reset by the next run.
func (p *Package) Build() error {
	logger := slog.With(
		slog.String("cmd", "build"),
		slog.String("package", p.Name),
	)

	packagesRoot, err := p.resolvePackagesRoot()
	if err != nil {
		return err
	}

	logger.Debug("resolved packages root", slog.String("path", packagesRoot))

	vendorDir, err := msfs.FindVendorPackage(packagesRoot, p.VendorPackage)
	if err != nil {
		return err
	}

	logger.Info("found vendor package", slog.String("path", vendorDir))

	outDir := p.OutputPath
	if outDir == "" {
		outDir = filepath.Join(packagesRoot, "Community", p.Name)
	}

	if err := resetDir(outDir); err != nil {
		return err
	}

	logger.Info("building package", slog.String("path", outDir))

	if err := p.installTemplates(vendorDir, outDir); err != nil {
		return err
	}

	for _, variant := range p.Variants {
		logger.Info("patching variant", slog.String("variant", variant.Name))

		err := p.Catalog.PatchModels(
			filepath.Join(vendorDir, variant.Folder),
			filepath.Join(outDir, variant.Folder),
			variant.InteriorFile,
		)
		if err != nil {
			return fmt.Errorf("variant %q: %w", variant.Name, err)
		}
	}

	if err := p.manifest().Write(outDir); err != nil {
		return err
	}

	if err := pkgmeta.WriteLayout(outDir); err != nil {
		return err
	}

	logger.Info("package built", slog.String("path", outDir))

	return nil
}

func (p *Package) resolvePackagesRoot() (string, error) {
	if p.PackagesPath != "" {
		return p.PackagesPath, nil
	}

	userCfg := p.UserCfgPath
	if userCfg == "" {
		located, err := msfs.LocateUserCfg()
		if err != nil {
			return "", err
		}

		userCfg = located
	}

	root, err := msfs.InstalledPackagesPath(userCfg)
	if err != nil {
		return "", err
	}

	return root, nil
}

// installTemplates copies the vendor's behavior template definitions into
// the output package and appends the infinite-push template fragment to the
// knob templates file. The simulator merges template definitions across
// packages by file path, so the whole directory is mirrored.
func (p *Package) installTemplates(vendorDir, outDir string) error {
	src := filepath.Join(vendorDir, p.TemplateDefsDir)
	dst := filepath.Join(outDir, p.TemplateDefsDir)

	if err := cp.Copy(src, dst); err != nil {
		return fmt.Errorf("copy template definitions: %w", err)
	}

	target := filepath.Join(dst, p.TemplateFile)

	f, err := os.OpenFile(target, os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open template file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Close error caught below on the happy path.

	if _, err := f.Write(append([]byte("\r\n"), templateFragment...)); err != nil {
		return fmt.Errorf("append template fragment to %q: %w", target, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close template file %q: %w", target, err)
	}

	return nil
}

func (p *Package) manifest() pkgmeta.Manifest {
	return pkgmeta.Manifest{
		ContentType:        "MISC",
		Title:              p.Title,
		Manufacturer:       p.Manufacturer,
		Creator:            p.Creator,
		PackageVersion:     p.PackageVersion,
		MinimumGameVersion: p.MinimumGameVersion,
		ReleaseNotes: pkgmeta.ReleaseNotes{
			Neutral: pkgmeta.ReleaseNote{
				LastUpdate: fmt.Sprintf("%s (%s)", p.ReleaseNote, time.Now().Format("2006-01-02")),
			},
		},
	}
}

func resetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("reset output directory %q: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output directory %q: %w", dir, err)
	}

	return nil
}
