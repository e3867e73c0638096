package modpatch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/crjtools/knobpatch/pkg/modelxml"
)

// ErrNoModels indicates a variant folder without any model directories,
// which means the vendor package layout changed underneath us.
var ErrNoModels = errors.New("no model directories")

// modelDirPrefix matches the per-model asset directories of an aircraft
// variant (model, model.WT530, ...).
const modelDirPrefix = "model"

// PatchModels applies the catalog to fileName in every model directory under
// srcDir, writing each patched document to the mirrored path under dstDir.
// Directories are processed strictly one at a time, in enumeration order;
// the order only affects log output. The first failing model aborts the
// batch, and a model whose patch fails produces no output file.
func (c Catalog) PatchModels(srcDir, dstDir, fileName string) error {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("enumerate model directories: %w", err)
	}

	logger := slog.With(slog.String("src", srcDir))

	patched := 0

	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), modelDirPrefix) {
			continue
		}

		logger.Info("patching model", slog.String("model", entry.Name()))

		if err := c.patchModel(
			filepath.Join(srcDir, entry.Name(), fileName),
			filepath.Join(dstDir, entry.Name()),
			fileName,
		); err != nil {
			return fmt.Errorf("model %q: %w", entry.Name(), err)
		}

		patched++
	}

	if patched == 0 {
		return fmt.Errorf("%w: no %s* directories under %q", ErrNoModels, modelDirPrefix, srcDir)
	}

	logger.Debug("variant patched", slog.Int("models", patched))

	return nil
}

func (c Catalog) patchModel(srcFile, dstDir, fileName string) error {
	doc, err := modelxml.ReadFile(srcFile)
	if err != nil {
		return err
	}

	if err := c.Apply(doc.Behaviors); err != nil {
		return fmt.Errorf("%q: %w", srcFile, err)
	}

	if err := os.MkdirAll(dstDir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	return doc.WriteFile(filepath.Join(dstDir, fileName))
}
