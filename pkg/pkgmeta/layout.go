package pkgmeta

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LayoutFile is the content index the simulator reads to map package files.
const LayoutFile = "layout.json"

// fileTimeEpochDelta is the 1601-01-01 to 1970-01-01 offset in 100ns ticks;
// layout.json dates use the Windows FILETIME scale.
const fileTimeEpochDelta = 116444736000000000

// LayoutEntry describes one file of the package, with a forward-slash
// relative path.
type LayoutEntry struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
	Date int64  `json:"date"`
}

type layoutDocument struct {
	Content []LayoutEntry `json:"content"`
}

// FileTime converts a modification time to the FILETIME tick count.
func FileTime(t time.Time) int64 {
	return t.UnixNano()/100 + fileTimeEpochDelta
}

// ScanLayout walks the package root and indexes every file except the two
// descriptors themselves. Entries come back sorted by path so repeated
// builds produce identical layouts.
func ScanLayout(root string) ([]LayoutEntry, error) {
	var entries []LayoutEntry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if rel == ManifestFile || rel == LayoutFile {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		entries = append(entries, LayoutEntry{
			Path: filepath.ToSlash(rel),
			Size: info.Size(),
			Date: FileTime(info.ModTime()),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan package %q: %w", root, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	return entries, nil
}

// WriteLayout scans the package root and writes its layout.json.
func WriteLayout(root string) error {
	entries, err := ScanLayout(root)
	if err != nil {
		return err
	}

	if entries == nil {
		entries = []LayoutEntry{}
	}

	data, err := json.MarshalIndent(layoutDocument{Content: entries}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal layout: %w", err)
	}

	path := filepath.Join(root, LayoutFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}

	return nil
}
