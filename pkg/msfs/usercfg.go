package msfs

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNoPackagesPath indicates a UserCfg.opt without an
	// InstalledPackagesPath entry.
	ErrNoPackagesPath = errors.New("InstalledPackagesPath not found")

	// ErrNoUserCfg indicates no UserCfg.opt at any known location.
	ErrNoUserCfg = errors.New("UserCfg.opt not found")

	// ErrPackageNotFound indicates the vendor package is not installed under
	// the packages root.
	ErrPackageNotFound = errors.New("package not found")
)

const packagesPathKey = "InstalledPackagesPath"

// InstalledPackagesPath extracts the packages root from the simulator's
// UserCfg.opt. The file is a loose key/value format; the path value is
// double-quoted and may contain spaces.
func InstalledPackagesPath(userCfgPath string) (string, error) {
	f, err := os.Open(userCfgPath)
	if err != nil {
		return "", fmt.Errorf("open UserCfg.opt: %w", err)
	}
	defer f.Close() //nolint:errcheck // Read-only handle.

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, packagesPathKey) {
			continue
		}

		first := strings.Index(line, `"`)
		last := strings.LastIndex(line, `"`)
		if first < 0 || last <= first {
			return "", fmt.Errorf("%w: unquoted value in %q", ErrNoPackagesPath, userCfgPath)
		}

		return line[first+1 : last], nil
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read UserCfg.opt: %w", err)
	}

	return "", fmt.Errorf("%w in %q", ErrNoPackagesPath, userCfgPath)
}

// DefaultUserCfgPaths lists the UserCfg.opt locations of the MS Store and
// Steam editions, in probe order. Entries whose base environment variable is
// unset are omitted.
func DefaultUserCfgPaths() []string {
	var paths []string

	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		paths = append(paths, filepath.Join(
			localAppData, "Packages", "Microsoft.FlightSimulator_8wekyb3d8bbwe", "LocalCache", "UserCfg.opt",
		))
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		paths = append(paths, filepath.Join(appData, "Microsoft Flight Simulator", "UserCfg.opt"))
	}

	return paths
}

// LocateUserCfg returns the first existing default UserCfg.opt.
func LocateUserCfg() (string, error) {
	candidates := DefaultUserCfgPaths()

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: probed %d locations", ErrNoUserCfg, len(candidates))
}

// FindVendorPackage locates an installed package by name under the packages
// root, checking the official trees before the community folder.
func FindVendorPackage(packagesRoot, name string) (string, error) {
	subdirs := []string{
		filepath.Join("Official", "OneStore"),
		filepath.Join("Official", "Steam"),
		"Community",
	}

	for _, subdir := range subdirs {
		candidate := filepath.Join(packagesRoot, subdir, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %q under %q", ErrPackageNotFound, name, packagesRoot)
}
