package msfs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crjtools/knobpatch/pkg/msfs"
)

func TestInstalledPackagesPath(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		content string
		want    string
		wantErr error
	}{
		"quoted_with_spaces": {
			content: "Version 72\r\n" +
				"{Graphics\r\n" +
				"\tPreset \"High\"\r\n" +
				"}\r\n" +
				"InstalledPackagesPath \"D:\\Flight Simulator\\Packages\"\r\n",
			want: `D:\Flight Simulator\Packages`,
		},
		"indented": {
			content: "\tInstalledPackagesPath \"/home/sim/packages\"\n",
			want:    "/home/sim/packages",
		},
		"missing_key": {
			content: "Version 72\r\n",
			wantErr: msfs.ErrNoPackagesPath,
		},
		"unquoted_value": {
			content: "InstalledPackagesPath D:\\Packages\r\n",
			wantErr: msfs.ErrNoPackagesPath,
		},
	}
	for name, tc := range tcs {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "UserCfg.opt")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			got, err := msfs.InstalledPackagesPath(path)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInstalledPackagesPathMissingFile(t *testing.T) {
	t.Parallel()

	_, err := msfs.InstalledPackagesPath(filepath.Join(t.TempDir(), "UserCfg.opt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindVendorPackage(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	official := filepath.Join(root, "Official", "OneStore", "aerosoft-crj")
	community := filepath.Join(root, "Community", "aerosoft-crj")
	require.NoError(t, os.MkdirAll(official, 0o750))
	require.NoError(t, os.MkdirAll(community, 0o750))

	// The official tree wins over the community copy.
	got, err := msfs.FindVendorPackage(root, "aerosoft-crj")
	require.NoError(t, err)
	assert.Equal(t, official, got)

	_, err = msfs.FindVendorPackage(root, "aerosoft-crj-pro")
	require.ErrorIs(t, err, msfs.ErrPackageNotFound)
}
