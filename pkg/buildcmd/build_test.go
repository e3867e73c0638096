package buildcmd_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crjtools/knobpatch/pkg/buildcmd"
	"github.com/crjtools/knobpatch/pkg/modelxml"
	"github.com/crjtools/knobpatch/pkg/modpatch"
	"github.com/crjtools/knobpatch/pkg/msfs"
)

const testInterior = "\r\n" +
	"<ModelInfo guid=\"{00000000-0000-4000-8000-00000000c0ffee}\"/>\r\n" +
	"<ModelBehaviors>\r\n" +
	"\t<Component ID=\"PUSH_FCP_SPEED\">\r\n" +
	"\t\t<UseTemplate Name=\"ASOBO_GT_Push_Button\"/>\r\n" +
	"\t</Component>\r\n" +
	"\t<Component ID=\"KNOB_FCP_SPEED\">\r\n" +
	"\t\t<UseTemplate Name=\"ASCRJ_Knob_Push_Template\"/>\r\n" +
	"\t</Component>\r\n" +
	"</ModelBehaviors>\r\n"

// vendorTree lays out a minimal aerosoft-crj package under a packages root.
func vendorTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	vendor := filepath.Join(root, "Official", "OneStore", "aerosoft-crj")

	write := func(rel, content string) {
		path := filepath.Join(vendor, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}

	write(filepath.Join("ModelBehaviorDefs", "ASCRJ", "ASCRJ_Templates.xml"),
		"<ModelBehaviorTemplates>\r\n</ModelBehaviorTemplates>\r\n")

	for _, variant := range []string{"Aerosoft_CRJ_550", "Aerosoft_CRJ_700"} {
		for _, model := range []string{"model", "model.WT530"} {
			name := "CRJ550_Interior.xml"
			if strings.Contains(variant, "700") {
				name = "CRJ700_Interior.xml"
			}

			write(filepath.Join("SimObjects", "Airplanes", variant, model, name), testInterior)
		}
	}

	return root
}

func testCatalog() modpatch.Catalog {
	return modpatch.Catalog{Modifications: []modpatch.Record{{
		ButtonId:       "PUSH_FCP_SPEED",
		KnobId:         "KNOB_FCP_SPEED",
		KnobAnimName:   "KNOB_FCP_SPEED",
		KnobChangeName: "FCP_SPEED_KNOB",
		PushAnimName:   "PUSH_FCP_SPEED",
		PushName:       "FCP_SPEED_PUSH",
	}}}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	root := vendorTree(t)

	p, err := buildcmd.NewPackage(
		buildcmd.WithPackagesPath(root),
		buildcmd.WithCatalog(testCatalog()),
	)
	require.NoError(t, err)

	require.NoError(t, p.Build())

	outDir := filepath.Join(root, "Community", "aerosoft-crj-infinite-knobs")

	// Patched interiors exist in every mirrored model directory and no
	// longer hold the push button.
	for _, rel := range []string{
		filepath.Join("SimObjects", "Airplanes", "Aerosoft_CRJ_550", "model", "CRJ550_Interior.xml"),
		filepath.Join("SimObjects", "Airplanes", "Aerosoft_CRJ_550", "model.WT530", "CRJ550_Interior.xml"),
		filepath.Join("SimObjects", "Airplanes", "Aerosoft_CRJ_700", "model", "CRJ700_Interior.xml"),
		filepath.Join("SimObjects", "Airplanes", "Aerosoft_CRJ_700", "model.WT530", "CRJ700_Interior.xml"),
	} {
		doc, err := modelxml.ReadFile(filepath.Join(outDir, rel))
		require.NoError(t, err, rel)
		assert.Empty(t, modelxml.FindByAttr(doc.Behaviors, "ID", "PUSH_FCP_SPEED"), rel)
		require.Len(t, modelxml.FindByAttr(doc.Behaviors, "ID", "KNOB_FCP_SPEED"), 1, rel)
	}

	// The template file was copied and extended with the infinite-push
	// template the patched references point at.
	templates, err := os.ReadFile(filepath.Join(outDir, "ModelBehaviorDefs", "ASCRJ", "ASCRJ_Templates.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(templates), "<ModelBehaviorTemplates>")
	assert.Contains(t, string(templates), `Name="`+modpatch.TemplateName+`"`)

	// Descriptors are in place; layout indexes every file except itself and
	// the manifest.
	var manifest struct {
		ContentType    string `json:"content_type"`
		PackageVersion string `json:"package_version"`
	}

	manifestData, err := os.ReadFile(filepath.Join(outDir, "manifest.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(manifestData, &manifest))
	assert.Equal(t, "MISC", manifest.ContentType)
	assert.Equal(t, "0.1.0", manifest.PackageVersion)

	var layout struct {
		Content []struct {
			Path string `json:"path"`
		} `json:"content"`
	}

	layoutData, err := os.ReadFile(filepath.Join(outDir, "layout.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(layoutData, &layout))
	assert.Len(t, layout.Content, 5)

	for _, entry := range layout.Content {
		assert.NotContains(t, entry.Path, `\`)
	}

	// The vendor interiors are untouched.
	vendorInterior := filepath.Join(root, "Official", "OneStore", "aerosoft-crj",
		"SimObjects", "Airplanes", "Aerosoft_CRJ_700", "model", "CRJ700_Interior.xml")
	data, err := os.ReadFile(vendorInterior)
	require.NoError(t, err)
	assert.Equal(t, testInterior, string(data))
}

func TestBuildDiscoversPackagesRoot(t *testing.T) {
	t.Parallel()

	root := vendorTree(t)
	outDir := filepath.Join(t.TempDir(), "pkg")

	userCfg := filepath.Join(t.TempDir(), "UserCfg.opt")
	require.NoError(t, os.WriteFile(userCfg, []byte("InstalledPackagesPath \""+root+"\"\r\n"), 0o600))

	p, err := buildcmd.NewPackage(
		buildcmd.WithUserCfgPath(userCfg),
		buildcmd.WithOutputPath(outDir),
		buildcmd.WithCatalog(testCatalog()),
		buildcmd.WithPackageVersion("1.2.3"),
	)
	require.NoError(t, err)

	require.NoError(t, p.Build())
	assert.FileExists(t, filepath.Join(outDir, "manifest.json"))

	manifestData, err := os.ReadFile(filepath.Join(outDir, "manifest.json"))
	require.NoError(t, err)
	assert.Contains(t, string(manifestData), `"package_version": "1.2.3"`)
}

func TestBuildFailures(t *testing.T) {
	t.Parallel()

	t.Run("vendor_package_missing", func(t *testing.T) {
		t.Parallel()

		p, err := buildcmd.NewPackage(
			buildcmd.WithPackagesPath(t.TempDir()),
			buildcmd.WithCatalog(testCatalog()),
		)
		require.NoError(t, err)

		require.ErrorIs(t, p.Build(), msfs.ErrPackageNotFound)
	})

	t.Run("malformed_vendor_interior_aborts", func(t *testing.T) {
		t.Parallel()

		root := vendorTree(t)
		bad := filepath.Join(root, "Official", "OneStore", "aerosoft-crj",
			"SimObjects", "Airplanes", "Aerosoft_CRJ_550", "model", "CRJ550_Interior.xml")
		require.NoError(t, os.WriteFile(bad, []byte("<ModelInfo/>\r\n"), 0o600))

		p, err := buildcmd.NewPackage(
			buildcmd.WithPackagesPath(root),
			buildcmd.WithCatalog(testCatalog()),
		)
		require.NoError(t, err)

		err = p.Build()
		require.ErrorIs(t, err, modelxml.ErrMalformedDocument)

		// The run stopped before the descriptors were written.
		outDir := filepath.Join(root, "Community", "aerosoft-crj-infinite-knobs")
		assert.NoFileExists(t, filepath.Join(outDir, "manifest.json"))
		assert.NoFileExists(t, filepath.Join(outDir, "layout.json"))
	})

	t.Run("invalid_config", func(t *testing.T) {
		t.Parallel()

		_, err := buildcmd.NewPackage(buildcmd.WithVariants())
		require.ErrorIs(t, err, buildcmd.ErrInvalidConfig)
	})
}
