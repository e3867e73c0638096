package cli

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/crjtools/knobpatch/pkg/buildcmd"
)

const (
	buildDesc = `This command builds the infinite-knob-push override package
`
	buildExample = `  knobpatch build
  # Build into the Community folder of the installed simulator

  knobpatch build --packages-path "D:\MSFS\Packages"
  # Skip UserCfg.opt discovery and use an explicit packages root

  knobpatch build --output ./dist/aerosoft-crj-infinite-knobs
  # Build into an explicit directory instead of the Community folder
`
)

// NewBuildCmd returns the build command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "build",
		Short:        "Build the infinite-knob-push override package",
		Long:         buildDesc,
		Example:      buildExample,
		SilenceUsage: true,
		RunE: func(cc *cobra.Command, _ []string) error {
			opts, err := buildOptions(cc)
			if err != nil {
				return err
			}

			p, err := buildcmd.NewPackage(opts...)
			if err != nil {
				return fmt.Errorf("invalid build configuration: %w", err)
			}

			//nolint:wrapcheck // Build errors carry full context.
			return p.Build()
		},
	}

	cmd.Flags().String("packages-path", "", "Simulator packages root (skips UserCfg.opt discovery)")
	cmd.Flags().String("usercfg", "", "Explicit UserCfg.opt path for discovery")
	cmd.Flags().String("output", "", "Output directory (defaults to Community/<package> under the packages root)")
	cmd.Flags().String("package-version", "", "Override the package version written to the manifest")

	if err := cmd.MarkFlagDirname("packages-path"); err != nil {
		panic(err)
	}

	if err := cmd.MarkFlagFilename("usercfg", "opt"); err != nil {
		panic(err)
	}

	if err := cmd.MarkFlagDirname("output"); err != nil {
		panic(err)
	}

	return cmd
}

func buildOptions(cc *cobra.Command) ([]buildcmd.Option, error) {
	flags := cc.Flags()

	var merr error

	packagesPath, err := flags.GetString("packages-path")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	userCfg, err := flags.GetString("usercfg")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	output, err := flags.GetString("output")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	pkgVersion, err := flags.GetString("package-version")
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		return nil, fmt.Errorf("invalid argument: %w", merr)
	}

	var opts []buildcmd.Option

	if packagesPath != "" {
		opts = append(opts, buildcmd.WithPackagesPath(packagesPath))
	}

	if userCfg != "" {
		opts = append(opts, buildcmd.WithUserCfgPath(userCfg))
	}

	if output != "" {
		opts = append(opts, buildcmd.WithOutputPath(output))
	}

	if pkgVersion != "" {
		opts = append(opts, buildcmd.WithPackageVersion(pkgVersion))
	}

	return opts, nil
}
