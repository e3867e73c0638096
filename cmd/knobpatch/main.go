package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/crjtools/knobpatch/internal/cli"
)

const (
	cmdName = "knobpatch"

	shortDesc = "Build an MSFS package that makes CRJ knob pushes infinite."
	longDesc  = `knobpatch builds a Microsoft Flight Simulator community package that
replaces the momentary push interaction on the Aerosoft CRJ's cockpit
knobs with an infinite push interaction.

The installed vendor package is read, never modified: the patched model
behavior files, the extended behavior templates, and the package
descriptors are written into a new, separately-loadable package.
`
)

func main() {
	cmd := cli.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
