// Package buildcmd assembles the infinite-push override package end to end:
// it resolves the simulator's packages root, locates the vendor CRJ package,
// copies and extends the behavior template definitions, patches every model
// directory of each aircraft variant, and writes the package descriptors.
// The vendor package is never touched; a failed build leaves a partial
// output directory that the next run resets.
package buildcmd
