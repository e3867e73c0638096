// Package modpatch rewrites knob interactions in CRJ behavior trees.
//
// A catalog of modification records drives the rewrite: per record, the
// momentary push button component is removed and the knob component's
// template reference is repointed at the infinite-push template, with the
// animation and event parameters the replacement template expects. The batch
// driver applies the catalog to every model directory of an aircraft variant.
package modpatch
