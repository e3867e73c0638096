// Package modelxml reads and writes MSFS model-behavior documents.
//
// The on-disk format is not well-formed XML: each interior file holds two
// sibling top-level elements (ModelInfo followed by ModelBehaviors) with no
// enclosing root and no prolog. The package therefore splits parsing in two:
// the ModelInfo block is captured verbatim as text, and only the
// ModelBehaviors block is built into a mutable element tree. Serialization
// reproduces the vendor layout (leading blank line, CRLF line endings, tab
// indentation) so the simulator's loader accepts the result.
package modelxml
