// Package pkgmeta generates the manifest.json and layout.json descriptors
// every loadable MSFS package carries.
package pkgmeta
