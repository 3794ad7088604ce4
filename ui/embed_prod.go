//go:build !dev

package ui

import "embed"

// DistFS holds the built web player. The dist directory is produced by the
// frontend build before compiling the server binary.
//
//go:embed all:dist
var DistFS embed.FS
