// Package assets embeds the static files served under /assets.
package assets

import "embed"

//go:embed css fonts
var Assets embed.FS
