// Package resources bundles files shipped inside the binary.
package resources

import "embed"

//go:embed i18n.yaml
var FS embed.FS
