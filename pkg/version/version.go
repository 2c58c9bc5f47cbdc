// Package version holds build-time version metadata.
package version

var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)
