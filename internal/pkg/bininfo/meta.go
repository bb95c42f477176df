// Package bininfo holds build metadata injected through -ldflags "-X".
// Do not rename the variables: build scripts refer to them by their full path.
package bininfo

var (
	// Version is the SemVer version of the binary, with the git commit appended after a plus sign when available.
	Version = "v0.0.0"

	// BuildTime is the RFC3339 time at which the binary was built.
	BuildTime = "1970-01-01T00:00:00Z"
)
