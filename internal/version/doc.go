// Package version exposes build metadata of the fw-version tool itself.
//
// Version, Commit and BuildTime may be injected via ldflags. When they are
// left at their defaults, Commit and BuildTime are filled from the VCS stamp
// Go embeds into the binary.
package version
