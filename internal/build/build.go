// Package build holds build-time information.
package build

// Version is the plein release, set with -ldflags "-X go.trai.ch/plein/internal/build.Version=...".
var Version = "dev"
