// Package version holds build metadata, overridden at build time with -ldflags.
package version

var (
	Version = "0.1.0"
	Commit  = "dev"
)

// String is the version shown by --version.
func String() string {
	return Version + " (" + Commit + ")"
}
