// Package build provides version and build information for taskmanager.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package build

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// IsDevBuild returns true if running a development build (not a release).
func IsDevBuild() bool {
	return Version == "dev"
}

// MetadataVersion is the version recorded in a new install record.
// Development builds record "0.0.0-dev" so a release never mistakes them
// for one of its own.
func MetadataVersion() string {
	if IsDevBuild() {
		return "0.0.0-dev"
	}
	return Version
}
