package version

// Version is set via build-time ldflags in release builds:
// go build -ldflags "-X github.com/kadeem-campbell/siteclean/internal/version.Version=v1.2.0".
var Version = "dev"

// Build metadata, same mechanism.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the full version line shown by --version.
func String() string {
	s := Version
	if GitCommit != "unknown" {
		s += " (" + GitCommit + ")"
	}
	return s
}
