package version

// Version is reported by `process-template --version`.
// Set via build-time ldflags in release builds:
// go build -ldflags "-X git.home.luguber.info/inful/sitestamp/internal/version.Version=v0.3.0" ./cmd/process-template.
var Version = "dev"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version with commit metadata when it is known.
func String() string {
	if GitCommit == "unknown" || GitCommit == "" {
		return Version
	}
	return Version + " (" + GitCommit + ", " + BuildTime + ")"
}
