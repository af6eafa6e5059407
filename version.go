package lexipage

// Name is the application name.
const Name = "lexipage"

// Build-time information, set via ldflags:
//
//	go build -ldflags "-X github.com/LumaLabs/lexipage.Version=1.0.0"
var (
	// Version is the semantic version of the application.
	Version = "0.1.0"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"
)

// FullVersion returns the version string with optional build info.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}
