// Package version holds build metadata injected via ldflags.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// UserAgent identifies sitesearch when it fetches a remote search index.
// The commit is appended when the build recorded one.
func UserAgent() string {
	ua := "sitesearch/" + Version
	if Commit != "" && Commit != "unknown" {
		ua += " (" + Commit + ")"
	}
	return ua
}
