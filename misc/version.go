// Package misc holds build time program information.
package misc

// Values are injected at build time with
// -ldflags "-X evostudio/misc.version=... -X evostudio/misc.gitHash=...".
var (
	appName = "evs"
	version = "dev"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
