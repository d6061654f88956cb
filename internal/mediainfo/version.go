package mediainfo

import "strings"

const (
	AppName = "go-mkvdemux"
	AppURL  = "https://github.com/autobrr/go-mkvdemux"
)

var AppVersion = "dev"

func SetAppVersion(version string) {
	if version != "" {
		AppVersion = version
	}
}

// FormatVersion prefixes release versions with "v"; "dev" is left as is.
func FormatVersion(version string) string {
	version = strings.TrimSpace(version)
	if version == "" || version == "dev" || strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
