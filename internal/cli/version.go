package cli

import (
	"fmt"
	"io"

	"github.com/autobrr/go-mkvdemux/internal/mediainfo"
)

var appVersion = "dev"

func SetVersion(version string) {
	if version != "" {
		appVersion = version
	}
}

func Version(stdout io.Writer) {
	fmt.Fprintf(stdout, "%s, %s\n", mediainfo.AppName, mediainfo.FormatVersion(appVersion))
}
