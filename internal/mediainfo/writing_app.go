package mediainfo

import "strings"

// normalizeWritingApplication drops the "v" mkvmerge puts before its version
// number, so "mkvmerge v81.0 ('...') 64-bit" reads "mkvmerge 81.0 ('...') 64-bit".
func normalizeWritingApplication(raw string) string {
	raw = strings.TrimSpace(raw)
	name, rest, ok := strings.Cut(raw, " ")
	if !ok {
		return raw
	}
	if (name == "mkvmerge" || name == "mkvpropedit") && strings.HasPrefix(rest, "v") {
		return name + " " + strings.TrimPrefix(rest, "v")
	}
	return raw
}
