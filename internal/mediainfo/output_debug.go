package mediainfo

import (
	"strings"

	"github.com/k0kubun/pp"

	"github.com/autobrr/go-mkvdemux/internal/matroska"
)

type debugAudioTrack struct {
	TrackID uint64
	Codec   string
	Bytes   int
}

type debugReport struct {
	Ref          string
	FileSize     int64
	Info         matroska.SegmentInfo
	Tracks       []string
	TrackEntries []matroska.TrackEntry
	AudioTracks  []debugAudioTrack
}

// RenderDebug dumps every report as a Go value. Audio payloads are
// replaced by their length.
func RenderDebug(reports []Report) string {
	pp.ColoringEnabled = false
	var buf strings.Builder
	for _, report := range reports {
		dump := debugReport{
			Ref:          report.Ref,
			FileSize:     report.FileSize,
			Info:         report.Info,
			Tracks:       report.Tracks,
			TrackEntries: report.TrackEntries,
		}
		for _, audio := range report.AudioTracks {
			dump.AudioTracks = append(dump.AudioTracks, debugAudioTrack{
				TrackID: audio.TrackID,
				Codec:   audio.Codec,
				Bytes:   len(audio.Data),
			})
		}
		buf.WriteString(pp.Sprint(dump))
		buf.WriteString("\n")
	}
	return buf.String()
}
