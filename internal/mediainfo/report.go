package mediainfo

import "github.com/autobrr/go-mkvdemux/internal/matroska"

type StreamKind string

const (
	StreamGeneral StreamKind = "General"
	StreamVideo   StreamKind = "Video"
	StreamAudio   StreamKind = "Audio"
	StreamText    StreamKind = "Text"
	StreamOther   StreamKind = "Other"
)

type Field struct {
	Name  string
	Value string
}

// Stream is one rendered section of a text report.
type Stream struct {
	Kind   StreamKind
	Fields []Field
}

// AudioTrack holds the payload bytes of every frame of one Audio track,
// concatenated in file order.
type AudioTrack struct {
	TrackID uint64
	Codec   string
	Data    []byte
}

// Report is the result of analyzing one container. Tracks carries one
// "Track <Type>" label per TrackEntry. AudioTracks is nil unless audio
// extraction was requested.
type Report struct {
	Ref      string
	FileSize int64

	Title       *string
	Duration    *float64
	Tracks      []string
	AudioTracks []AudioTrack

	Info         matroska.SegmentInfo
	TrackEntries []matroska.TrackEntry
}
