package matroska

import (
	"bytes"
	"fmt"
	"math"
)

// TrackType is the Matroska TrackType code. Codes this package does not know
// are reported as TrackTypeOther; TrackEntry.TypeCode keeps the raw value.
type TrackType uint8

const (
	TrackTypeOther    TrackType = 0x00
	TrackTypeVideo    TrackType = 0x01
	TrackTypeAudio    TrackType = 0x02
	TrackTypeComplex  TrackType = 0x03
	TrackTypeLogo     TrackType = 0x10
	TrackTypeSubtitle TrackType = 0x11
	TrackTypeButtons  TrackType = 0x12
	TrackTypeControl  TrackType = 0x20
	TrackTypeMetadata TrackType = 0x21
)

func trackTypeFromCode(code uint64) TrackType {
	if code > 0xFF {
		return TrackTypeOther
	}
	switch t := TrackType(code); t {
	case TrackTypeVideo, TrackTypeAudio, TrackTypeComplex, TrackTypeLogo, TrackTypeSubtitle,
		TrackTypeButtons, TrackTypeControl, TrackTypeMetadata:
		return t
	}
	return TrackTypeOther
}

func (t TrackType) String() string {
	switch t {
	case TrackTypeVideo:
		return "Video"
	case TrackTypeAudio:
		return "Audio"
	case TrackTypeComplex:
		return "Complex"
	case TrackTypeLogo:
		return "Logo"
	case TrackTypeSubtitle:
		return "Subtitle"
	case TrackTypeButtons:
		return "Buttons"
	case TrackTypeControl:
		return "Control"
	case TrackTypeMetadata:
		return "Metadata"
	default:
		return "Other"
	}
}

// SegmentInfo is the Segment→Info summary. Title and Duration are nil when the
// file does not carry them.
type SegmentInfo struct {
	Title         *string
	Duration      *float64 // seconds
	TimecodeScale uint64   // nanoseconds per tick
	MuxingApp     string
	WritingApp    string
	DocType       string
}

type AudioSettings struct {
	SamplingFrequency float64
	Channels          uint64
	BitDepth          uint64
}

type VideoSettings struct {
	PixelWidth  uint64
	PixelHeight uint64
}

// TrackEntry describes one Segment→Tracks→TrackEntry. Number is the key that
// Frame.Track refers to.
type TrackEntry struct {
	Number          uint64
	UID             uint64
	Type            TrackType
	TypeCode        uint64
	CodecID         string
	CodecPrivate    []byte
	Name            string
	Language        string
	DefaultDuration uint64 // nanoseconds
	Audio           *AudioSettings
	Video           *VideoSettings
}

var ebmlMagic = []byte{0x1A, 0x45, 0xDF, 0xA3}

// ParseMetadata reads the EBML header, the Segment's Info and Tracks children,
// and returns the segment summary and the tracks in file order. data is only read.
func ParseMetadata(data []byte) (SegmentInfo, []TrackEntry, error) {
	docType, next, err := parseHeader(data)
	if err != nil {
		return SegmentInfo{}, nil, err
	}
	seg, err := findSegment(data, next)
	if err != nil {
		return SegmentInfo{}, nil, err
	}

	info := SegmentInfo{TimecodeScale: defaultTimecodeScale, DocType: docType}
	var tracks []TrackEntry
	var seenInfo, seenTracks bool
	err = walkChildren(data, seg.dataStart, seg.end, func(el element) (int, error) {
		switch el.id {
		case idInfo:
			parsed, err := parseInfo(data, el)
			if err != nil {
				return 0, err
			}
			parsed.DocType = docType
			info = parsed
			seenInfo = true
		case idTracks:
			parsed, err := parseTracks(data, el, tracks)
			if err != nil {
				return 0, err
			}
			tracks = parsed
			seenTracks = true
		case idCluster:
			if seenInfo && seenTracks {
				return seg.end, nil
			}
			if el.unknown {
				return skipUnknownCluster(data, el)
			}
		}
		return el.end, nil
	})
	if err != nil {
		return SegmentInfo{}, nil, err
	}
	return info, tracks, nil
}

// parseHeader validates the EBML header and returns its DocType and the offset
// just past it.
func parseHeader(data []byte) (string, int, error) {
	if !bytes.HasPrefix(data, ebmlMagic) {
		return "", 0, newError(NotMatroska, 0, "missing EBML header signature")
	}
	header, err := readElement(data, 0, len(data))
	if err != nil {
		return "", 0, err
	}
	if header.unknown {
		return "", 0, newError(NotMatroska, 0, "EBML header has unknown size")
	}
	var docType string
	err = walkChildren(data, header.dataStart, header.end, func(el element) (int, error) {
		if el.id == idDocType {
			docType = readString(data[el.dataStart:el.end])
		}
		return el.end, nil
	})
	if err != nil {
		return "", 0, err
	}
	if docType != "" && docType != "matroska" && docType != "webm" {
		return "", 0, newError(NotMatroska, header.offset, "unsupported DocType %q", docType)
	}
	return docType, header.end, nil
}

// findSegment skips top-level elements after the header until the Segment.
func findSegment(data []byte, pos int) (element, error) {
	for pos < len(data) {
		el, err := readElement(data, pos, len(data))
		if err != nil {
			return element{}, err
		}
		if el.id == idSegment {
			return el, nil
		}
		pos = el.end
	}
	return element{}, newError(Truncated, pos, "no Segment element after EBML header")
}

// skipUnknownCluster finds the end of a Cluster written with unknown size.
func skipUnknownCluster(data []byte, cluster element) (int, error) {
	pos := cluster.dataStart
	for pos < cluster.end {
		id, _, err := ReadVintID(data[:cluster.end], pos)
		if err != nil {
			return 0, err
		}
		if endsUnknownCluster(id) {
			return pos, nil
		}
		el, err := readElement(data, pos, cluster.end)
		if err != nil {
			return 0, err
		}
		pos = el.end
	}
	return cluster.end, nil
}

func parseInfo(data []byte, info element) (SegmentInfo, error) {
	out := SegmentInfo{TimecodeScale: defaultTimecodeScale}
	var ticks float64
	var hasDuration bool
	err := walkChildren(data, info.dataStart, info.end, func(el element) (int, error) {
		payload := data[el.dataStart:el.end]
		switch el.id {
		case idTimecodeScale:
			value, ok := readUnsigned(payload)
			if !ok {
				return 0, newError(MalformedID, el.offset, "TimecodeScale is %d bytes", len(payload))
			}
			if value > 0 {
				out.TimecodeScale = value
			}
		case idDuration:
			value, ok := readFloat(payload)
			if !ok {
				return 0, newError(MalformedID, el.offset, "Duration is %d bytes", len(payload))
			}
			// NaN, infinities and negative values carry no usable duration.
			if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
				return el.end, nil
			}
			ticks = value
			hasDuration = true
		case idTitle:
			title := readString(payload)
			out.Title = &title
		case idMuxingApp:
			out.MuxingApp = readString(payload)
		case idWritingApp:
			out.WritingApp = readString(payload)
		}
		return el.end, nil
	})
	if err != nil {
		return SegmentInfo{}, err
	}
	if hasDuration {
		seconds := ticks * float64(out.TimecodeScale) / 1e9
		out.Duration = &seconds
	}
	return out, nil
}

func parseTracks(data []byte, tracks element, entries []TrackEntry) ([]TrackEntry, error) {
	err := walkChildren(data, tracks.dataStart, tracks.end, func(el element) (int, error) {
		if el.id != idTrackEntry {
			return el.end, nil
		}
		entry, err := parseTrackEntry(data, el)
		if err != nil {
			return 0, err
		}
		for _, existing := range entries {
			if existing.Number == entry.Number {
				return 0, newError(MalformedTrack, el.offset, "duplicate TrackNumber %d", entry.Number)
			}
		}
		entries = append(entries, entry)
		return el.end, nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func parseTrackEntry(data []byte, entry element) (TrackEntry, error) {
	track := TrackEntry{Language: "eng"}
	var hasNumber, hasCodec bool
	err := walkChildren(data, entry.dataStart, entry.end, func(el element) (int, error) {
		payload := data[el.dataStart:el.end]
		switch el.id {
		case idTrackNumber:
			value, ok := readUnsigned(payload)
			if !ok || value == 0 {
				return 0, newError(MalformedTrack, el.offset, "invalid TrackNumber")
			}
			track.Number = value
			hasNumber = true
		case idTrackUID:
			if value, ok := readUnsigned(payload); ok {
				track.UID = value
			}
		case idTrackType:
			value, ok := readUnsigned(payload)
			if !ok {
				return 0, newError(MalformedTrack, el.offset, "TrackType is %d bytes", len(payload))
			}
			track.TypeCode = value
			track.Type = trackTypeFromCode(value)
		case idCodecID:
			track.CodecID = readString(payload)
			hasCodec = true
		case idCodecPrivate:
			track.CodecPrivate = payload[:len(payload):len(payload)]
		case idName:
			track.Name = readString(payload)
		case idLanguage:
			track.Language = readString(payload)
		case idDefaultDuration:
			if value, ok := readUnsigned(payload); ok {
				track.DefaultDuration = value
			}
		case idTrackAudio:
			audio, err := parseAudio(data, el)
			if err != nil {
				return 0, err
			}
			track.Audio = &audio
		case idTrackVideo:
			video, err := parseVideo(data, el)
			if err != nil {
				return 0, err
			}
			track.Video = &video
		}
		return el.end, nil
	})
	if err != nil {
		return TrackEntry{}, err
	}
	if !hasNumber {
		return TrackEntry{}, newError(MalformedTrack, entry.offset, "TrackEntry without TrackNumber")
	}
	if !hasCodec {
		return TrackEntry{}, newError(MalformedTrack, entry.offset, "track %d without CodecID", track.Number)
	}
	return track, nil
}

func parseAudio(data []byte, audio element) (AudioSettings, error) {
	out := AudioSettings{SamplingFrequency: 8000, Channels: 1}
	err := walkChildren(data, audio.dataStart, audio.end, func(el element) (int, error) {
		payload := data[el.dataStart:el.end]
		switch el.id {
		case idSamplingFrequency:
			if value, ok := readFloat(payload); ok && value > 0 {
				out.SamplingFrequency = value
			}
		case idChannels:
			if value, ok := readUnsigned(payload); ok && value > 0 {
				out.Channels = value
			}
		case idBitDepth:
			if value, ok := readUnsigned(payload); ok {
				out.BitDepth = value
			}
		}
		return el.end, nil
	})
	return out, err
}

func parseVideo(data []byte, video element) (VideoSettings, error) {
	var out VideoSettings
	err := walkChildren(data, video.dataStart, video.end, func(el element) (int, error) {
		payload := data[el.dataStart:el.end]
		switch el.id {
		case idPixelWidth:
			if value, ok := readUnsigned(payload); ok {
				out.PixelWidth = value
			}
		case idPixelHeight:
			if value, ok := readUnsigned(payload); ok {
				out.PixelHeight = value
			}
		}
		return el.end, nil
	})
	return out, err
}

func (t TrackEntry) String() string {
	return fmt.Sprintf("track %d (%s, %s)", t.Number, t.Type, t.CodecID)
}
