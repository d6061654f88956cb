// Package mkvdemux reads the metadata of Matroska and WebM files and
// extracts the raw payload of their audio tracks.
package mkvdemux

import (
	"github.com/autobrr/go-mkvdemux/internal/matroska"
	"github.com/autobrr/go-mkvdemux/internal/mediainfo"
)

// Types
type Report = mediainfo.Report
type AudioTrack = mediainfo.AudioTrack
type AnalyzeOptions = mediainfo.AnalyzeOptions
type FrameErrorPolicy = mediainfo.FrameErrorPolicy

type SegmentInfo = matroska.SegmentInfo
type TrackEntry = matroska.TrackEntry
type TrackType = matroska.TrackType
type Frame = matroska.Frame
type Session = matroska.Session
type ParseError = matroska.ParseError
type ErrorKind = matroska.ErrorKind

// Constants
const (
	FrameErrorStop = mediainfo.FrameErrorStop
	FrameErrorFail = mediainfo.FrameErrorFail

	TrackTypeVideo    = matroska.TrackTypeVideo
	TrackTypeAudio    = matroska.TrackTypeAudio
	TrackTypeSubtitle = matroska.TrackTypeSubtitle
	TrackTypeOther    = matroska.TrackTypeOther

	NotMatroska    = matroska.NotMatroska
	Truncated      = matroska.Truncated
	MalformedID    = matroska.MalformedID
	MalformedTrack = matroska.MalformedTrack
	MalformedBlock = matroska.MalformedBlock
)

// Errors
var (
	ErrNotMatroska    = matroska.ErrNotMatroska
	ErrTruncated      = matroska.ErrTruncated
	ErrMalformedID    = matroska.ErrMalformedID
	ErrMalformedTrack = matroska.ErrMalformedTrack
	ErrMalformedBlock = matroska.ErrMalformedBlock
)

// Functions
func Analyze(data []byte, opts AnalyzeOptions) (Report, error) {
	return mediainfo.Analyze(data, opts)
}

func AnalyzeFile(path string) (Report, error) {
	return mediainfo.AnalyzeFile(path)
}

func AnalyzeFileWithOptions(path string, opts AnalyzeOptions) (Report, error) {
	return mediainfo.AnalyzeFileWithOptions(path, opts)
}

func AnalyzeFilesWithOptions(paths []string, opts AnalyzeOptions) ([]Report, int, error) {
	return mediainfo.AnalyzeFilesWithOptions(paths, opts)
}

func ParseMetadata(data []byte) (SegmentInfo, []TrackEntry, error) {
	return matroska.ParseMetadata(data)
}

func Open(data []byte) (*Session, error) {
	return matroska.Open(data)
}

// Rendering
func RenderText(reports []Report) string {
	return mediainfo.RenderText(reports)
}

func RenderJSON(reports []Report) string {
	return mediainfo.RenderJSON(reports)
}

func RenderDebug(reports []Report) string {
	return mediainfo.RenderDebug(reports)
}

func FormatVersion(version string) string {
	return mediainfo.FormatVersion(version)
}

func SetAppVersion(version string) {
	mediainfo.SetAppVersion(version)
}
