package mediainfo

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/autobrr/go-mkvdemux/internal/matroska"
)

func RenderText(reports []Report) string {
	var buf bytes.Buffer
	for i, report := range reports {
		if i > 0 {
			buf.WriteString("\n")
		}
		general, streams := buildStreams(report)
		writeStream(&buf, string(general.Kind), general)

		kindCounts := map[StreamKind]int{}
		for _, stream := range streams {
			kindCounts[stream.Kind]++
		}
		kindIndex := map[StreamKind]int{}
		for _, stream := range streams {
			kindIndex[stream.Kind]++
			buf.WriteString("\n")
			writeStream(&buf, streamTitle(stream.Kind, kindIndex[stream.Kind], kindCounts[stream.Kind]), stream)
		}
		buf.WriteString("\n")
		buf.WriteString(reportByLine())
		buf.WriteString("\n")
	}
	output := strings.TrimRight(buf.String(), "\n")
	return output + "\n\n"
}

func reportByLine() string {
	return fmt.Sprintf("ReportBy : %s - %s", AppName, FormatVersion(AppVersion))
}

func buildStreams(report Report) (Stream, []Stream) {
	general := Stream{Kind: StreamGeneral}
	general.Fields = appendField(general.Fields, "Complete name", report.Ref)
	general.Fields = appendField(general.Fields, "Format", containerFormat(report.Info.DocType))
	if report.FileSize > 0 {
		general.Fields = appendField(general.Fields, "File size", formatBytes(report.FileSize))
	}
	if report.Duration != nil {
		general.Fields = appendField(general.Fields, "Duration", formatDuration(*report.Duration))
	}
	if report.Title != nil {
		general.Fields = appendField(general.Fields, "Movie name", *report.Title)
	}
	general.Fields = appendField(general.Fields, "Writing application", normalizeWritingApplication(report.Info.WritingApp))
	general.Fields = appendField(general.Fields, "Writing library", report.Info.MuxingApp)

	payloads := map[uint64]int{}
	for _, audio := range report.AudioTracks {
		payloads[audio.TrackID] = len(audio.Data)
	}

	streams := make([]Stream, 0, len(report.TrackEntries))
	for _, entry := range report.TrackEntries {
		stream := Stream{Kind: streamKind(entry.Type)}
		stream.Fields = appendField(stream.Fields, "ID", strconv.FormatUint(entry.Number, 10))
		stream.Fields = appendField(stream.Fields, "Format", codecFormat(entry.CodecID))
		stream.Fields = appendField(stream.Fields, "Codec ID", entry.CodecID)
		if stream.Kind == StreamOther {
			stream.Fields = appendField(stream.Fields, "Type", fmt.Sprintf("0x%X", entry.TypeCode))
		}
		if entry.DefaultDuration > 0 {
			stream.Fields = appendField(stream.Fields, "Frame duration", formatDuration(float64(entry.DefaultDuration)/1e9))
		}
		stream.Fields = appendVideoFields(stream.Fields, entry.Video)
		stream.Fields = appendAudioFields(stream.Fields, entry.Audio)
		if size, ok := payloads[entry.Number]; ok {
			stream.Fields = appendField(stream.Fields, "Stream size", formatBytes(int64(size)))
		}
		stream.Fields = appendField(stream.Fields, "Title", entry.Name)
		stream.Fields = appendField(stream.Fields, "Language", formatLanguage(entry.Language))
		streams = append(streams, stream)
	}
	return general, streams
}

func streamKind(trackType matroska.TrackType) StreamKind {
	switch trackType {
	case matroska.TrackTypeVideo:
		return StreamVideo
	case matroska.TrackTypeAudio:
		return StreamAudio
	case matroska.TrackTypeSubtitle:
		return StreamText
	default:
		return StreamOther
	}
}

func writeStream(buf *bytes.Buffer, title string, stream Stream) {
	buf.WriteString(title)
	buf.WriteString("\n")
	for _, field := range stream.Fields {
		buf.WriteString(padRight(field.Name, 41))
		buf.WriteString(": ")
		buf.WriteString(field.Value)
		buf.WriteString("\n")
	}
}

func padRight(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return value + strings.Repeat(" ", width-len(value))
}

func streamTitle(kind StreamKind, index, total int) string {
	if total <= 1 || kind == StreamGeneral {
		return string(kind)
	}
	return fmt.Sprintf("%s #%d", kind, index)
}
