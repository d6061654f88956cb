package mediainfo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/autobrr/go-mkvdemux/internal/matroska"
)

func AnalyzeFile(path string) (Report, error) {
	return AnalyzeFileWithOptions(path, defaultAnalyzeOptions())
}

func AnalyzeFileWithOptions(path string, opts AnalyzeOptions) (Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Report{}, err
	}
	report, err := Analyze(data, opts)
	if err != nil {
		return Report{}, err
	}
	report.Ref = path
	return report, nil
}

// Analyze parses the metadata of a Matroska or WebM container and, when
// opts.ExtractAudio is set, the payload of every Audio track. Any metadata
// error fails the whole call.
func Analyze(data []byte, opts AnalyzeOptions) (Report, error) {
	opts = normalizeAnalyzeOptions(opts)

	info, entries, err := matroska.ParseMetadata(data)
	if err != nil {
		return Report{}, errors.Wrap(err, "parse metadata")
	}

	report := Report{
		FileSize:     int64(len(data)),
		Title:        info.Title,
		Duration:     info.Duration,
		Tracks:       make([]string, 0, len(entries)),
		Info:         info,
		TrackEntries: entries,
	}
	for _, entry := range entries {
		report.Tracks = append(report.Tracks, "Track "+entry.Type.String())
	}

	if !opts.ExtractAudio {
		return report, nil
	}
	audio, err := extractAudio(data, entries, opts)
	if err != nil {
		return Report{}, err
	}
	report.AudioTracks = audio
	return report, nil
}

func extractAudio(data []byte, entries []matroska.TrackEntry, opts AnalyzeOptions) ([]AudioTrack, error) {
	audio := make([]AudioTrack, 0)
	for _, entry := range entries {
		if entry.Type == matroska.TrackTypeAudio {
			audio = append(audio, AudioTrack{TrackID: entry.Number, Codec: entry.CodecID})
		}
	}
	if len(audio) == 0 {
		return audio, nil
	}

	session, err := matroska.Open(data)
	if err != nil {
		return nil, errors.Wrap(err, "open demuxer")
	}

	if opts.SinglePass {
		buckets := make(map[uint64]*bytes.Buffer, len(audio))
		for _, track := range audio {
			buckets[track.TrackID] = &bytes.Buffer{}
		}
		err := drainFrames(session, opts, func(frame matroska.Frame) {
			if buf, ok := buckets[frame.Track]; ok {
				buf.Write(frame.Data)
			}
		})
		if err != nil {
			return nil, errors.Wrap(err, "demux audio tracks")
		}
		for i := range audio {
			audio[i].Data = buckets[audio[i].TrackID].Bytes()
		}
		return audio, nil
	}

	for i := range audio {
		session.SeekToStart()
		var buf bytes.Buffer
		trackID := audio[i].TrackID
		err := drainFrames(session, opts, func(frame matroska.Frame) {
			if frame.Track == trackID {
				buf.Write(frame.Data)
			}
		})
		if err != nil {
			return nil, errors.Wrapf(err, "demux track %d", trackID)
		}
		audio[i].Data = buf.Bytes()
	}
	return audio, nil
}

// drainFrames feeds every remaining frame of the session to fn. Under
// FrameErrorStop a read failure ends the pass like end of stream.
func drainFrames(session *matroska.Session, opts AnalyzeOptions, fn func(matroska.Frame)) error {
	for {
		frame, ok, err := session.NextFrame()
		if err != nil {
			if opts.FramePolicy == FrameErrorFail {
				return err
			}
			opts.Logger.Warn("frame read failed, ending pass",
				"kind", matroska.KindOf(err).String(),
				"error", err,
			)
			return nil
		}
		if !ok {
			return nil
		}
		fn(frame)
	}
}

func AnalyzeFiles(paths []string) ([]Report, int, error) {
	return AnalyzeFilesWithOptions(paths, defaultAnalyzeOptions())
}

func AnalyzeFilesWithOptions(paths []string, opts AnalyzeOptions) ([]Report, int, error) {
	expanded, err := expandPaths(paths)
	if err != nil {
		return nil, 0, err
	}
	reports := make([]Report, 0, len(expanded))
	for _, path := range expanded {
		report, err := AnalyzeFileWithOptions(path, opts)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", path, err)
		}
		reports = append(reports, report)
	}
	return reports, len(reports), nil
}

func expandPaths(paths []string) ([]string, error) {
	expanded := make([]string, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			expanded = append(expanded, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			names = append(names, entry.Name())
		}
		sort.Strings(names)
		for _, name := range names {
			expanded = append(expanded, filepath.Join(path, name))
		}
	}
	return expanded, nil
}
