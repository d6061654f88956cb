package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/autobrr/go-mkvdemux/internal/mediainfo"
)

type ExtractOptions struct {
	OutDir     string
	Track      uint64
	SinglePass bool
	Strict     bool
	Verbose    bool
}

func BindExtractFlags(fs *pflag.FlagSet, opts *ExtractOptions) {
	fs.StringVarP(&opts.OutDir, "out", "o", ".", "directory the track files are written to")
	fs.Uint64VarP(&opts.Track, "track", "t", 0, "only extract this track number (0 extracts every audio track)")
	fs.BoolVar(&opts.SinglePass, "single-pass", false, "demux all audio tracks in one pass")
	fs.BoolVar(&opts.Strict, "strict", false, "fail on a corrupt block instead of ending the track there")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "log demuxer diagnostics to stderr")
}

// Extract writes the payload of each selected audio track of path to
// <out>/<base>.track<N>.<ext> and returns the written file names.
func Extract(path string, opts ExtractOptions, stdout, stderr io.Writer) ([]string, error) {
	analyze := mediainfo.AnalyzeOptions{
		ExtractAudio: true,
		SinglePass:   opts.SinglePass,
		Logger:       newLogger(stderr, opts.Verbose),
	}
	if opts.Strict {
		analyze.FramePolicy = mediainfo.FrameErrorFail
	}

	report, err := mediainfo.AnalyzeFileWithOptions(path, analyze)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	tracks := report.AudioTracks
	if opts.Track != 0 {
		tracks = nil
		for _, track := range report.AudioTracks {
			if track.TrackID == opts.Track {
				tracks = append(tracks, track)
			}
		}
		if len(tracks) == 0 {
			return nil, fmt.Errorf("%s: track %d is not an audio track", path, opts.Track)
		}
	}
	if len(tracks) == 0 {
		return nil, fmt.Errorf("%s: no audio tracks", path)
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	written := make([]string, 0, len(tracks))
	for _, track := range tracks {
		name := fmt.Sprintf("%s.track%d.%s", base, track.TrackID, mediainfo.AudioFileExtension(track.Codec))
		target := filepath.Join(opts.OutDir, name)
		if err := os.WriteFile(target, track.Data, 0o644); err != nil {
			return written, err
		}
		fmt.Fprintf(stdout, "%s: %d bytes (%s)\n", target, len(track.Data), track.Codec)
		written = append(written, target)
	}
	return written, nil
}
