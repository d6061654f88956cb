package mediainfo

import (
	"fmt"
	"log/slog"
	"strings"
)

// FrameErrorPolicy decides what a failed frame read does to an extraction pass.
type FrameErrorPolicy int

const (
	// FrameErrorStop ends the pass as if the stream were exhausted and logs the error.
	FrameErrorStop FrameErrorPolicy = iota
	// FrameErrorFail aborts the analysis with the error.
	FrameErrorFail
)

func (p FrameErrorPolicy) String() string {
	if p == FrameErrorFail {
		return "fail"
	}
	return "stop"
}

func ParseFrameErrorPolicy(value string) (FrameErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "stop":
		return FrameErrorStop, nil
	case "fail", "strict":
		return FrameErrorFail, nil
	default:
		return FrameErrorStop, fmt.Errorf("unknown frame error policy: %s", value)
	}
}

type AnalyzeOptions struct {
	ExtractAudio bool
	// SinglePass demuxes once and buckets every audio track instead of
	// rewinding the session for each track.
	SinglePass  bool
	FramePolicy FrameErrorPolicy
	Logger      *slog.Logger
}

func defaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{FramePolicy: FrameErrorStop}
}

func normalizeAnalyzeOptions(opts AnalyzeOptions) AnalyzeOptions {
	if opts.FramePolicy != FrameErrorFail {
		opts.FramePolicy = FrameErrorStop
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return opts
}
