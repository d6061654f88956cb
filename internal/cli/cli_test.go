package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/at-wat/ebml-go/webm"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fileCloser struct {
	bytes.Buffer
	closed chan struct{}
}

func (f *fileCloser) Close() error {
	close(f.closed)
	return nil
}

// writeWebMFile writes a WebM file with one Opus track holding frames.
func writeWebMFile(t *testing.T, dir, name string, frames ...[]byte) string {
	t.Helper()
	out := &fileCloser{closed: make(chan struct{})}
	writers, err := webm.NewSimpleBlockWriter(out, []webm.TrackEntry{{
		Name:        "Audio",
		TrackNumber: 1,
		TrackUID:    1,
		CodecID:     "A_OPUS",
		TrackType:   2,
		Audio:       &webm.Audio{SamplingFrequency: 48000.0, Channels: 2},
	}})
	require.NoError(t, err)
	for i, frame := range frames {
		_, err := writers[0].Write(true, int64(i*20), frame)
		require.NoError(t, err)
	}
	require.NoError(t, writers[0].Close())
	select {
	case <-out.closed:
	case <-time.After(5 * time.Second):
		t.Fatal("webm writer did not finish")
	}

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, out.Bytes(), 0o644))
	return path
}

func TestRunJSONWithAudio(t *testing.T) {
	path := writeWebMFile(t, t.TempDir(), "clip.webm", []byte{0x01, 0x02}, []byte{0x03})

	var stdout, stderr bytes.Buffer
	code := Run([]string{"mkvdemux", "--Output=JSON", "--Audio", path}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())

	var decoded struct {
		Ref         string   `json:"@ref"`
		Tracks      []string `json:"tracks"`
		AudioTracks []struct {
			TrackID uint64 `json:"track_id"`
			Codec   string `json:"codec"`
			Data    []byte `json:"data"`
		} `json:"audio_tracks"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded), stdout.String())
	assert.Equal(t, path, decoded.Ref)
	assert.Equal(t, []string{"Track Audio"}, decoded.Tracks)
	require.Len(t, decoded.AudioTracks, 1)
	assert.Equal(t, "A_OPUS", decoded.AudioTracks[0].Codec)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, decoded.AudioTracks[0].Data)
}

func TestRunTextAndLogFile(t *testing.T) {
	dir := t.TempDir()
	path := writeWebMFile(t, dir, "clip.webm", []byte{0x01})
	logFile := filepath.Join(dir, "report.txt")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"mkvdemux", "--LogFile=" + logFile, path}, &stdout, &stderr)
	require.Equal(t, exitOK, code, stderr.String())
	assert.Contains(t, stdout.String(), "WebM")
	assert.Contains(t, stdout.String(), "Opus")

	saved, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(stdout.String(), "\n"), string(saved))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeWebMFile(t, dir, "clip.webm", []byte{0x01})

	var stdout, stderr bytes.Buffer
	assert.Equal(t, exitError, Run([]string{"mkvdemux"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Usage:")

	stderr.Reset()
	assert.Equal(t, exitError, Run([]string{"mkvdemux", "--Output=XML", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "output format not implemented")

	stderr.Reset()
	assert.Equal(t, exitError, Run([]string{"mkvdemux", "--Bogus", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "unknown option: --bogus")

	stderr.Reset()
	notMKV := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notMKV, []byte("hello"), 0o644))
	assert.Equal(t, exitError, Run([]string{"mkvdemux", notMKV}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), notMKV)
}

func TestApplyCoreOptions(t *testing.T) {
	opts := Options{}
	err := applyCoreOptions(&opts.Analyze, []CoreOption{
		{Name: "audio", Value: "1"},
		{Name: "singlepass", Value: "0"},
		{Name: "framepolicy", Value: "fail"},
	})
	require.NoError(t, err)
	assert.True(t, opts.Analyze.ExtractAudio)
	assert.False(t, opts.Analyze.SinglePass)
	assert.Equal(t, "fail", opts.Analyze.FramePolicy.String())

	err = applyCoreOptions(&opts.Analyze, []CoreOption{{Name: "framepolicy", Value: "maybe"}})
	assert.Error(t, err)
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	path := writeWebMFile(t, dir, "clip.webm", []byte{0x0A, 0x0B}, []byte{0x0C})
	outDir := filepath.Join(dir, "out")

	var opts ExtractOptions
	fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	BindExtractFlags(fs, &opts)
	require.NoError(t, fs.Parse([]string{"--out", outDir, "--track=1"}))
	assert.Equal(t, uint64(1), opts.Track)

	var stdout, stderr bytes.Buffer
	written, err := Extract(path, opts, &stdout, &stderr)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(outDir, "clip.track1.opus")}, written)

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0A, 0x0B, 0x0C}, data)
	assert.Contains(t, stdout.String(), "3 bytes (A_OPUS)")

	opts.Track = 2
	_, err = Extract(path, opts, &stdout, &stderr)
	assert.ErrorContains(t, err, "track 2 is not an audio track")
}
