package mediainfo

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"math"
	"strconv"
)

type jsonKV struct {
	Key string
	Val string
	Raw bool
}

// RenderJSON writes one object per report, or an array of them when more
// than one report is given. audio_tracks is omitted when audio was not
// extracted.
func RenderJSON(reports []Report) string {
	if len(reports) == 1 {
		return renderJSONReport(reports[0]) + "\n"
	}
	items := make([]string, 0, len(reports))
	for _, report := range reports {
		items = append(items, renderJSONReport(report))
	}
	return renderJSONArray(items, true) + "\n"
}

func buildJSONFields(report Report) []jsonKV {
	fields := make([]jsonKV, 0, 5)
	if report.Ref != "" {
		fields = append(fields, jsonKV{Key: "@ref", Val: report.Ref})
	}
	title := jsonKV{Key: "title", Val: "null", Raw: true}
	if report.Title != nil {
		title = jsonKV{Key: "title", Val: *report.Title}
	}
	duration := jsonKV{Key: "duration", Val: "null", Raw: true}
	if report.Duration != nil && !math.IsNaN(*report.Duration) && !math.IsInf(*report.Duration, 0) {
		duration.Val = strconv.FormatFloat(*report.Duration, 'f', -1, 64)
	}
	fields = append(fields, title, duration)

	tracks := make([]string, 0, len(report.Tracks))
	for _, track := range report.Tracks {
		tracks = append(tracks, renderJSONString(track))
	}
	fields = append(fields, jsonKV{Key: "tracks", Val: renderJSONArray(tracks, false), Raw: true})

	if report.AudioTracks != nil {
		audio := make([]string, 0, len(report.AudioTracks))
		for _, track := range report.AudioTracks {
			audio = append(audio, renderJSONObject([]jsonKV{
				{Key: "track_id", Val: strconv.FormatUint(track.TrackID, 10), Raw: true},
				{Key: "codec", Val: track.Codec},
				{Key: "data", Val: base64.StdEncoding.EncodeToString(track.Data)},
			}, false))
		}
		fields = append(fields, jsonKV{Key: "audio_tracks", Val: renderJSONArray(audio, true), Raw: true})
	}
	return fields
}

func renderJSONReport(report Report) string {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, field := range buildJSONFields(report) {
		if i > 0 {
			buf.WriteString(",\n")
		}
		writeJSONField(&buf, field.Key, field.Val, field.Raw)
	}
	buf.WriteString("\n}")
	return buf.String()
}

func renderJSONArray(items []string, multiline bool) string {
	var buf bytes.Buffer
	buf.WriteString("[")
	if multiline && len(items) > 0 {
		buf.WriteString("\n")
	}
	for i, item := range items {
		if i > 0 {
			if multiline {
				buf.WriteString(",\n")
			} else {
				buf.WriteString(",")
			}
		}
		buf.WriteString(item)
	}
	if multiline && len(items) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]")
	return buf.String()
}

func renderJSONObject(fields []jsonKV, multiline bool) string {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, field := range fields {
		if i > 0 {
			if multiline {
				buf.WriteString(",\n")
			} else {
				buf.WriteString(",")
			}
		}
		writeJSONField(&buf, field.Key, field.Val, field.Raw)
	}
	buf.WriteString("}")
	return buf.String()
}

func writeJSONField(buf *bytes.Buffer, key, value string, raw bool) {
	buf.WriteString("\"")
	buf.WriteString(key)
	buf.WriteString("\":")
	if raw {
		buf.WriteString(value)
		return
	}
	buf.WriteString(renderJSONString(value))
}

func renderJSONString(value string) string {
	data, _ := json.Marshal(value)
	return string(data)
}
