package mediainfo

import "github.com/autobrr/go-mkvdemux/internal/matroska"

func appendAudioFields(fields []Field, audio *matroska.AudioSettings) []Field {
	if audio == nil {
		return fields
	}
	if audio.Channels > 0 {
		fields = appendField(fields, "Channel(s)", formatChannels(audio.Channels))
		fields = appendField(fields, "Channel layout", channelLayout(audio.Channels))
	}
	fields = appendField(fields, "Sampling rate", formatSampleRate(audio.SamplingFrequency))
	return appendField(fields, "Bit depth", formatBitDepth(audio.BitDepth))
}

func appendVideoFields(fields []Field, video *matroska.VideoSettings) []Field {
	if video == nil {
		return fields
	}
	fields = appendField(fields, "Width", formatPixels(video.PixelWidth))
	return appendField(fields, "Height", formatPixels(video.PixelHeight))
}
