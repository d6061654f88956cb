package mediainfo

import (
	"fmt"
	"math"
	"strings"
)

func containerFormat(docType string) string {
	if docType == "webm" {
		return "WebM"
	}
	return "Matroska"
}

var codecFormats = map[string]string{
	"A_OPUS":           "Opus",
	"A_VORBIS":         "Vorbis",
	"A_AAC":            "AAC",
	"A_AC3":            "AC-3",
	"A_EAC3":           "E-AC-3",
	"A_DTS":            "DTS",
	"A_FLAC":           "FLAC",
	"A_MPEG/L2":        "MPEG Audio",
	"A_MPEG/L3":        "MPEG Audio",
	"A_TRUEHD":         "MLP FBA",
	"A_PCM/INT/LIT":    "PCM",
	"A_PCM/INT/BIG":    "PCM",
	"A_PCM/FLOAT/IEEE": "PCM",
	"V_VP8":            "VP8",
	"V_VP9":            "VP9",
	"V_AV1":            "AV1",
	"V_MPEG2":          "MPEG Video",
	"V_MPEG4/ISO/AVC":  "AVC",
	"V_MPEGH/ISO/HEVC": "HEVC",
	"S_TEXT/UTF8":      "UTF-8",
	"S_TEXT/ASS":       "ASS",
	"S_HDMV/PGS":       "PGS",
	"S_VOBSUB":         "VobSub",
}

func codecFormat(codecID string) string {
	if name, ok := codecFormats[codecID]; ok {
		return name
	}
	if strings.HasPrefix(codecID, "A_AAC/") {
		return "AAC"
	}
	return codecID
}

var audioExtensions = map[string]string{
	"A_OPUS":    "opus",
	"A_VORBIS":  "vorbis",
	"A_AAC":     "aac",
	"A_AC3":     "ac3",
	"A_EAC3":    "eac3",
	"A_DTS":     "dts",
	"A_FLAC":    "flac",
	"A_MPEG/L2": "mp2",
	"A_MPEG/L3": "mp3",
	"A_TRUEHD":  "thd",
}

// AudioFileExtension is the file extension used for the raw payload of an
// audio track with the given CodecID.
func AudioFileExtension(codecID string) string {
	if ext, ok := audioExtensions[codecID]; ok {
		return ext
	}
	switch {
	case strings.HasPrefix(codecID, "A_AAC/"):
		return "aac"
	case strings.HasPrefix(codecID, "A_PCM/"):
		return "pcm"
	}
	return "bin"
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return ""
	}
	totalMs := int64(math.Round(seconds * 1000))
	if totalMs < 1000 {
		return fmt.Sprintf("%d ms", totalMs)
	}
	totalSec := totalMs / 1000
	if totalSec < 60 {
		return fmt.Sprintf("%d s %d ms", totalSec, totalMs%1000)
	}
	hours := totalSec / 3600
	minutes := (totalSec % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%d h %d min %d s", hours, minutes, totalSec%60)
	}
	return fmt.Sprintf("%d min %d s", minutes, totalSec%60)
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	value := float64(size)
	units := []string{"KiB", "MiB", "GiB", "TiB"}
	i := -1
	for value >= unit && i < len(units)-1 {
		value /= unit
		i++
	}
	return fmt.Sprintf("%.2f %s", value, units[i])
}

func formatSampleRate(rate float64) string {
	if rate <= 0 {
		return ""
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1f kHz", rate/1000)
	}
	return fmt.Sprintf("%.0f Hz", rate)
}

func formatChannels(value uint64) string {
	switch value {
	case 0:
		return ""
	case 1:
		return "1 channel"
	}
	return fmt.Sprintf("%d channels", value)
}

func formatPixels(value uint64) string {
	if value == 0 {
		return ""
	}
	return fmt.Sprintf("%d pixels", value)
}

func formatBitDepth(value uint64) string {
	if value == 0 {
		return ""
	}
	return fmt.Sprintf("%d bits", value)
}

func channelLayout(channels uint64) string {
	switch channels {
	case 1:
		return "C"
	case 2:
		return "L R"
	case 3:
		return "L R C"
	case 4:
		return "L R Ls Rs"
	case 5:
		return "L R C Ls Rs"
	case 6:
		return "L R C LFE Ls Rs"
	case 8:
		return "L R C LFE Ls Rs Lb Rb"
	}
	return ""
}

// Matroska stores ISO 639-2 codes, both bibliographic and terminology forms.
var languageNames = map[string]string{
	"eng": "English",
	"fre": "French",
	"fra": "French",
	"ger": "German",
	"deu": "German",
	"spa": "Spanish",
	"ita": "Italian",
	"por": "Portuguese",
	"jpn": "Japanese",
	"chi": "Chinese",
	"zho": "Chinese",
	"kor": "Korean",
	"rus": "Russian",
}

func formatLanguage(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || code == "und" {
		return ""
	}
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
