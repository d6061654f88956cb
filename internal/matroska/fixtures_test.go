package matroska

import (
	"encoding/binary"
	"math"
)

func buildID(id uint64) []byte {
	if id <= 0xFF {
		return []byte{byte(id)}
	}
	if id <= 0xFFFF {
		return []byte{byte(id >> 8), byte(id)}
	}
	if id <= 0xFFFFFF {
		return []byte{byte(id >> 16), byte(id >> 8), byte(id)}
	}
	return []byte{byte(id >> 24), byte(id >> 16), byte(id >> 8), byte(id)}
}

func buildSize(size uint64) []byte {
	if size < 0x7F {
		return []byte{byte(0x80 | size)}
	}
	if size < 0x3FFF {
		return []byte{byte(0x40 | (size >> 8)), byte(size)}
	}
	if size < 0x1FFFFF {
		return []byte{byte(0x20 | (size >> 16)), byte(size >> 8), byte(size)}
	}
	return []byte{byte(0x10 | (size >> 24)), byte(size >> 16), byte(size >> 8), byte(size)}
}

var unknownSizeMarker = []byte{0x01, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

func buildElement(id uint64, payload ...[]byte) []byte {
	var body []byte
	for _, p := range payload {
		body = append(body, p...)
	}
	buf := append(buildID(id), buildSize(uint64(len(body)))...)
	return append(buf, body...)
}

func buildUnknownSizeElement(id uint64, payload ...[]byte) []byte {
	buf := append(buildID(id), unknownSizeMarker...)
	for _, p := range payload {
		buf = append(buf, p...)
	}
	return buf
}

func encodeUint(value uint64) []byte {
	if value == 0 {
		return []byte{0}
	}
	var out []byte
	for value > 0 {
		out = append([]byte{byte(value)}, out...)
		value >>= 8
	}
	return out
}

func encodeFloat(value float64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(value))
	return buf
}

func buildHeader(docType string) []byte {
	return buildElement(idEBML,
		buildElement(0x4286, encodeUint(1)),
		buildElement(0x42F7, encodeUint(1)),
		buildElement(idDocType, []byte(docType)),
		buildElement(idDocTypeVersion, encodeUint(4)),
	)
}

func buildInfo(scale uint64, durationTicks float64, title string) []byte {
	var children [][]byte
	if scale > 0 {
		children = append(children, buildElement(idTimecodeScale, encodeUint(scale)))
	}
	if durationTicks > 0 {
		children = append(children, buildElement(idDuration, encodeFloat(durationTicks)))
	}
	if title != "" {
		children = append(children, buildElement(idTitle, []byte(title)))
	}
	children = append(children, buildElement(idMuxingApp, []byte("fixture")))
	return buildElement(idInfo, children...)
}

func buildTrack(number uint64, trackType uint64, codecID string) []byte {
	children := [][]byte{
		buildElement(idTrackNumber, encodeUint(number)),
		buildElement(idTrackUID, encodeUint(number*1000)),
		buildElement(idTrackType, encodeUint(trackType)),
		buildElement(idCodecID, []byte(codecID)),
	}
	if trackType == uint64(TrackTypeAudio) {
		children = append(children, buildElement(idTrackAudio,
			buildElement(idSamplingFrequency, encodeFloat(48000)),
			buildElement(idChannels, encodeUint(2)),
		))
	}
	if trackType == uint64(TrackTypeVideo) {
		children = append(children, buildElement(idTrackVideo,
			buildElement(idPixelWidth, encodeUint(1920)),
			buildElement(idPixelHeight, encodeUint(1080)),
		))
	}
	return buildElement(idTrackEntry, children...)
}

func buildTracks(entries ...[]byte) []byte {
	return buildElement(idTracks, entries...)
}

func buildCluster(timecode uint64, blocks ...[]byte) []byte {
	children := append([][]byte{buildElement(idTimecode, encodeUint(timecode))}, blocks...)
	return buildElement(idCluster, children...)
}

func blockHeaderBytes(track uint64, timecode int16, flags byte) []byte {
	return []byte{byte(0x80 | track), byte(uint16(timecode) >> 8), byte(timecode), flags}
}

func buildSimpleBlock(track uint64, timecode int16, payload []byte) []byte {
	body := append(blockHeaderBytes(track, timecode, flagKeyframe), payload...)
	return buildElement(idSimpleBlock, body)
}

func buildXiphLacedBlock(track uint64, timecode int16, frames ...[]byte) []byte {
	body := blockHeaderBytes(track, timecode, flagKeyframe|lacingXiph<<1)
	body = append(body, byte(len(frames)-1))
	for _, f := range frames[:len(frames)-1] {
		size := len(f)
		for size >= 0xFF {
			body = append(body, 0xFF)
			size -= 0xFF
		}
		body = append(body, byte(size))
	}
	for _, f := range frames {
		body = append(body, f...)
	}
	return buildElement(idSimpleBlock, body)
}

func buildFixedLacedBlock(track uint64, timecode int16, frames ...[]byte) []byte {
	body := blockHeaderBytes(track, timecode, flagKeyframe|lacingFixed<<1)
	body = append(body, byte(len(frames)-1))
	for _, f := range frames {
		body = append(body, f...)
	}
	return buildElement(idSimpleBlock, body)
}

// buildEBMLLacedBlock writes sizes as 2-byte varints; frames must be under 8 KiB.
func buildEBMLLacedBlock(track uint64, timecode int16, frames ...[]byte) []byte {
	body := blockHeaderBytes(track, timecode, flagKeyframe|lacingEBML<<1)
	body = append(body, byte(len(frames)-1))
	first := uint64(len(frames[0]))
	body = append(body, byte(0x40|(first>>8)), byte(first))
	prev := int64(len(frames[0]))
	for _, f := range frames[1 : len(frames)-1] {
		diff := int64(len(f)) - prev
		raw := uint64(diff + (1<<13 - 1))
		body = append(body, byte(0x40|(raw>>8)), byte(raw))
		prev = int64(len(f))
	}
	for _, f := range frames {
		body = append(body, f...)
	}
	return buildElement(idSimpleBlock, body)
}

func buildBlockGroup(track uint64, timecode int16, payload []byte, reference bool, duration uint64) []byte {
	children := [][]byte{buildElement(idBlock, blockHeaderBytes(track, timecode, 0), payload)}
	if duration > 0 {
		children = append(children, buildElement(idBlockDuration, encodeUint(duration)))
	}
	if reference {
		children = append(children, buildElement(idReferenceBlock, []byte{0xFF}))
	}
	return buildElement(idBlockGroup, children...)
}

func buildFile(segmentChildren ...[]byte) []byte {
	return append(buildHeader("matroska"), buildElement(idSegment, segmentChildren...)...)
}

// buildOpusFile is the single-track scenario: three SimpleBlocks on an A_OPUS track.
func buildOpusFile() []byte {
	return buildFile(
		buildInfo(1000000, 5000, ""),
		buildTracks(buildTrack(1, uint64(TrackTypeAudio), "A_OPUS")),
		buildCluster(0,
			buildSimpleBlock(1, 0, []byte{0x01, 0x02}),
			buildSimpleBlock(1, 20, []byte{0x03}),
			buildSimpleBlock(1, 40, []byte{0x04, 0x05, 0x06}),
		),
	)
}

// buildInterleavedFile has a video track, two audio tracks and laced blocks.
func buildInterleavedFile() []byte {
	return buildFile(
		buildInfo(1000000, 2000, "Interleaved"),
		buildTracks(
			buildTrack(1, uint64(TrackTypeVideo), "V_VP9"),
			buildTrack(2, uint64(TrackTypeAudio), "A_OPUS"),
			buildTrack(3, uint64(TrackTypeAudio), "A_VORBIS"),
		),
		buildCluster(0,
			buildSimpleBlock(1, 0, []byte{0xA0, 0xA1, 0xA2, 0xA3}),
			buildSimpleBlock(2, 0, []byte{0x20, 0x21}),
			buildXiphLacedBlock(3, 0, []byte{0x30}, make([]byte, 300), []byte{0x31, 0x32}),
		),
		buildElement(idCues, buildElement(0xBB, buildElement(0xB3, encodeUint(0)))),
		buildCluster(1000,
			buildBlockGroup(1, 0, []byte{0xB0, 0xB1}, true, 33),
			buildEBMLLacedBlock(2, 5, []byte{0x22}, []byte{0x23, 0x24, 0x25}, []byte{0x26, 0x27}),
			buildFixedLacedBlock(3, 10, []byte{0x33, 0x34}, []byte{0x35, 0x36}),
			buildSimpleBlock(9, 12, []byte{0x99}),
		),
		buildElement(idTags, buildElement(0x7373)),
	)
}
