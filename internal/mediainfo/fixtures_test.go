package mediainfo

import (
	"encoding/binary"
	"math"
)

// element encodes an EBML element with an 8-byte size field.
func element(id uint32, payload ...[]byte) []byte {
	var idBytes [4]byte
	binary.BigEndian.PutUint32(idBytes[:], id)
	start := 0
	for start < 3 && idBytes[start] == 0 {
		start++
	}
	var body []byte
	for _, p := range payload {
		body = append(body, p...)
	}
	size := make([]byte, 8)
	binary.BigEndian.PutUint64(size, uint64(len(body)))
	size[0] = 0x01

	out := append([]byte{}, idBytes[start:]...)
	out = append(out, size...)
	return append(out, body...)
}

func uintPayload(value uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, value)
	return buf
}

func floatPayload(value float64) []byte {
	return uintPayload(math.Float64bits(value))
}

func simpleBlock(track byte, timecode int16, data ...byte) []byte {
	body := []byte{0x80 | track, byte(uint16(timecode) >> 8), byte(timecode), 0x80}
	return element(0xA3, append(body, data...))
}

func trackEntry(number uint64, trackType uint64, codec string) []byte {
	children := [][]byte{
		element(0xD7, uintPayload(number)),
		element(0x83, uintPayload(trackType)),
		element(0x86, []byte(codec)),
	}
	if trackType == 2 {
		children = append(children, element(0xE1,
			element(0xB5, floatPayload(48000)),
			element(0x9F, uintPayload(2)),
		))
	}
	return element(0xAE, children...)
}

func cluster(timecode uint64, blocks ...[]byte) []byte {
	return element(0x1F43B675, append([][]byte{element(0xE7, uintPayload(timecode))}, blocks...)...)
}

func mkvFile(title string, durationTicks float64, tracks [][]byte, clusters ...[]byte) []byte {
	info := [][]byte{element(0x2AD7B1, uintPayload(1000000))}
	if durationTicks > 0 {
		info = append(info, element(0x4489, floatPayload(durationTicks)))
	}
	if title != "" {
		info = append(info, element(0x7BA9, []byte(title)))
	}
	children := [][]byte{element(0x1549A966, info...), element(0x1654AE6B, tracks...)}
	children = append(children, clusters...)

	header := element(0x1A45DFA3, element(0x4282, []byte("matroska")))
	return append(header, element(0x18538067, children...)...)
}

// opusFixture is one A_OPUS track with three SimpleBlocks.
func opusFixture() []byte {
	return mkvFile("", 5000,
		[][]byte{trackEntry(1, 2, "A_OPUS")},
		cluster(0,
			simpleBlock(1, 0, 0x01, 0x02),
			simpleBlock(1, 20, 0x03),
			simpleBlock(1, 40, 0x04, 0x05, 0x06),
		),
	)
}

// multiAudioFixture interleaves a video track with two audio tracks.
func multiAudioFixture() []byte {
	return mkvFile("Two languages", 3000,
		[][]byte{
			trackEntry(1, 1, "V_VP9"),
			trackEntry(2, 2, "A_OPUS"),
			trackEntry(3, 2, "A_VORBIS"),
			trackEntry(4, 0x11, "S_TEXT/UTF8"),
		},
		cluster(0,
			simpleBlock(1, 0, 0xF0, 0xF1),
			simpleBlock(2, 0, 0x20),
			simpleBlock(3, 0, 0x30, 0x31),
		),
		cluster(1000,
			simpleBlock(3, 0, 0x32),
			simpleBlock(2, 5, 0x21, 0x22),
			simpleBlock(4, 7, 'h', 'i'),
			simpleBlock(1, 10, 0xF2),
		),
	)
}

// corruptFixture has a valid block followed by an EBML-laced block with no lace count.
func corruptFixture() []byte {
	return mkvFile("", 0,
		[][]byte{trackEntry(1, 2, "A_OPUS")},
		cluster(0,
			simpleBlock(1, 0, 0x01, 0x02),
			element(0xA3, []byte{0x81, 0x00, 0x00, 0x86}),
			simpleBlock(1, 40, 0x03),
		),
	)
}
