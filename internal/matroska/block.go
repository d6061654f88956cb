package matroska

const (
	lacingNone  = 0
	lacingXiph  = 1
	lacingFixed = 2
	lacingEBML  = 3
)

const (
	flagKeyframe    = 0x80
	flagInvisible   = 0x08
	flagDiscardable = 0x01
)

// blockHeader is the fixed part of a Block or SimpleBlock payload.
type blockHeader struct {
	track    uint64
	timecode int16
	flags    byte
}

// lace is an absolute [start, end) range of one frame inside the container.
type lace struct {
	start int
	end   int
}

// parseBlock decodes the Block/SimpleBlock payload in data[start:end] into its
// header and the byte ranges of its frames. Laced blocks return one range per
// frame, all sharing the header.
func parseBlock(data []byte, start, end int) (blockHeader, []lace, error) {
	var hdr blockHeader
	if start >= end {
		return hdr, nil, newError(MalformedBlock, start, "empty block")
	}
	trackLen := vintLength(data[start])
	if trackLen == 0 {
		return hdr, nil, newError(MalformedBlock, start, "invalid track number varint")
	}
	// track number + timecode(2) + flags(1)
	if start+trackLen+3 > end {
		return hdr, nil, newError(MalformedBlock, start, "block of %d bytes shorter than its header", end-start)
	}
	hdr.track, _ = decodeVint(data[start : start+trackLen])
	pos := start + trackLen
	timecode, _ := readSigned(data[pos : pos+2])
	hdr.timecode = int16(timecode)
	hdr.flags = data[pos+2]
	pos += 3

	lacing := (hdr.flags >> 1) & 0x03
	if lacing == lacingNone {
		return hdr, []lace{{start: pos, end: end}}, nil
	}

	if pos >= end {
		return hdr, nil, newError(MalformedBlock, pos, "laced block without frame count")
	}
	// The lace header stores the frame count minus one; a single-frame lace
	// carries no sizes and its frame runs to the end of the block.
	count := int(data[pos]) + 1
	pos++

	sizes := make([]int, count)
	switch lacing {
	case lacingXiph:
		for i := 0; i < count-1; i++ {
			size := 0
			for {
				if pos >= end {
					return hdr, nil, newError(MalformedBlock, pos, "xiph lace size cut short")
				}
				b := data[pos]
				pos++
				size += int(b)
				if b != 0xFF {
					break
				}
			}
			sizes[i] = size
		}
	case lacingEBML:
		if count == 1 {
			break
		}
		first, n, err := readLaceVint(data, pos, end)
		if err != nil {
			return hdr, nil, err
		}
		pos += n
		sizes[0] = int(first)
		prev := int64(first)
		for i := 1; i < count-1; i++ {
			raw, n, err := readLaceVint(data, pos, end)
			if err != nil {
				return hdr, nil, err
			}
			bias := int64(1)<<(uint(n*7-1)) - 1
			next := prev + int64(raw) - bias
			if next < 0 || next > int64(end-start) {
				return hdr, nil, newError(MalformedBlock, pos, "ebml lace size %d out of range", next)
			}
			pos += n
			sizes[i] = int(next)
			prev = next
		}
	case lacingFixed:
		remaining := end - pos
		if remaining%count != 0 {
			return hdr, nil, newError(MalformedBlock, pos, "%d bytes do not split into %d fixed laces", remaining, count)
		}
		for i := range sizes {
			sizes[i] = remaining / count
		}
	}

	if lacing != lacingFixed {
		used := 0
		for _, size := range sizes[:count-1] {
			used += size
		}
		last := end - pos - used
		if used > end-pos || last < 0 {
			return hdr, nil, newError(MalformedBlock, pos, "lace sizes (%d bytes) exceed block payload (%d bytes)", used, end-pos)
		}
		sizes[count-1] = last
	}

	laces := make([]lace, count)
	for i, size := range sizes {
		laces[i] = lace{start: pos, end: pos + size}
		pos += size
	}
	return hdr, laces, nil
}

func readLaceVint(data []byte, pos, end int) (uint64, int, error) {
	if pos >= end {
		return 0, 0, newError(MalformedBlock, pos, "ebml lace size cut short")
	}
	length := vintLength(data[pos])
	if length == 0 || pos+length > end {
		return 0, 0, newError(MalformedBlock, pos, "invalid ebml lace size")
	}
	value, _ := decodeVint(data[pos : pos+length])
	return value, length, nil
}
