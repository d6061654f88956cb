package matroska

import (
	"bytes"
	"encoding/binary"
	"math"
)

// UnknownSize is returned by ReadVintSize when every value bit of the size
// field is set, which EBML uses for elements of unbounded length.
const UnknownSize = ^uint64(0)

const (
	maxIDLength   = 4
	maxSizeLength = 8
)

func vintLength(first byte) int {
	for i := 0; i < 8; i++ {
		if first&(1<<(7-uint(i))) != 0 {
			return i + 1
		}
	}
	return 0
}

// ReadVintID decodes the element ID starting at buf[off]. The returned value
// keeps the length marker bits, so 0x1A45DFA3 is the EBML header.
func ReadVintID(buf []byte, off int) (uint64, int, error) {
	if off < 0 || off >= len(buf) {
		return 0, 0, newError(Truncated, off, "element id past end of data")
	}
	length := vintLength(buf[off])
	if length == 0 || length > maxIDLength {
		return 0, 0, newError(MalformedID, off, "invalid id leading byte 0x%02X", buf[off])
	}
	if off+length > len(buf) {
		return 0, 0, newError(Truncated, off, "%d-byte element id cut short", length)
	}
	var value uint64
	for i := 0; i < length; i++ {
		value = (value << 8) | uint64(buf[off+i])
	}
	return value, length, nil
}

// ReadVintSize decodes the element data size starting at buf[off].
// A size with all value bits set is reported as UnknownSize.
func ReadVintSize(buf []byte, off int) (uint64, int, error) {
	if off < 0 || off >= len(buf) {
		return 0, 0, newError(Truncated, off, "element size past end of data")
	}
	first := buf[off]
	length := vintLength(first)
	if length == 0 {
		return 0, 0, newError(MalformedID, off, "invalid size varint: leading byte 0x00")
	}
	if off+length > len(buf) {
		return 0, 0, newError(Truncated, off, "%d-byte element size cut short", length)
	}
	value, unknown := decodeVint(buf[off : off+length])
	if unknown {
		return UnknownSize, length, nil
	}
	return value, length, nil
}

// decodeVint strips the length marker of an already length-checked varint.
func decodeVint(b []byte) (uint64, bool) {
	length := len(b)
	mask := byte(0xFF >> length)
	value := uint64(b[0] & mask)
	for i := 1; i < length; i++ {
		value = (value << 8) | uint64(b[i])
	}
	return value, value == (uint64(1)<<(uint(length*7)))-1
}

type element struct {
	id        uint64
	offset    int
	dataStart int
	end       int
	unknown   bool
}

func (el element) size() int {
	return el.end - el.dataStart
}

// readElement reads the header at off and resolves the payload range. limit is
// the end of the enclosing element; unknown sizes run up to it.
func readElement(buf []byte, off, limit int) (element, error) {
	window := buf[:limit]
	id, idLen, err := ReadVintID(window, off)
	if err != nil {
		return element{}, err
	}
	size, sizeLen, err := ReadVintSize(window, off+idLen)
	if err != nil {
		return element{}, err
	}
	el := element{id: id, offset: off, dataStart: off + idLen + sizeLen}
	if size == UnknownSize {
		el.end = limit
		el.unknown = true
		return el, nil
	}
	if size > uint64(limit-el.dataStart) {
		return element{}, newError(Truncated, off, "element 0x%X declares %d bytes, %d remain", id, size, limit-el.dataStart)
	}
	el.end = el.dataStart + int(size)
	return el, nil
}

// walkChildren calls fn for every child element in [start, end). fn returns the
// offset to continue from; most callers return el.end.
func walkChildren(buf []byte, start, end int, fn func(el element) (int, error)) error {
	pos := start
	for pos < end {
		el, err := readElement(buf, pos, end)
		if err != nil {
			return err
		}
		next, err := fn(el)
		if err != nil {
			return err
		}
		if next <= pos {
			next = el.end
		}
		pos = next
	}
	return nil
}

func readUnsigned(buf []byte) (uint64, bool) {
	if len(buf) > 8 {
		return 0, false
	}
	var value uint64
	for _, b := range buf {
		value = (value << 8) | uint64(b)
	}
	return value, true
}

func readSigned(buf []byte) (int64, bool) {
	if len(buf) == 0 {
		return 0, true
	}
	if len(buf) > 8 {
		return 0, false
	}
	var value int64
	for _, b := range buf {
		value = (value << 8) | int64(b)
	}
	if len(buf) < 8 && buf[0]&0x80 != 0 {
		value -= 1 << (uint(len(buf)) * 8)
	}
	return value, true
}

func readFloat(buf []byte) (float64, bool) {
	switch len(buf) {
	case 0:
		return 0, true
	case 4:
		return float64(math.Float32frombits(binary.BigEndian.Uint32(buf))), true
	case 8:
		return math.Float64frombits(binary.BigEndian.Uint64(buf)), true
	}
	return 0, false
}

func readString(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return string(buf)
}
