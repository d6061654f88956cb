package matroska

import "time"

// Frame is one (possibly laced) frame of a Block or SimpleBlock. Data aliases
// the container passed to Open and must not be modified.
type Frame struct {
	Track       uint64
	Timestamp   time.Duration
	Duration    time.Duration // from BlockDuration, zero when absent
	Keyframe    bool
	Discardable bool
	Invisible   bool
	Lace        int
	Data        []byte
}

// State is the position of a Session in its lifecycle.
type State int

const (
	StateUnopened State = iota
	StateOpened
	StateIterating
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateOpened:
		return "opened"
	case StateIterating:
		return "iterating"
	case StateExhausted:
		return "exhausted"
	default:
		return "unopened"
	}
}

// Session is a forward cursor over the Clusters of one Segment. It holds no
// state shared with ParseMetadata or with other sessions over the same bytes.
type Session struct {
	data         []byte
	segEnd       int
	firstCluster int
	scale        uint64

	pos            int
	inCluster      bool
	clusterEnd     int
	clusterUnknown bool
	clusterTime    int64

	pending []Frame
	state   State
}

// Open validates the EBML header and locates the Segment and its first
// Cluster. Cluster contents are not read until NextFrame.
func Open(data []byte) (*Session, error) {
	_, next, err := parseHeader(data)
	if err != nil {
		return nil, err
	}
	seg, err := findSegment(data, next)
	if err != nil {
		return nil, err
	}
	s := &Session{
		data:         data,
		segEnd:       seg.end,
		firstCluster: seg.end,
		scale:        defaultTimecodeScale,
	}
	// Stop at the first Cluster ID without reading its size; Cluster
	// bounds are checked when iteration reaches them.
	pos := seg.dataStart
	for pos < seg.end {
		id, _, err := ReadVintID(data[:seg.end], pos)
		if err != nil {
			return nil, err
		}
		if id == idCluster {
			s.firstCluster = pos
			break
		}
		el, err := readElement(data, pos, seg.end)
		if err != nil {
			return nil, err
		}
		if el.id == idInfo {
			info, err := parseInfo(data, el)
			if err != nil {
				return nil, err
			}
			s.scale = info.TimecodeScale
		}
		pos = el.end
	}
	s.SeekToStart()
	return s, nil
}

// State reports where the session is in its lifecycle.
func (s *Session) State() State {
	return s.state
}

// TimecodeScale is the nanoseconds-per-tick used for frame timestamps.
func (s *Session) TimecodeScale() uint64 {
	return s.scale
}

// SeekToStart rewinds to the first Cluster and drops any laced frames not yet
// returned. The following iteration yields the same frames in the same order.
func (s *Session) SeekToStart() {
	if s.state == StateUnopened && s.data == nil {
		return
	}
	s.pos = s.firstCluster
	s.inCluster = false
	s.clusterEnd = 0
	s.clusterUnknown = false
	s.clusterTime = 0
	s.pending = nil
	s.state = StateOpened
}

// NextFrame returns the next frame in file order. ok is false, with a nil
// error, once the Segment is exhausted. After an error the session stays
// exhausted until SeekToStart.
func (s *Session) NextFrame() (Frame, bool, error) {
	switch s.state {
	case StateUnopened:
		return Frame{}, false, ErrNotOpened
	case StateExhausted:
		return Frame{}, false, nil
	}
	s.state = StateIterating
	for len(s.pending) == 0 {
		frames, err := s.nextBlock()
		if err != nil {
			s.pending = nil
			s.state = StateExhausted
			return Frame{}, false, err
		}
		if frames == nil {
			s.state = StateExhausted
			return Frame{}, false, nil
		}
		s.pending = frames
	}
	frame := s.pending[0]
	s.pending = s.pending[1:]
	return frame, true, nil
}

// nextBlock advances to the next Block or SimpleBlock and decodes it. A nil
// slice with a nil error means the Segment has no more blocks.
func (s *Session) nextBlock() ([]Frame, error) {
	for {
		if !s.inCluster {
			if s.pos >= s.segEnd {
				return nil, nil
			}
			el, err := readElement(s.data, s.pos, s.segEnd)
			if err != nil {
				return nil, err
			}
			if el.id == idCluster {
				s.inCluster = true
				s.clusterEnd = el.end
				s.clusterUnknown = el.unknown
				s.clusterTime = 0
				s.pos = el.dataStart
				continue
			}
			s.pos = el.end
			continue
		}

		if s.pos >= s.clusterEnd {
			s.inCluster = false
			continue
		}
		if s.clusterUnknown {
			id, _, err := ReadVintID(s.data[:s.clusterEnd], s.pos)
			if err != nil {
				return nil, err
			}
			if endsUnknownCluster(id) {
				s.inCluster = false
				continue
			}
		}
		el, err := readElement(s.data, s.pos, s.clusterEnd)
		if err != nil {
			return nil, err
		}
		s.pos = el.end
		switch el.id {
		case idTimecode:
			value, ok := readUnsigned(s.data[el.dataStart:el.end])
			if !ok {
				return nil, newError(MalformedBlock, el.offset, "cluster Timecode is %d bytes", el.size())
			}
			s.clusterTime = int64(value)
		case idSimpleBlock:
			hdr, laces, err := parseBlock(s.data, el.dataStart, el.end)
			if err != nil {
				return nil, err
			}
			return s.frames(hdr, laces, hdr.flags&flagKeyframe != 0, 0), nil
		case idBlockGroup:
			frames, err := s.blockGroup(el)
			if err != nil {
				return nil, err
			}
			if frames != nil {
				return frames, nil
			}
		}
	}
}

func (s *Session) blockGroup(group element) ([]Frame, error) {
	var block element
	var hasBlock, hasReference bool
	var duration uint64
	err := walkChildren(s.data, group.dataStart, group.end, func(el element) (int, error) {
		switch el.id {
		case idBlock:
			block = el
			hasBlock = true
		case idReferenceBlock:
			hasReference = true
		case idBlockDuration:
			if value, ok := readUnsigned(s.data[el.dataStart:el.end]); ok {
				duration = value
			}
		}
		return el.end, nil
	})
	if err != nil {
		return nil, err
	}
	if !hasBlock {
		return nil, nil
	}
	hdr, laces, err := parseBlock(s.data, block.dataStart, block.end)
	if err != nil {
		return nil, err
	}
	// Block flags carry no keyframe or discardable bits, only SimpleBlock does.
	hdr.flags &^= flagKeyframe | flagDiscardable
	return s.frames(hdr, laces, !hasReference, duration), nil
}

func (s *Session) frames(hdr blockHeader, laces []lace, keyframe bool, duration uint64) []Frame {
	ticks := s.clusterTime + int64(hdr.timecode)
	ts := time.Duration(ticks * int64(s.scale))
	frames := make([]Frame, len(laces))
	for i, l := range laces {
		frames[i] = Frame{
			Track:       hdr.track,
			Timestamp:   ts,
			Duration:    time.Duration(duration * s.scale),
			Keyframe:    keyframe,
			Discardable: hdr.flags&flagDiscardable != 0,
			Invisible:   hdr.flags&flagInvisible != 0,
			Lace:        i,
			Data:        s.data[l.start:l.end:l.end],
		}
	}
	return frames
}
