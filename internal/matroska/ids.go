package matroska

// Element IDs keep their length marker bits, as they appear on the wire.
const (
	idEBML               = 0x1A45DFA3
	idDocType            = 0x4282
	idDocTypeVersion     = 0x4287
	idSegment            = 0x18538067
	idSeekHead           = 0x114D9B74
	idInfo               = 0x1549A966
	idTimecodeScale      = 0x2AD7B1
	idDuration           = 0x4489
	idTitle              = 0x7BA9
	idMuxingApp          = 0x4D80
	idWritingApp         = 0x5741
	idTracks             = 0x1654AE6B
	idTrackEntry         = 0xAE
	idTrackNumber        = 0xD7
	idTrackUID           = 0x73C5
	idTrackType          = 0x83
	idName               = 0x536E
	idLanguage           = 0x22B59C
	idCodecID            = 0x86
	idCodecPrivate       = 0x63A2
	idDefaultDuration    = 0x23E383
	idTrackVideo         = 0xE0
	idPixelWidth         = 0xB0
	idPixelHeight        = 0xBA
	idTrackAudio         = 0xE1
	idSamplingFrequency  = 0xB5
	idChannels           = 0x9F
	idBitDepth           = 0x6264
	idCluster            = 0x1F43B675
	idTimecode           = 0xE7
	idSimpleBlock        = 0xA3
	idBlockGroup         = 0xA0
	idBlock              = 0xA1
	idBlockDuration      = 0x9B
	idReferenceBlock     = 0xFB
	idCues               = 0x1C53BB6B
	idChapters           = 0x1043A770
	idTags               = 0x1254C367
	idAttachments        = 0x1941A469
	defaultTimecodeScale = uint64(1000000)
)

// endsUnknownCluster reports whether id starts an element that cannot live
// inside a Cluster, which terminates a Cluster written with an unknown size.
func endsUnknownCluster(id uint64) bool {
	switch id {
	case idCluster, idEBML, idSegment, idSeekHead, idInfo, idTracks, idCues, idChapters, idTags, idAttachments:
		return true
	}
	return false
}
