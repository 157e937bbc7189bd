package evtc

import "encoding/binary"

// File layout targets one documented revision of the recorder output:
// a 12-byte signature ("EVTC" + yyyymmdd build date), one revision byte,
// a little-endian uint16 fight/species id and one reserved byte.
const (
	magicSize     = 4
	buildDateSize = 8
	signatureSize = magicSize + buildDateSize
	headerSize    = signatureSize + 1 + 2 + 1
)

var magic = []byte{'E', 'V', 'T', 'C'}

// Header carries fight metadata. It is passed through to the caller
// untouched; nothing downstream branches on it.
type Header struct {
	BuildDate string
	Revision  uint8
	FightID   uint16
}

func decodeHeader(data []byte) (Header, int, *ParseError) {
	if len(data) < headerSize {
		return Header{}, 0, structural(BadSignature, 0, headerSize, len(data), "buffer shorter than header")
	}
	for i, b := range magic {
		if data[i] != b {
			return Header{}, 0, structural(BadSignature, i, magicSize, magicSize, "signature mismatch")
		}
	}
	h := Header{
		BuildDate: string(data[magicSize:signatureSize]),
		Revision:  data[signatureSize],
		FightID:   binary.LittleEndian.Uint16(data[signatureSize+1 : signatureSize+3]),
	}
	return h, headerSize, nil
}
