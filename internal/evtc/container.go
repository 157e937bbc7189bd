package evtc

import (
	"archive/zip"
	"bytes"
	"io"
)

// Zip local-file-header and end-of-central-directory signatures. Detection is
// by content, never by filename; the hint the caller passes is advisory only.
var (
	zipLocalHeader = []byte{'P', 'K', 0x03, 0x04}
	zipEmptyMarker = []byte{'P', 'K', 0x05, 0x06}
)

func looksZipped(data []byte) bool {
	return bytes.HasPrefix(data, zipLocalHeader) || bytes.HasPrefix(data, zipEmptyMarker)
}

// unwrap yields the working buffer: raw bytes pass through untouched, a
// zip-wrapped payload must hold exactly one member whose decompressed size
// stays under ceiling. The ceiling is enforced twice: once against the
// member's declared size and again while reading, since the declared size
// is attacker-controlled.
func unwrap(data []byte, ceiling int64) ([]byte, *ParseError) {
	if !looksZipped(data) {
		return data, nil
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, structural(UnsupportedContainer, 0, len(zipLocalHeader), len(data), "zip signature present but archive unreadable")
	}
	if len(zr.File) != 1 {
		return nil, structural(UnsupportedContainer, 0, 1, len(zr.File), "archive must contain exactly one member")
	}

	member := zr.File[0]
	if int64(member.UncompressedSize64) > ceiling {
		return nil, structural(UnsupportedContainer, 0, int(ceiling), int(member.UncompressedSize64), "declared decompressed size exceeds ceiling")
	}

	rc, err := member.Open()
	if err != nil {
		return nil, structural(UnsupportedContainer, 0, 0, 0, "cannot open archive member")
	}
	defer rc.Close()

	buf, err := io.ReadAll(io.LimitReader(rc, ceiling+1))
	if err != nil {
		return nil, structural(UnsupportedContainer, 0, int(member.UncompressedSize64), len(buf), "archive member failed to decompress")
	}
	if int64(len(buf)) > ceiling {
		return nil, structural(UnsupportedContainer, 0, int(ceiling), len(buf), "decompressed payload exceeds ceiling")
	}
	return buf, nil
}
