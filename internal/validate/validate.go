// Package validate performs the pre-decode checks on uploads: size and
// extension gates that must pass before any bytes reach the decoder. The
// decoder's own signature check stays authoritative; the extension check
// here only rejects obviously wrong uploads early and cheaply.
package validate

import (
	"fmt"
	"path/filepath"
	"strings"
)

var allowedExtensions = map[string]struct{}{
	".evtc":  {},
	".zevtc": {},
	".zip":   {},
}

// UploadError is a caller-facing validation failure, safe to show verbatim.
type UploadError struct {
	Reason string
}

func (e *UploadError) Error() string { return "invalid upload: " + e.Reason }

// Upload checks filename and size limits. maxBytes guards the raw upload;
// the decompressed-size ceiling is the decoder's concern.
func Upload(filename string, size, maxBytes int64) error {
	if size == 0 {
		return &UploadError{Reason: "empty file"}
	}
	if size > maxBytes {
		return &UploadError{Reason: fmt.Sprintf("file exceeds %d bytes", maxBytes)}
	}
	ext := strings.ToLower(filepath.Ext(filename))
	// .evtc.zip arrives with Ext == ".zip", which is allowed on its own.
	if _, ok := allowedExtensions[ext]; !ok {
		return &UploadError{Reason: fmt.Sprintf("unsupported extension %q", ext)}
	}
	return nil
}
