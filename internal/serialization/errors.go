package serialization

import "github.com/pkg/errors"

// Common errors.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes: not a .riven file")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrUnknownLayerType   = errors.New("unknown layer type")
)
