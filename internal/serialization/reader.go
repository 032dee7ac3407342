package serialization

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Load reads and verifies a .riven file. The layer payload checksum
// is recomputed and compared before the header is returned.
func Load(path string) (*Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	magic := []byte(MagicBytes + "\n")
	if !bytes.HasPrefix(data, magic) {
		return nil, errors.Wrapf(ErrInvalidMagic, "%s", path)
	}

	var header Header
	if err := json.Unmarshal(data[len(magic):], &header); err != nil {
		return nil, errors.Wrapf(err, "decoding header of %s", path)
	}

	if header.FormatVersion != FormatVersion {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d, want %d",
			header.FormatVersion, FormatVersion)
	}

	checksum, err := payloadChecksum(header.Layers)
	if err != nil {
		return nil, err
	}
	if checksum != header.Checksum {
		return nil, errors.Wrapf(ErrChecksumMismatch, "%s", path)
	}

	klog.V(1).Infof("loaded %s model with %d layers from %s",
		header.ModelType, len(header.Layers), path)
	return &header, nil
}
