package serialization

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/pkg/errors"
)

// payloadChecksum computes the SHA-256 checksum of the canonical JSON
// encoding of the layer payload. encoding/json sorts map keys, so the
// encoding is stable across runs.
func payloadChecksum(layers []LayerSpec) (string, error) {
	payload, err := json.Marshal(layers)
	if err != nil {
		return "", errors.Wrap(err, "encoding layer payload")
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
