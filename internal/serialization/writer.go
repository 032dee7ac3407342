package serialization

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// rivenVersion is stamped into saved files for diagnostics.
const rivenVersion = "0.3.0"

// Save writes a .riven file describing a model of the given type and
// layer specifications.
func Save(path, modelType string, layers []LayerSpec) error {
	checksum, err := payloadChecksum(layers)
	if err != nil {
		return err
	}

	header := Header{
		FormatVersion: FormatVersion,
		RivenVersion:  rivenVersion,
		ModelType:     modelType,
		CreatedAt:     time.Now().UTC(),
		Layers:        layers,
		Checksum:      checksum,
	}

	body, err := json.MarshalIndent(header, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding header")
	}

	data := append([]byte(MagicBytes+"\n"), body...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	klog.V(1).Infof("saved %s model with %d layers to %s", modelType, len(layers), path)
	return nil
}
