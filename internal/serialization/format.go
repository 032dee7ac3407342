// Package serialization implements the .riven model file format.
//
// A .riven file persists the architecture of a model: an ordered list
// of layer specifications (layer type plus configuration fields). The
// layers in this toolkit carry no learnable parameters, and transient
// per-pass state such as pooling index maps is never persisted, so
// the format is a small JSON document rather than a tensor container.
//
// Layout: a magic line ("RIVN\n") followed by the JSON-encoded Header.
// The header carries a SHA-256 checksum of the layer payload so a
// corrupted or hand-edited file is rejected at load time.
package serialization

import "time"

// Format constants.
const (
	MagicBytes    = "RIVN"
	FormatVersion = 1
)

// Header is the JSON body of a .riven file.
type Header struct {
	FormatVersion int         `json:"format_version"` // Version of the .riven format
	RivenVersion  string      `json:"riven_version"`  // Version of Riven that created this file
	ModelType     string      `json:"model_type"`     // Type of model (e.g., "Sequential")
	CreatedAt     time.Time   `json:"created_at"`     // When the file was created
	Layers        []LayerSpec `json:"layers"`         // Ordered layer specifications
	Checksum      string      `json:"checksum"`       // SHA-256 over the layer payload
}

// LayerSpec describes one layer: its type name and the configuration
// fields it needs to be reconstructed. Transient state (index maps,
// cached output dimensions) is not persisted; it is rebuilt by the
// first forward pass after loading.
type LayerSpec struct {
	Type   string         `json:"type"`
	Config map[string]any `json:"config"`
}
