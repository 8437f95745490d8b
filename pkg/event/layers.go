package event

import (
	"github.com/sitegrid/fm-manager/pkg/model"
	"gorm.io/datatypes"
)

// Active layers must always be a mapping, never null and never a sequence.
// Clients have historically sent all three shapes, so both the read and the
// write path run through an explicit normalization step.

// NormalizeLayers coerces a free-form active layers value to a mapping. Maps
// pass through, everything else (nil, sequences, scalars) becomes the empty
// mapping.
func NormalizeLayers(value any) datatypes.JSONMap {
	switch v := value.(type) {
	case map[string]any:
		if v == nil {
			return datatypes.JSONMap{}
		}
		return v
	case datatypes.JSONMap:
		if v == nil {
			return datatypes.JSONMap{}
		}
		return v
	default:
		return datatypes.JSONMap{}
	}
}

func normalizeLayersOnWrite(layers datatypes.JSONMap) datatypes.JSONMap {
	if layers == nil {
		return datatypes.JSONMap{}
	}
	return layers
}

func normalizeLayersOnRead(event *model.Event) {
	if event.ActiveLayers == nil {
		event.ActiveLayers = datatypes.JSONMap{}
	}
}
