package event

import (
	"testing"

	"github.com/sitegrid/fm-manager/pkg/model"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestNormalizeLayers(t *testing.T) {
	t.Run("mapping passes through", func(t *testing.T) {
		layers := NormalizeLayers(map[string]any{"electrical": true, "plumbing": false})

		assert.Equal(t, datatypes.JSONMap{"electrical": true, "plumbing": false}, layers)
	})

	t.Run("nil becomes the empty mapping", func(t *testing.T) {
		layers := NormalizeLayers(nil)

		assert.NotNil(t, layers)
		assert.Empty(t, layers)
	})

	t.Run("sequence becomes the empty mapping", func(t *testing.T) {
		layers := NormalizeLayers([]any{"electrical", "plumbing"})

		assert.NotNil(t, layers)
		assert.Empty(t, layers)
	})

	t.Run("scalar becomes the empty mapping", func(t *testing.T) {
		layers := NormalizeLayers("electrical")

		assert.NotNil(t, layers)
		assert.Empty(t, layers)
	})

	t.Run("typed nil mapping becomes the empty mapping", func(t *testing.T) {
		var m map[string]any
		layers := NormalizeLayers(m)

		assert.NotNil(t, layers)
		assert.Empty(t, layers)
	})
}

func TestNormalizeLayersOnRead(t *testing.T) {
	event := &model.Event{}

	normalizeLayersOnRead(event)

	assert.NotNil(t, event.ActiveLayers)
	assert.Empty(t, event.ActiveLayers)
}
