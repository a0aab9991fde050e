package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnavailable_TagsError(t *testing.T) {
	err := unavailable(assert.AnError)

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestUnavailable_NilPassesThrough(t *testing.T) {
	assert.NoError(t, unavailable(nil))
}

func TestMergeDocs(t *testing.T) {
	base := map[string]any{"email": "ana@example.com", "address": "Calle Falsa 123"}
	patch := map[string]any{"provincia": "Córdoba", "address": "Otra Calle 456"}

	merged := mergeDocs(base, patch)

	assert.Equal(t, "ana@example.com", merged["email"])
	assert.Equal(t, "Otra Calle 456", merged["address"])
	assert.Equal(t, "Córdoba", merged["provincia"])
}

func TestMergeDocs_NilBase(t *testing.T) {
	patch := map[string]any{"email": "ana@example.com"}
	assert.Equal(t, patch, mergeDocs(nil, patch))
}

func TestToDoc_UsesJSONTags(t *testing.T) {
	type record struct {
		ProductID string  `json:"id"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
	}

	doc, err := toDoc(record{ProductID: "p1", Name: "Crema", Price: 100})

	require.NoError(t, err)
	assert.Equal(t, "p1", doc["id"])
	assert.Equal(t, "Crema", doc["name"])
	assert.Equal(t, 100.0, doc["price"])
	assert.NotContains(t, doc, "ProductID")
}

func TestToDoc_RejectsNonObject(t *testing.T) {
	_, err := toDoc("just a string")
	assert.Error(t, err)
}
