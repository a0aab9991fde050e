package profile

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alebati123/abshine-storefront/internal/docstore/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateAndGet(t *testing.T) {
	docs := mocks.NewMockDocStore()
	store := NewStore(docs)

	err := store.Create(context.Background(), Profile{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)

	p, err := store.Get(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, RoleUser, p.Role)
}

func TestStore_Get_NotFound(t *testing.T) {
	store := NewStore(mocks.NewMockDocStore())

	_, err := store.Get(context.Background(), "nadie@example.com")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestStore_Get_DefaultsRole(t *testing.T) {
	docs := mocks.NewMockDocStore()
	docs.SeedDoc(ProfilesCollection, "ana@example.com", map[string]string{
		"name":  "Ana",
		"email": "ana@example.com",
	})
	store := NewStore(docs)

	p, err := store.Get(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, p.Role)
}

func TestStore_Get_KeepsExplicitRole(t *testing.T) {
	docs := mocks.NewMockDocStore()
	docs.SeedDoc(ProfilesCollection, "admin@example.com", Profile{Name: "Admin", Email: "admin@example.com", Role: RoleAdmin})
	store := NewStore(docs)

	p, err := store.Get(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, p.Role)
}

func TestStore_SaveCustomer_Merges(t *testing.T) {
	docs := mocks.NewMockDocStore()
	store := NewStore(docs)

	err := store.SaveCustomer(context.Background(), Customer{
		Email:   "ana@example.com",
		Address: "Calle Falsa 123",
		Phone:   "11-5555-0000",
	})
	require.NoError(t, err)

	// A later partial save must not drop the earlier fields.
	err = store.SaveCustomer(context.Background(), Customer{
		Email:    "ana@example.com",
		Province: "Córdoba",
	})
	require.NoError(t, err)

	c, found, err := store.GetCustomer(context.Background(), "ana@example.com")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Calle Falsa 123", c.Address)
	assert.Equal(t, "11-5555-0000", c.Phone)
	assert.Equal(t, "Córdoba", c.Province)

	for _, call := range docs.SetCalls {
		assert.True(t, call.Merge)
	}
}

func TestStore_SaveCustomer_RequiresEmail(t *testing.T) {
	store := NewStore(mocks.NewMockDocStore())

	err := store.SaveCustomer(context.Background(), Customer{Address: "Calle Falsa 123"})
	assert.Error(t, err)
}

func TestStore_GetCustomer_MissingIsNotAnError(t *testing.T) {
	store := NewStore(mocks.NewMockDocStore())

	_, found, err := store.GetCustomer(context.Background(), "nadie@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_ListProvinces_SortedByName(t *testing.T) {
	docs := mocks.NewMockDocStore()
	docs.SeedDoc(ProvincesCollection, "3", Province{ID: "3", Name: "Santa Fe"})
	docs.SeedDoc(ProvincesCollection, "1", Province{ID: "1", Name: "Buenos Aires"})
	docs.SeedDoc(ProvincesCollection, "2", Province{ID: "2", Name: "Córdoba"})
	store := NewStore(docs)

	provinces, err := store.ListProvinces(context.Background())

	require.NoError(t, err)
	require.Len(t, provinces, 3)
	assert.Equal(t, "Buenos Aires", provinces[0].Name)
	assert.Equal(t, "Córdoba", provinces[1].Name)
	assert.Equal(t, "Santa Fe", provinces[2].Name)
}

func TestStore_ListProvinces_SkipsMalformed(t *testing.T) {
	docs := mocks.NewMockDocStore()
	docs.SeedDoc(ProvincesCollection, "1", Province{ID: "1", Name: "Buenos Aires"})
	docs.SeedDoc(ProvincesCollection, "bad", json.RawMessage(`"texto suelto"`))
	store := NewStore(docs)

	provinces, err := store.ListProvinces(context.Background())

	require.NoError(t, err)
	require.Len(t, provinces, 1)
	assert.Equal(t, "Buenos Aires", provinces[0].Name)
}
