package menu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiTanyaZhao/food-order-system/internal/domain"
	"github.com/hiTanyaZhao/food-order-system/internal/service/menu"
	"github.com/hiTanyaZhao/food-order-system/internal/storage/memory"
)

func newService(t *testing.T) menu.Service {
	t.Helper()
	return menu.NewService(memory.NewMenuRepository(memory.NewStore()), nil)
}

func TestAddItem(t *testing.T) {
	svc := newService(t)

	catID, err := svc.CreateCategory("Mains")
	require.NoError(t, err)

	item, err := svc.AddItem(catID, "Pizza", 699)
	require.NoError(t, err)
	assert.True(t, item.Active)
	assert.Equal(t, "Mains", item.CategoryName)
}

func TestAddItemValidation(t *testing.T) {
	svc := newService(t)

	catID, err := svc.CreateCategory("Mains")
	require.NoError(t, err)

	_, err = svc.AddItem(catID, "", 100)
	assert.True(t, domain.IsInvalidArgument(err), "expected invalid argument, got %v", err)

	_, err = svc.AddItem(catID, "Pizza", -1)
	assert.True(t, domain.IsInvalidArgument(err), "expected invalid argument, got %v", err)

	_, err = svc.AddItem(404, "Pizza", 100)
	assert.True(t, domain.IsNotFound(err), "expected not found, got %v", err)
}

func TestCreateCategoryValidation(t *testing.T) {
	svc := newService(t)

	_, err := svc.CreateCategory("  ")
	assert.True(t, domain.IsInvalidArgument(err), "expected invalid argument, got %v", err)
}

func TestChangePrice(t *testing.T) {
	svc := newService(t)

	catID, err := svc.CreateCategory("Mains")
	require.NoError(t, err)
	item, err := svc.AddItem(catID, "Pizza", 699)
	require.NoError(t, err)

	updated, err := svc.ChangePrice(item.ID, 999)
	require.NoError(t, err)
	assert.Equal(t, int64(999), updated.PriceCents)

	_, err = svc.ChangePrice(item.ID, -5)
	assert.True(t, domain.IsInvalidArgument(err), "expected invalid argument, got %v", err)
}

func TestSearchByPriceRange(t *testing.T) {
	svc := newService(t)

	catID, err := svc.CreateCategory("Mains")
	require.NoError(t, err)
	_, err = svc.AddItem(catID, "Pizza", 699)
	require.NoError(t, err)
	_, err = svc.AddItem(catID, "Cola", 250)
	require.NoError(t, err)

	items, err := svc.SearchByPriceRange(200, 300)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cola", items[0].Name)

	_, err = svc.SearchByPriceRange(300, 200)
	assert.True(t, domain.IsInvalidArgument(err), "expected invalid argument, got %v", err)
}

func TestSetActiveHidesItem(t *testing.T) {
	svc := newService(t)

	catID, err := svc.CreateCategory("Mains")
	require.NoError(t, err)
	item, err := svc.AddItem(catID, "Pizza", 699)
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(item.ID, false))
	active, err := svc.ListActive()
	require.NoError(t, err)
	assert.Empty(t, active)
}
