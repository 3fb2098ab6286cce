package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCatalog(t *testing.T) {
	toppings, pizzas, _ := setupServices(t)
	ctx := context.Background()

	empty, err := IsCatalogEmpty(ctx, toppings, pizzas)
	require.NoError(t, err)
	assert.True(t, empty)

	created, err := SeedCatalog(ctx, toppings, pizzas, DefaultCatalog)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultCatalog), created)

	all, err := pizzas.ListPizzas(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(DefaultCatalog))
	assert.Equal(t, "Margherita", all[0].Name)
	assert.Equal(t, []string{"Tomato Sauce", "Mozzarella", "Basil"}, toppingNames(all[0]))

	// Shared toppings are created once
	ts, err := toppings.ListToppings(ctx)
	require.NoError(t, err)
	assert.Len(t, ts, 6)

	again, err := SeedCatalog(ctx, toppings, pizzas, DefaultCatalog)
	require.NoError(t, err)
	assert.Zero(t, again)

	empty, err = IsCatalogEmpty(ctx, toppings, pizzas)
	require.NoError(t, err)
	assert.False(t, empty)
}
