package services

import (
	"context"
	"strings"
	"testing"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTopping(t *testing.T) {
	toppings, _, _ := setupServices(t)
	ctx := context.Background()

	topping, err := toppings.CreateTopping(ctx, "  Mushroom ")
	require.NoError(t, err)
	assert.NotZero(t, topping.ID)
	assert.Equal(t, "Mushroom", topping.Name)

	all, err := toppings.ListToppings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, topping, all[0])
}

func TestCreateToppingValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{name: "empty", input: "", message: "this field is required"},
		{name: "whitespace only", input: "   ", message: "this field is required"},
		{name: "too long", input: strings.Repeat("a", MaxNameLength+1), message: "must be at most 50 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toppings, _, _ := setupServices(t)

			_, err := toppings.CreateTopping(context.Background(), tt.input)
			require.Error(t, err)
			assert.True(t, IsValidation(err))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "name", verr.Field)
			assert.Equal(t, tt.message, verr.Message)
		})
	}
}

func TestCreateToppingAcceptsMaxLength(t *testing.T) {
	toppings, _, _ := setupServices(t)

	name := strings.Repeat("b", MaxNameLength)
	topping, err := toppings.CreateTopping(context.Background(), name)
	require.NoError(t, err)
	assert.Equal(t, name, topping.Name)
}

func TestCreateToppingDuplicate(t *testing.T) {
	toppings, _, _ := setupServices(t)
	ctx := context.Background()

	_, err := toppings.CreateTopping(ctx, "Cheese")
	require.NoError(t, err)

	_, err = toppings.CreateTopping(ctx, "Cheese")
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))
	assert.EqualError(t, err, `topping "Cheese" already exists`)

	// Names are case-sensitive
	_, err = toppings.CreateTopping(ctx, "cheese")
	assert.NoError(t, err)

	all, err := toppings.ListToppings(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListToppingsOrderedByID(t *testing.T) {
	toppings, _, _ := setupServices(t)
	ctx := context.Background()

	for _, name := range []string{"Olives", "Basil", "Ham"} {
		_, err := toppings.CreateTopping(ctx, name)
		require.NoError(t, err)
	}

	all, err := toppings.ListToppings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Olives", all[0].Name)
	assert.Equal(t, "Basil", all[1].Name)
	assert.Equal(t, "Ham", all[2].Name)
}

func TestListToppingsEmpty(t *testing.T) {
	toppings, _, _ := setupServices(t)

	all, err := toppings.ListToppings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestGetToppingNotFound(t *testing.T) {
	toppings, _, _ := setupServices(t)

	_, err := toppings.GetTopping(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.EqualError(t, err, "topping 42 not found")
}

func TestUpdateTopping(t *testing.T) {
	toppings, _, _ := setupServices(t)
	ctx := context.Background()

	created, err := toppings.CreateTopping(ctx, "Peper")
	require.NoError(t, err)

	updated, err := toppings.UpdateTopping(ctx, created.ID, "Pepper")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Pepper", updated.Name)

	found, err := toppings.GetTopping(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pepper", found.Name)
}

func TestUpdateToppingKeepsOwnName(t *testing.T) {
	toppings, _, _ := setupServices(t)
	ctx := context.Background()

	created, err := toppings.CreateTopping(ctx, "Basil")
	require.NoError(t, err)

	updated, err := toppings.UpdateTopping(ctx, created.ID, "Basil")
	require.NoError(t, err)
	assert.Equal(t, "Basil", updated.Name)
}

func TestUpdateToppingOntoExistingName(t *testing.T) {
	toppings, _, _ := setupServices(t)
	ctx := context.Background()

	_, err := toppings.CreateTopping(ctx, "Cheese")
	require.NoError(t, err)
	ham, err := toppings.CreateTopping(ctx, "Ham")
	require.NoError(t, err)

	_, err = toppings.UpdateTopping(ctx, ham.ID, "Cheese")
	require.Error(t, err)
	assert.True(t, IsDuplicate(err))

	found, err := toppings.GetTopping(ctx, ham.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ham", found.Name)
}

func TestUpdateToppingErrors(t *testing.T) {
	toppings, _, _ := setupServices(t)
	ctx := context.Background()

	_, err := toppings.UpdateTopping(ctx, 99, "Anything")
	assert.True(t, IsNotFound(err))

	// Unknown ids win over invalid input
	_, err = toppings.UpdateTopping(ctx, 99, "")
	assert.True(t, IsNotFound(err))

	created, err := toppings.CreateTopping(ctx, "Onion")
	require.NoError(t, err)
	_, err = toppings.UpdateTopping(ctx, created.ID, " ")
	assert.True(t, IsValidation(err))
}

func TestDeleteToppingRemovesAssociations(t *testing.T) {
	toppings, pizzas, db := setupServices(t)
	ctx := context.Background()

	cheese, err := toppings.CreateTopping(ctx, "Cheese")
	require.NoError(t, err)
	ham, err := toppings.CreateTopping(ctx, "Ham")
	require.NoError(t, err)
	pizza, err := pizzas.CreatePizza(ctx, "Hawaii", []uint{cheese.ID, ham.ID})
	require.NoError(t, err)
	require.Len(t, pizza.Toppings, 2)

	require.NoError(t, toppings.DeleteTopping(ctx, cheese.ID))

	_, err = toppings.GetTopping(ctx, cheese.ID)
	assert.True(t, IsNotFound(err))

	var count int64
	require.NoError(t, db.Model(&models.PizzaTopping{}).Where("topping_id = ?", cheese.ID).Count(&count).Error)
	assert.Zero(t, count)

	reloaded, err := pizzas.GetPizza(ctx, pizza.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Toppings, 1)
	assert.Equal(t, "Ham", reloaded.Toppings[0].Name)
}

func TestDeleteToppingNotFound(t *testing.T) {
	toppings, _, _ := setupServices(t)

	err := toppings.DeleteTopping(context.Background(), 7)
	assert.True(t, IsNotFound(err))
}
