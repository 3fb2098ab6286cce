package services

import (
	"context"
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/models"
)

// CatalogEntry describes a pizza and the names of its toppings
type CatalogEntry struct {
	Pizza    string
	Toppings []string
}

// DefaultCatalog is used to populate a fresh database
var DefaultCatalog = []CatalogEntry{
	{Pizza: "Margherita", Toppings: []string{"Tomato Sauce", "Mozzarella", "Basil"}},
	{Pizza: "Pepperoni", Toppings: []string{"Tomato Sauce", "Mozzarella", "Pepperoni"}},
	{Pizza: "Vegetarian", Toppings: []string{"Tomato Sauce", "Mozzarella", "Bell Peppers", "Olives"}},
}

// SeedCatalog creates the toppings and pizzas of entries through the services.
// Existing names are reused so seeding twice leaves the catalog unchanged.
// It returns the number of pizzas created.
func SeedCatalog(ctx context.Context, toppings ToppingService, pizzas PizzaService, entries []CatalogEntry) (int, error) {
	existing, err := toppings.ListToppings(ctx)
	if err != nil {
		return 0, err
	}
	byName := make(map[string]uint, len(existing))
	for _, t := range existing {
		byName[t.Name] = t.ID
	}

	created := 0
	for _, entry := range entries {
		ids := make([]uint, 0, len(entry.Toppings))
		for _, name := range entry.Toppings {
			id, ok := byName[name]
			if !ok {
				topping, err := toppings.CreateTopping(ctx, name)
				if err != nil {
					return created, fmt.Errorf("seed topping %q: %w", name, err)
				}
				id = topping.ID
				byName[topping.Name] = id
			}
			ids = append(ids, id)
		}

		if _, err := pizzas.CreatePizza(ctx, entry.Pizza, ids); err != nil {
			if IsDuplicate(err) {
				continue
			}
			return created, fmt.Errorf("seed pizza %q: %w", entry.Pizza, err)
		}
		created++
	}
	return created, nil
}

// IsCatalogEmpty reports whether there are no pizzas and no toppings yet
func IsCatalogEmpty(ctx context.Context, toppings ToppingService, pizzas PizzaService) (bool, error) {
	var (
		ts  []models.Topping
		ps  []models.Pizza
		err error
	)
	if ts, err = toppings.ListToppings(ctx); err != nil {
		return false, err
	}
	if ps, err = pizzas.ListPizzas(ctx); err != nil {
		return false, err
	}
	return len(ts) == 0 && len(ps) == 0, nil
}
