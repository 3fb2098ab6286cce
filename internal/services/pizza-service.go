package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PizzaService provides methods to manage pizzas and their topping sets
type PizzaService interface {
	// ListPizzas retrieves all pizzas with their resolved toppings
	ListPizzas(ctx context.Context) ([]models.Pizza, error)
	// GetPizza retrieves a pizza by its ID with its resolved toppings
	GetPizza(ctx context.Context, id uint) (models.Pizza, error)
	// CreatePizza adds a pizza with a unique name and the existing subset of toppingIDs
	CreatePizza(ctx context.Context, name string, toppingIDs []uint) (models.Pizza, error)
	// UpdatePizza renames a pizza and replaces its whole topping set
	UpdatePizza(ctx context.Context, id uint, name string, toppingIDs []uint) (models.Pizza, error)
	// DeletePizza removes a pizza and its topping associations
	DeletePizza(ctx context.Context, id uint) error
}

// pizzaService is the implementation of the PizzaService interface
type pizzaService struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewPizzaService creates a new instance of PizzaService
func NewPizzaService(db *gorm.DB, validate *validator.Validate) PizzaService {
	if validate == nil {
		validate = NewValidator()
	}
	return &pizzaService{db: db, validate: validate}
}

func (s *pizzaService) ListPizzas(ctx context.Context) ([]models.Pizza, error) {
	db := s.db.WithContext(ctx)
	pizzas := make([]models.Pizza, 0)
	if err := db.Order("id").Find(&pizzas).Error; err != nil {
		return nil, fmt.Errorf("list pizzas: %w", err)
	}
	if err := loadToppings(db, pizzas); err != nil {
		return nil, err
	}
	return pizzas, nil
}

func (s *pizzaService) GetPizza(ctx context.Context, id uint) (models.Pizza, error) {
	return findPizza(s.db.WithContext(ctx), id)
}

func (s *pizzaService) CreatePizza(ctx context.Context, name string, toppingIDs []uint) (models.Pizza, error) {
	name, err := normalizeName(s.validate, name)
	if err != nil {
		return models.Pizza{}, err
	}

	pizza := models.Pizza{Name: name}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Pizza{}, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return &DuplicateError{Entity: "pizza", Name: name}
		}
		if err := tx.Create(&pizza).Error; err != nil {
			return err
		}
		if err := replaceToppings(tx, pizza.ID, toppingIDs); err != nil {
			return err
		}
		pizza, err = findPizza(tx, pizza.ID)
		return err
	})
	if err != nil {
		return models.Pizza{}, translateWriteError(err, "pizza", name)
	}
	return pizza, nil
}

func (s *pizzaService) UpdatePizza(ctx context.Context, id uint, name string, toppingIDs []uint) (models.Pizza, error) {
	var pizza models.Pizza
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if pizza, err = findPizza(tx, id); err != nil {
			return err
		}
		if name, err = normalizeName(s.validate, name); err != nil {
			return err
		}
		taken, err := nameTaken(tx, &models.Pizza{}, name, id)
		if err != nil {
			return err
		}
		if taken {
			return &DuplicateError{Entity: "pizza", Name: name}
		}
		if err := tx.Model(&models.Pizza{ID: id}).Update("name", name).Error; err != nil {
			return err
		}
		if err := replaceToppings(tx, id, toppingIDs); err != nil {
			return err
		}
		pizza, err = findPizza(tx, id)
		return err
	})
	if err != nil {
		return models.Pizza{}, translateWriteError(err, "pizza", name)
	}
	return pizza, nil
}

func (s *pizzaService) DeletePizza(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pizza models.Pizza
		if err := tx.First(&pizza, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "pizza", ID: id}
			}
			return fmt.Errorf("get pizza: %w", err)
		}
		if err := tx.Where("pizza_id = ?", id).Delete(&models.PizzaTopping{}).Error; err != nil {
			return fmt.Errorf("delete pizza associations: %w", err)
		}
		if err := tx.Delete(&models.Pizza{}, id).Error; err != nil {
			return fmt.Errorf("delete pizza: %w", err)
		}
		return nil
	})
}

// findPizza loads one pizza and its toppings
func findPizza(db *gorm.DB, id uint) (models.Pizza, error) {
	var pizza models.Pizza
	if err := db.First(&pizza, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Pizza{}, &NotFoundError{Entity: "pizza", ID: id}
		}
		return models.Pizza{}, fmt.Errorf("get pizza: %w", err)
	}
	pizzas := []models.Pizza{pizza}
	if err := loadToppings(db, pizzas); err != nil {
		return models.Pizza{}, err
	}
	return pizzas[0], nil
}

type pizzaToppingRow struct {
	PizzaID     uint
	ToppingID   uint
	ToppingName string
}

// loadToppings resolves the topping set of every pizza with a single join
// over pizza_topping and topping.
func loadToppings(db *gorm.DB, pizzas []models.Pizza) error {
	if len(pizzas) == 0 {
		return nil
	}
	ids := make([]uint, len(pizzas))
	for i, p := range pizzas {
		ids[i] = p.ID
	}

	var rows []pizzaToppingRow
	err := db.Table("pizza_topping").
		Select("pizza_topping.pizza_id AS pizza_id, topping.id AS topping_id, topping.name AS topping_name").
		Joins("JOIN topping ON topping.id = pizza_topping.topping_id").
		Where("pizza_topping.pizza_id IN ?", ids).
		Order("pizza_topping.pizza_id, topping.id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("load pizza toppings: %w", err)
	}

	byPizza := make(map[uint][]models.Topping, len(pizzas))
	for _, r := range rows {
		byPizza[r.PizzaID] = append(byPizza[r.PizzaID], models.Topping{ID: r.ToppingID, Name: r.ToppingName})
	}
	for i := range pizzas {
		toppings := byPizza[pizzas[i].ID]
		if toppings == nil {
			toppings = []models.Topping{}
		}
		pizzas[i].Toppings = toppings
	}
	return nil
}

// resolveToppingIDs keeps the ids that name an existing topping.
// Unknown ids are dropped and duplicates collapse.
func resolveToppingIDs(tx *gorm.DB, toppingIDs []uint) ([]uint, error) {
	if len(toppingIDs) == 0 {
		return nil, nil
	}
	seen := make(map[uint]struct{}, len(toppingIDs))
	candidates := make([]uint, 0, len(toppingIDs))
	for _, id := range toppingIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		candidates = append(candidates, id)
	}

	var resolved []uint
	if err := tx.Model(&models.Topping{}).Where("id IN ?", candidates).Order("id").Pluck("id", &resolved).Error; err != nil {
		return nil, fmt.Errorf("resolve toppings: %w", err)
	}
	return resolved, nil
}

// replaceToppings swaps the association rows of a pizza for the resolved
// subset of toppingIDs.
func replaceToppings(tx *gorm.DB, pizzaID uint, toppingIDs []uint) error {
	resolved, err := resolveToppingIDs(tx, toppingIDs)
	if err != nil {
		return err
	}
	if err := tx.Where("pizza_id = ?", pizzaID).Delete(&models.PizzaTopping{}).Error; err != nil {
		return fmt.Errorf("clear pizza toppings: %w", err)
	}
	if len(resolved) == 0 {
		return nil
	}
	rows := make([]models.PizzaTopping, len(resolved))
	for i, toppingID := range resolved {
		rows[i] = models.PizzaTopping{PizzaID: pizzaID, ToppingID: toppingID}
	}
	if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
		return fmt.Errorf("insert pizza toppings: %w", err)
	}
	return nil
}
