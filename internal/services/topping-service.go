package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ToppingService provides methods to manage toppings
type ToppingService interface {
	// ListToppings retrieves all toppings in insertion order
	ListToppings(ctx context.Context) ([]models.Topping, error)
	// GetTopping retrieves a topping by its ID
	GetTopping(ctx context.Context, id uint) (models.Topping, error)
	// CreateTopping adds a topping with a unique name
	CreateTopping(ctx context.Context, name string) (models.Topping, error)
	// UpdateTopping renames an existing topping
	UpdateTopping(ctx context.Context, id uint, name string) (models.Topping, error)
	// DeleteTopping removes a topping and its pizza associations
	DeleteTopping(ctx context.Context, id uint) error
}

type toppingService struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewToppingService creates a new instance of ToppingService
func NewToppingService(db *gorm.DB, validate *validator.Validate) ToppingService {
	if validate == nil {
		validate = NewValidator()
	}
	return &toppingService{db: db, validate: validate}
}

func (s *toppingService) ListToppings(ctx context.Context) ([]models.Topping, error) {
	toppings := make([]models.Topping, 0)
	if err := s.db.WithContext(ctx).Order("id").Find(&toppings).Error; err != nil {
		return nil, fmt.Errorf("list toppings: %w", err)
	}
	return toppings, nil
}

func (s *toppingService) GetTopping(ctx context.Context, id uint) (models.Topping, error) {
	return findTopping(s.db.WithContext(ctx), id)
}

func (s *toppingService) CreateTopping(ctx context.Context, name string) (models.Topping, error) {
	name, err := normalizeName(s.validate, name)
	if err != nil {
		return models.Topping{}, err
	}

	topping := models.Topping{Name: name}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := nameTaken(tx, &models.Topping{}, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return &DuplicateError{Entity: "topping", Name: name}
		}
		return tx.Create(&topping).Error
	})
	if err != nil {
		return models.Topping{}, translateWriteError(err, "topping", name)
	}
	return topping, nil
}

func (s *toppingService) UpdateTopping(ctx context.Context, id uint, name string) (models.Topping, error) {
	var topping models.Topping
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if topping, err = findTopping(tx, id); err != nil {
			return err
		}
		if name, err = normalizeName(s.validate, name); err != nil {
			return err
		}
		taken, err := nameTaken(tx, &models.Topping{}, name, id)
		if err != nil {
			return err
		}
		if taken {
			return &DuplicateError{Entity: "topping", Name: name}
		}
		if err := tx.Model(&topping).Update("name", name).Error; err != nil {
			return err
		}
		topping.Name = name
		return nil
	})
	if err != nil {
		return models.Topping{}, translateWriteError(err, "topping", name)
	}
	return topping, nil
}

func (s *toppingService) DeleteTopping(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := findTopping(tx, id); err != nil {
			return err
		}
		// The foreign key cascades too, but SQLite only honours it when
		// foreign_keys is on for the connection.
		if err := tx.Where("topping_id = ?", id).Delete(&models.PizzaTopping{}).Error; err != nil {
			return fmt.Errorf("delete topping associations: %w", err)
		}
		if err := tx.Delete(&models.Topping{}, id).Error; err != nil {
			return fmt.Errorf("delete topping: %w", err)
		}
		return nil
	})
}

func findTopping(db *gorm.DB, id uint) (models.Topping, error) {
	var topping models.Topping
	if err := db.First(&topping, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Topping{}, &NotFoundError{Entity: "topping", ID: id}
		}
		return models.Topping{}, fmt.Errorf("get topping: %w", err)
	}
	return topping, nil
}
