package services

import (
	"testing"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDatabase(database.DatabaseConfig{
		Driver:     database.DriverSQLite,
		Path:       ":memory:",
		MaxRetries: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func setupServices(t *testing.T) (ToppingService, PizzaService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	validate := NewValidator()
	return NewToppingService(db, validate), NewPizzaService(db, validate), db
}
