package database

import (
	"testing"
	"time"

	"github.com/franciscosanchezn/gin-pizza-catalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDatabaseSQLiteDrivers(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverSQLitePureGo} {
		t.Run(driver, func(t *testing.T) {
			db, err := InitDatabase(DatabaseConfig{Driver: driver, Path: ":memory:", MaxRetries: 1})
			require.NoError(t, err)
			defer Close(db)

			require.NoError(t, Migrate(db))
			for _, table := range []string{"topping", "pizza", "pizza_topping"} {
				assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
			}

			sqlDB, err := db.DB()
			require.NoError(t, err)
			assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

			var fk int
			require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
			assert.Equal(t, 1, fk)
		})
	}
}

func TestForeignKeysCascade(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: DriverSQLite, Path: ":memory:", MaxRetries: 1})
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))

	topping := models.Topping{Name: "Cheese"}
	pizza := models.Pizza{Name: "Classic"}
	require.NoError(t, db.Create(&topping).Error)
	require.NoError(t, db.Create(&pizza).Error)
	require.NoError(t, db.Exec("INSERT INTO pizza_topping (pizza_id, topping_id) VALUES (?, ?)", pizza.ID, topping.ID).Error)

	require.NoError(t, db.Delete(&models.Topping{}, topping.ID).Error)

	var rows int64
	require.NoError(t, db.Model(&models.PizzaTopping{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestUniqueNameIndex(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: DriverSQLite, Path: ":memory:", MaxRetries: 1})
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, Migrate(db))

	require.NoError(t, db.Create(&models.Topping{Name: "Ham"}).Error)
	assert.Error(t, db.Create(&models.Topping{Name: "Ham"}).Error)
}

func TestInitDatabaseUnsupportedDriver(t *testing.T) {
	start := time.Now()
	_, err := InitDatabase(DatabaseConfig{Driver: "mysql", MaxRetries: 5, RetryDelay: time.Second})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver: mysql")
	assert.True(t, time.Since(start) < time.Second, "unsupported drivers must not be retried")
}

func TestInitDatabaseRetriesAndFails(t *testing.T) {
	_, err := InitDatabase(DatabaseConfig{
		Driver:     DriverSQLite,
		Path:       "/nonexistent-dir/for/sure/pizza.sqlite",
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}
