package services

import (
	"testing"

	"garagehub/internal/adapters/persistence/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// A single connection keeps every query on the same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, password, role string) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Password: password,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()

	customer := &models.Customer{
		Name:   name,
		Phone:  "+1 (555) 000-0000",
		Source: "Walk-in",
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedVehicle(t *testing.T, db *gorm.DB, customerID uint, plate string) *models.Vehicle {
	t.Helper()

	vehicle := &models.Vehicle{
		CustomerID:   customerID,
		Make:         "Toyota",
		Model:        "Camry",
		Year:         2020,
		LicensePlate: plate,
	}
	require.NoError(t, db.Create(vehicle).Error)
	return vehicle
}
