package services

import (
	"context"
	"testing"
	"time"

	"garagehub/internal/adapters/persistence/models"
	"garagehub/internal/adapters/persistence/repositories"
	"garagehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCustomerService(db *gorm.DB) *CustomerService {
	return NewCustomerService(
		repositories.NewCustomerRepository(db),
		repositories.NewVehicleRepository(db),
	)
}

func TestListCustomersLifetimeStats(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "John Smith")
	vehicle := seedVehicle(t, db, customer.ID, "ABC123")

	older := seedJob(t, db, vehicle.ID, customer.ID, nil, "repaired")
	latest := seedJob(t, db, vehicle.ID, customer.ID, nil, "invoice")

	visitDate := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.Model(&models.Job{}).Where("id = ?", older.ID).
		Update("created_at", visitDate.AddDate(0, -2, 0)).Error)
	require.NoError(t, db.Model(&models.Job{}).Where("id = ?", latest.ID).
		Update("created_at", visitDate).Error)

	rows, err := svc.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "John Smith", row.Name)
	assert.Equal(t, 2, row.LifetimeJobs)
	// Each seeded job carries 150 labor + 120 parts
	assert.Equal(t, "$540.00", row.LifetimeRevenue)
	assert.Equal(t, "Mar 15, 2026", row.LastVisit)
	assert.Equal(t, "Old Customer", row.Status)
	assert.Equal(t, "ABC123 (Toyota Camry)", row.Vehicles)
}

func TestListCustomersNoActivity(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)

	seedCustomer(t, db, "Sarah Johnson")

	rows, err := svc.ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 0, row.LifetimeJobs)
	assert.Equal(t, "$0.00", row.LifetimeRevenue)
	assert.Equal(t, "Never", row.LastVisit)
	assert.Equal(t, "New Customer", row.Status)
	assert.Equal(t, "—", row.Vehicles)
}

func TestCreateCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)

	email := "john.smith@email.com"
	customer, err := svc.CreateCustomer(context.Background(), &CreateCustomerInput{
		Name:   "John Smith",
		Phone:  "+1 (555) 123-4567",
		Email:  &email,
		Source: "Google Maps",
	})
	require.NoError(t, err)
	assert.NotZero(t, customer.ID)
	assert.Equal(t, "Google Maps", customer.Source)
}

func TestCustomerVehicles(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "John Smith")
	seedVehicle(t, db, customer.ID, "ABC123")
	other := seedCustomer(t, db, "Sarah Johnson")
	seedVehicle(t, db, other.ID, "XYZ789")

	vehicles, err := svc.CustomerVehicles(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "ABC123", vehicles[0].LicensePlate)
	assert.Equal(t, "Toyota Camry (ABC123)", vehicles[0].Display)
}

func TestCreateVehicle(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "John Smith")

	engineCc := 2500
	vehicle, err := svc.CreateVehicle(ctx, &CreateVehicleInput{
		CustomerID:   customer.ID,
		Make:         "Toyota",
		Model:        "Camry",
		Year:         2020,
		LicensePlate: "ABC123",
		EngineCc:     &engineCc,
	})
	require.NoError(t, err)
	assert.NotZero(t, vehicle.ID)
	assert.Equal(t, customer.ID, vehicle.CustomerID)
}

func TestCreateVehicleUnknownCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := newCustomerService(db)

	_, err := svc.CreateVehicle(context.Background(), &CreateVehicleInput{
		CustomerID:   999,
		Make:         "Toyota",
		Model:        "Camry",
		Year:         2020,
		LicensePlate: "ABC123",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
