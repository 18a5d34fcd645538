package services

import (
	"context"
	"testing"

	"garagehub/internal/adapters/persistence/models"
	"garagehub/internal/adapters/persistence/repositories"
	"garagehub/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newJobService(db *gorm.DB) *JobService {
	return NewJobService(
		repositories.NewJobRepository(db),
		repositories.NewVehicleRepository(db),
		repositories.NewCustomerRepository(db),
		repositories.NewUserRepository(db),
	)
}

func strp(s string) *string   { return &s }
func f64p(f float64) *float64 { return &f }
func uintp(u uint) *uint      { return &u }

func seedJob(t *testing.T, db *gorm.DB, vehicleID, customerID uint, mechanicID *uint, status string) *models.Job {
	t.Helper()

	job := &models.Job{
		VehicleID:      vehicleID,
		CustomerID:     customerID,
		MechanicID:     mechanicID,
		Status:         status,
		RepairType:     "Brakes",
		ComplaintNotes: "Squeaking",
		LaborCost:      150,
		PartsCost:      120,
		TotalCost:      270,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func TestJobCreate(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "John Smith")
	vehicle := seedVehicle(t, db, customer.ID, "ABC123")
	mechanic := seedUser(t, db, "mike", "mike123", "mechanic")

	job, err := svc.Create(ctx, &CreateJobInput{
		VehicleID:      vehicle.ID,
		CustomerID:     customer.ID,
		MechanicID:     &mechanic.ID,
		RepairType:     "Oil Change",
		ComplaintNotes: "Regular maintenance",
	})
	require.NoError(t, err)

	assert.Equal(t, "active", job.Status)
	assert.Zero(t, job.LaborCost)
	assert.Zero(t, job.PartsCost)
	assert.Zero(t, job.TotalCost)
	require.NotNil(t, job.Vehicle)
	assert.Equal(t, "ABC123", job.Vehicle.LicensePlate)
	require.NotNil(t, job.Mechanic)
	assert.Equal(t, "mike", job.Mechanic.Username)
}

func TestJobCreateUnknownVehicle(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "John Smith")

	_, err := svc.Create(ctx, &CreateJobInput{
		VehicleID:  999,
		CustomerID: customer.ID,
		RepairType: "Oil Change",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJobCreateUnknownMechanic(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "John Smith")
	vehicle := seedVehicle(t, db, customer.ID, "ABC123")

	_, err := svc.Create(ctx, &CreateJobInput{
		VehicleID:  vehicle.ID,
		CustomerID: customer.ID,
		MechanicID: uintp(999),
		RepairType: "Oil Change",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestJobPartialUpdateLeavesOtherFields(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin", "admin123", "admin")
	customer := seedCustomer(t, db, "John Smith")
	vehicle := seedVehicle(t, db, customer.ID, "ABC123")
	job := seedJob(t, db, vehicle.ID, customer.ID, nil, "active")

	updated, err := svc.Update(ctx, job.ID, admin, &UpdateJobInput{
		Status: strp("in-progress"),
	})
	require.NoError(t, err)

	assert.Equal(t, "in-progress", updated.Status)
	assert.Equal(t, 150.0, updated.LaborCost, "labor cost untouched by status-only update")
	assert.Equal(t, 120.0, updated.PartsCost)
	assert.Equal(t, 270.0, updated.TotalCost)
}

func TestJobUpdateEmptyInput(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin", "admin123", "admin")
	customer := seedCustomer(t, db, "John Smith")
	vehicle := seedVehicle(t, db, customer.ID, "ABC123")
	job := seedJob(t, db, vehicle.ID, customer.ID, nil, "active")

	_, err := svc.Update(ctx, job.ID, admin, &UpdateJobInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJobUpdateCosts(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "admin", "admin123", "admin")
	customer := seedCustomer(t, db, "John Smith")
	vehicle := seedVehicle(t, db, customer.ID, "ABC123")
	job := seedJob(t, db, vehicle.ID, customer.ID, nil, "active")

	updated, err := svc.Update(ctx, job.ID, admin, &UpdateJobInput{
		LaborCost: f64p(100),
		PartsCost: f64p(100),
		TotalCost: f64p(100),
	})
	require.NoError(t, err)

	// Margin is derived from the stored fields on every read
	assert.InDelta(t, 100.0, updated.MarginPercentage(), 0.0001)
}

func TestJobStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	ctx := context.Background()

	mechanic := seedUser(t, db, "mike", "mike123", "mechanic")
	other := seedUser(t, db, "dave", "dave123", "mechanic")
	admin := seedUser(t, db, "admin", "admin123", "admin")
	customer := seedCustomer(t, db, "John Smith")
	vehicle := seedVehicle(t, db, customer.ID, "ABC123")

	t.Run("mechanic advances own job", func(t *testing.T) {
		job := seedJob(t, db, vehicle.ID, customer.ID, &mechanic.ID, "active")
		updated, err := svc.Update(ctx, job.ID, mechanic, &UpdateJobInput{Status: strp("in-progress")})
		require.NoError(t, err)
		assert.Equal(t, "in-progress", updated.Status)
	})

	t.Run("mechanic cannot touch another mechanic's job", func(t *testing.T) {
		job := seedJob(t, db, vehicle.ID, customer.ID, &mechanic.ID, "active")
		_, err := svc.Update(ctx, job.ID, other, &UpdateJobInput{Status: strp("in-progress")})
		assert.ErrorIs(t, err, domain.ErrStatusNotAllowed)
	})

	t.Run("mechanic cannot invoice", func(t *testing.T) {
		job := seedJob(t, db, vehicle.ID, customer.ID, &mechanic.ID, "repaired")
		_, err := svc.Update(ctx, job.ID, mechanic, &UpdateJobInput{Status: strp("invoice")})
		assert.ErrorIs(t, err, domain.ErrStatusNotAllowed)
	})

	t.Run("admin sets any status", func(t *testing.T) {
		job := seedJob(t, db, vehicle.ID, customer.ID, &mechanic.ID, "archived")
		updated, err := svc.Update(ctx, job.ID, admin, &UpdateJobInput{Status: strp("active")})
		require.NoError(t, err)
		assert.Equal(t, "active", updated.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		job := seedJob(t, db, vehicle.ID, customer.ID, &mechanic.ID, "active")
		_, err := svc.Update(ctx, job.ID, admin, &UpdateJobInput{Status: strp("done")})
		assert.ErrorIs(t, err, domain.ErrInvalidJobStatus)
	})
}

func TestJobDeleteCascadesParts(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "John Smith")
	vehicle := seedVehicle(t, db, customer.ID, "ABC123")
	job := seedJob(t, db, vehicle.ID, customer.ID, nil, "active")

	for _, sku := range []string{"OIL-FLT-001", "OIL-5W30-5L"} {
		require.NoError(t, db.Create(&models.Part{
			JobID:        job.ID,
			PartName:     "Part " + sku,
			SupplierName: "AutoZone",
			SKU:          sku,
			Qty:          1,
			BuyPrice:     8,
			SellPrice:    15,
		}).Error)
	}

	require.NoError(t, svc.Delete(ctx, job.ID))

	var partCount int64
	require.NoError(t, db.Model(&models.Part{}).Where("job_id = ?", job.ID).Count(&partCount).Error)
	assert.Equal(t, int64(0), partCount)

	_, err := svc.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobDeleteUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)

	err := svc.Delete(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestJobListStatusFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "John Smith")
	vehicle := seedVehicle(t, db, customer.ID, "ABC123")
	seedJob(t, db, vehicle.ID, customer.ID, nil, "active")
	seedJob(t, db, vehicle.ID, customer.ID, nil, "active")
	seedJob(t, db, vehicle.ID, customer.ID, nil, "invoice")

	jobs, total, err := svc.List(ctx, "active", 0, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, jobs, 2)

	all, total, err := svc.List(ctx, "", 0, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)
}

func TestMechanicJobs(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	ctx := context.Background()

	mechanic := seedUser(t, db, "mike", "mike123", "mechanic")
	other := seedUser(t, db, "dave", "dave123", "mechanic")
	customer := seedCustomer(t, db, "John Smith")
	vehicle := seedVehicle(t, db, customer.ID, "ABC123")

	seedJob(t, db, vehicle.ID, customer.ID, &mechanic.ID, "active")
	seedJob(t, db, vehicle.ID, customer.ID, &mechanic.ID, "in-progress")
	seedJob(t, db, vehicle.ID, customer.ID, &mechanic.ID, "repaired")
	seedJob(t, db, vehicle.ID, customer.ID, &other.ID, "active")
	seedJob(t, db, vehicle.ID, customer.ID, nil, "active")

	jobs, err := svc.MechanicJobs(ctx, mechanic.ID)
	require.NoError(t, err)
	assert.Len(t, jobs, 2, "only own active and in-progress jobs")
	for _, job := range jobs {
		require.NotNil(t, job.MechanicID)
		assert.Equal(t, mechanic.ID, *job.MechanicID)
	}
}

func TestJobArchive(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)
	ctx := context.Background()

	customer := seedCustomer(t, db, "John Smith")
	vehicle := seedVehicle(t, db, customer.ID, "ABC123")
	first := seedJob(t, db, vehicle.ID, customer.ID, nil, "invoice")
	second := seedJob(t, db, vehicle.ID, customer.ID, nil, "repaired")
	untouched := seedJob(t, db, vehicle.ID, customer.ID, nil, "active")

	count, err := svc.Archive(ctx, []uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	for _, id := range []uint{first.ID, second.ID} {
		job, err := svc.GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "archived", job.Status)
	}

	job, err := svc.GetByID(ctx, untouched.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", job.Status)
}

func TestJobArchiveEmptyIDs(t *testing.T) {
	db := newTestDB(t)
	svc := newJobService(db)

	_, err := svc.Archive(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
