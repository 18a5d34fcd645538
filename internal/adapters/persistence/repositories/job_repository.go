package repositories

import (
	"context"

	"garagehub/internal/adapters/persistence/models"
	"garagehub/internal/core/domain"

	"gorm.io/gorm"
)

// jobRepository implements JobRepository interface
type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// Create creates a new job
func (r *jobRepository) Create(ctx context.Context, job *models.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

// GetByID gets a job by ID with vehicle, customer, mechanic and parts preloaded
func (r *jobRepository) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Customer").
		Preload("Mechanic").
		Preload("Parts").
		Where("id = ?", id).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// List lists jobs with optional status filter and pagination, newest first
func (r *jobRepository) List(ctx context.Context, status string, offset, limit int) ([]*models.Job, int64, error) {
	var jobs []*models.Job
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Job{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Vehicle").
		Preload("Customer").
		Preload("Mechanic").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// ListByMechanic lists a mechanic's assigned jobs filtered by status, newest first
func (r *jobRepository) ListByMechanic(ctx context.Context, mechanicID uint, statuses []string) ([]*models.Job, error) {
	var jobs []*models.Job
	err := r.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Customer").
		Preload("Mechanic").
		Where("mechanic_id = ?", mechanicID).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateFields applies a partial update to a job. Only keys present in
// fields are touched.
func (r *jobRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Delete deletes a job and all its parts in one transaction
func (r *jobRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Part{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, id).Error
	})
}

// Archive sets the given jobs to archived status
func (r *jobRepository) Archive(ctx context.Context, ids []uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id IN ?", ids).
		Update("status", string(domain.StatusArchived))
	return result.RowsAffected, result.Error
}
