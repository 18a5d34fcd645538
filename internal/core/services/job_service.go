package services

import (
	"context"
	"errors"
	"log"

	"garagehub/internal/adapters/persistence/models"
	"garagehub/internal/adapters/persistence/repositories"
	"garagehub/internal/core/domain"

	"gorm.io/gorm"
)

// JobService handles work order business logic
type JobService struct {
	jobRepo      repositories.JobRepository
	vehicleRepo  repositories.VehicleRepository
	customerRepo repositories.CustomerRepository
	userRepo     repositories.UserRepository
}

// NewJobService creates a new job service
func NewJobService(
	jobRepo repositories.JobRepository,
	vehicleRepo repositories.VehicleRepository,
	customerRepo repositories.CustomerRepository,
	userRepo repositories.UserRepository,
) *JobService {
	return &JobService{
		jobRepo:      jobRepo,
		vehicleRepo:  vehicleRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
	}
}

// CreateJobInput represents create job input
type CreateJobInput struct {
	VehicleID      uint
	CustomerID     uint
	MechanicID     *uint
	RepairType     string
	ComplaintNotes string
}

// Create creates a new job. Costs start at zero and status starts active.
func (s *JobService) Create(ctx context.Context, input *CreateJobInput) (*models.Job, error) {
	// 1. Validate vehicle exists
	if _, err := s.vehicleRepo.GetByID(ctx, input.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	// 2. Validate customer exists
	if _, err := s.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	// 3. Validate mechanic exists when assigned
	if input.MechanicID != nil {
		if _, err := s.userRepo.GetByID(ctx, *input.MechanicID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, err
		}
	}

	// 4. Create job
	job := &models.Job{
		VehicleID:      input.VehicleID,
		CustomerID:     input.CustomerID,
		MechanicID:     input.MechanicID,
		Status:         string(domain.StatusActive),
		RepairType:     input.RepairType,
		ComplaintNotes: input.ComplaintNotes,
		LaborCost:      0,
		PartsCost:      0,
		TotalCost:      0,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	log.Printf("✅ Job created: #%d (%s)", job.ID, job.RepairType)

	// 5. Reload with relations for the response
	return s.GetByID(ctx, job.ID)
}

// GetByID gets a job by ID with all relations
func (s *JobService) GetByID(ctx context.Context, id uint) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// List lists jobs with optional status filter and pagination
func (s *JobService) List(ctx context.Context, status string, offset, limit int) ([]*models.Job, int64, error) {
	return s.jobRepo.List(ctx, status, offset, limit)
}

// MechanicJobs lists a mechanic's open workload (active and in-progress jobs)
func (s *JobService) MechanicJobs(ctx context.Context, mechanicID uint) ([]*models.Job, error) {
	statuses := []string{string(domain.StatusActive), string(domain.StatusInProgress)}
	return s.jobRepo.ListByMechanic(ctx, mechanicID, statuses)
}

// UpdateJobInput represents a partial job update. Nil fields are left
// unchanged.
type UpdateJobInput struct {
	RepairType     *string
	Status         *string
	MechanicID     *uint
	ComplaintNotes *string
	DiagnosisNotes *string
	LaborCost      *float64
	PartsCost      *float64
	TotalCost      *float64
}

func (in *UpdateJobInput) empty() bool {
	return in.RepairType == nil &&
		in.Status == nil &&
		in.MechanicID == nil &&
		in.ComplaintNotes == nil &&
		in.DiagnosisNotes == nil &&
		in.LaborCost == nil &&
		in.PartsCost == nil &&
		in.TotalCost == nil
}

// Update applies a partial update to a job. Status changes are checked
// against the actor's role: admins may set anything, mechanics may only move
// their own assigned jobs forward toward repaired.
func (s *JobService) Update(ctx context.Context, id uint, actor *models.User, input *UpdateJobInput) (*models.Job, error) {
	if input.empty() {
		return nil, domain.ErrInvalidInput
	}

	job, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.RepairType != nil {
		fields["repair_type"] = *input.RepairType
	}
	if input.Status != nil {
		next := domain.JobStatus(*input.Status)
		if !next.IsValid() {
			return nil, domain.ErrInvalidJobStatus
		}
		assigned := job.MechanicID != nil && *job.MechanicID == actor.ID
		if !domain.CanTransition(domain.Role(actor.Role), domain.JobStatus(job.Status), next, assigned) {
			return nil, domain.ErrStatusNotAllowed
		}
		fields["status"] = string(next)
	}
	if input.MechanicID != nil {
		if _, err := s.userRepo.GetByID(ctx, *input.MechanicID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrUserNotFound
			}
			return nil, err
		}
		fields["mechanic_id"] = *input.MechanicID
	}
	if input.ComplaintNotes != nil {
		fields["complaint_notes"] = *input.ComplaintNotes
	}
	if input.DiagnosisNotes != nil {
		fields["diagnosis_notes"] = *input.DiagnosisNotes
	}
	if input.LaborCost != nil {
		fields["labor_cost"] = *input.LaborCost
	}
	if input.PartsCost != nil {
		fields["parts_cost"] = *input.PartsCost
	}
	if input.TotalCost != nil {
		// total_cost is client-supplied and not forced to labor+parts;
		// the margin computation absorbs the difference.
		fields["total_cost"] = *input.TotalCost
	}

	if err := s.jobRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete deletes a job and its parts
func (s *JobService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("✅ Job deleted: #%d", id)
	return nil
}

// Archive sets the given jobs to archived status (bulk office action)
func (s *JobService) Archive(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ErrInvalidInput
	}
	count, err := s.jobRepo.Archive(ctx, ids)
	if err != nil {
		return 0, err
	}
	log.Printf("🗄 Archived %d jobs", count)
	return count, nil
}
