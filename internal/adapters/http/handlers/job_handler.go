package handlers

import (
	"errors"
	"strconv"

	"garagehub/internal/adapters/http/middleware"
	"garagehub/internal/adapters/persistence/models"
	"garagehub/internal/core/domain"
	"garagehub/internal/core/services"
	"garagehub/internal/pkg/pagination"
	"garagehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// JobHandler handles work order endpoints
type JobHandler struct {
	jobService *services.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService *services.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// CreateJobRequest represents create job request body
type CreateJobRequest struct {
	VehicleID      uint   `json:"vehicleId"`
	CustomerID     uint   `json:"customerId"`
	MechanicID     *uint  `json:"mechanicId"`
	RepairType     string `json:"repairType"`
	ComplaintNotes string `json:"complaintNotes"`
}

// UpdateJobRequest represents a partial job update request body.
// Absent fields are left untouched.
type UpdateJobRequest struct {
	RepairType     *string  `json:"repairType"`
	Status         *string  `json:"status"`
	MechanicID     *uint    `json:"mechanicId"`
	ComplaintNotes *string  `json:"complaintNotes"`
	DiagnosisNotes *string  `json:"diagnosisNotes"`
	LaborCost      *float64 `json:"laborCost"`
	PartsCost      *float64 `json:"partsCost"`
	TotalCost      *float64 `json:"totalCost"`
}

// ArchiveJobsRequest represents bulk archive request body
type ArchiveJobsRequest struct {
	JobIDs []uint `json:"jobIds"`
}

// List lists jobs
// @Summary List jobs
// @Description List jobs with optional status filter and pagination
// @Tags Jobs
// @Accept json
// @Produce json
// @Param status query string false "Status filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Message
// @Router /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	status := c.Query("status")

	if status != "" && !domain.JobStatus(status).IsValid() {
		return response.BadRequest(c, "Invalid status filter")
	}

	jobs, total, err := h.jobService.List(c.Context(), status, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list jobs")
	}

	rows := make([]*models.JobRow, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, job.ToRow())
	}

	return response.OK(c, fiber.Map{
		"jobs": rows,
		"meta": pagination.GetMeta(params, total),
	})
}

// Create creates a job
// @Summary Create job
// @Description Open a new work order for a vehicle
// @Tags Jobs
// @Accept json
// @Produce json
// @Param body body CreateJobRequest true "Job data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.VehicleID == 0 {
		return response.BadRequest(c, "Vehicle is required")
	}
	if req.CustomerID == 0 {
		return response.BadRequest(c, "Customer is required")
	}
	if req.RepairType == "" {
		return response.BadRequest(c, "Repair type is required")
	}

	input := &services.CreateJobInput{
		VehicleID:      req.VehicleID,
		CustomerID:     req.CustomerID,
		MechanicID:     req.MechanicID,
		RepairType:     req.RepairType,
		ComplaintNotes: req.ComplaintNotes,
	}

	job, err := h.jobService.Create(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return response.NotFound(c, "Vehicle or customer not found")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Mechanic not found")
		default:
			return response.InternalServerError(c, "Failed to create job")
		}
	}

	return response.Created(c, fiber.Map{
		"job": job.ToDetail(),
	})
}

// Get returns a single job with full detail
// @Summary Get job
// @Description Get a job by ID with customer, vehicle, mechanic and parts
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid job ID")
	}

	job, err := h.jobService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to get job")
	}

	return response.OK(c, fiber.Map{
		"job": job.ToDetail(),
	})
}

// Update partially updates a job
// @Summary Update job
// @Description Apply a partial update to a job; status changes are role-checked
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Param body body UpdateJobRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Message
// @Failure 403 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /jobs/{id} [put]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid job ID")
	}

	var req UpdateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	input := &services.UpdateJobInput{
		RepairType:     req.RepairType,
		Status:         req.Status,
		MechanicID:     req.MechanicID,
		ComplaintNotes: req.ComplaintNotes,
		DiagnosisNotes: req.DiagnosisNotes,
		LaborCost:      req.LaborCost,
		PartsCost:      req.PartsCost,
		TotalCost:      req.TotalCost,
	}

	job, err := h.jobService.Update(c.Context(), id, actor, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			return response.NotFound(c, "Job not found")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "Mechanic not found")
		case errors.Is(err, domain.ErrInvalidJobStatus):
			return response.BadRequest(c, "Invalid job status")
		case errors.Is(err, domain.ErrStatusNotAllowed):
			return response.Forbidden(c, "Status change not allowed")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "No fields to update")
		default:
			return response.InternalServerError(c, "Failed to update job")
		}
	}

	return response.OK(c, fiber.Map{
		"job": job.ToDetail(),
	})
}

// Delete deletes a job and its parts
// @Summary Delete job
// @Description Delete a job; its parts are removed with it
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path int true "Job ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return response.BadRequest(c, "Invalid job ID")
	}

	if err := h.jobService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return response.NotFound(c, "Job not found")
		}
		return response.InternalServerError(c, "Failed to delete job")
	}

	return response.OK(c, response.Message{Message: "Job deleted successfully"})
}

// Archive bulk-archives jobs
// @Summary Archive jobs
// @Description Set the given jobs to archived status
// @Tags Jobs
// @Accept json
// @Produce json
// @Param body body ArchiveJobsRequest true "Job IDs"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Message
// @Failure 403 {object} response.Message
// @Router /jobs/archive [post]
func (h *JobHandler) Archive(c *fiber.Ctx) error {
	var req ArchiveJobsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	count, err := h.jobService.Archive(c.Context(), req.JobIDs)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return response.BadRequest(c, "No job IDs provided")
		}
		return response.InternalServerError(c, "Failed to archive jobs")
	}

	return response.OK(c, fiber.Map{
		"archived": count,
	})
}

// parseIDParam parses the :id path parameter
func parseIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
