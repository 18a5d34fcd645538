package handlers

import (
	"garagehub/internal/adapters/http/middleware"
	"garagehub/internal/adapters/persistence/models"
	"garagehub/internal/core/services"
	"garagehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MechanicHandler handles the mechanic work queue
type MechanicHandler struct {
	jobService *services.JobService
}

// NewMechanicHandler creates a new mechanic handler
func NewMechanicHandler(jobService *services.JobService) *MechanicHandler {
	return &MechanicHandler{jobService: jobService}
}

// Jobs lists the authenticated mechanic's open jobs
// @Summary List my jobs
// @Description List the authenticated mechanic's active and in-progress jobs
// @Tags Mechanic
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Message
// @Router /mechanic/jobs [get]
func (h *MechanicHandler) Jobs(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	jobs, err := h.jobService.MechanicJobs(c.Context(), user.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list jobs")
	}

	rows := make([]*models.JobRow, 0, len(jobs))
	for _, job := range jobs {
		rows = append(rows, job.ToRow())
	}

	return response.OK(c, fiber.Map{
		"jobs": rows,
	})
}
