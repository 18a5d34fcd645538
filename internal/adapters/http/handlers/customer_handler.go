package handlers

import (
	"errors"
	"strconv"
	"strings"

	"garagehub/internal/core/domain"
	"garagehub/internal/core/services"
	"garagehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer and vehicle endpoints
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest represents create customer request body
type CreateCustomerRequest struct {
	Name   string  `json:"name"`
	Phone  string  `json:"phone"`
	Email  *string `json:"email"`
	Source string  `json:"source"`
}

// CreateVehicleRequest represents create vehicle request body
type CreateVehicleRequest struct {
	CustomerID   uint   `json:"customerId"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"licensePlate"`
	EngineCc     *int   `json:"engineCc"`
	PowerKw      *int   `json:"powerKw"`
}

// List lists customers with lifetime stats
// @Summary List customers
// @Description List customers with job count, lifetime revenue and last visit
// @Tags Customers
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Message
// @Router /customer [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.customerService.ListCustomers(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list customers")
	}

	return response.OK(c, fiber.Map{
		"customers": customers,
	})
}

// Create creates a customer
// @Summary Create customer
// @Description Create a new customer record
// @Tags Customers
// @Accept json
// @Produce json
// @Param body body CreateCustomerRequest true "Customer data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Message
// @Router /customer [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var req CreateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if strings.TrimSpace(req.Name) == "" {
		return response.BadRequest(c, "Name is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return response.BadRequest(c, "Phone is required")
	}

	input := &services.CreateCustomerInput{
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
		Email:  req.Email,
		Source: req.Source,
	}

	customer, err := h.customerService.CreateCustomer(c.Context(), input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create customer")
	}

	return response.Created(c, fiber.Map{
		"customer": customer,
	})
}

// Vehicles lists a customer's vehicles
// @Summary List customer vehicles
// @Description List vehicles belonging to a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerId query int true "Customer ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Message
// @Router /customer/vehicles [get]
func (h *CustomerHandler) Vehicles(c *fiber.Ctx) error {
	customerID, err := strconv.ParseUint(c.Query("customerId"), 10, 32)
	if err != nil || customerID == 0 {
		return response.BadRequest(c, "Invalid customer ID")
	}

	vehicles, err := h.customerService.CustomerVehicles(c.Context(), uint(customerID))
	if err != nil {
		return response.InternalServerError(c, "Failed to list vehicles")
	}

	return response.OK(c, fiber.Map{
		"vehicles": vehicles,
	})
}

// CreateVehicle creates a vehicle for a customer
// @Summary Create vehicle
// @Description Add a vehicle under an existing customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param body body CreateVehicleRequest true "Vehicle data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Message
// @Failure 404 {object} response.Message
// @Router /customer/vehicles [post]
func (h *CustomerHandler) CreateVehicle(c *fiber.Ctx) error {
	var req CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.CustomerID == 0 {
		return response.BadRequest(c, "Customer is required")
	}
	if req.Make == "" || req.Model == "" {
		return response.BadRequest(c, "Make and model are required")
	}
	if req.LicensePlate == "" {
		return response.BadRequest(c, "License plate is required")
	}

	input := &services.CreateVehicleInput{
		CustomerID:   req.CustomerID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		EngineCc:     req.EngineCc,
		PowerKw:      req.PowerKw,
	}

	vehicle, err := h.customerService.CreateVehicle(c.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.NotFound(c, "Customer not found")
		}
		return response.InternalServerError(c, "Failed to create vehicle")
	}

	return response.Created(c, fiber.Map{
		"vehicle": vehicle,
	})
}
