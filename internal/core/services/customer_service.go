package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"garagehub/internal/adapters/persistence/models"
	"garagehub/internal/adapters/persistence/repositories"
	"garagehub/internal/core/domain"

	"gorm.io/gorm"
)

// lastVisitFormat matches the shop's customer list display
const lastVisitFormat = "Jan 2, 2006"

// CustomerService handles customer and vehicle business logic
type CustomerService struct {
	customerRepo repositories.CustomerRepository
	vehicleRepo  repositories.VehicleRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repositories.CustomerRepository, vehicleRepo repositories.VehicleRepository) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
	}
}

// ListCustomers lists all customers with lifetime stats derived from their
// job history: job count, revenue (labor + parts across all jobs), date of
// the most recent job and an Old/New flag.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]*models.CustomerRow, error) {
	customers, err := s.customerRepo.ListWithActivity(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]*models.CustomerRow, 0, len(customers))
	for _, customer := range customers {
		lifetimeJobs := len(customer.Jobs)

		var lifetimeRevenue float64
		for _, job := range customer.Jobs {
			lifetimeRevenue += job.LaborCost + job.PartsCost
		}

		lastVisit := "Never"
		if lifetimeJobs > 0 {
			// Jobs are preloaded newest first
			lastVisit = customer.Jobs[0].CreatedAt.Format(lastVisitFormat)
		}

		vehicleParts := make([]string, 0, len(customer.Vehicles))
		for _, v := range customer.Vehicles {
			vehicleParts = append(vehicleParts, fmt.Sprintf("%s (%s %s)", v.LicensePlate, v.Make, v.Model))
		}
		vehiclesText := strings.Join(vehicleParts, ", ")
		if vehiclesText == "" {
			vehiclesText = "—"
		}

		status := "New Customer"
		if lifetimeJobs > 0 {
			status = "Old Customer"
		}

		rows = append(rows, &models.CustomerRow{
			ID:              customer.ID,
			Name:            customer.Name,
			Phone:           customer.Phone,
			Email:           customer.Email,
			Vehicles:        vehiclesText,
			LastVisit:       lastVisit,
			LifetimeJobs:    lifetimeJobs,
			LifetimeRevenue: fmt.Sprintf("$%.2f", lifetimeRevenue),
			Status:          status,
		})
	}

	return rows, nil
}

// CreateCustomerInput represents create customer input
type CreateCustomerInput struct {
	Name   string
	Phone  string
	Email  *string
	Source string
}

// CreateCustomer creates a new customer record
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*models.Customer, error) {
	customer := &models.Customer{
		Name:   input.Name,
		Phone:  input.Phone,
		Email:  input.Email,
		Source: input.Source,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	log.Printf("✅ Customer created: %s", customer.Name)
	return customer, nil
}

// CustomerVehicles lists a customer's vehicles
func (s *CustomerService) CustomerVehicles(ctx context.Context, customerID uint) ([]*models.VehicleResponse, error) {
	vehicles, err := s.vehicleRepo.ListByCustomerID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		responses = append(responses, vehicle.ToResponse())
	}
	return responses, nil
}

// CreateVehicleInput represents create vehicle input
type CreateVehicleInput struct {
	CustomerID   uint
	Make         string
	Model        string
	Year         int
	LicensePlate string
	EngineCc     *int
	PowerKw      *int
}

// CreateVehicle creates a vehicle under an existing customer
func (s *CustomerService) CreateVehicle(ctx context.Context, input *CreateVehicleInput) (*models.Vehicle, error) {
	if _, err := s.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	vehicle := &models.Vehicle{
		CustomerID:   input.CustomerID,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		LicensePlate: input.LicensePlate,
		EngineCc:     input.EngineCc,
		PowerKw:      input.PowerKw,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}
