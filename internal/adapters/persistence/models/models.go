package models

import (
	"time"

	"garagehub/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth tables
// ============================================================

// User represents users table.
// TODO: hash passwords before storing; rows are currently plaintext and the
// login comparison depends on that.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Name      *string   `gorm:"size:100" json:"name"`
	Role      string    `gorm:"size:20;not null;default:'mechanic'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Name      *string   `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// DisplayName returns name when set, otherwise username
func (u *User) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Username
}

// Session represents sessions table. Tokens are opaque random strings;
// expires_at is fixed at creation and last_activity advances on every
// successful validation.
type Session struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Token        string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	UserAgent    *string   `gorm:"size:255" json:"user_agent"`
	IPAddress    *string   `gorm:"size:50" json:"ip_address"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	LastActivity time.Time `gorm:"not null" json:"last_activity"`
	ExpiresAt    time.Time `gorm:"index;not null" json:"expires_at"`
	User         User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionResponse DTO (token intentionally omitted)
type SessionResponse struct {
	ID           uint      `json:"id"`
	UserAgent    *string   `json:"user_agent"`
	IPAddress    *string   `json:"ip_address"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (s *Session) ToResponse() *SessionResponse {
	return &SessionResponse{
		ID:           s.ID,
		UserAgent:    s.UserAgent,
		IPAddress:    s.IPAddress,
		CreatedAt:    s.CreatedAt,
		LastActivity: s.LastActivity,
		ExpiresAt:    s.ExpiresAt,
	}
}

// ============================================================
// Shop tables
// ============================================================

// Customer represents customers table
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Phone     string    `gorm:"size:30;not null" json:"phone"`
	Email     *string   `gorm:"size:100" json:"email"`
	Source    string    `gorm:"size:50;not null" json:"source"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Vehicles []Vehicle `gorm:"foreignKey:CustomerID" json:"vehicles,omitempty"`
	Jobs     []Job     `gorm:"foreignKey:CustomerID" json:"jobs,omitempty"`
}

func (Customer) TableName() string {
	return "customers"
}

// Vehicle represents vehicles table
type Vehicle struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerID   uint      `gorm:"index;not null" json:"customer_id"`
	Make         string    `gorm:"size:50;not null" json:"make"`
	Model        string    `gorm:"size:50;not null" json:"model"`
	Year         int       `gorm:"not null" json:"year"`
	LicensePlate string    `gorm:"size:20;not null" json:"license_plate"`
	EngineCc     *int      `json:"engine_cc"`
	PowerKw      *int      `json:"power_kw"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// VehicleResponse DTO
type VehicleResponse struct {
	ID           uint   `json:"id"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	LicensePlate string `json:"licensePlate"`
	Display      string `json:"display"`
}

func (v *Vehicle) ToResponse() *VehicleResponse {
	return &VehicleResponse{
		ID:           v.ID,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		LicensePlate: v.LicensePlate,
		Display:      v.Make + " " + v.Model + " (" + v.LicensePlate + ")",
	}
}

// Job represents jobs table (work orders)
type Job struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	VehicleID      uint      `gorm:"index;not null" json:"vehicle_id"`
	CustomerID     uint      `gorm:"index;not null" json:"customer_id"`
	MechanicID     *uint     `gorm:"index" json:"mechanic_id"`
	Status         string    `gorm:"size:20;not null;default:'active'" json:"status"`
	RepairType     string    `gorm:"size:100;not null" json:"repair_type"`
	ComplaintNotes string    `gorm:"type:text" json:"complaint_notes"`
	DiagnosisNotes string    `gorm:"type:text" json:"diagnosis_notes"`
	LaborCost      float64   `gorm:"not null;default:0" json:"labor_cost"`
	PartsCost      float64   `gorm:"not null;default:0" json:"parts_cost"`
	TotalCost      float64   `gorm:"not null;default:0" json:"total_cost"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Vehicle  *Vehicle  `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Mechanic *User     `gorm:"foreignKey:MechanicID" json:"mechanic,omitempty"`
	Parts    []Part    `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"parts,omitempty"`
}

func (Job) TableName() string {
	return "jobs"
}

// TotalSale is the job revenue (labor + parts)
func (j *Job) TotalSale() float64 {
	return j.LaborCost + j.PartsCost
}

// MarginPercentage derives the margin from current cost fields.
// Never persisted, recomputed on every read.
func (j *Job) MarginPercentage() float64 {
	return domain.MarginPercentage(j.LaborCost, j.PartsCost, j.TotalCost)
}

func (j *Job) mechanicName() string {
	if j.Mechanic == nil {
		return "—"
	}
	return j.Mechanic.DisplayName()
}

// JobRow DTO for job list views
type JobRow struct {
	ID               uint      `json:"id"`
	LicensePlate     string    `json:"licensePlate"`
	Manufacturer     string    `json:"manufacturer"`
	Model            string    `json:"model"`
	ServiceType      string    `json:"serviceType"`
	Status           string    `json:"status"`
	MechanicName     string    `json:"mechanicName"`
	DateIn           time.Time `json:"dateIn"`
	TotalSale        float64   `json:"totalSale"`
	TotalCost        float64   `json:"totalCost"`
	MarginPercentage float64   `json:"marginPercentage"`
}

func (j *Job) ToRow() *JobRow {
	row := &JobRow{
		ID:               j.ID,
		ServiceType:      j.RepairType,
		Status:           j.Status,
		MechanicName:     j.mechanicName(),
		DateIn:           j.CreatedAt,
		TotalSale:        j.TotalSale(),
		TotalCost:        j.TotalCost,
		MarginPercentage: j.MarginPercentage(),
	}
	if j.Vehicle != nil {
		row.LicensePlate = j.Vehicle.LicensePlate
		row.Manufacturer = j.Vehicle.Make
		row.Model = j.Vehicle.Model
	}
	return row
}

// JobDetail DTO for the single-job view
type JobDetail struct {
	ID               uint           `json:"id"`
	LicensePlate     string         `json:"licensePlate"`
	Manufacturer     string         `json:"manufacturer"`
	Model            string         `json:"model"`
	Year             int            `json:"year"`
	CustomerName     string         `json:"customerName"`
	CustomerPhone    string         `json:"customerPhone"`
	CustomerEmail    *string        `json:"customerEmail"`
	CustomerSource   string         `json:"customerSource"`
	ServiceType      string         `json:"serviceType"`
	Status           string         `json:"status"`
	MechanicID       *uint          `json:"mechanicId"`
	MechanicName     string         `json:"mechanicName"`
	ComplaintNotes   string         `json:"complaintNotes"`
	DiagnosisNotes   string         `json:"diagnosisNotes"`
	LaborCost        float64        `json:"laborCost"`
	PartsCost        float64        `json:"partsCost"`
	TotalCost        float64        `json:"totalCost"`
	MarginPercentage float64        `json:"marginPercentage"`
	PartsUsed        []PartResponse `json:"partsUsed"`
	DateIn           time.Time      `json:"dateIn"`
	DateUpdated      time.Time      `json:"dateUpdated"`
}

func (j *Job) ToDetail() *JobDetail {
	detail := &JobDetail{
		ID:               j.ID,
		ServiceType:      j.RepairType,
		Status:           j.Status,
		MechanicID:       j.MechanicID,
		MechanicName:     j.mechanicName(),
		ComplaintNotes:   j.ComplaintNotes,
		DiagnosisNotes:   j.DiagnosisNotes,
		LaborCost:        j.LaborCost,
		PartsCost:        j.PartsCost,
		TotalCost:        j.TotalCost,
		MarginPercentage: j.MarginPercentage(),
		PartsUsed:        make([]PartResponse, 0, len(j.Parts)),
		DateIn:           j.CreatedAt,
		DateUpdated:      j.UpdatedAt,
	}
	if j.Vehicle != nil {
		detail.LicensePlate = j.Vehicle.LicensePlate
		detail.Manufacturer = j.Vehicle.Make
		detail.Model = j.Vehicle.Model
		detail.Year = j.Vehicle.Year
	}
	if j.Customer != nil {
		detail.CustomerName = j.Customer.Name
		detail.CustomerPhone = j.Customer.Phone
		detail.CustomerEmail = j.Customer.Email
		detail.CustomerSource = j.Customer.Source
	}
	for _, part := range j.Parts {
		detail.PartsUsed = append(detail.PartsUsed, *part.ToResponse())
	}
	return detail
}

// Part represents parts table (parts used on a job)
type Part struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	JobID        uint    `gorm:"index;not null" json:"job_id"`
	PartName     string  `gorm:"size:100;not null" json:"part_name"`
	SupplierName string  `gorm:"size:100;not null" json:"supplier_name"`
	SKU          string  `gorm:"column:sku;size:50;not null" json:"sku"`
	Qty          int     `gorm:"not null;default:1" json:"qty"`
	BuyPrice     float64 `gorm:"not null;default:0" json:"buy_price"`
	SellPrice    float64 `gorm:"not null;default:0" json:"sell_price"`
}

func (Part) TableName() string {
	return "parts"
}

// PartResponse DTO
type PartResponse struct {
	ID           uint    `json:"id"`
	PartName     string  `json:"partName"`
	SupplierName string  `json:"supplierName"`
	SKU          string  `json:"sku"`
	Qty          int     `json:"qty"`
	BuyPrice     float64 `json:"buyPrice"`
	SellPrice    float64 `json:"sellPrice"`
}

func (p *Part) ToResponse() *PartResponse {
	return &PartResponse{
		ID:           p.ID,
		PartName:     p.PartName,
		SupplierName: p.SupplierName,
		SKU:          p.SKU,
		Qty:          p.Qty,
		BuyPrice:     p.BuyPrice,
		SellPrice:    p.SellPrice,
	}
}

// CustomerRow DTO for the customer list with lifetime stats
type CustomerRow struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	Email           *string `json:"email"`
	Vehicles        string  `json:"vehicles"`
	LastVisit       string  `json:"lastVisit"`
	LifetimeJobs    int     `json:"lifetimeJobs"`
	LifetimeRevenue string  `json:"lifetimeRevenue"`
	Status          string  `json:"status"`
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Session{},
		&Customer{},
		&Vehicle{},
		&Job{},
		&Part{},
	)
}
