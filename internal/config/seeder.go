package config

import (
	"log"

	"garagehub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Demo data is for development only; each
// seeder skips silently when its table already has rows.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedUsers(); err != nil {
		log.Printf("⚠️ User seeder skipped: %v", err)
	}
	if err := s.seedShopData(); err != nil {
		log.Printf("⚠️ Shop data seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

// seedUsers seeds the default admin and two demo mechanics.
// Passwords are stored as-is, matching what the login check expects.
func (s *Seeder) seedUsers() error {
	var count int64
	s.db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	users := []*models.User{
		{Username: "admin", Password: "admin123", Name: strPtr("Shop Admin"), Role: "admin"},
		{Username: "mike", Password: "mike123", Name: strPtr("Mike Torres"), Role: "mechanic"},
		{Username: "dave", Password: "dave123", Name: strPtr("Dave Chen"), Role: "mechanic"},
	}
	for _, u := range users {
		if err := s.db.Create(u).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d users (admin + mechanics)", len(users))
	return nil
}

// seedShopData seeds demo customers, vehicles, jobs and parts
func (s *Seeder) seedShopData() error {
	var count int64
	s.db.Model(&models.Customer{}).Count(&count)
	if count > 0 {
		return nil
	}

	customers := []*models.Customer{
		{Name: "John Smith", Email: strPtr("john.smith@email.com"), Phone: "+1 (555) 123-4567", Source: "Google Maps"},
		{Name: "Sarah Johnson", Email: strPtr("sarah.j@email.com"), Phone: "+1 (555) 234-5678", Source: "Referral"},
		{Name: "Michael Chen", Email: strPtr("mchen@email.com"), Phone: "+1 (555) 345-6789", Source: "Website"},
		{Name: "Emily Davis", Email: strPtr("emily.d@email.com"), Phone: "+1 (555) 456-7890", Source: "Phone"},
		{Name: "Robert Wilson", Email: strPtr("r.wilson@email.com"), Phone: "+1 (555) 567-8901", Source: "Walk-in"},
	}
	for _, c := range customers {
		if err := s.db.Create(c).Error; err != nil {
			return err
		}
	}

	vehicles := []*models.Vehicle{
		{CustomerID: customers[0].ID, Make: "Toyota", Model: "Camry", Year: 2020, LicensePlate: "ABC123", EngineCc: intPtr(2500), PowerKw: intPtr(175)},
		{CustomerID: customers[0].ID, Make: "Honda", Model: "Civic", Year: 2021, LicensePlate: "XYZ789", EngineCc: intPtr(1500), PowerKw: intPtr(130)},
		{CustomerID: customers[1].ID, Make: "Ford", Model: "Mustang", Year: 2019, LicensePlate: "DEF456", EngineCc: intPtr(5000), PowerKw: intPtr(338)},
		{CustomerID: customers[2].ID, Make: "BMW", Model: "X5", Year: 2022, LicensePlate: "GHI789", EngineCc: intPtr(3000), PowerKw: intPtr(250)},
		{CustomerID: customers[3].ID, Make: "Mercedes", Model: "C-Class", Year: 2021, LicensePlate: "JKL012", EngineCc: intPtr(1600), PowerKw: intPtr(150)},
		{CustomerID: customers[4].ID, Make: "Audi", Model: "A4", Year: 2020, LicensePlate: "MNO345", EngineCc: intPtr(2000), PowerKw: intPtr(200)},
	}
	for _, v := range vehicles {
		if err := s.db.Create(v).Error; err != nil {
			return err
		}
	}

	var mechanics []models.User
	if err := s.db.Where("role = ?", "mechanic").Find(&mechanics).Error; err != nil {
		return err
	}
	mechanicID := func(i int) *uint {
		if i < len(mechanics) {
			return &mechanics[i].ID
		}
		return nil
	}

	jobs := []*models.Job{
		{VehicleID: vehicles[0].ID, CustomerID: customers[0].ID, MechanicID: mechanicID(0), Status: "active", RepairType: "Oil Change", ComplaintNotes: "Regular maintenance", DiagnosisNotes: "Oil and filter replacement needed", LaborCost: 50, PartsCost: 30, TotalCost: 80},
		{VehicleID: vehicles[1].ID, CustomerID: customers[0].ID, MechanicID: mechanicID(1), Status: "in-progress", RepairType: "Brakes", ComplaintNotes: "Brake pads worn out", DiagnosisNotes: "Front brake pads need replacement", LaborCost: 150, PartsCost: 120, TotalCost: 270},
		{VehicleID: vehicles[2].ID, CustomerID: customers[1].ID, MechanicID: mechanicID(0), Status: "repaired", RepairType: "Engine Diagnostics", ComplaintNotes: "Check engine light", DiagnosisNotes: "O2 sensor replaced", LaborCost: 200, PartsCost: 150, TotalCost: 350},
		{VehicleID: vehicles[3].ID, CustomerID: customers[2].ID, MechanicID: mechanicID(1), Status: "active", RepairType: "Tire Replacement", ComplaintNotes: "Tires worn", DiagnosisNotes: "All-season tires needed", LaborCost: 80, PartsCost: 400, TotalCost: 480},
		{VehicleID: vehicles[4].ID, CustomerID: customers[3].ID, MechanicID: mechanicID(0), Status: "in-progress", RepairType: "Air Filter Replacement", ComplaintNotes: "Engine running rough", DiagnosisNotes: "Air filter and cabin filter replacement", LaborCost: 60, PartsCost: 40, TotalCost: 100},
		{VehicleID: vehicles[5].ID, CustomerID: customers[4].ID, MechanicID: mechanicID(1), Status: "invoice", RepairType: "Battery Replacement", ComplaintNotes: "Car won't start", DiagnosisNotes: "Battery dead, replacement needed", LaborCost: 30, PartsCost: 120, TotalCost: 150},
	}
	for _, j := range jobs {
		if err := s.db.Create(j).Error; err != nil {
			return err
		}
	}

	parts := []*models.Part{
		{JobID: jobs[0].ID, PartName: "Oil Filter", SupplierName: "AutoZone", SKU: "OIL-FLT-001", Qty: 1, BuyPrice: 8, SellPrice: 15},
		{JobID: jobs[0].ID, PartName: "Synthetic Oil 5W-30", SupplierName: "Mobil", SKU: "OIL-5W30-5L", Qty: 1, BuyPrice: 18, SellPrice: 35},
		{JobID: jobs[1].ID, PartName: "Front Brake Pads", SupplierName: "Bosch", SKU: "BRAKE-PAD-FRT", Qty: 1, BuyPrice: 60, SellPrice: 120},
		{JobID: jobs[2].ID, PartName: "O2 Sensor", SupplierName: "OEM", SKU: "O2-SENSOR-001", Qty: 1, BuyPrice: 120, SellPrice: 200},
		{JobID: jobs[3].ID, PartName: "All-Season Tire", SupplierName: "Michelin", SKU: "TIRE-ALL-SN", Qty: 4, BuyPrice: 80, SellPrice: 150},
		{JobID: jobs[4].ID, PartName: "Engine Air Filter", SupplierName: "Mann Filter", SKU: "AIR-FLT-ENG", Qty: 1, BuyPrice: 15, SellPrice: 25},
		{JobID: jobs[4].ID, PartName: "Cabin Air Filter", SupplierName: "Mann Filter", SKU: "AIR-FLT-CAB", Qty: 1, BuyPrice: 12, SellPrice: 20},
		{JobID: jobs[5].ID, PartName: "Car Battery 12V", SupplierName: "Optima", SKU: "BATT-12V-100", Qty: 1, BuyPrice: 100, SellPrice: 180},
	}
	for _, p := range parts {
		if err := s.db.Create(p).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d customers, %d vehicles, %d jobs, %d parts",
		len(customers), len(vehicles), len(jobs), len(parts))
	return nil
}
