package repositories

import (
	"context"
	"time"

	"garagehub/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// SessionRepository defines session repository interface
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	ListActiveByUserID(ctx context.Context, userID uint) ([]*models.Session, error)
	UpdateLastActivity(ctx context.Context, id uint, t time.Time) error
	Delete(ctx context.Context, id uint) error
	DeleteByToken(ctx context.Context, token string) error
	DeleteAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// CustomerRepository defines customer repository interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	ListWithActivity(ctx context.Context) ([]*models.Customer, error)
}

// VehicleRepository defines vehicle repository interface
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id uint) (*models.Vehicle, error)
	ListByCustomerID(ctx context.Context, customerID uint) ([]*models.Vehicle, error)
}

// JobRepository defines job repository interface
type JobRepository interface {
	Create(ctx context.Context, job *models.Job) error
	GetByID(ctx context.Context, id uint) (*models.Job, error)
	List(ctx context.Context, status string, offset, limit int) ([]*models.Job, int64, error)
	ListByMechanic(ctx context.Context, mechanicID uint, statuses []string) ([]*models.Job, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	Archive(ctx context.Context, ids []uint) (int64, error)
}
