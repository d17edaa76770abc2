package repositories

import (
	"context"

	"customerhub/internal/adapters/persistence/models"
)

// CustomerRepository defines the credential store contract. All
// operations are synchronous; callers wait for completion or the
// underlying store times out.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	Save(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, id uint) (*models.Customer, error)
	GetByUsername(ctx context.Context, username string) (*models.Customer, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, offset, limit int) ([]*models.Customer, int64, error)
	FindAll(ctx context.Context) ([]*models.Customer, error)
	FindByAgeBetween(ctx context.Context, min, max uint8) ([]*models.Customer, error)
}

// RoleRepository resolves read-mostly role reference data
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*models.Role, error)
}
