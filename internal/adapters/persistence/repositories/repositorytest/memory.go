// Package repositorytest provides in-memory repository implementations
// for tests.
package repositorytest

import (
	"context"
	"sort"
	"sync"

	"customerhub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// CustomerRepository is a map-backed CustomerRepository
type CustomerRepository struct {
	mu          sync.Mutex
	nextID      uint
	records     map[uint]*models.Customer
	DeleteCalls int
}

// NewCustomerRepository creates an empty in-memory customer repository
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{
		nextID:  1,
		records: make(map[uint]*models.Customer),
	}
}

// Count returns the number of stored customers
func (r *CustomerRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

func (r *CustomerRepository) Create(_ context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer.ID = r.nextID
	r.nextID++

	clone := *customer
	r.records[customer.ID] = &clone
	return nil
}

func (r *CustomerRepository) Save(_ context.Context, customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[customer.ID]; !ok {
		return gorm.ErrRecordNotFound
	}

	clone := *customer
	r.records[customer.ID] = &clone
	return nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id uint) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	clone := *record
	return &clone, nil
}

func (r *CustomerRepository) GetByUsername(_ context.Context, username string) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.Username == username {
			clone := *record
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *CustomerRepository) ExistsByID(_ context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.records[id]
	return ok, nil
}

func (r *CustomerRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *CustomerRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, record := range r.records {
		if record.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *CustomerRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.DeleteCalls++
	delete(r.records, id)
	return nil
}

func (r *CustomerRepository) List(_ context.Context, offset, limit int) ([]*models.Customer, int64, error) {
	all := r.sortedByID()

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}

	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *CustomerRepository) FindAll(_ context.Context) ([]*models.Customer, error) {
	return r.sortedByID(), nil
}

func (r *CustomerRepository) FindByAgeBetween(_ context.Context, min, max uint8) ([]*models.Customer, error) {
	var matches []*models.Customer
	for _, record := range r.sortedByID() {
		if record.Age >= min && record.Age <= max {
			matches = append(matches, record)
		}
	}
	return matches, nil
}

func (r *CustomerRepository) sortedByID() []*models.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]*models.Customer, 0, len(r.records))
	for _, record := range r.records {
		clone := *record
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// RoleRepository is a map-backed RoleRepository seeded with a fixed
// role set
type RoleRepository struct {
	roles map[string]*models.Role
}

// NewRoleRepository seeds an in-memory role repository with the given
// role names
func NewRoleRepository(names ...string) *RoleRepository {
	roles := make(map[string]*models.Role, len(names))
	for i, name := range names {
		roles[name] = &models.Role{ID: uint(i + 1), Name: name}
	}
	return &RoleRepository{roles: roles}
}

func (r *RoleRepository) GetByName(_ context.Context, name string) (*models.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	clone := *role
	return &clone, nil
}
