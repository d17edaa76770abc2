package services

import (
	"context"
	"errors"

	"customerhub/internal/adapters/persistence/models"
	"customerhub/internal/adapters/persistence/repositories"
	"customerhub/internal/core/domain"
	"customerhub/internal/pkg/password"
	"customerhub/internal/pkg/token"

	"gorm.io/gorm"
)

// CustomerService handles registration, login and customer management.
// It holds no cross-request state; the store owns all persistence.
type CustomerService struct {
	customers repositories.CustomerRepository
	roles     repositories.RoleRepository
	tokens    *token.Service
	validator *CustomerValidator
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customers repositories.CustomerRepository,
	roles repositories.RoleRepository,
	tokens *token.Service,
) *CustomerService {
	return &CustomerService{
		customers: customers,
		roles:     roles,
		tokens:    tokens,
		validator: NewCustomerValidator(customers, roles),
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Username     string `json:"username" validate:"required,max=255"`
	Password     string `json:"password" validate:"required,min=6,max=255"`
	FullName     string `json:"fullName" validate:"required,max=255"`
	Email        string `json:"email" validate:"required,email"`
	ConfirmEmail string `json:"confirmEmail" validate:"required,email"`
	Age          uint8  `json:"age" validate:"max=127"`
	Role         string `json:"role" validate:"required"`
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// EditCustomerInput represents a partial customer update. Nil means
// "leave unchanged"; only the fields listed here are mergeable.
type EditCustomerInput struct {
	ID       uint    `json:"id" validate:"required"`
	Username *string `json:"username"`
	FullName *string `json:"fullName"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	Age      *uint8  `json:"age" validate:"omitempty,max=127"`
}

// Register validates and persists a new customer. Every violated
// constraint is reported at once via a FieldValidationError. The
// check-then-save sequence is not atomic against concurrent duplicate
// registrations; the unique indexes on username and email are the
// authoritative guard.
func (s *CustomerService) Register(ctx context.Context, input *RegisterInput) error {
	role, err := s.validator.ValidateRegister(ctx, input)
	if err != nil {
		return err
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return err
	}

	customer := &models.Customer{
		Username: input.Username,
		Password: hashed,
		FullName: input.FullName,
		Email:    input.Email,
		Age:      input.Age,
		RoleID:   role.ID,
		Role:     *role,
	}

	return s.customers.Create(ctx, customer)
}

// Login authenticates a customer and returns a freshly issued token
// for the resulting principal.
func (s *CustomerService) Login(ctx context.Context, input *LoginInput) (string, error) {
	customer, err := s.validator.ValidateLogin(ctx, input)
	if err != nil {
		return "", err
	}

	principal := domain.NewPrincipal(customer.Username, customer.Role.Name)
	return s.tokens.Issue(principal.Username, principal.Authority())
}

// GetByID returns a customer's public view by id
func (s *CustomerService) GetByID(ctx context.Context, id uint) (*models.CustomerResponse, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewFieldError("id", "not found")
		}
		return nil, err
	}
	return customer.ToResponse(), nil
}

// ListCustomers lists customers with their total count for pagination
func (s *CustomerService) ListCustomers(ctx context.Context, offset, limit int) ([]*models.CustomerResponse, int64, error) {
	customers, total, err := s.customers.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*models.CustomerResponse, len(customers))
	for i, customer := range customers {
		responses[i] = customer.ToResponse()
	}
	return responses, total, nil
}

// AverageAge computes the average age across all customers
func (s *CustomerService) AverageAge(ctx context.Context) (float64, error) {
	customers, err := s.customers.FindAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(customers) == 0 {
		return 0, nil
	}

	var sum float64
	for _, customer := range customers {
		sum += float64(customer.Age)
	}
	return sum / float64(len(customers)), nil
}

// Between18And40 returns customers aged 18 to 40 inclusive
func (s *CustomerService) Between18And40(ctx context.Context) ([]*models.CustomerResponse, error) {
	customers, err := s.customers.FindByAgeBetween(ctx, 18, 40)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.CustomerResponse, len(customers))
	for i, customer := range customers {
		responses[i] = customer.ToResponse()
	}
	return responses, nil
}

// Edit applies a partial update to an existing customer. When the
// edited record belongs to the acting principal, a fresh token is
// issued and returned because the previously issued one may now carry
// stale identity claims; otherwise the returned token is empty.
func (s *CustomerService) Edit(ctx context.Context, input *EditCustomerInput, actor domain.Principal) (string, error) {
	customer, err := s.customers.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.NewFieldError("user", "not exist")
		}
		return "", err
	}

	// Resolve the actor before the merge can change the username.
	current, err := s.customers.GetByUsername(ctx, actor.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}
	selfEdit := current != nil && current.ID == customer.ID

	mergeCustomer(customer, input)

	if input.Password != nil {
		if len(*input.Password) < password.MinLength {
			return "", domain.NewFieldError("password", "Password must be at least 6 characters long.")
		}
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return "", err
		}
		customer.Password = hashed
	}

	if err := s.customers.Save(ctx, customer); err != nil {
		return "", err
	}

	if selfEdit {
		principal := domain.NewPrincipal(customer.Username, customer.Role.Name)
		return s.tokens.Issue(principal.Username, principal.Authority())
	}
	return "", nil
}

// Delete removes a customer by id, failing when the id is unknown
// without touching the store's delete operation.
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	exists, err := s.customers.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return domain.NewFieldError("user", "not exist")
	}

	return s.customers.Delete(ctx, id)
}

// mergeCustomer copies the non-nil mergeable fields onto the record.
// Password is handled separately because it needs hashing. Listing
// the fields here keeps new schema fields out of partial updates
// unless added deliberately.
func mergeCustomer(customer *models.Customer, input *EditCustomerInput) {
	if input.Username != nil {
		customer.Username = *input.Username
	}
	if input.FullName != nil {
		customer.FullName = *input.FullName
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.Age != nil {
		customer.Age = *input.Age
	}
}
