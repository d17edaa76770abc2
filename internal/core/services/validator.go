package services

import (
	"context"
	"errors"

	"customerhub/internal/adapters/persistence/models"
	"customerhub/internal/adapters/persistence/repositories"
	"customerhub/internal/core/domain"
	"customerhub/internal/pkg/password"

	"gorm.io/gorm"
)

// CustomerValidator checks credentials and registration requests
// against the store. Registration collects every violated constraint
// before failing; login fails on the first.
type CustomerValidator struct {
	customers repositories.CustomerRepository
	roles     repositories.RoleRepository
}

// NewCustomerValidator creates a new customer validator
func NewCustomerValidator(
	customers repositories.CustomerRepository,
	roles repositories.RoleRepository,
) *CustomerValidator {
	return &CustomerValidator{
		customers: customers,
		roles:     roles,
	}
}

// ValidateLogin resolves the customer and verifies the password.
// Failures carry the offending field so the caller can return a
// field→message map.
func (v *CustomerValidator) ValidateLogin(ctx context.Context, input *LoginInput) (*models.Customer, error) {
	customer, err := v.customers.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewFieldError("username", "not found")
		}
		return nil, err
	}

	if !password.Verify(input.Password, customer.Password) {
		return nil, domain.NewFieldError("password", "bad password")
	}

	return customer, nil
}

// ValidateRegister collects ALL violated registration constraints into
// one field→message map instead of failing fast, and resolves the
// requested role on success.
func (v *CustomerValidator) ValidateRegister(ctx context.Context, input *RegisterInput) (*models.Role, error) {
	fields := make(map[string]string)

	role, err := v.roles.GetByName(ctx, input.Role)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		fields["role"] = "Role not found"
	}

	if input.Email != input.ConfirmEmail {
		fields["confirmEmail"] = "Emails do not match"
	}

	taken, err := v.customers.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		fields["email"] = "Email is already taken"
	}

	taken, err = v.customers.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		fields["username"] = "Username already exists"
	}

	if len(fields) > 0 {
		return nil, domain.NewFieldErrors(fields)
	}

	return role, nil
}
