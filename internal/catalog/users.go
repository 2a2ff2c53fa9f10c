package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/partyx/internal/models"
	"github.com/desertthunder/partyx/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserSpec is the writable part of a user. Password is only ever stored hashed.
type UserSpec struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUser stores a user with a bcrypt hash of the password. Emails are unique.
func (c *Catalog) CreateUser(ctx context.Context, spec UserSpec) (*models.User, error) {
	if spec.Password == "" {
		return nil, fmt.Errorf("%w: password is required", shared.ErrInvalidInput)
	}

	if existing, err := c.users.GetByEmail(ctx, spec.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email %s is already registered", shared.ErrInvalidInput, spec.Email)
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user := models.NewUser(spec.Name, spec.Email)
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	hash, err := c.hash(spec.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := c.users.Create(ctx, user); err != nil {
		return nil, err
	}

	c.logger.Info("user created", "user", user.ID)
	return user, nil
}

// GetUser returns a user by id.
func (c *Catalog) GetUser(ctx context.Context, id string) (*models.User, error) {
	return c.users.Get(ctx, id)
}

// ListUsers returns every user.
func (c *Catalog) ListUsers(ctx context.Context) ([]*models.User, error) {
	return c.users.List(ctx, nil)
}

// UpdateUser overwrites name and email, and the password when one is given.
func (c *Catalog) UpdateUser(ctx context.Context, id string, spec UserSpec) (*models.User, error) {
	user, err := c.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = spec.Name
	user.Email = spec.Email

	if spec.Password != "" {
		if user.PasswordHash, err = c.hash(spec.Password); err != nil {
			return nil, err
		}
	}

	if err := c.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user. Parties and tasks keep the stale id.
func (c *Catalog) DeleteUser(ctx context.Context, id string) error {
	return c.users.Delete(ctx, id)
}

func (c *Catalog) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.hashCost)
	if err != nil {
		return "", fmt.Errorf("%w: failed to hash password: %v", shared.ErrInvalidInput, err)
	}
	return string(hash), nil
}
