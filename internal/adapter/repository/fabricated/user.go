package fabricated

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "user-service/internal/domain/user"
	"user-service/internal/usecase/user"
	apperrors "user-service/pkg/errors"
)

// Baseline values for every fabricated lookup.
const (
	BaselineName  = "John Doe"
	BaselineEmail = "john@example.com"
)

// UserRepository implements user.Repository without any storage.
// Every call builds its records on the fly; the nil UUID stands in for a missing user.
// Replace it with a real repository once a database is introduced.
type UserRepository struct {
	log *zap.Logger
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository creates a new fabricated user repository.
func NewUserRepository(log *zap.Logger) *UserRepository {
	return &UserRepository{log: log}
}

// List returns the two fixed sample users with fresh IDs.
func (r *UserRepository) List(_ context.Context) ([]domain.User, error) {
	return []domain.User{
		{ID: uuid.New(), Name: BaselineName, Email: BaselineEmail},
		{ID: uuid.New(), Name: "Jane Smith", Email: "jane@example.com"},
	}, nil
}

// GetByID returns the baseline user carrying id.
func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if domain.IsSentinel(id) {
		return nil, apperrors.NotFound()
	}

	return &domain.User{
		ID:    id,
		Name:  BaselineName,
		Email: BaselineEmail,
	}, nil
}

// Create assigns a new random ID to u.
func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	if u == nil {
		return apperrors.Internal("user cannot be nil", nil)
	}

	u.ID = uuid.New()
	r.log.Debug("fabricated user id", zap.String("id", u.ID.String()))
	return nil
}

// Update accepts any user except the sentinel.
func (r *UserRepository) Update(_ context.Context, u *domain.User) error {
	if u == nil {
		return apperrors.Internal("user cannot be nil", nil)
	}
	if domain.IsSentinel(u.ID) {
		return apperrors.NotFound()
	}
	return nil
}

// Delete accepts any ID except the sentinel.
func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	if domain.IsSentinel(id) {
		return apperrors.NotFound()
	}
	return nil
}
