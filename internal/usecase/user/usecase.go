package user

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	domain "user-service/internal/domain/user"
	apperrors "user-service/pkg/errors"
	"user-service/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	msgNameEmpty    = "Name cannot be empty"
	msgInvalidEmail = "Invalid email format"

	// emailRule is the only email check the service performs.
	emailRule = "contains=@"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer so the fabricated source can be swapped
// for real storage without touching the usecase.
type Repository interface {
	List(ctx context.Context) ([]domain.User, error)                 // List every known user in a stable order
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) // Retrieve user by ID
	Create(ctx context.Context, u *domain.User) error                // Create a new user, assigning its ID
	Update(ctx context.Context, u *domain.User) error                // Update existing user
	Delete(ctx context.Context, id uuid.UUID) error                  // Delete user by ID
}

// usecase implements the business logic for user management operations.
// It provides a clean separation between the transport layer and data layer.
type usecase struct {
	repo     Repository          // Repository for data access
	log      *zap.Logger         // Logger for structured logging
	validate *validator.Validate // Validator for request validation
}

// New creates a new instance of Usecase with the provided repository and logger.
func New(r Repository, log *zap.Logger) Usecase {
	return &usecase{repo: r, log: log, validate: validator.New()}
}

// formatValidationError converts validator.ValidationErrors into the first
// human-readable message, in struct field order.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Internal("validation failed", err)
	}

	e := validationErrors[0]
	switch e.Field() {
	case "Name":
		return apperrors.Validation(msgNameEmpty)
	case "Email":
		return apperrors.Validation(msgInvalidEmail)
	default:
		return apperrors.Validation(fmt.Sprintf("%s is invalid", e.Field()))
	}
}

// CreateUser validates the payload and creates a user with a fresh ID.
func (uc *usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log)

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u := &domain.User{
		Name:  in.Name,
		Email: in.Email,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	log.Info("created user", zap.String("id", u.ID.String()))
	return &CreateUserResponse{User: toDTO(u)}, nil
}

// UpdateUser merges the supplied fields into the existing user.
// Lookup happens before payload validation, so an unknown ID always reports not found.
func (uc *usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*UpdateUserResponse, error) {
	log := logger.WithContext(ctx, uc.log).With(zap.String("id", in.ID.String()))

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			log.Warn("user not found for update")
		} else {
			log.Error("failed to load user for update", zap.Error(err))
		}
		return nil, err
	}

	if in.Name != nil {
		u.Name = *in.Name
	}

	if in.Email != nil {
		if err := uc.validate.Var(*in.Email, emailRule); err != nil {
			log.Warn("validate failed", zap.Error(err))
			return nil, apperrors.Validation(msgInvalidEmail)
		}
		u.Email = *in.Email
	}

	if err := uc.repo.Update(ctx, u); err != nil {
		log.Error("failed to update user", zap.Error(err))
		return nil, err
	}

	log.Info("updated user")
	return &UpdateUserResponse{User: toDTO(u)}, nil
}

// DeleteUser deletes a user by ID.
func (uc *usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*DeleteUserResponse, error) {
	log := logger.WithContext(ctx, uc.log).With(zap.String("id", in.ID.String()))

	if err := uc.repo.Delete(ctx, in.ID); err != nil {
		if apperrors.IsNotFound(err) {
			log.Warn("user not found for delete")
		} else {
			log.Error("failed to delete user", zap.Error(err))
		}
		return nil, err
	}

	log.Info("deleted user")
	return &DeleteUserResponse{ID: in.ID}, nil
}

// GetUser retrieves a user by ID.
func (uc *usecase) GetUser(ctx context.Context, in GetUserRequest) (*GetUserResponse, error) {
	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			logger.WithContext(ctx, uc.log).Error("failed to get user", zap.String("id", in.ID.String()), zap.Error(err))
		}
		return nil, err
	}

	return &GetUserResponse{User: toDTO(u)}, nil
}

// ListUsers returns the users selected by offset and limit.
func (uc *usecase) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	q := domain.NewQuery(in.Limit, in.Offset)

	log := logger.WithContext(ctx, uc.log)
	log.Debug("listing users", zap.Uint32("limit", q.Limit), zap.Uint32("offset", q.Offset))

	all, err := uc.repo.List(ctx)
	if err != nil {
		log.Error("failed to list users", zap.Error(err))
		return nil, err
	}

	page := domain.Paginate(all, q)
	users := make([]User, len(page))
	for i := range page {
		users[i] = toDTO(&page[i])
	}

	return &ListUsersResponse{Users: users}, nil
}

func toDTO(u *domain.User) User {
	return User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}
