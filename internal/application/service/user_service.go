package service

import (
	"context"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/dukasmart/phoneshop-api/pkg/pagination"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserService handles staff account management (admin only)
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUserInput represents the create staff input
type CreateUserInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	Phone     *string
	Role      string
	UserLevel int
}

// CreateUser registers a new staff member
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username is already taken")
	}

	existing, err = s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role != entity.RoleAdmin {
		role = entity.RoleStaff
	}
	userLevel := input.UserLevel
	if userLevel < 1 {
		userLevel = 1
	}

	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Username,
		Email:     input.Email,
		Password:  string(hashed),
		Phone:     input.Phone,
		Role:      role,
		UserLevel: userLevel,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a staff member by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserInput represents the update staff input
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Role      *string
	UserLevel *int
}

// UpdateUser updates a staff member's details
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Role != nil {
		if *input.Role == entity.RoleAdmin {
			user.Role = entity.RoleAdmin
		} else {
			user.Role = entity.RoleStaff
		}
	}
	if input.UserLevel != nil && *input.UserLevel >= 1 {
		user.UserLevel = *input.UserLevel
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes a staff member. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, id, actorID uuid.UUID) error {
	if id == actorID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user.ID)
}

// ListUsers lists staff with optional search
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	params.Validate()
	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(users, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
