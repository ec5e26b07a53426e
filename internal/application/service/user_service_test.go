package service

import (
	"context"
	"testing"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	infraRepo "github.com/dukasmart/phoneshop-api/internal/infrastructure/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(infraRepo.NewUserRepository(db))
}

func TestCreateUserCoercesUnknownRoleToStaff(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	user, err := svc.CreateUser(context.Background(), &CreateUserInput{
		FirstName: "New",
		LastName:  "Hire",
		Username:  "newhire",
		Email:     "newhire@example.com",
		Password:  "secret123",
		Role:      "superuser",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, user.Role)
	assert.Equal(t, 1, user.UserLevel)
	assert.NotEqual(t, "secret123", user.Password)
}

func TestCreateUserDuplicateUsernameRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	_, err := svc.CreateUser(context.Background(), &CreateUserInput{
		FirstName: "New", LastName: "Hire",
		Username: "newhire", Email: "newhire@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(context.Background(), &CreateUserInput{
		FirstName: "Other", LastName: "Hire",
		Username: "newhire", Email: "other@example.com", Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	_, err = svc.CreateUser(context.Background(), &CreateUserInput{
		FirstName: "Other", LastName: "Hire",
		Username: "otherhire", Email: "newhire@example.com", Password: "secret123",
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestDeleteUserBlocksSelfDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := newUserService(db)

	user, err := svc.CreateUser(context.Background(), &CreateUserInput{
		FirstName: "New", LastName: "Hire",
		Username: "newhire", Email: "newhire@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	err = svc.DeleteUser(context.Background(), user.ID, user.ID)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID, uuid.New()))
	_, err = svc.GetUser(context.Background(), user.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
