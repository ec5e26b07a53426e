package service

import (
	"context"
	"testing"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	infraRepo "github.com/dukasmart/phoneshop-api/internal/infrastructure/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/dukasmart/phoneshop-api/pkg/email"
	"github.com/dukasmart/phoneshop-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	userRepo := infraRepo.NewUserRepository(db)
	resetTokenRepo := infraRepo.NewPasswordResetTokenRepository(db)
	jwtManager := utils.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	emailService := email.NewService(email.Config{})
	return NewAuthService(userRepo, resetTokenRepo, jwtManager, emailService)
}

func seedLogin(t *testing.T, db *gorm.DB, username, password string) *entity.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &entity.User{
		FirstName: "Admin",
		LastName:  "User",
		Username:  username,
		Email:     username + "@example.com",
		Password:  string(hashed),
		Role:      entity.RoleAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	seedLogin(t, db, "admin", "correct-horse")

	result, err := svc.Login(context.Background(), "admin", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "admin", result.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	seedLogin(t, db, "admin", "correct-horse")

	_, err := svc.Login(context.Background(), "admin", "wrong")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody", "correct-horse")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	seedLogin(t, db, "admin", "correct-horse")

	login, err := svc.Login(context.Background(), "admin", "correct-horse")
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	user := seedLogin(t, db, "admin", "old-password")

	err := svc.ChangePassword(context.Background(), user.ID, "wrong", "new-password")
	require.Error(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "old-password", "new-password"))

	_, err = svc.Login(context.Background(), "admin", "old-password")
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "admin", "new-password")
	assert.NoError(t, err)
}

func TestForgotPasswordUnknownEmailStaysSilent(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	// No account enumeration: unknown addresses get the same answer
	assert.NoError(t, svc.ForgotPassword(context.Background(), "nobody@example.com"))

	var count int64
	require.NoError(t, db.Model(&entity.PasswordResetToken{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestResetPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	user := seedLogin(t, db, "admin", "old-password")

	token := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	record := &entity.PasswordResetToken{
		Email:     user.Email,
		TokenHash: hashResetToken(token),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(record).Error)

	require.NoError(t, svc.ResetPassword(context.Background(), token, "new-password"))

	_, err := svc.Login(context.Background(), "admin", "new-password")
	assert.NoError(t, err)

	// Redeemed tokens cannot be replayed
	err = svc.ResetPassword(context.Background(), token, "another-password")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)
	user := seedLogin(t, db, "admin", "old-password")

	token := "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"
	record := &entity.PasswordResetToken{
		Email:     user.Email,
		TokenHash: hashResetToken(token),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, db.Create(record).Error)

	err := svc.ResetPassword(context.Background(), token, "new-password")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
