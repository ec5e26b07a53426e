package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"github.com/dukasmart/phoneshop-api/internal/domain/entity"
	"github.com/dukasmart/phoneshop-api/internal/domain/repository"
	"github.com/dukasmart/phoneshop-api/pkg/apperror"
	"github.com/dukasmart/phoneshop-api/pkg/email"
	"github.com/dukasmart/phoneshop-api/pkg/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const passwordResetTokenTTL = time.Hour

// AuthService handles staff sign-in and credential management
type AuthService struct {
	userRepo       repository.UserRepository
	resetTokenRepo repository.PasswordResetTokenRepository
	jwtManager     *utils.JWTManager
	emailService   *email.Service
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	resetTokenRepo repository.PasswordResetTokenRepository,
	jwtManager *utils.JWTManager,
	emailService *email.Service,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		resetTokenRepo: resetTokenRepo,
		jwtManager:     jwtManager,
		emailService:   emailService,
	}
}

// LoginResult represents a successful login
type LoginResult struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *entity.User `json:"user"`
}

// Login authenticates a staff member by username and password
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginResult, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, err
	}
	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		User:         user,
	}, nil
}

// GetProfile returns the signed-in user's profile
func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ChangePassword changes the signed-in user's password after verifying
// the current one
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// ForgotPassword issues a single-use reset token and emails it. The
// response never reveals whether the email exists.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	// Invalidate any outstanding tokens for this account first
	if err := s.resetTokenRepo.DeleteByEmail(ctx, emailAddr); err != nil {
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}
	record := &entity.PasswordResetToken{
		Email:     emailAddr,
		TokenHash: hashResetToken(token),
		ExpiresAt: time.Now().Add(passwordResetTokenTTL),
	}
	if err := s.resetTokenRepo.Create(ctx, record); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordResetEmail(emailAddr, token); err != nil {
		log.Printf("password reset email to %s failed: %v", emailAddr, err)
	}
	return nil
}

// ResetPassword redeems a reset token and sets a new password
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	tokenHash := hashResetToken(token)
	record, err := s.resetTokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		return err
	}
	if record == nil || !record.IsValid() {
		return apperror.NewBadRequestError("Reset token is invalid or has expired")
	}

	user, err := s.userRepo.GetByEmail(ctx, record.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewBadRequestError("Reset token is invalid or has expired")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.resetTokenRepo.MarkAsUsed(ctx, tokenHash)
}

func generateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
