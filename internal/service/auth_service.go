package service

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"

	"estate-hub/internal/dto"
	"estate-hub/internal/models"
	"estate-hub/pkg/auth"
	"estate-hub/pkg/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type otpStore interface {
	Upsert(ctx context.Context, email, code string) error
	Get(ctx context.Context, email string) (*models.OTP, error)
	Delete(ctx context.Context, email string) error
	IncrementAttempts(ctx context.Context, email string) error
}

type AuthService struct {
	users      userStore
	otps       otpStore
	email      *EmailService
	jwtManager *auth.JWTManager
	otpCfg     config.OTPConfig
	logger     *zap.Logger
}

func NewAuthService(
	users userStore,
	otps otpStore,
	email *EmailService,
	jwtManager *auth.JWTManager,
	otpCfg config.OTPConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		otps:       otps,
		email:      email,
		jwtManager: jwtManager,
		otpCfg:     otpCfg,
		logger:     logger,
	}
}

// RequestOTP mails a signup code to an address that is not yet registered.
func (s *AuthService) RequestOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	existing, _ := s.users.GetByEmail(ctx, email)
	if existing != nil {
		return ErrUserExists
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	if err := s.otps.Upsert(ctx, email, code); err != nil {
		return err
	}

	if err := s.email.SendSignupOTP(ctx, email, code); err != nil {
		return err
	}

	s.logger.Info("Signup OTP sent", zap.String("email", email))
	return nil
}

// Signup verifies the OTP and registers the user.
func (s *AuthService) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	existing, _ := s.users.GetByEmail(ctx, email)
	if existing != nil {
		return nil, ErrUserExists
	}

	if err := s.verifyOTP(ctx, email, req.OTP); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     email,
		Password:  hashedPassword,
		Role:      models.UserRoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// The code is single-use.
	if err := s.otps.Delete(ctx, email); err != nil {
		s.logger.Warn("Failed to delete used OTP", zap.String("email", email), zap.Error(err))
	}

	return s.buildAuthResponse(user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthResponse(user)
}

func (s *AuthService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != "" {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !auth.CheckPasswordHash(currentPassword, user.Password) {
		return ErrInvalidCredentials
	}

	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, userID, hashedPassword)
}

// ForgotPassword mails a reset code to a registered address.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		return ErrUserNotFound
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	if err := s.otps.Upsert(ctx, email, code); err != nil {
		return err
	}

	return s.email.SendResetOTP(ctx, email, code)
}

func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	email := normalizeEmail(req.Email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}

	if err := s.verifyOTP(ctx, email, req.OTP); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	if err := s.otps.Delete(ctx, email); err != nil {
		s.logger.Warn("Failed to delete used OTP", zap.String("email", email), zap.Error(err))
	}

	return nil
}

func (s *AuthService) verifyOTP(ctx context.Context, email, code string) error {
	otp, err := s.otps.Get(ctx, email)
	if err != nil {
		return ErrOTPNotFound
	}

	if time.Since(otp.CreatedAt) > s.otpCfg.TTL {
		_ = s.otps.Delete(ctx, email)
		return ErrOTPExpired
	}

	if s.otpCfg.MaxAttempts > 0 && otp.Attempts >= s.otpCfg.MaxAttempts {
		_ = s.otps.Delete(ctx, email)
		return ErrTooManyAttempts
	}

	if otp.Code != code {
		_ = s.otps.IncrementAttempts(ctx, email)
		return ErrInvalidOTP
	}

	return nil
}

func (s *AuthService) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID.String(), user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User:         toUserResponse(user),
	}, nil
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:          user.ID.String(),
		Name:        user.Name,
		Email:       user.Email,
		Role:        string(user.Role),
		Avatar:      user.Avatar,
		PhoneNumber: user.PhoneNumber,
		Gender:      user.Gender,
		Address:     user.Address,
		Bio:         user.Bio,
		CreatedAt:   user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   user.UpdatedAt.Format(time.RFC3339),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// generateOTP returns a random 6-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+100000, 10), nil
}
