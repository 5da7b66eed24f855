package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"estate-hub/internal/dto"
	"estate-hub/internal/models"
	"estate-hub/pkg/auth"
	"estate-hub/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserStore struct {
	byEmail map[string]*models.User
	byID    map[uuid.UUID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: make(map[string]*models.User),
		byID:    make(map[uuid.UUID]*models.User),
	}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, errors.New("no rows")
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, errors.New("no rows")
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error {
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	if u, ok := f.byID[id]; ok {
		u.Password = hash
	}
	return nil
}

type fakeOTPStore struct {
	otps map[string]*models.OTP
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{otps: make(map[string]*models.OTP)}
}

func (f *fakeOTPStore) Upsert(_ context.Context, email, code string) error {
	f.otps[email] = &models.OTP{Email: email, Code: code, CreatedAt: time.Now()}
	return nil
}

func (f *fakeOTPStore) Get(_ context.Context, email string) (*models.OTP, error) {
	if o, ok := f.otps[email]; ok {
		return o, nil
	}
	return nil, errors.New("no rows")
}

func (f *fakeOTPStore) Delete(_ context.Context, email string) error {
	delete(f.otps, email)
	return nil
}

func (f *fakeOTPStore) IncrementAttempts(_ context.Context, email string) error {
	if o, ok := f.otps[email]; ok {
		o.Attempts++
	}
	return nil
}

type recordingMailer struct {
	sent []string
}

func (r *recordingMailer) Send(_ context.Context, to, subject, _, _ string) error {
	r.sent = append(r.sent, to+": "+subject)
	return nil
}

func newAuthService(users *fakeUserStore, otps *fakeOTPStore, mail *recordingMailer) *AuthService {
	logger := zap.NewNop()
	return NewAuthService(
		users,
		otps,
		NewEmailService(mail, logger),
		auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour),
		config.OTPConfig{TTL: 5 * time.Minute, MaxAttempts: 5},
		logger,
	)
}

func TestRequestOTP_NewEmail(t *testing.T) {
	users := newFakeUserStore()
	otps := newFakeOTPStore()
	mail := &recordingMailer{}
	svc := newAuthService(users, otps, mail)

	err := svc.RequestOTP(context.Background(), "New@Example.com")
	require.NoError(t, err)

	otp, err := otps.Get(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Len(t, otp.Code, 6)
	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0], "new@example.com")
}

func TestRequestOTP_RegisteredEmail(t *testing.T) {
	users := newFakeUserStore()
	_ = users.Create(context.Background(), &models.User{ID: uuid.New(), Email: "taken@example.com"})
	svc := newAuthService(users, newFakeOTPStore(), &recordingMailer{})

	err := svc.RequestOTP(context.Background(), "taken@example.com")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestSignup_Flow(t *testing.T) {
	users := newFakeUserStore()
	otps := newFakeOTPStore()
	svc := newAuthService(users, otps, &recordingMailer{})
	ctx := context.Background()

	require.NoError(t, otps.Upsert(ctx, "alice@example.com", "123456"))

	resp, err := svc.Signup(ctx, &dto.SignupRequest{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "secret12",
		OTP:      "123456",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "user", resp.User.Role)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	// The code is consumed.
	_, err = otps.Get(ctx, "alice@example.com")
	assert.Error(t, err)

	// And login works with the chosen password.
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "secret12"})
	assert.NoError(t, err)
}

func TestSignup_OTPValidation(t *testing.T) {
	ctx := context.Background()

	signup := func(otps *fakeOTPStore) error {
		svc := newAuthService(newFakeUserStore(), otps, &recordingMailer{})
		_, err := svc.Signup(ctx, &dto.SignupRequest{
			Name: "Bob", Email: "bob@example.com", Password: "secret12", OTP: "123456",
		})
		return err
	}

	t.Run("missing", func(t *testing.T) {
		assert.ErrorIs(t, signup(newFakeOTPStore()), ErrOTPNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		otps := newFakeOTPStore()
		otps.otps["bob@example.com"] = &models.OTP{
			Email: "bob@example.com", Code: "123456",
			CreatedAt: time.Now().Add(-10 * time.Minute),
		}
		assert.ErrorIs(t, signup(otps), ErrOTPExpired)
		_, err := otps.Get(ctx, "bob@example.com")
		assert.Error(t, err, "expired code must be removed")
	})

	t.Run("wrong code increments attempts", func(t *testing.T) {
		otps := newFakeOTPStore()
		require.NoError(t, otps.Upsert(ctx, "bob@example.com", "654321"))
		assert.ErrorIs(t, signup(otps), ErrInvalidOTP)
		assert.Equal(t, 1, otps.otps["bob@example.com"].Attempts)
	})

	t.Run("attempt limit", func(t *testing.T) {
		otps := newFakeOTPStore()
		require.NoError(t, otps.Upsert(ctx, "bob@example.com", "123456"))
		otps.otps["bob@example.com"].Attempts = 5
		assert.ErrorIs(t, signup(otps), ErrTooManyAttempts)
	})
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newFakeUserStore()
	hash, err := auth.HashPassword("right-password")
	require.NoError(t, err)
	_ = users.Create(context.Background(), &models.User{
		ID: uuid.New(), Email: "carol@example.com", Password: hash,
	})

	svc := newAuthService(users, newFakeOTPStore(), &recordingMailer{})
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email: "carol@example.com", Password: "wrong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	users := newFakeUserStore()
	hash, err := auth.HashPassword("old-password")
	require.NoError(t, err)
	userID := uuid.New()
	_ = users.Create(context.Background(), &models.User{
		ID: userID, Email: "dave@example.com", Password: hash,
	})

	svc := newAuthService(users, newFakeOTPStore(), &recordingMailer{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.ChangePassword(ctx, userID, "bad-guess", "new-password"), ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, userID, "old-password", "new-password"))
	assert.True(t, auth.CheckPasswordHash("new-password", users.byID[userID].Password))
}

func TestResetPassword_Flow(t *testing.T) {
	users := newFakeUserStore()
	otps := newFakeOTPStore()
	svc := newAuthService(users, otps, &recordingMailer{})
	ctx := context.Background()

	hash, err := auth.HashPassword("forgotten")
	require.NoError(t, err)
	userID := uuid.New()
	_ = users.Create(ctx, &models.User{ID: userID, Email: "erin@example.com", Password: hash})

	require.NoError(t, svc.ForgotPassword(ctx, "erin@example.com"))
	code := otps.otps["erin@example.com"].Code

	require.NoError(t, svc.ResetPassword(ctx, &dto.ResetPasswordRequest{
		Email: "erin@example.com", OTP: code, NewPassword: "brand-new",
	}))
	assert.True(t, auth.CheckPasswordHash("brand-new", users.byID[userID].Password))
}

func TestForgotPassword_UnknownEmail(t *testing.T) {
	svc := newAuthService(newFakeUserStore(), newFakeOTPStore(), &recordingMailer{})
	err := svc.ForgotPassword(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
