package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"blood-connect/internal/domain"
	"blood-connect/internal/service/auth"
	"blood-connect/internal/service/media"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	args := m.Called(ctx, toEmail, name)
	return args.Error(0)
}

func (m *EmailService) SendPatientConfirmation(ctx context.Context, toEmail, name, eventInterest, session, timeSlot string) error {
	args := m.Called(ctx, toEmail, name, eventInterest, session, timeSlot)
	return args.Error(0)
}

type MediaService struct {
	mock.Mock
}

func (m *MediaService) UploadAvatar(ctx context.Context, file *media.File) (string, error) {
	args := m.Called(ctx, file)
	return args.String(0), args.Error(1)
}

func (m *MediaService) DeleteAvatar(ctx context.Context, publicURL string) error {
	args := m.Called(ctx, publicURL)
	return args.Error(0)
}

type AlertService struct {
	mock.Mock
}

func (m *AlertService) List(ctx context.Context, filter domain.AlertFilter) ([]domain.Alert, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Alert), args.Error(1)
}

func (m *AlertService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AlertService) MarkAsRead(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Alert), args.Error(1)
}

func (m *AlertService) MarkAllAsRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *AlertService) NotifyNewRequest(ctx context.Context, req *domain.BloodRequest) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

func (m *AlertService) NotifyAccepted(ctx context.Context, req *domain.BloodRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type AuthService struct {
	mock.Mock
}

func (m *AuthService) Register(ctx context.Context, input domain.RegisterUserInput) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	return userOrNil(args.Get(0)), tokensOrNil(args.Get(1)), args.Error(2)
}

func (m *AuthService) Login(ctx context.Context, input domain.LoginInput) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	return userOrNil(args.Get(0)), tokensOrNil(args.Get(1)), args.Error(2)
}

func (m *AuthService) GoogleAuth(ctx context.Context, input domain.GoogleAuthInput) (*domain.User, *domain.TokenPair, error) {
	args := m.Called(ctx, input)
	return userOrNil(args.Get(0)), tokensOrNil(args.Get(1)), args.Error(2)
}

func (m *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return tokensOrNil(args.Get(0)), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func (m *AuthService) ValidateAccessToken(token string) (*auth.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *AuthService) UpdateProfile(ctx context.Context, id uuid.UUID, input domain.UpdateProfileInput) (*domain.User, error) {
	args := m.Called(ctx, id, input)
	return userOrNil(args.Get(0)), args.Error(1)
}

func tokensOrNil(v interface{}) *domain.TokenPair {
	if v == nil {
		return nil
	}
	return v.(*domain.TokenPair)
}
