package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"revebot.backend/internal/domain/entities"
)

// Mock MerchantRepository
type MockMerchantRepository struct {
	mock.Mock
}

func (m *MockMerchantRepository) Create(ctx context.Context, merchant *entities.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockMerchantRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Merchant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) GetByDomain(ctx context.Context, domain string) (*entities.Merchant, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Merchant), args.Error(1)
}

func (m *MockMerchantRepository) Update(ctx context.Context, merchant *entities.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

func (m *MockMerchantRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.MerchantStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockMerchantRepository) UpdateAnalysedAt(ctx context.Context, id uuid.UUID, analysedAt time.Time) error {
	args := m.Called(ctx, id, analysedAt)
	return args.Error(0)
}

func (m *MockMerchantRepository) List(ctx context.Context) ([]*entities.Merchant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Merchant), args.Error(1)
}

// Mock TaskQueue
type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) Enqueue(ctx context.Context, queue, payload string) error {
	args := m.Called(ctx, queue, payload)
	return args.Error(0)
}

// Mock Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendMerchantRegistered(ctx context.Context, merchant *entities.Merchant) error {
	args := m.Called(ctx, merchant)
	return args.Error(0)
}

// Mock ChatWidgetRegistrar
type MockWidgetRegistrar struct {
	mock.Mock
}

func (m *MockWidgetRegistrar) Register(ctx context.Context, merchant *entities.Merchant, enabled, chatEnabled bool) error {
	args := m.Called(ctx, merchant, enabled, chatEnabled)
	return args.Error(0)
}
