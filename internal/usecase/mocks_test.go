package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/sales-os/internal/entity"
)

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id entity.LeadID) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Create(ctx context.Context, l *entity.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateStatus(ctx context.Context, id entity.LeadID, status entity.Status, ownership *entity.OwnershipDelta) error {
	args := m.Called(ctx, id, status, ownership)
	return args.Error(0)
}

func (m *MockLeadRepository) UpdateFields(ctx context.Context, id entity.LeadID, fields entity.LeadFields) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) List(ctx context.Context) ([]entity.Vendor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id string) (*entity.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Vendor), args.Error(1)
}

func (m *MockVendorRepository) UpsertDisplayName(ctx context.Context, id, displayName string) error {
	args := m.Called(ctx, id, displayName)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) ListRecent(ctx context.Context, limit int) ([]entity.SystemNotification, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.SystemNotification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishStatusChanged(ctx context.Context, evt entity.LeadStatusChanged) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockPublisher) PublishSale(ctx context.Context, evt entity.LeadSale) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

type MockPreferencesStore struct {
	mock.Mock
}

func (m *MockPreferencesStore) Get(ctx context.Context, userID string) (*entity.Appearance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Appearance), args.Error(1)
}

func (m *MockPreferencesStore) Save(ctx context.Context, userID string, a entity.Appearance) error {
	args := m.Called(ctx, userID, a)
	return args.Error(0)
}
