package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/usecase"
)

type MockLeadCreator struct{ mock.Mock }

func (m *MockLeadCreator) Execute(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type MockLeadUpdater struct{ mock.Mock }

func (m *MockLeadUpdater) Execute(ctx context.Context, input usecase.UpdateLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

type MockBoardViewer struct{ mock.Mock }

func (m *MockBoardViewer) Execute(ctx context.Context, userID, query string) (usecase.BoardView, error) {
	args := m.Called(ctx, userID, query)
	return args.Get(0).(usecase.BoardView), args.Error(1)
}

type MockLeadMover struct{ mock.Mock }

func (m *MockLeadMover) Execute(ctx context.Context, input usecase.MoveLeadInput) (*usecase.MoveLeadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.MoveLeadOutput), args.Error(1)
}

type MockRanking struct{ mock.Mock }

func (m *MockRanking) Execute(ctx context.Context) ([]entity.VendorStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.VendorStat), args.Error(1)
}

type MockDashboard struct{ mock.Mock }

func (m *MockDashboard) Execute(ctx context.Context) (usecase.Dashboard, error) {
	args := m.Called(ctx)
	return args.Get(0).(usecase.Dashboard), args.Error(1)
}

type MockInbox struct{ mock.Mock }

func (m *MockInbox) List(ctx context.Context) (usecase.InboxView, error) {
	args := m.Called(ctx)
	return args.Get(0).(usecase.InboxView), args.Error(1)
}

func (m *MockInbox) MarkAllRead(ctx context.Context) (usecase.InboxView, error) {
	args := m.Called(ctx)
	return args.Get(0).(usecase.InboxView), args.Error(1)
}

type MockPreferences struct{ mock.Mock }

func (m *MockPreferences) Get(ctx context.Context, userID string) entity.Appearance {
	return m.Called(ctx, userID).Get(0).(entity.Appearance)
}

func (m *MockPreferences) Save(ctx context.Context, userID string, a entity.Appearance) (entity.Appearance, error) {
	args := m.Called(ctx, userID, a)
	return args.Get(0).(entity.Appearance), args.Error(1)
}

type MockProfile struct{ mock.Mock }

func (m *MockProfile) Get(ctx context.Context, userID string) (usecase.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(usecase.Profile), args.Error(1)
}

func (m *MockProfile) UpdateName(ctx context.Context, userID string, input usecase.UpdateProfileInput) (usecase.Profile, error) {
	args := m.Called(ctx, userID, input)
	return args.Get(0).(usecase.Profile), args.Error(1)
}

type MockIntakePublisher struct{ mock.Mock }

func (m *MockIntakePublisher) PublishIntake(ctx context.Context, input usecase.IntakeLeadInput, correlationID string) error {
	return m.Called(ctx, input, correlationID).Error(0)
}

type MockIntaker struct{ mock.Mock }

func (m *MockIntaker) Execute(ctx context.Context, input usecase.IntakeLeadInput) (*entity.Lead, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}
