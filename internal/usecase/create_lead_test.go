package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

var fixedNow = time.Date(2026, 2, 3, 14, 30, 0, 0, time.UTC)

func TestCreateLeadSuccess(t *testing.T) {
	leads := new(MockLeadRepository)
	vendors := new(MockVendorRepository)
	vendors.On("FindByID", mock.Anything, "u1").Return(&entity.Vendor{ID: "u1", DisplayName: "Ana"}, nil)
	leads.On("Create", mock.Anything, mock.AnythingOfType("*entity.Lead")).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Lead).ID = "101"
	}).Return(nil)

	uc := NewCreateLeadUseCase(leads, vendors, logger.Nop())
	uc.Now = func() time.Time { return fixedNow }

	lead, err := uc.Execute(context.Background(), CreateLeadInput{
		Name:          " Maria ",
		ContactHandle: "(11) 98765-4321",
		City:          "Campinas",
		ActorID:       "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.LeadID("101"), lead.ID)
	assert.Equal(t, "Maria", lead.Name)
	assert.Equal(t, "5511987654321", lead.ContactHandle)
	assert.Equal(t, entity.StatusNew, lead.Status)
	assert.Equal(t, "u1", lead.OwnerID)
	assert.Equal(t, "Ana", lead.OwnerName)
	assert.Equal(t, fixedNow, *lead.CreatedAt)
	assert.Equal(t, fixedNow, *lead.AssignmentTime)
}

func TestCreateLeadWithoutProfileIsUnassigned(t *testing.T) {
	leads := new(MockLeadRepository)
	vendors := new(MockVendorRepository)
	vendors.On("FindByID", mock.Anything, "u2").Return(nil, entity.ErrVendorNotFound)
	leads.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewCreateLeadUseCase(leads, vendors, logger.Nop())
	lead, err := uc.Execute(context.Background(), CreateLeadInput{Name: "Ana", ContactHandle: "ana.ig", ActorID: "u2"})
	require.NoError(t, err)

	assert.Equal(t, entity.OwnerUnassigned, lead.OwnerName)
	assert.Equal(t, "u2", lead.OwnerID)
	assert.Equal(t, "ana.ig", lead.ContactHandle)
}

func TestCreateLeadValidationSkipsStore(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := NewCreateLeadUseCase(leads, new(MockVendorRepository), logger.Nop())

	_, err := uc.Execute(context.Background(), CreateLeadInput{Name: "   ", ContactHandle: ""})
	require.Error(t, err)

	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeValidation, domainErr.Code)
	assert.Len(t, domainErr.Fields, 2)
	leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateLeadStoreError(t *testing.T) {
	leads := new(MockLeadRepository)
	leads.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert falhou"))

	uc := NewCreateLeadUseCase(leads, nil, logger.Nop())
	_, err := uc.Execute(context.Background(), CreateLeadInput{Name: "Ana", ContactHandle: "x"})

	assert.True(t, IsTechnicalError(err))
	assert.False(t, IsDomainError(err))
}

func TestIntakeLeadAwaitsAssignment(t *testing.T) {
	leads := new(MockLeadRepository)
	var saved *entity.Lead
	leads.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entity.Lead)
	}).Return(nil)

	uc := NewIntakeLeadUseCase(leads, logger.Nop())
	uc.Now = func() time.Time { return fixedNow }

	tracking := &entity.TrackingInfo{Source: "google", Campaign: "verao", GCLID: "abc"}
	_, err := uc.Execute(context.Background(), IntakeLeadInput{
		Name:          "Lead do Site",
		ContactHandle: "11 98765-4321",
		Origin:        "Google Ads",
		TrackingInfo:  tracking,
	})
	require.NoError(t, err)

	require.NotNil(t, saved)
	assert.Equal(t, entity.OwnerAwaitingAssignee, saved.OwnerName)
	assert.Empty(t, saved.OwnerID)
	assert.Equal(t, tracking, saved.TrackingInfo)
	assert.Equal(t, entity.StatusNew, saved.Status)
	assert.False(t, saved.CountsForRanking())
}

func TestIntakeLeadRequiresContact(t *testing.T) {
	leads := new(MockLeadRepository)
	uc := NewIntakeLeadUseCase(leads, logger.Nop())

	_, err := uc.Execute(context.Background(), IntakeLeadInput{Name: "Sem contato"})
	assert.True(t, IsDomainError(err))
	leads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
