package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

func TestUpdateLeadWritesFullRecord(t *testing.T) {
	b, repo := loadedBoard(t)
	fields := entity.LeadFields{
		Name:           "João Lima",
		ContactHandle:  "5511987654321",
		City:           "Santos",
		Origin:         "Indicação",
		EngagementType: "PME",
		AgeRange:       "30-39",
		Status:         entity.StatusLost,
	}
	repo.On("UpdateFields", mock.Anything, entity.LeadID("2"), fields).Return(nil)
	repo.On("FindByID", mock.Anything, entity.LeadID("2")).
		Return(&entity.Lead{ID: "2", Name: "João Lima", Status: entity.StatusLost, OwnerName: "Ana"}, nil)

	uc := NewUpdateLeadUseCase(repo, b, logger.Nop())
	lead, err := uc.Execute(context.Background(), UpdateLeadInput{
		ID:             "2",
		Name:           "João Lima",
		ContactHandle:  "(11) 98765-4321",
		City:           "Santos",
		Origin:         "Indicação",
		EngagementType: "PME",
		AgeRange:       "30-39",
		Status:         entity.StatusLost,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusLost, lead.Status)

	// lead perdido continua no working set, mas some das colunas
	l, ok := b.Find("2")
	require.True(t, ok)
	assert.Equal(t, entity.StatusLost, l.Status)
	repo.AssertExpectations(t)
}

func TestUpdateLeadValidation(t *testing.T) {
	repo := new(MockLeadRepository)
	uc := NewUpdateLeadUseCase(repo, nil, logger.Nop())

	_, err := uc.Execute(context.Background(), UpdateLeadInput{ID: "2", Name: "", Status: "ganho"})
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Len(t, domainErr.Fields, 2)

	_, err = uc.Execute(context.Background(), UpdateLeadInput{Name: "Ana"})
	require.ErrorAs(t, err, &domainErr)
	repo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateLeadNotFoundAndStoreError(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("UpdateFields", mock.Anything, entity.LeadID("404"), mock.Anything).Return(entity.ErrLeadNotFound)
	repo.On("UpdateFields", mock.Anything, entity.LeadID("500"), mock.Anything).Return(errors.New("deadlock"))
	uc := NewUpdateLeadUseCase(repo, nil, logger.Nop())

	_, err := uc.Execute(context.Background(), UpdateLeadInput{ID: "404", Name: "Ana"})
	var domainErr *DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, CodeLeadNotFound, domainErr.Code)

	_, err = uc.Execute(context.Background(), UpdateLeadInput{ID: "500", Name: "Ana"})
	assert.True(t, IsTechnicalError(err))
}
