package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

type UpdateLeadUseCase struct {
	Leads entity.LeadRepository
	Board *Board
	Log   logger.Logger
}

func NewUpdateLeadUseCase(leads entity.LeadRepository, board *Board, log logger.Logger) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Leads: leads, Board: board, Log: log}
}

// Execute grava o registro completo do modal de edição.
func (uc *UpdateLeadUseCase) Execute(ctx context.Context, input UpdateLeadInput) (*entity.Lead, error) {
	if input.ID == "" {
		return nil, validationFailed([]ValidationError{{Field: "id", Message: "is required"}})
	}
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	fields := entity.LeadFields{
		Name:           strings.TrimSpace(input.Name),
		ContactHandle:  NormalizeContactHandle(input.ContactHandle),
		City:           strings.TrimSpace(input.City),
		Origin:         strings.TrimSpace(input.Origin),
		EngagementType: strings.TrimSpace(input.EngagementType),
		AgeRange:       strings.TrimSpace(input.AgeRange),
		Status:         input.Status,
	}

	err := uc.Leads.UpdateFields(ctx, input.ID, fields)
	if errors.Is(err, entity.ErrLeadNotFound) {
		return nil, &DomainError{Code: CodeLeadNotFound, Message: "lead não encontrado"}
	}
	if err != nil {
		return nil, storeError("Erro ao atualizar lead", err)
	}

	updated, err := uc.Leads.FindByID(ctx, input.ID)
	if err != nil {
		return nil, storeError("Erro ao recarregar lead", err)
	}
	if uc.Board != nil {
		uc.Board.ApplyRemote(*updated)
	}
	return updated, nil
}
