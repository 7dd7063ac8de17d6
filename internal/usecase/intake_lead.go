package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

// IntakeLeadUseCase grava leads vindos de fora (formulários, anúncios).
// Eles entram sem dono, aguardando atribuição.
type IntakeLeadUseCase struct {
	Leads entity.LeadRepository
	Log   logger.Logger
	Now   func() time.Time
}

func NewIntakeLeadUseCase(leads entity.LeadRepository, log logger.Logger) *IntakeLeadUseCase {
	return &IntakeLeadUseCase{Leads: leads, Log: log, Now: time.Now}
}

func (uc *IntakeLeadUseCase) Execute(ctx context.Context, input IntakeLeadInput) (*entity.Lead, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	lead, err := entity.NewLead(strings.TrimSpace(input.Name), NormalizeContactHandle(input.ContactHandle), uc.Now())
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}
	lead.City = strings.TrimSpace(input.City)
	lead.Origin = strings.TrimSpace(input.Origin)
	lead.EngagementType = strings.TrimSpace(input.EngagementType)
	lead.AgeRange = strings.TrimSpace(input.AgeRange)
	lead.TrackingInfo = input.TrackingInfo
	lead.OwnerName = entity.OwnerAwaitingAssignee

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, storeError("Erro ao registrar lead", err)
	}

	uc.Log.Info("📥 lead recebido", "lead_id", lead.ID, "origin", lead.Origin)
	return lead, nil
}
