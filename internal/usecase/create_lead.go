package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

type CreateLeadUseCase struct {
	Leads   entity.LeadRepository
	Vendors VendorFinder
	Log     logger.Logger
	Now     func() time.Time
}

func NewCreateLeadUseCase(leads entity.LeadRepository, vendors VendorFinder, log logger.Logger) *CreateLeadUseCase {
	return &CreateLeadUseCase{Leads: leads, Vendors: vendors, Log: log, Now: time.Now}
}

// Execute cria o lead manual. Validação falha antes de qualquer escrita.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*entity.Lead, error) {
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

	actor := resolveActor(ctx, uc.Vendors, input.ActorID, uc.Log)
	lead.OwnerID = actor.ID
	lead.OwnerName = actor.DisplayName
	if strings.TrimSpace(lead.OwnerName) == "" {
		lead.OwnerName = entity.OwnerUnassigned
	}

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, storeError("Erro ao criar lead", err)
	}

	uc.Log.Info("✅ lead criado", "lead_id", lead.ID, "owner", lead.OwnerName)
	return lead, nil
}
