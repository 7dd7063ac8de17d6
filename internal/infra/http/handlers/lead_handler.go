package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/infra/http/middleware"
	"github.com/xavierca1/sales-os/internal/logger"
	"github.com/xavierca1/sales-os/internal/usecase"
)

type LeadCreator interface {
	Execute(ctx context.Context, input usecase.CreateLeadInput) (*entity.Lead, error)
}

type LeadUpdater interface {
	Execute(ctx context.Context, input usecase.UpdateLeadInput) (*entity.Lead, error)
}

type LeadHandler struct {
	Create LeadCreator
	Update LeadUpdater
	Log    logger.Logger
}

func NewLeadHandler(create LeadCreator, update LeadUpdater, log logger.Logger) *LeadHandler {
	return &LeadHandler{Create: create, Update: update, Log: log}
}

// POST /leads
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var input usecase.CreateLeadInput
	if !decodeJSON(r, w, &input) {
		return
	}
	input.ActorID = userID

	lead, err := h.Create.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Log, "create_lead", err)
		return
	}

	middleware.RecordLeadCreated("manual")
	writeJSON(w, http.StatusCreated, lead)
}

// PUT /leads/{id}
func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "id é obrigatório")
		return
	}

	var input usecase.UpdateLeadInput
	if !decodeJSON(r, w, &input) {
		return
	}
	input.ID = entity.LeadID(id)

	lead, err := h.Update.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, h.Log, "update_lead", err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}
