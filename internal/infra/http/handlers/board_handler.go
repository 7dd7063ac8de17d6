package handlers

import (
	"context"
	"net/http"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/infra/http/middleware"
	"github.com/xavierca1/sales-os/internal/logger"
	"github.com/xavierca1/sales-os/internal/usecase"
)

type BoardViewer interface {
	Execute(ctx context.Context, userID, query string) (usecase.BoardView, error)
}

type LeadMover interface {
	Execute(ctx context.Context, input usecase.MoveLeadInput) (*usecase.MoveLeadOutput, error)
}

type BoardHandler struct {
	View   BoardViewer
	Move   LeadMover
	Events *usecase.Broadcaster[usecase.BoardEvent]
	Log    logger.Logger
}

func NewBoardHandler(view BoardViewer, move LeadMover, events *usecase.Broadcaster[usecase.BoardEvent], log logger.Logger) *BoardHandler {
	return &BoardHandler{View: view, Move: move, Events: events, Log: log}
}

// GET /board?q=
func (h *BoardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	view, err := h.View.Execute(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		writeUseCaseError(w, h.Log, "list_leads", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// POST /board/move
func (h *BoardHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var move entity.Move
	if !decodeJSON(r, w, &move) {
		return
	}

	out, err := h.Move.Execute(r.Context(), usecase.MoveLeadInput{Move: move, ActorID: userID})
	if err != nil {
		writeUseCaseError(w, h.Log, "update_status", err)
		return
	}

	if out.Changed && out.From != out.To {
		from, _ := entity.Classify(entity.Lead{Status: out.From})
		to, _ := entity.Classify(entity.Lead{Status: out.To})
		middleware.RecordLeadTransition(from, to)
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /board/stream
func (h *BoardHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	stream(w, r, h.Events, func(e usecase.BoardEvent) string { return string(e.Type) })
}
