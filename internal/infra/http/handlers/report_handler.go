package handlers

import (
	"context"
	"net/http"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
	"github.com/xavierca1/sales-os/internal/usecase"
)

type RankingReader interface {
	Execute(ctx context.Context) ([]entity.VendorStat, error)
}

type DashboardReader interface {
	Execute(ctx context.Context) (usecase.Dashboard, error)
}

type ReportHandler struct {
	Ranking   RankingReader
	Dashboard DashboardReader
	Log       logger.Logger
}

func NewReportHandler(ranking RankingReader, dashboard DashboardReader, log logger.Logger) *ReportHandler {
	return &ReportHandler{Ranking: ranking, Dashboard: dashboard, Log: log}
}

// GET /ranking
func (h *ReportHandler) HandleRanking(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Ranking.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Log, "ranking", err)
		return
	}
	if stats == nil {
		stats = []entity.VendorStat{}
	}
	writeJSON(w, http.StatusOK, stats)
}

// GET /dashboard
func (h *ReportHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Dashboard.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, h.Log, "dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
