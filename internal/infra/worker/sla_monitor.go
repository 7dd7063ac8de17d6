package worker

import (
	"context"
	"time"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

// Snapshotter devolve o working set atual do board.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]entity.Lead, error)
}

// UrgencyRecorder recebe a contagem de leads novos por tier.
type UrgencyRecorder func(tier entity.UrgencyTier, count int)

type SLAMonitor struct {
	board        Snapshotter
	record       UrgencyRecorder
	log          logger.Logger
	tickInterval time.Duration
	now          func() time.Time
}

func NewSLAMonitor(board Snapshotter, record UrgencyRecorder, tick time.Duration, log logger.Logger) *SLAMonitor {
	if tick <= 0 {
		tick = time.Minute
	}
	return &SLAMonitor{
		board:        board,
		record:       record,
		log:          log.With("component", "sla_monitor"),
		tickInterval: tick,
		now:          time.Now,
	}
}

func (m *SLAMonitor) Start(ctx context.Context) {
	m.log.Info("🕒 SLA Monitor iniciado", "tick", m.tickInterval.String())

	ticker := time.NewTicker(m.tickInterval)
	defer ticker.Stop()

	m.check(ctx)

	for {
		select {
		case <-ctx.Done():
			m.log.Info("⚠️ SLA Monitor encerrado")
			return
		case <-ticker.C:
			m.check(ctx)
		}
	}
}

// CountByUrgency conta só os leads da coluna "new"; os demais não têm SLA.
func CountByUrgency(leads []entity.Lead, now time.Time) map[entity.UrgencyTier]int {
	counts := make(map[entity.UrgencyTier]int, len(entity.UrgencyTiers))
	for _, tier := range entity.UrgencyTiers {
		counts[tier] = 0
	}
	for _, l := range leads {
		if stage, ok := entity.Classify(l); !ok || stage != entity.StageNew {
			continue
		}
		if tier, ok := entity.ClassifyUrgency(l.CreatedAt, now); ok {
			counts[tier]++
		}
	}
	return counts
}

func (m *SLAMonitor) check(ctx context.Context) {
	leads, err := m.board.Snapshot(ctx)
	if err != nil {
		m.log.Error("❌ Erro ao carregar board para SLA", "error", err)
		return
	}

	counts := CountByUrgency(leads, m.now())
	for tier, n := range counts {
		if m.record != nil {
			m.record(tier, n)
		}
	}

	if late := counts[entity.UrgencyLate]; late > 0 {
		m.log.Warn("⏱️ Leads novos aguardando há mais de 1h", "count", late)
	}
}
