package usecase

import (
	"context"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

const (
	TableLeads         = "leads"
	TableNotifications = "system_notifications"
)

// FeedSync aplica os eventos do change feed no Board e no Inbox.
type FeedSync struct {
	Board *Board
	Inbox *Inbox
	Log   logger.Logger
}

func NewFeedSync(board *Board, inbox *Inbox, log logger.Logger) *FeedSync {
	return &FeedSync{Board: board, Inbox: inbox, Log: log.With("component", "feed_sync")}
}

// Run consome até o canal fechar ou o contexto cancelar.
func (s *FeedSync) Run(ctx context.Context, events <-chan entity.ChangeEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			s.Handle(ctx, evt)
		}
	}
}

func (s *FeedSync) Handle(ctx context.Context, evt entity.ChangeEvent) {
	if evt.Type == entity.ChangeResync {
		s.Log.Info("🔄 feed reconectado, recarregando board")
		if err := s.Board.Refetch(ctx); err != nil {
			s.Log.Error("❌ erro no refetch após reconexão", "error", err)
		}
		if s.Inbox != nil {
			if _, err := s.Inbox.List(ctx); err != nil {
				s.Log.Error("❌ erro ao recarregar notificações", "error", err)
			}
		}
		return
	}

	switch evt.Table {
	case TableLeads:
		s.handleLead(evt)
	case TableNotifications:
		s.handleNotification(evt)
	}
}

func (s *FeedSync) handleLead(evt entity.ChangeEvent) {
	var lead entity.Lead
	if err := evt.Decode(&lead); err != nil {
		s.Log.Warn("⚠️ evento de lead inválido", "type", evt.Type, "error", err)
		return
	}

	switch evt.Type {
	case entity.ChangeInsert:
		if s.Board.MergeInsert(lead) {
			s.Log.Info("🔔 Novo Lead na Mesa!", "lead_id", lead.ID, "name", lead.Name)
		}
	case entity.ChangeUpdate:
		s.Board.ApplyRemote(lead)
	}
}

func (s *FeedSync) handleNotification(evt entity.ChangeEvent) {
	if evt.Type != entity.ChangeInsert || s.Inbox == nil {
		return
	}
	var n entity.SystemNotification
	if err := evt.Decode(&n); err != nil {
		s.Log.Warn("⚠️ notificação inválida no feed", "error", err)
		return
	}
	s.Inbox.Push(n)
}
