package usecase

import (
	"context"
	"sync"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

const inboxLimit = 20

// Inbox mantém as últimas notificações do sistema (globais, não por
// usuário) e repassa inserts em tempo real para os streams.
type Inbox struct {
	Repo entity.NotificationRepository
	Log  logger.Logger

	mu     sync.Mutex
	items  []entity.SystemNotification
	loaded bool
	events *Broadcaster[entity.SystemNotification]
}

func NewInbox(repo entity.NotificationRepository, log logger.Logger) *Inbox {
	return &Inbox{
		Repo:   repo,
		Log:    log,
		events: NewBroadcaster[entity.SystemNotification](32),
	}
}

func (in *Inbox) Events() *Broadcaster[entity.SystemNotification] { return in.events }

// List sempre relê do banco (20 mais recentes) e recalcula o não-lido.
func (in *Inbox) List(ctx context.Context) (InboxView, error) {
	items, err := in.Repo.ListRecent(ctx, inboxLimit)
	if err != nil {
		return InboxView{}, &TechnicalError{Code: CodeDatabase, Message: "erro ao buscar notificações", Err: err}
	}

	in.mu.Lock()
	in.items = items
	in.loaded = true
	view := in.viewLocked()
	in.mu.Unlock()
	return view, nil
}

// MarkAllRead é um único UPDATE; pulado quando não há nada não lido.
func (in *Inbox) MarkAllRead(ctx context.Context) (InboxView, error) {
	in.mu.Lock()
	loaded := in.loaded
	in.mu.Unlock()

	if !loaded {
		if _, err := in.List(ctx); err != nil {
			return InboxView{}, err
		}
	}

	in.mu.Lock()
	defer in.mu.Unlock()
	if unread(in.items) == 0 {
		return in.viewLocked(), nil
	}

	if err := in.Repo.MarkAllRead(ctx); err != nil {
		return InboxView{}, &TechnicalError{Code: CodeDatabase, Message: "erro ao marcar notificações como lidas", Err: err}
	}
	for i := range in.items {
		in.items[i].Read = true
	}
	return in.viewLocked(), nil
}

// Push recebe um insert do feed: entra no topo e vai para os streams.
func (in *Inbox) Push(n entity.SystemNotification) {
	in.mu.Lock()
	for _, existing := range in.items {
		if existing.ID == n.ID {
			in.mu.Unlock()
			return
		}
	}
	in.items = append([]entity.SystemNotification{n}, in.items...)
	if len(in.items) > inboxLimit {
		in.items = in.items[:inboxLimit]
	}
	in.mu.Unlock()

	in.events.Publish(n)
}

func (in *Inbox) viewLocked() InboxView {
	items := make([]entity.SystemNotification, len(in.items))
	copy(items, in.items)
	return InboxView{Notifications: items, UnreadCount: unread(items)}
}

func unread(items []entity.SystemNotification) int {
	n := 0
	for _, it := range items {
		if !it.Read {
			n++
		}
	}
	return n
}
