package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

const (
	minReconnect = 10 * time.Second
	maxReconnect = time.Minute
	pingInterval = 90 * time.Second
	subBuffer    = 64
)

// notifier é o pedaço do *pq.Listener que o Feed usa.
type notifier interface {
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// Feed escuta o canal do pg_notify e entrega ChangeEvents para as
// assinaturas filtradas por tabela e tipo.
type Feed struct {
	listener notifier
	log      logger.Logger

	mu   sync.RWMutex
	subs map[uint64]*Subscription
	next uint64
}

func NewFeed(dsn, channel string, log logger.Logger) (*Feed, error) {
	log = log.With("component", "realtime", "channel", channel)

	listener := pq.NewListener(dsn, minReconnect, maxReconnect, func(ev pq.ListenerEventType, err error) {
		switch ev {
		case pq.ListenerEventConnected:
			log.Info("✅ realtime conectado")
		case pq.ListenerEventDisconnected:
			log.Warn("⚠️ realtime desconectado", "error", err)
		case pq.ListenerEventReconnected:
			log.Info("🔄 realtime reconectado")
		case pq.ListenerEventConnectionAttemptFailed:
			log.Error("❌ falha ao reconectar realtime", "error", err)
		}
	})

	if err := listener.Listen(channel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("falha ao escutar canal %s: %w", channel, err)
	}
	return newFeed(listener, log), nil
}

func newFeed(n notifier, log logger.Logger) *Feed {
	return &Feed{listener: n, log: log, subs: make(map[uint64]*Subscription)}
}

// Run bloqueia até o contexto cancelar. Notificação nil = reconexão:
// eventos podem ter sido perdidos e todos recebem RESYNC.
func (f *Feed) Run(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	defer f.closeAll()

	for {
		select {
		case <-ctx.Done():
			f.listener.Close()
			return
		case n, ok := <-f.listener.NotificationChannel():
			if !ok {
				return
			}
			if n == nil {
				f.dispatch(entity.ChangeEvent{Type: entity.ChangeResync})
				continue
			}
			var evt entity.ChangeEvent
			if err := json.Unmarshal([]byte(n.Extra), &evt); err != nil {
				f.log.Warn("⚠️ payload de notificação inválido", "error", err)
				continue
			}
			f.dispatch(evt)
		case <-ticker.C:
			go func() {
				if err := f.listener.Ping(); err != nil {
					f.log.Warn("⚠️ ping do realtime falhou", "error", err)
				}
			}()
		}
	}
}

// Subscribe sem tipos recebe todos os tipos da tabela. Tabela vazia
// recebe todas as tabelas. RESYNC chega para todo mundo.
func (f *Feed) Subscribe(table string, types ...entity.ChangeType) *Subscription {
	s := &Subscription{
		table:  table,
		types:  make(map[entity.ChangeType]struct{}, len(types)),
		events: make(chan entity.ChangeEvent, subBuffer),
		feed:   f,
	}
	for _, t := range types {
		s.types[t] = struct{}{}
	}

	f.mu.Lock()
	s.id = f.next
	f.next++
	f.subs[s.id] = s
	f.mu.Unlock()
	return s
}

func (f *Feed) dispatch(evt entity.ChangeEvent) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, s := range f.subs {
		if !s.matches(evt) {
			continue
		}
		select {
		case s.events <- evt:
		default:
			f.log.Warn("⚠️ assinante lento, evento descartado", "table", evt.Table, "type", evt.Type)
		}
	}
}

func (f *Feed) remove(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.subs[id]; ok {
		delete(f.subs, id)
		close(s.events)
	}
}

func (f *Feed) closeAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, s := range f.subs {
		delete(f.subs, id)
		close(s.events)
	}
}

type Subscription struct {
	id     uint64
	table  string
	types  map[entity.ChangeType]struct{}
	events chan entity.ChangeEvent
	feed   *Feed
	once   sync.Once
}

func (s *Subscription) Events() <-chan entity.ChangeEvent { return s.events }

// Close cancela a assinatura e fecha o canal.
func (s *Subscription) Close() {
	s.once.Do(func() { s.feed.remove(s.id) })
}

func (s *Subscription) matches(evt entity.ChangeEvent) bool {
	if evt.Type == entity.ChangeResync {
		return true
	}
	if s.table != "" && s.table != evt.Table {
		return false
	}
	if len(s.types) == 0 {
		return true
	}
	_, ok := s.types[evt.Type]
	return ok
}
