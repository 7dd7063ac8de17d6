package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

type BoardEventType string

const (
	BoardLeadUpdated  BoardEventType = "lead_updated"
	BoardLeadInserted BoardEventType = "lead_inserted"
	BoardResynced     BoardEventType = "resync"
)

type BoardEvent struct {
	Type BoardEventType `json:"type"`
	Lead *entity.Lead   `json:"lead,omitempty"`
}

// FilterLeads faz busca case-insensitive por nome OU cidade.
// Query em branco devolve a entrada sem mudança.
func FilterLeads(leads []entity.Lead, query string) []entity.Lead {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return leads
	}

	out := make([]entity.Lead, 0, len(leads))
	for _, l := range leads {
		if strings.Contains(strings.ToLower(l.Name), q) || strings.Contains(strings.ToLower(l.City), q) {
			out = append(out, l)
		}
	}
	return out
}

// ApplyOptimistic devolve uma cópia com o status do lead trocado para a
// coluna de destino. Id desconhecido = cópia sem mudança.
func ApplyOptimistic(leads []entity.Lead, id entity.LeadID, to entity.Stage) []entity.Lead {
	out := make([]entity.Lead, len(leads))
	copy(out, leads)
	for i := range out {
		if out[i].ID == id {
			out[i].Status = to.Status()
		}
	}
	return out
}

type pendingWrite struct {
	leadID entity.LeadID
}

// Board é o working set compartilhado do kanban. Escritas otimistas ficam
// registradas por opID até Confirm ou Fail; enquanto houver escrita
// pendente para um lead, UPDATEs remotos desse lead ficam guardados
// (só o último) e são reaplicados no Confirm.
type Board struct {
	mu       sync.RWMutex
	leads    []entity.Lead
	pending  map[string]pendingWrite
	inWrite  map[entity.LeadID]int
	deferred map[entity.LeadID]entity.Lead
	loaded   bool

	store  LeadLister
	events *Broadcaster[BoardEvent]
	log    logger.Logger
}

func NewBoard(store LeadLister, log logger.Logger) *Board {
	return &Board{
		pending:  make(map[string]pendingWrite),
		inWrite:  make(map[entity.LeadID]int),
		deferred: make(map[entity.LeadID]entity.Lead),
		store:    store,
		events:   NewBroadcaster[BoardEvent](64),
		log:      log.With("component", "board"),
	}
}

func (b *Board) Events() *Broadcaster[BoardEvent] { return b.events }

// Refetch recarrega tudo do store. Não há rollback campo a campo.
func (b *Board) Refetch(ctx context.Context) error {
	leads, err := b.store.List(ctx)
	if err != nil {
		return fmt.Errorf("erro ao recarregar leads: %w", err)
	}

	b.mu.Lock()
	b.leads = leads
	b.loaded = true
	for id := range b.deferred {
		if b.inWrite[id] == 0 {
			delete(b.deferred, id)
		}
	}
	b.mu.Unlock()

	b.log.Debug("🔄 board recarregado", "leads", len(leads))
	b.events.Publish(BoardEvent{Type: BoardResynced})
	return nil
}

// Snapshot carrega na primeira chamada e devolve uma cópia.
func (b *Board) Snapshot(ctx context.Context) ([]entity.Lead, error) {
	b.mu.RLock()
	loaded := b.loaded
	b.mu.RUnlock()

	if !loaded {
		if err := b.Refetch(ctx); err != nil {
			return nil, err
		}
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]entity.Lead, len(b.leads))
	copy(out, b.leads)
	return out, nil
}

func (b *Board) Find(id entity.LeadID) (entity.Lead, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.indexOf(id)
	if i < 0 {
		return entity.Lead{}, false
	}
	return b.leads[i], true
}

// ApplyOptimistic move o card na hora e registra a escrita pendente.
// Devolve o opID usado em Confirm/Fail.
func (b *Board) ApplyOptimistic(id entity.LeadID, to entity.Stage, ownership *entity.OwnershipDelta) string {
	opID := uuid.NewString()

	b.mu.Lock()
	b.leads = ApplyOptimistic(b.leads, id, to)
	var updated *entity.Lead
	if i := b.indexOf(id); i >= 0 {
		if ownership != nil {
			b.leads[i].OwnerID = ownership.OwnerID
			b.leads[i].OwnerName = ownership.OwnerName
		}
		l := b.leads[i]
		updated = &l
	}
	b.pending[opID] = pendingWrite{leadID: id}
	b.inWrite[id]++
	b.mu.Unlock()

	if updated != nil {
		b.events.Publish(BoardEvent{Type: BoardLeadUpdated, Lead: updated})
	}
	return opID
}

// Confirm troca o lead pelo registro confirmado e fecha a escrita. Se
// chegou UPDATE remoto durante a escrita, os campos do cadastro vêm dele;
// status e dono vêm sempre do registro confirmado.
func (b *Board) Confirm(opID string, lead entity.Lead) {
	b.mu.Lock()
	if !b.finish(opID) {
		b.mu.Unlock()
		return
	}
	if remote, ok := b.deferred[lead.ID]; ok && b.inWrite[lead.ID] == 0 {
		delete(b.deferred, lead.ID)
		lead = mergeRemote(remote, lead)
	}
	if i := b.indexOf(lead.ID); i >= 0 {
		if lead.OwnerAvatar == "" && lead.OwnerName == b.leads[i].OwnerName {
			lead.OwnerAvatar = b.leads[i].OwnerAvatar
		}
		b.leads[i] = lead
	} else if _, ok := entity.Classify(lead); ok {
		b.leads = append([]entity.Lead{lead}, b.leads...)
	}
	b.mu.Unlock()

	b.events.Publish(BoardEvent{Type: BoardLeadUpdated, Lead: &lead})
}

// Fail só descarta a escrita; quem chamou faz o Refetch, que já traz
// qualquer UPDATE remoto guardado.
func (b *Board) Fail(opID string) {
	b.mu.Lock()
	if w, ok := b.pending[opID]; ok && b.finish(opID) && b.inWrite[w.leadID] == 0 {
		delete(b.deferred, w.leadID)
	}
	b.mu.Unlock()
}

func (b *Board) Pending() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.pending)
}

// MergeInsert adiciona um lead recém-criado no topo, sem duplicar.
func (b *Board) MergeInsert(lead entity.Lead) bool {
	lead.Status = entity.StatusNew

	b.mu.Lock()
	if b.indexOf(lead.ID) >= 0 {
		b.mu.Unlock()
		return false
	}
	b.leads = append([]entity.Lead{lead}, b.leads...)
	b.mu.Unlock()

	b.events.Publish(BoardEvent{Type: BoardLeadInserted, Lead: &lead})
	return true
}

// ApplyRemote aplica um UPDATE vindo do feed. Com escrita local pendente
// para o lead, o registro fica guardado para o Confirm e devolve false.
func (b *Board) ApplyRemote(lead entity.Lead) bool {
	b.mu.Lock()
	if b.inWrite[lead.ID] > 0 {
		b.deferred[lead.ID] = lead
		b.mu.Unlock()
		b.log.Debug("⏸️ update remoto adiado (escrita pendente)", "lead_id", lead.ID)
		return false
	}

	i := b.indexOf(lead.ID)
	_, visible := entity.Classify(lead)
	switch {
	case i >= 0:
		if lead.OwnerAvatar == "" && lead.OwnerName == b.leads[i].OwnerName {
			lead.OwnerAvatar = b.leads[i].OwnerAvatar
		}
		b.leads[i] = lead
	case visible:
		b.leads = append([]entity.Lead{lead}, b.leads...)
	default:
		b.mu.Unlock()
		return false
	}
	b.mu.Unlock()

	b.events.Publish(BoardEvent{Type: BoardLeadUpdated, Lead: &lead})
	return true
}

func (b *Board) finish(opID string) bool {
	w, ok := b.pending[opID]
	if !ok {
		return false
	}
	delete(b.pending, opID)
	if b.inWrite[w.leadID]--; b.inWrite[w.leadID] <= 0 {
		delete(b.inWrite, w.leadID)
	}
	return true
}

// mergeRemote mantém o cadastro do UPDATE remoto e o status/dono que a
// escrita local acabou de gravar.
func mergeRemote(remote, confirmed entity.Lead) entity.Lead {
	if remote.OwnerAvatar == "" || remote.OwnerName != confirmed.OwnerName {
		remote.OwnerAvatar = confirmed.OwnerAvatar
	}
	remote.Status = confirmed.Status
	remote.OwnerID = confirmed.OwnerID
	remote.OwnerName = confirmed.OwnerName
	return remote
}

func (b *Board) indexOf(id entity.LeadID) int {
	for i := range b.leads {
		if b.leads[i].ID == id {
			return i
		}
	}
	return -1
}
