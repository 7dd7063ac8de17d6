package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

const saleCelebrationTitle = "VENDA REALIZADA! 🏆"

var motivationalPhrases = []string{
	"Você é uma máquina de vendas! 🚀",
	"O ranking que se cuide, você está subindo! 📈",
	"Boa! Mais uma comissão garantida. 💸",
	"Imparável! Quem é o próximo? 🔥",
	"A meta é o limite? Não para você! 🌟",
	"Venda fechada, cliente feliz! 🤝",
}

type MoveLeadUseCase struct {
	Board     *Board
	Leads     entity.LeadRepository
	Vendors   VendorFinder
	Publisher LeadEventPublisher
	Log       logger.Logger
	Now       func() time.Time
	Pick      func(n int) int
}

func NewMoveLeadUseCase(
	board *Board,
	leads entity.LeadRepository,
	vendors VendorFinder,
	publisher LeadEventPublisher,
	log logger.Logger,
) *MoveLeadUseCase {
	return &MoveLeadUseCase{
		Board:     board,
		Leads:     leads,
		Vendors:   vendors,
		Publisher: publisher,
		Log:       log,
		Now:       time.Now,
		Pick:      rand.Intn,
	}
}

func (uc *MoveLeadUseCase) Execute(ctx context.Context, input MoveLeadInput) (*MoveLeadOutput, error) {
	m := input.Move
	if m.LeadID == "" {
		return nil, validationFailed([]ValidationError{{Field: "lead_id", Message: "is required"}})
	}
	if m.Destination != nil {
		if _, err := entity.ParseStage(string(m.Destination.Stage)); err != nil {
			return nil, &DomainError{Code: CodeInvalidStage, Message: err.Error()}
		}
	}

	// Soltou fora do board ou na mesma posição: nada a fazer.
	if m.IsNoop() {
		out := &MoveLeadOutput{}
		if l, ok := uc.Board.Find(m.LeadID); ok {
			out.Lead, out.From, out.To = l, l.Status, l.Status
		}
		return out, nil
	}

	lead, err := uc.findLead(ctx, m.LeadID)
	if err != nil {
		return nil, err
	}

	actor := resolveActor(ctx, uc.Vendors, input.ActorID, uc.Log)
	res := entity.Transition(lead, m, actor)

	opID := uc.Board.ApplyOptimistic(lead.ID, m.Destination.Stage, res.Ownership)

	if err := uc.Leads.UpdateStatus(ctx, lead.ID, res.Lead.Status, res.Ownership); err != nil {
		uc.Board.Fail(opID)
		uc.Log.Error("❌ erro ao salvar movimentação, recarregando board", "lead_id", lead.ID, "error", err)
		if rerr := uc.Board.Refetch(context.WithoutCancel(ctx)); rerr != nil {
			uc.Log.Error("❌ refetch após falha também falhou", "error", rerr)
		}
		return nil, storeError("Erro ao salvar alteração", err)
	}
	confirmed := uc.reload(ctx, res.Lead)
	uc.Board.Confirm(opID, confirmed)

	out := &MoveLeadOutput{
		Lead:      confirmed,
		From:      lead.Status,
		To:        res.Lead.Status,
		Changed:   res.Changed,
		Ownership: res.Ownership,
	}
	if m.Destination.Stage == entity.StageClosed {
		out.Celebration = &Celebration{
			Title:  saleCelebrationTitle,
			Phrase: motivationalPhrases[uc.Pick(len(motivationalPhrases))],
		}
	}

	uc.publish(ctx, actor, out)
	return out, nil
}

func (uc *MoveLeadUseCase) findLead(ctx context.Context, id entity.LeadID) (entity.Lead, error) {
	if l, ok := uc.Board.Find(id); ok {
		return l, nil
	}
	l, err := uc.Leads.FindByID(ctx, id)
	if errors.Is(err, entity.ErrLeadNotFound) {
		return entity.Lead{}, &DomainError{Code: CodeLeadNotFound, Message: "lead não encontrado"}
	}
	if err != nil {
		return entity.Lead{}, storeError("erro ao buscar lead", err)
	}
	return *l, nil
}

// reload relê a linha gravada; se a leitura falhar fica o registro montado
// localmente e o próximo UPDATE do feed corrige o board.
func (uc *MoveLeadUseCase) reload(ctx context.Context, written entity.Lead) entity.Lead {
	fresh, err := uc.Leads.FindByID(ctx, written.ID)
	if err != nil || fresh == nil {
		uc.Log.Warn("⚠️ não foi possível reler o lead após mover", "lead_id", written.ID, "error", err)
		return written
	}
	return *fresh
}

// Falha ao publicar não desfaz a movimentação, só loga.
func (uc *MoveLeadUseCase) publish(ctx context.Context, actor entity.Actor, out *MoveLeadOutput) {
	if uc.Publisher == nil || out.From == out.To {
		return
	}
	now := uc.Now()

	evt := entity.LeadStatusChanged{
		LeadID:    out.Lead.ID,
		Name:      out.Lead.Name,
		From:      out.From,
		To:        out.To,
		OwnerID:   out.Lead.OwnerID,
		OwnerName: out.Lead.OwnerName,
		ChangedBy: actor.ID,
		ChangedAt: now,
	}
	if err := uc.Publisher.PublishStatusChanged(ctx, evt); err != nil {
		uc.Log.Warn("⚠️ erro ao publicar mudança de status", "lead_id", out.Lead.ID, "error", err)
	}

	if out.To == entity.StatusClosed {
		if err := uc.Publisher.PublishSale(ctx, entity.NewLeadSale(out.Lead, now)); err != nil {
			uc.Log.Warn("⚠️ erro ao publicar venda", "lead_id", out.Lead.ID, "error", err)
		}
	}
}
