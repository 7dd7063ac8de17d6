package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/sales-os/internal/entity"
)

type Card struct {
	entity.Lead
	Urgency entity.UrgencyTier `json:"urgency,omitempty"`
}

type Column struct {
	Stage entity.Stage `json:"stage"`
	Title string       `json:"title"`
	Count int          `json:"count"`
	Cards []Card       `json:"cards"`
}

type BoardView struct {
	Columns         []Column          `json:"columns"`
	Appearance      entity.Appearance `json:"appearance"`
	ColumnTextColor string            `json:"column_text_color"`
	GeneratedAt     time.Time         `json:"generated_at"`
}

// BuildBoardView monta as três colunas. Urgência só para a coluna de
// novos e sempre calculada com o "now" recebido.
func BuildBoardView(leads []entity.Lead, query string, appearance entity.Appearance, now time.Time) BoardView {
	byStage := make(map[entity.Stage][]Card, len(entity.Stages))
	for _, l := range FilterLeads(leads, query) {
		stage, ok := entity.Classify(l)
		if !ok {
			continue
		}
		card := Card{Lead: l}
		if stage == entity.StageNew {
			if tier, ok := entity.ClassifyUrgency(l.CreatedAt, now); ok {
				card.Urgency = tier
			}
		}
		byStage[stage] = append(byStage[stage], card)
	}

	view := BoardView{
		Columns:         make([]Column, 0, len(entity.Stages)),
		Appearance:      appearance,
		ColumnTextColor: entity.ContrastColor(appearance.PipelineColor),
		GeneratedAt:     now,
	}
	for _, s := range entity.Stages {
		cards := byStage[s]
		if cards == nil {
			cards = []Card{}
		}
		view.Columns = append(view.Columns, Column{
			Stage: s,
			Title: s.Title(),
			Count: len(cards),
			Cards: cards,
		})
	}
	return view
}

type BoardViewUseCase struct {
	Board       *Board
	Preferences *PreferencesUseCase
	Now         func() time.Time
}

func NewBoardViewUseCase(board *Board, prefs *PreferencesUseCase) *BoardViewUseCase {
	return &BoardViewUseCase{Board: board, Preferences: prefs, Now: time.Now}
}

func (uc *BoardViewUseCase) Execute(ctx context.Context, userID, query string) (BoardView, error) {
	leads, err := uc.Board.Snapshot(ctx)
	if err != nil {
		return BoardView{}, storeError("erro ao carregar o board", err)
	}
	appearance := uc.Preferences.Get(ctx, userID)
	return BuildBoardView(leads, query, appearance, uc.Now()), nil
}
