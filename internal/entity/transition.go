package entity

import "strings"

// Position identifica coluna e índice de um card no board.
type Position struct {
	Stage Stage `json:"stage"`
	Index int   `json:"index"`
}

// Move é o evento de drag-and-drop. Destination nil = soltou fora do board.
type Move struct {
	LeadID      LeadID    `json:"lead_id"`
	Source      Position  `json:"source"`
	Destination *Position `json:"destination,omitempty"`
}

func (m Move) IsNoop() bool {
	return m.Destination == nil || *m.Destination == m.Source
}

// Actor é o usuário logado que fez o drag.
type Actor struct {
	ID          string
	DisplayName string
}

func (a Actor) OwnerName() string {
	if strings.TrimSpace(a.DisplayName) == "" {
		return DefaultOwnerName
	}
	return a.DisplayName
}

type OwnershipDelta struct {
	OwnerID   string `json:"owner_id"`
	OwnerName string `json:"owner_name"`
}

type TransitionResult struct {
	Lead      Lead
	Ownership *OwnershipDelta
	Changed   bool
}

// ClaimsOwnership: fechar sempre credita quem fechou; nas outras colunas
// o ator só assume leads sem dono.
func ClaimsOwnership(l Lead, to Stage) bool {
	return to == StageClosed || !l.HasOwner()
}

func Transition(l Lead, m Move, actor Actor) TransitionResult {
	if m.IsNoop() {
		return TransitionResult{Lead: l}
	}

	to := m.Destination.Stage
	l.Status = to.Status()

	res := TransitionResult{Lead: l, Changed: true}
	if actor.ID != "" && ClaimsOwnership(l, to) {
		res.Ownership = &OwnershipDelta{
			OwnerID:   actor.ID,
			OwnerName: actor.OwnerName(),
		}
		res.Lead.OwnerID = res.Ownership.OwnerID
		res.Lead.OwnerName = res.Ownership.OwnerName
	}
	return res
}
