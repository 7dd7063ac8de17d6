package entity

import "fmt"

// Stage é uma das três colunas visíveis do kanban.
type Stage string

const (
	StageNew           Stage = "new"
	StageInNegotiation Stage = "in_negotiation"
	StageClosed        Stage = "closed"
)

// Stages na ordem em que as colunas aparecem.
var Stages = []Stage{StageNew, StageInNegotiation, StageClosed}

var stageTitles = map[Stage]string{
	StageNew:           "Novos Leads",
	StageInNegotiation: "Em Negociação",
	StageClosed:        "Fechados",
}

func (s Stage) Title() string { return stageTitles[s] }

func (s Stage) Status() Status { return Status(s) }

func ParseStage(v string) (Stage, error) {
	s := Stage(v)
	if _, ok := stageTitles[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidStage, v)
	}
	return s, nil
}

// Classify devolve a coluna do lead. Leads "lost" (ou com status
// desconhecido) não caem em nenhuma coluna e ficam fora do board.
func Classify(l Lead) (Stage, bool) {
	switch l.Status {
	case "", StatusNew:
		return StageNew, true
	case StatusInNegotiation:
		return StageInNegotiation, true
	case StatusClosed:
		return StageClosed, true
	}
	return "", false
}
