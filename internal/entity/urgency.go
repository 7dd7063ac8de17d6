package entity

import "time"

type UrgencyTier string

const (
	UrgencyRecent    UrgencyTier = "recent"
	UrgencyAttention UrgencyTier = "attention"
	UrgencyLate      UrgencyTier = "late"
)

const (
	attentionAfter = 15 * time.Minute
	lateAfter      = 60 * time.Minute
)

var UrgencyTiers = []UrgencyTier{UrgencyRecent, UrgencyAttention, UrgencyLate}

// ClassifyUrgency calcula o SLA de um lead novo. Sem created_at não há tier.
// Depende de "now", então nunca deve ser cacheado.
func ClassifyUrgency(createdAt *time.Time, now time.Time) (UrgencyTier, bool) {
	if createdAt == nil || createdAt.IsZero() {
		return "", false
	}
	elapsed := now.Sub(*createdAt)
	switch {
	case elapsed < attentionAfter:
		return UrgencyRecent, true
	case elapsed < lateAfter:
		return UrgencyAttention, true
	default:
		return UrgencyLate, true
	}
}
