package entity

import "time"

// Tipos de evento publicados no exchange de vendas.
const (
	EventLeadIntake        = "lead.intake.v1"
	EventLeadStatusChanged = "lead.status_changed.v1"
	EventLeadSale          = "lead.sale.v1"
)

type LeadStatusChanged struct {
	LeadID    LeadID    `json:"lead_id"`
	Name      string    `json:"name"`
	From      Status    `json:"from"`
	To        Status    `json:"to"`
	OwnerID   string    `json:"owner_id,omitempty"`
	OwnerName string    `json:"owner_name,omitempty"`
	ChangedBy string    `json:"changed_by,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

type LeadSale struct {
	LeadID        LeadID    `json:"lead_id"`
	Name          string    `json:"name"`
	ContactHandle string    `json:"contact_handle"`
	City          string    `json:"city,omitempty"`
	Origin        string    `json:"origin,omitempty"`
	OwnerID       string    `json:"owner_id,omitempty"`
	OwnerName     string    `json:"owner_name"`
	ClosedAt      time.Time `json:"closed_at"`
}

func NewLeadSale(l Lead, at time.Time) LeadSale {
	return LeadSale{
		LeadID:        l.ID,
		Name:          l.Name,
		ContactHandle: l.ContactHandle,
		City:          l.City,
		Origin:        l.Origin,
		OwnerID:       l.OwnerID,
		OwnerName:     l.OwnerName,
		ClosedAt:      at,
	}
}
