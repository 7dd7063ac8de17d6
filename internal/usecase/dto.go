package usecase

import (
	"github.com/xavierca1/sales-os/internal/entity"
)

type CreateLeadInput struct {
	Name           string `json:"name" validate:"notblank,max=200"`
	ContactHandle  string `json:"contact_handle" validate:"notblank,max=120"`
	City           string `json:"city" validate:"max=120"`
	Origin         string `json:"origin" validate:"max=120"`
	EngagementType string `json:"engagement_type" validate:"max=120"`
	AgeRange       string `json:"age_range" validate:"max=120"`
	ActorID        string `json:"-"`
}

type UpdateLeadInput struct {
	ID             entity.LeadID `json:"-"`
	Name           string        `json:"name" validate:"notblank,max=200"`
	ContactHandle  string        `json:"contact_handle" validate:"max=120"`
	City           string        `json:"city" validate:"max=120"`
	Origin         string        `json:"origin" validate:"max=120"`
	EngagementType string        `json:"engagement_type" validate:"max=120"`
	AgeRange       string        `json:"age_range" validate:"max=120"`
	Status         entity.Status `json:"status" validate:"leadstatus"`
}

// IntakeLeadInput chega pelo webhook e trafega pela fila lead-intake.
type IntakeLeadInput struct {
	Name           string               `json:"name" validate:"notblank,max=200"`
	ContactHandle  string               `json:"contact_handle" validate:"notblank,max=120"`
	City           string               `json:"city" validate:"max=120"`
	Origin         string               `json:"origin" validate:"max=120"`
	EngagementType string               `json:"engagement_type" validate:"max=120"`
	AgeRange       string               `json:"age_range" validate:"max=120"`
	TrackingInfo   *entity.TrackingInfo `json:"tracking_info,omitempty"`
}

type MoveLeadInput struct {
	Move    entity.Move
	ActorID string
}

// Celebration é devolvida quando o card cai em "Fechados".
type Celebration struct {
	Title  string `json:"title"`
	Phrase string `json:"phrase"`
}

type MoveLeadOutput struct {
	Lead        entity.Lead            `json:"lead"`
	From        entity.Status          `json:"from"`
	To          entity.Status          `json:"to"`
	Changed     bool                   `json:"changed"`
	Ownership   *entity.OwnershipDelta `json:"ownership,omitempty"`
	Celebration *Celebration           `json:"celebration,omitempty"`
}

type InboxView struct {
	Notifications []entity.SystemNotification `json:"notifications"`
	UnreadCount   int                         `json:"unread_count"`
}
