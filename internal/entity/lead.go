package entity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Nomes "sentinela" gravados em owner_name pela operação.
const (
	OwnerUnassigned       = "Sem Dono"
	OwnerAwaitingAssignee = "Aguardando Atribuição"
	DefaultOwnerName      = "Vendedor"
)

type Status string

const (
	StatusNew           Status = "new"
	StatusInNegotiation Status = "in_negotiation"
	StatusClosed        Status = "closed"
	StatusLost          Status = "lost"
)

// Valid aceita vazio (equivale a new) ou um dos quatro valores conhecidos.
func (s Status) Valid() bool {
	switch s {
	case "", StatusNew, StatusInNegotiation, StatusClosed, StatusLost:
		return true
	}
	return false
}

// LeadID é opaco: o banco usa bigserial, mas o feed pode mandar string.
type LeadID string

func (id LeadID) String() string { return string(id) }

func (id *LeadID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = LeadID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("lead id inválido: %s", string(data))
	}
	*id = LeadID(n.String())
	return nil
}

type TrackingInfo struct {
	Source   string `json:"source,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Campaign string `json:"campaign,omitempty"`
	Term     string `json:"term,omitempty"`
	Content  string `json:"content,omitempty"`
	GCLID    string `json:"gclid,omitempty"`
}

type Lead struct {
	ID             LeadID        `json:"id"`
	Name           string        `json:"name"`
	ContactHandle  string        `json:"contact_handle"`
	City           string        `json:"city,omitempty"`
	Origin         string        `json:"origin,omitempty"`
	EngagementType string        `json:"engagement_type,omitempty"`
	AgeRange       string        `json:"age_range,omitempty"`
	Status         Status        `json:"status,omitempty"`
	OwnerID        string        `json:"owner_id,omitempty"`
	OwnerName      string        `json:"owner_name,omitempty"`
	OwnerAvatar    string        `json:"owner_avatar,omitempty"` // só vem da view_sales_os
	Feeling        string        `json:"feeling,omitempty"`
	TrackingInfo   *TrackingInfo `json:"tracking_info,omitempty"`
	CreatedAt      *time.Time    `json:"created_at,omitempty"`
	AssignmentTime *time.Time    `json:"assignment_time,omitempty"`
}

// HasOwner é falso para owner_name vazio ou "Sem Dono".
func (l Lead) HasOwner() bool {
	name := strings.TrimSpace(l.OwnerName)
	return name != "" && name != OwnerUnassigned
}

// CountsForRanking exclui os leads sem responsável e os aguardando atribuição.
func (l Lead) CountsForRanking() bool {
	switch l.OwnerName {
	case "", OwnerUnassigned, OwnerAwaitingAssignee:
		return false
	}
	return true
}

func NewLead(name, contactHandle string, now time.Time) (*Lead, error) {
	l := &Lead{
		Name:           name,
		ContactHandle:  contactHandle,
		Status:         StatusNew,
		CreatedAt:      &now,
		AssignmentTime: &now,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrLeadNameRequired
	}
	if strings.TrimSpace(l.ContactHandle) == "" {
		return ErrLeadContactRequired
	}
	if !l.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, l.Status)
	}
	return nil
}

// LeadFields é o payload do modal de edição (update completo).
type LeadFields struct {
	Name           string `json:"name"`
	ContactHandle  string `json:"contact_handle"`
	City           string `json:"city"`
	Origin         string `json:"origin"`
	EngagementType string `json:"engagement_type"`
	AgeRange       string `json:"age_range"`
	Status         Status `json:"status"`
}

type LeadRepository interface {
	List(ctx context.Context) ([]Lead, error)
	FindByID(ctx context.Context, id LeadID) (*Lead, error)
	Create(ctx context.Context, l *Lead) error
	UpdateStatus(ctx context.Context, id LeadID, status Status, ownership *OwnershipDelta) error
	UpdateFields(ctx context.Context, id LeadID, fields LeadFields) error
}
