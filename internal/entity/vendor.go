package entity

import "context"

// Vendor é a linha de profiles (diretório de vendedores).
type Vendor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarPath  string `json:"avatar_path,omitempty"`
}

// VendorStat é derivado a cada pedido de ranking, nunca persistido.
type VendorStat struct {
	Name           string  `json:"name"`
	OwnerID        string  `json:"owner_id,omitempty"`
	AvatarURL      *string `json:"avatar_url"`
	TotalLeads     int     `json:"total_leads"`
	ClosedLeads    int     `json:"closed_leads"`
	ConversionRate float64 `json:"conversion_rate"`
}

type VendorRepository interface {
	List(ctx context.Context) ([]Vendor, error)
	FindByID(ctx context.Context, id string) (*Vendor, error)
	UpsertDisplayName(ctx context.Context, id, displayName string) error
}
