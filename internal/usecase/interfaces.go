package usecase

import (
	"context"

	"github.com/xavierca1/sales-os/internal/entity"
)

// LeadEventPublisher publica os eventos de pipeline no broker.
type LeadEventPublisher interface {
	PublishStatusChanged(ctx context.Context, evt entity.LeadStatusChanged) error
	PublishSale(ctx context.Context, evt entity.LeadSale) error
}

type LeadLister interface {
	List(ctx context.Context) ([]entity.Lead, error)
}

type VendorFinder interface {
	FindByID(ctx context.Context, id string) (*entity.Vendor, error)
}
