package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/xavierca1/sales-os/internal/entity"
)

type VendorLister interface {
	List(ctx context.Context) ([]entity.Vendor, error)
}

// AvatarResolver monta a URL pública do avatar a partir do avatar_path.
type AvatarResolver struct {
	BaseURL string
}

// Resolve: vazio vira nil, "http..." passa direto, o resto é caminho
// dentro do bucket.
func (r AvatarResolver) Resolve(path string) *string {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http") {
		return &path
	}
	url := strings.TrimRight(r.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	return &url
}

// AggregateRanking agrupa por owner_name na ordem em que aparecem e ordena
// de forma estável por vendas fechadas.
func AggregateRanking(leads []entity.Lead, vendors []entity.Vendor, avatars AvatarResolver) []entity.VendorStat {
	byID := make(map[string]entity.Vendor, len(vendors))
	byName := make(map[string]entity.Vendor, len(vendors))
	for _, v := range vendors {
		byID[v.ID] = v
		if _, dup := byName[v.DisplayName]; !dup {
			byName[v.DisplayName] = v
		}
	}

	stats := make([]entity.VendorStat, 0)
	index := make(map[string]int)
	for _, l := range leads {
		if !l.CountsForRanking() {
			continue
		}
		i, seen := index[l.OwnerName]
		if !seen {
			stat := entity.VendorStat{Name: l.OwnerName, OwnerID: l.OwnerID}
			var profile entity.Vendor
			var found bool
			if l.OwnerID != "" {
				profile, found = byID[l.OwnerID]
			} else {
				profile, found = byName[l.OwnerName]
			}
			if found {
				stat.AvatarURL = avatars.Resolve(profile.AvatarPath)
			}
			stats = append(stats, stat)
			i = len(stats) - 1
			index[l.OwnerName] = i
		}

		stats[i].TotalLeads++
		if strings.EqualFold(string(l.Status), string(entity.StatusClosed)) {
			stats[i].ClosedLeads++
		}
	}

	for i := range stats {
		if stats[i].TotalLeads > 0 {
			stats[i].ConversionRate = float64(stats[i].ClosedLeads) / float64(stats[i].TotalLeads) * 100
		}
	}

	sort.SliceStable(stats, func(a, b int) bool {
		return stats[a].ClosedLeads > stats[b].ClosedLeads
	})
	return stats
}

type RankingUseCase struct {
	Leads   LeadLister
	Vendors VendorLister
	Avatars AvatarResolver
}

func NewRankingUseCase(leads LeadLister, vendors VendorLister, avatarBaseURL string) *RankingUseCase {
	return &RankingUseCase{Leads: leads, Vendors: vendors, Avatars: AvatarResolver{BaseURL: avatarBaseURL}}
}

// Execute sempre lê o conjunto completo, sem cache.
func (uc *RankingUseCase) Execute(ctx context.Context) ([]entity.VendorStat, error) {
	leads, err := uc.Leads.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "erro ao buscar leads", Err: err}
	}
	vendors, err := uc.Vendors.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabase, Message: "erro ao buscar perfis", Err: err}
	}
	return AggregateRanking(leads, vendors, uc.Avatars), nil
}
