package usecase

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/xavierca1/sales-os/internal/entity"
)

const unknownOrigin = "Desconhecido"

type OriginCount struct {
	Origin string `json:"origin"`
	Count  int    `json:"count"`
}

type FunnelStep struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Dashboard struct {
	TotalLeads     int           `json:"total_leads"`
	NewLeads       int           `json:"new_leads"`
	InNegotiation  int           `json:"in_negotiation"`
	ClosedLeads    int           `json:"closed_leads"`
	ConversionRate float64       `json:"conversion_rate"`
	Origins        []OriginCount `json:"origins"`
	Funnel         []FunnelStep  `json:"funnel"`
}

func BuildDashboard(leads []entity.Lead) Dashboard {
	d := Dashboard{TotalLeads: len(leads), Origins: []OriginCount{}}

	origins := make(map[string]int)
	var order []string
	for _, l := range leads {
		switch entity.Status(strings.ToLower(string(l.Status))) {
		case "", entity.StatusNew:
			d.NewLeads++
		case entity.StatusInNegotiation:
			d.InNegotiation++
		case entity.StatusClosed:
			d.ClosedLeads++
		}

		origin := strings.TrimSpace(l.Origin)
		if origin == "" {
			origin = unknownOrigin
		}
		if _, ok := origins[origin]; !ok {
			order = append(order, origin)
		}
		origins[origin]++
	}

	if d.TotalLeads > 0 {
		rate := float64(d.ClosedLeads) / float64(d.TotalLeads) * 100
		d.ConversionRate = math.Round(rate*10) / 10
	}

	for _, o := range order {
		d.Origins = append(d.Origins, OriginCount{Origin: o, Count: origins[o]})
	}
	sort.SliceStable(d.Origins, func(a, b int) bool {
		return d.Origins[a].Count > d.Origins[b].Count
	})

	d.Funnel = []FunnelStep{
		{Name: "Novos", Value: d.NewLeads},
		{Name: "Em Negociação", Value: d.InNegotiation},
		{Name: "Fechados", Value: d.ClosedLeads},
	}
	return d
}

type DashboardUseCase struct {
	Leads LeadLister
}

func NewDashboardUseCase(leads LeadLister) *DashboardUseCase {
	return &DashboardUseCase{Leads: leads}
}

func (uc *DashboardUseCase) Execute(ctx context.Context) (Dashboard, error) {
	leads, err := uc.Leads.List(ctx)
	if err != nil {
		return Dashboard{}, &TechnicalError{Code: CodeDatabase, Message: "erro ao buscar leads", Err: err}
	}
	return BuildDashboard(leads), nil
}
