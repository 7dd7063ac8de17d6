package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/sales-os/internal/entity"
)

const bucket = "https://proj.supabase.co/storage/v1/object/public/avatars"

func TestAvatarResolver(t *testing.T) {
	r := AvatarResolver{BaseURL: bucket + "/"}

	assert.Nil(t, r.Resolve(""))
	assert.Equal(t, "https://cdn.x.com/a.png", *r.Resolve("https://cdn.x.com/a.png"))
	assert.Equal(t, bucket+"/u1/foto.png", *r.Resolve("u1/foto.png"))
}

func TestAggregateRanking(t *testing.T) {
	leads := []entity.Lead{
		{OwnerName: "Ana", OwnerID: "u1", Status: entity.StatusClosed},
		{OwnerName: "Bruno", Status: entity.StatusNew},
		{OwnerName: "Ana", OwnerID: "u1", Status: "CLOSED"},
		{OwnerName: "Ana", OwnerID: "u1", Status: entity.StatusLost},
		{OwnerName: "Carla", OwnerID: "u3", Status: entity.StatusNew},
		{OwnerName: "Bruno", Status: entity.StatusClosed},
		{OwnerName: entity.OwnerUnassigned, Status: entity.StatusClosed},
		{OwnerName: entity.OwnerAwaitingAssignee},
		{OwnerName: ""},
	}
	vendors := []entity.Vendor{
		{ID: "u1", DisplayName: "Ana Paula", AvatarPath: "u1.png"},
		{ID: "u2", DisplayName: "Bruno", AvatarPath: "https://img.x.com/bruno.jpg"},
		{ID: "u3", DisplayName: "Carla"},
	}

	stats := AggregateRanking(leads, vendors, AvatarResolver{BaseURL: bucket})
	require.Len(t, stats, 3)

	assert.Equal(t, "Ana", stats[0].Name)
	assert.Equal(t, 3, stats[0].TotalLeads)
	assert.Equal(t, 2, stats[0].ClosedLeads)
	assert.InDelta(t, 66.666, stats[0].ConversionRate, 0.01)
	require.NotNil(t, stats[0].AvatarURL)
	assert.Equal(t, bucket+"/u1.png", *stats[0].AvatarURL)

	assert.Equal(t, "Bruno", stats[1].Name)
	assert.Equal(t, 1, stats[1].ClosedLeads)
	require.NotNil(t, stats[1].AvatarURL)
	assert.Equal(t, "https://img.x.com/bruno.jpg", *stats[1].AvatarURL)

	assert.Equal(t, "Carla", stats[2].Name)
	assert.Equal(t, 0.0, stats[2].ConversionRate)
	assert.Nil(t, stats[2].AvatarURL)
}

func TestAggregateRankingStableOnTies(t *testing.T) {
	leads := []entity.Lead{
		{OwnerName: "Zeca"},
		{OwnerName: "Ana"},
		{OwnerName: "Mara"},
	}
	stats := AggregateRanking(leads, nil, AvatarResolver{})
	require.Len(t, stats, 3)
	assert.Equal(t, []string{"Zeca", "Ana", "Mara"}, []string{stats[0].Name, stats[1].Name, stats[2].Name})
}

func TestAggregateRankingLookupByIDHasNoNameFallback(t *testing.T) {
	leads := []entity.Lead{{OwnerName: "Ana", OwnerID: "u9"}}
	vendors := []entity.Vendor{{ID: "u1", DisplayName: "Ana", AvatarPath: "ana.png"}}

	stats := AggregateRanking(leads, vendors, AvatarResolver{BaseURL: bucket})
	require.Len(t, stats, 1)
	assert.Nil(t, stats[0].AvatarURL)
}

func TestRankingUseCase(t *testing.T) {
	leads := new(MockLeadRepository)
	vendors := new(MockVendorRepository)
	leads.On("List", mock.Anything).Return([]entity.Lead{{OwnerName: "Ana", Status: entity.StatusClosed}}, nil)
	vendors.On("List", mock.Anything).Return([]entity.Vendor{}, nil)

	stats, err := NewRankingUseCase(leads, vendors, bucket).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, 100.0, stats[0].ConversionRate)

	failing := new(MockVendorRepository)
	failing.On("List", mock.Anything).Return(nil, errors.New("profiles indisponível"))
	_, err = NewRankingUseCase(leads, failing, bucket).Execute(context.Background())
	assert.True(t, IsTechnicalError(err))
}
