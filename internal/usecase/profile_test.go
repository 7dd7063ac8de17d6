package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/sales-os/internal/entity"
)

func TestProfileGet(t *testing.T) {
	vendors := new(MockVendorRepository)
	vendors.On("FindByID", mock.Anything, "u1").Return(&entity.Vendor{ID: "u1", DisplayName: "Ana", AvatarPath: "u1.png"}, nil)
	vendors.On("FindByID", mock.Anything, "u2").Return(nil, entity.ErrVendorNotFound)

	uc := NewProfileUseCase(vendors, bucket)

	p, err := uc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.DisplayName)
	assert.Equal(t, bucket+"/u1.png", *p.AvatarURL)

	p, err = uc.Get(context.Background(), "u2")
	require.NoError(t, err)
	assert.Equal(t, Profile{ID: "u2"}, p)
}

func TestProfileUpdateName(t *testing.T) {
	vendors := new(MockVendorRepository)
	vendors.On("UpsertDisplayName", mock.Anything, "u1", "Ana Paula").Return(nil)
	vendors.On("FindByID", mock.Anything, "u1").Return(&entity.Vendor{ID: "u1", DisplayName: "Ana Paula"}, nil)

	uc := NewProfileUseCase(vendors, bucket)
	p, err := uc.UpdateName(context.Background(), "u1", UpdateProfileInput{DisplayName: "  Ana Paula "})
	require.NoError(t, err)
	assert.Equal(t, "Ana Paula", p.DisplayName)

	_, err = uc.UpdateName(context.Background(), "u1", UpdateProfileInput{DisplayName: " "})
	assert.True(t, IsDomainError(err))
}
