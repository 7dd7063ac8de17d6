package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/xavierca1/sales-os/internal/entity"
)

type ProfileUseCase struct {
	Vendors entity.VendorRepository
	Avatars AvatarResolver
}

func NewProfileUseCase(vendors entity.VendorRepository, avatarBaseURL string) *ProfileUseCase {
	return &ProfileUseCase{Vendors: vendors, Avatars: AvatarResolver{BaseURL: avatarBaseURL}}
}

type Profile struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (Profile, error) {
	v, err := uc.Vendors.FindByID(ctx, userID)
	if errors.Is(err, entity.ErrVendorNotFound) {
		return Profile{ID: userID}, nil
	}
	if err != nil {
		return Profile{}, &TechnicalError{Code: CodeDatabase, Message: "erro ao buscar perfil", Err: err}
	}
	return Profile{ID: v.ID, DisplayName: v.DisplayName, AvatarURL: uc.Avatars.Resolve(v.AvatarPath)}, nil
}

type UpdateProfileInput struct {
	DisplayName string `json:"display_name" validate:"notblank,max=120"`
}

func (uc *ProfileUseCase) UpdateName(ctx context.Context, userID string, input UpdateProfileInput) (Profile, error) {
	if errs := ValidateStruct(input); len(errs) > 0 {
		return Profile{}, validationFailed(errs)
	}
	name := strings.TrimSpace(input.DisplayName)
	if err := uc.Vendors.UpsertDisplayName(ctx, userID, name); err != nil {
		return Profile{}, &TechnicalError{Code: CodeDatabase, Message: "erro ao salvar perfil", Err: err}
	}
	return uc.Get(ctx, userID)
}
