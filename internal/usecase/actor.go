package usecase

import (
	"context"
	"errors"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

// resolveActor busca o display_name do usuário logado. Perfil ausente ou
// erro no diretório resultam em nome vazio ("Vendedor" no fallback).
func resolveActor(ctx context.Context, vendors VendorFinder, userID string, log logger.Logger) entity.Actor {
	actor := entity.Actor{ID: userID}
	if userID == "" || vendors == nil {
		return actor
	}

	v, err := vendors.FindByID(ctx, userID)
	switch {
	case errors.Is(err, entity.ErrVendorNotFound):
	case err != nil:
		log.Warn("⚠️ erro ao buscar perfil do usuário", "user_id", userID, "error", err)
	case v != nil:
		actor.DisplayName = v.DisplayName
	}
	return actor
}
