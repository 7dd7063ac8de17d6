package usecase

import (
	"context"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
)

type PreferencesUseCase struct {
	Store entity.PreferencesStore
	Log   logger.Logger
}

func NewPreferencesUseCase(store entity.PreferencesStore, log logger.Logger) *PreferencesUseCase {
	return &PreferencesUseCase{Store: store, Log: log}
}

// Get nunca falha: sem store, sem registro ou com erro no cache cai no default.
func (uc *PreferencesUseCase) Get(ctx context.Context, userID string) entity.Appearance {
	def := entity.DefaultAppearance()
	if uc.Store == nil || userID == "" {
		return def
	}

	a, err := uc.Store.Get(ctx, userID)
	if err != nil {
		uc.Log.Warn("⚠️ erro ao ler preferências, usando padrão", "user_id", userID, "error", err)
		return def
	}
	if a == nil {
		return def
	}
	return a.Merge(def)
}

func (uc *PreferencesUseCase) Save(ctx context.Context, userID string, a entity.Appearance) (entity.Appearance, error) {
	a = a.Merge(entity.DefaultAppearance())
	if err := a.Validate(); err != nil {
		return entity.Appearance{}, &DomainError{Code: CodeValidation, Message: err.Error()}
	}
	if uc.Store == nil {
		return entity.Appearance{}, &TechnicalError{Code: CodeCacheError, Message: "armazenamento de preferências indisponível"}
	}
	if err := uc.Store.Save(ctx, userID, a); err != nil {
		return entity.Appearance{}, &TechnicalError{Code: CodeCacheError, Message: "erro ao salvar preferências", Err: err}
	}
	return a, nil
}
