package handlers

import (
	"context"
	"net/http"

	"github.com/xavierca1/sales-os/internal/entity"
	"github.com/xavierca1/sales-os/internal/logger"
	"github.com/xavierca1/sales-os/internal/usecase"
)

type PreferencesService interface {
	Get(ctx context.Context, userID string) entity.Appearance
	Save(ctx context.Context, userID string, a entity.Appearance) (entity.Appearance, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (usecase.Profile, error)
	UpdateName(ctx context.Context, userID string, input usecase.UpdateProfileInput) (usecase.Profile, error)
}

// SettingsHandler cobre /me/preferences e /me/profile.
type SettingsHandler struct {
	Preferences PreferencesService
	Profile     ProfileService
	Log         logger.Logger
}

func NewSettingsHandler(prefs PreferencesService, profile ProfileService, log logger.Logger) *SettingsHandler {
	return &SettingsHandler{Preferences: prefs, Profile: profile, Log: log}
}

func (h *SettingsHandler) HandleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Preferences.Get(r.Context(), userID))
}

func (h *SettingsHandler) HandleSavePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var a entity.Appearance
	if !decodeJSON(r, w, &a) {
		return
	}

	saved, err := h.Preferences.Save(r.Context(), userID, a)
	if err != nil {
		writeUseCaseError(w, h.Log, "save_preferences", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *SettingsHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	p, err := h.Profile.Get(r.Context(), userID)
	if err != nil {
		writeUseCaseError(w, h.Log, "get_profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *SettingsHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var input usecase.UpdateProfileInput
	if !decodeJSON(r, w, &input) {
		return
	}

	p, err := h.Profile.UpdateName(r.Context(), userID, input)
	if err != nil {
		writeUseCaseError(w, h.Log, "update_profile", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
