package cache

import (
	"context"
	"fmt"

	"github.com/xavierca1/sales-os/internal/entity"
)

const prefsKeyPrefix = "prefs:"

// PreferencesStore guarda a aparência de cada usuário num hash
// prefs:<userID>, um campo por ajuste.
type PreferencesStore struct {
	client *Client
}

func NewPreferencesStore(c *Client) *PreferencesStore {
	return &PreferencesStore{client: c}
}

func prefsKey(userID string) string {
	return prefsKeyPrefix + userID
}

func (s *PreferencesStore) Get(ctx context.Context, userID string) (*entity.Appearance, error) {
	fields, err := s.client.Redis.HGetAll(ctx, prefsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler preferências: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	return &entity.Appearance{
		Theme:            entity.Theme(fields["theme"]),
		KanbanBackground: fields["kanban_background"],
		PipelineColor:    fields["pipeline_color"],
		PipelineTexture:  fields["pipeline_texture"],
		CardTexture:      fields["card_texture"],
	}, nil
}

func (s *PreferencesStore) Save(ctx context.Context, userID string, a entity.Appearance) error {
	err := s.client.Redis.HSet(ctx, prefsKey(userID), map[string]any{
		"theme":             string(a.Theme),
		"kanban_background": a.KanbanBackground,
		"pipeline_color":    a.PipelineColor,
		"pipeline_texture":  a.PipelineTexture,
		"card_texture":      a.CardTexture,
	}).Err()
	if err != nil {
		return fmt.Errorf("erro ao salvar preferências: %w", err)
	}
	return nil
}
