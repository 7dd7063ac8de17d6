package entity

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Appearance substitui o ThemeContext global do front: é passado
// explicitamente para a montagem do board.
type Appearance struct {
	Theme            Theme  `json:"theme"`
	KanbanBackground string `json:"kanban_background"`
	PipelineColor    string `json:"pipeline_color"`
	PipelineTexture  string `json:"pipeline_texture"`
	CardTexture      string `json:"card_texture"`
}

func DefaultAppearance() Appearance {
	return Appearance{
		Theme:            ThemeLight,
		KanbanBackground: "clean",
		PipelineColor:    "#f1f5f9",
		PipelineTexture:  "none",
		CardTexture:      "none",
	}
}

var (
	kanbanBackgrounds = set("clean", "executive", "jalves_brand", "sunset", "ocean", "forest",
		"purple", "mountain", "beach", "city", "dots", "grid")
	pipelineTextures = set("none", "dots", "grid", "lines", "noise")
	cardTextures     = set("none", "dots", "paper")

	hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

func (a Appearance) Validate() error {
	if a.Theme != ThemeLight && a.Theme != ThemeDark {
		return fmt.Errorf("%w: theme %q", ErrInvalidAppearance, a.Theme)
	}
	if _, ok := kanbanBackgrounds[a.KanbanBackground]; !ok {
		return fmt.Errorf("%w: kanban_background %q", ErrInvalidAppearance, a.KanbanBackground)
	}
	if !hexColor.MatchString(a.PipelineColor) {
		return fmt.Errorf("%w: pipeline_color %q", ErrInvalidAppearance, a.PipelineColor)
	}
	if _, ok := pipelineTextures[a.PipelineTexture]; !ok {
		return fmt.Errorf("%w: pipeline_texture %q", ErrInvalidAppearance, a.PipelineTexture)
	}
	if _, ok := cardTextures[a.CardTexture]; !ok {
		return fmt.Errorf("%w: card_texture %q", ErrInvalidAppearance, a.CardTexture)
	}
	return nil
}

// Merge preenche os campos vazios com o default.
func (a Appearance) Merge(def Appearance) Appearance {
	if a.Theme == "" {
		a.Theme = def.Theme
	}
	if a.KanbanBackground == "" {
		a.KanbanBackground = def.KanbanBackground
	}
	if a.PipelineColor == "" {
		a.PipelineColor = def.PipelineColor
	}
	if a.PipelineTexture == "" {
		a.PipelineTexture = def.PipelineTexture
	}
	if a.CardTexture == "" {
		a.CardTexture = def.CardTexture
	}
	return a
}

const (
	darkText  = "#1e293b" // slate-800
	lightText = "#f8fafc" // slate-50
)

// ContrastColor escolhe a cor de texto pela luminância YIQ do fundo.
func ContrastColor(hex string) string {
	if !hexColor.MatchString(hex) {
		return darkText
	}
	r, _ := strconv.ParseUint(hex[1:3], 16, 8)
	g, _ := strconv.ParseUint(hex[3:5], 16, 8)
	b, _ := strconv.ParseUint(hex[5:7], 16, 8)
	yiq := float64(r*299+g*587+b*114) / 1000
	if yiq >= 128 {
		return darkText
	}
	return lightText
}

// PreferencesStore guarda a aparência por usuário. Get devolve nil, nil
// quando o usuário nunca salvou nada.
type PreferencesStore interface {
	Get(ctx context.Context, userID string) (*Appearance, error)
	Save(ctx context.Context, userID string, a Appearance) error
}
