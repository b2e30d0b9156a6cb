package prefs

import (
	"context"
	"fmt"

	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/storage"
	pkgerrors "github.com/SvAkshayKumar/SmartCart-GenAI/pkg/errors"
)

// Theme values the storefront understands.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Service stores the per-session theme preference in the shared KV store.
type Service struct {
	kv *storage.Repo
}

// NewService builds the preferences service.
func NewService(kv *storage.Repo) (*Service, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv repository required")
	}
	return &Service{kv: kv}, nil
}

// Theme returns the stored preference, defaulting to light when absent or
// unrecognized.
func (s *Service) Theme(ctx context.Context, sessionID string) (string, error) {
	value, found, err := s.kv.Get(ctx, sessionID, storage.KeyTheme)
	if err != nil {
		return "", err
	}
	if !found || (value != ThemeLight && value != ThemeDark) {
		return ThemeLight, nil
	}
	return value, nil
}

// SetTheme persists the preference. Only the two known values are accepted.
func (s *Service) SetTheme(ctx context.Context, sessionID, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("theme must be %q or %q", ThemeLight, ThemeDark))
	}
	return s.kv.Put(ctx, sessionID, storage.KeyTheme, theme)
}
