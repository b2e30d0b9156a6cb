package prefs

import (
	"context"
	"testing"

	"github.com/SvAkshayKumar/SmartCart-GenAI/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	kv, err := storage.NewRepo(db)
	require.NoError(t, err)
	require.NoError(t, kv.Migrate(context.Background()))

	svc, err := NewService(kv)
	require.NoError(t, err)
	return svc
}

func TestThemeDefaultsToLight(t *testing.T) {
	svc := newTestService(t)

	theme, err := svc.Theme(context.Background(), "sess-1")
	require.NoError(t, err)
	require.Equal(t, ThemeLight, theme)
}

func TestSetAndGetTheme(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetTheme(ctx, "sess-1", ThemeDark))

	theme, err := svc.Theme(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, ThemeDark, theme)

	require.NoError(t, svc.SetTheme(ctx, "sess-1", ThemeLight))
	theme, err = svc.Theme(ctx, "sess-1")
	require.NoError(t, err)
	require.Equal(t, ThemeLight, theme)
}

func TestSetThemeRejectsUnknownValue(t *testing.T) {
	svc := newTestService(t)

	err := svc.SetTheme(context.Background(), "sess-1", "solarized")
	require.Error(t, err)
}

func TestThemeIsPerSession(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SetTheme(ctx, "sess-a", ThemeDark))

	theme, err := svc.Theme(ctx, "sess-b")
	require.NoError(t, err)
	require.Equal(t, ThemeLight, theme)
}
