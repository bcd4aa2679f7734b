package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/brief/internal/config"
)

type memStore struct {
	value   string
	set     bool
	getErr  error
	saveErr error
	saves   int
}

func (s *memStore) GetTheme() (string, bool, error) {
	if s.getErr != nil {
		return "", false, s.getErr
	}
	return s.value, s.set, nil
}

func (s *memStore) SaveTheme(theme string) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.value, s.set = theme, true
	return nil
}

func darkBackground() bool  { return true }
func lightBackground() bool { return false }

func loadPalettes(t *testing.T) Palettes {
	t.Helper()
	p, err := LoadPalettes(config.ThemeColors{})
	require.NoError(t, err)
	return p
}

func TestThemeStringAndParse(t *testing.T) {
	assert.Equal(t, "dark", Dark.String())
	assert.Equal(t, "light", Light.String())
	assert.Equal(t, Light, Dark.Toggled())
	assert.Equal(t, Dark, Light.Toggled())

	for _, in := range []string{"dark", "DARK", " dark "} {
		got, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, Dark, got)
	}
	got, err := Parse("light")
	require.NoError(t, err)
	assert.Equal(t, Light, got)

	_, err = Parse("sepia")
	assert.Error(t, err)
}

func TestLoadPalettes(t *testing.T) {
	p := loadPalettes(t)

	require.Contains(t, p, Dark)
	require.Contains(t, p, Light)
	assert.Equal(t, "dark", p[Dark].Glamour)
	assert.Equal(t, "light", p[Light].Glamour)
	assert.NotEqual(t, p[Dark].Background, p[Light].Background)
	for _, pal := range p {
		assert.NotEmpty(t, pal.Primary)
		assert.NotEmpty(t, pal.Text)
		assert.NotEmpty(t, pal.Urgent)
		assert.NotEmpty(t, pal.Mid)
	}
}

func TestLoadPalettes_Overrides(t *testing.T) {
	base := loadPalettes(t)

	p, err := LoadPalettes(config.ThemeColors{
		Dark: config.UIColors{Primary: "#123456"},
	})
	require.NoError(t, err)

	assert.Equal(t, "#123456", p[Dark].Primary)
	assert.Equal(t, base[Dark].Secondary, p[Dark].Secondary, "unset keys keep the built-in value")
	assert.Equal(t, base[Light], p[Light])
}

func TestNewManager_Resolution(t *testing.T) {
	palettes := loadPalettes(t)

	tests := []struct {
		name   string
		store  *memStore
		detect func() bool
		want   Theme
	}{
		{"persisted light beats dark terminal", &memStore{value: "light", set: true}, darkBackground, Light},
		{"persisted dark beats light terminal", &memStore{value: "dark", set: true}, lightBackground, Dark},
		{"unset follows light terminal", &memStore{}, lightBackground, Light},
		{"unset follows dark terminal", &memStore{}, darkBackground, Dark},
		{"invalid persisted value falls back", &memStore{value: "sepia", set: true}, lightBackground, Light},
		{"store error falls back", &memStore{getErr: errors.New("boom")}, lightBackground, Light},
		{"no detector means dark", &memStore{}, nil, Dark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(tt.store, palettes, WithDetector(tt.detect))
			assert.Equal(t, tt.want, m.Current())
			assert.Equal(t, palettes[tt.want], m.Palette())
			assert.Zero(t, tt.store.saves, "resolving must not write")
		})
	}
}

func TestManager_ToggleTwiceRoundTrip(t *testing.T) {
	palettes := loadPalettes(t)
	store := &memStore{value: "dark", set: true}

	var applied []Theme
	var lastPalette Palette
	m := NewManager(store, palettes, WithDetector(lightBackground), WithApply(func(th Theme, p Palette) {
		applied = append(applied, th)
		lastPalette = p
	}))
	originalPalette := m.Palette()

	got, err := m.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Light, got)
	assert.Equal(t, "light", store.value)
	assert.Equal(t, palettes[Light], lastPalette)

	got, err = m.Toggle()
	require.NoError(t, err)
	assert.Equal(t, Dark, got)
	assert.Equal(t, "dark", store.value)
	assert.Equal(t, originalPalette, lastPalette)
	assert.Equal(t, []Theme{Light, Dark}, applied)
	assert.Equal(t, 2, store.saves)
}

func TestManager_ToggleSaveError(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	m := NewManager(store, loadPalettes(t), WithDetector(darkBackground))

	got, err := m.Toggle()
	assert.Error(t, err)
	assert.Equal(t, Light, got)
	assert.Equal(t, Light, m.Current(), "the switch still applies")
}

func TestManager_SetApplyCallsImmediately(t *testing.T) {
	m := NewManager(&memStore{}, loadPalettes(t), WithDetector(darkBackground))

	var got Theme = Light
	calls := 0
	m.SetApply(func(th Theme, _ Palette) {
		got = th
		calls++
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, Dark, got)
}
