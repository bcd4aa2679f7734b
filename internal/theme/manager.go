package theme

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/brief/internal/debuglog"
)

// Store persists the theme preference.
type Store interface {
	GetTheme() (string, bool, error)
	SaveTheme(theme string) error
}

// ApplyFunc receives the active theme and palette whenever it changes.
type ApplyFunc func(Theme, Palette)

// Manager owns the current theme. The initial theme is resolved once: the
// persisted preference, then the terminal background, then dark.
type Manager struct {
	mu       sync.Mutex
	store    Store
	palettes Palettes
	current  Theme
	apply    ApplyFunc
	detect   func() bool
}

type Option func(*Manager)

// WithDetector replaces terminal background detection. detect reports
// whether the background is dark.
func WithDetector(detect func() bool) Option {
	return func(m *Manager) {
		m.detect = detect
	}
}

func WithApply(fn ApplyFunc) Option {
	return func(m *Manager) {
		m.apply = fn
	}
}

func NewManager(store Store, palettes Palettes, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		palettes: palettes,
		detect:   lipgloss.HasDarkBackground,
	}
	for _, opt := range opts {
		opt(m)
	}

	if t, ok := m.persisted(); ok {
		m.current = t
		return m
	}
	m.current = Dark
	if m.detect != nil {
		m.current = themeFor(m.detect())
	}
	return m
}

func (m *Manager) persisted() (Theme, bool) {
	if m.store == nil {
		return Dark, false
	}

	log := debuglog.WithFields(map[string]interface{}{"component": "theme"})
	saved, ok, err := m.store.GetTheme()
	if err != nil {
		log.Warnf("reading theme preference: %v", err)
		return Dark, false
	}
	if !ok {
		return Dark, false
	}
	t, err := Parse(saved)
	if err != nil {
		log.Warnf("ignoring persisted theme: %v", err)
		return Dark, false
	}
	return t, true
}

func themeFor(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

func (m *Manager) Current() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manager) Palette() Palette {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.palettes[m.current]
}

// SetApply installs the hook and calls it once with the current theme.
func (m *Manager) SetApply(fn ApplyFunc) {
	m.mu.Lock()
	m.apply = fn
	t, p := m.current, m.palettes[m.current]
	m.mu.Unlock()

	if fn != nil {
		fn(t, p)
	}
}

// Toggle switches theme, persists it and calls the apply hook. The switch
// takes effect even when persisting fails; the error is returned for display.
func (m *Manager) Toggle() (Theme, error) {
	m.mu.Lock()
	m.current = m.current.Toggled()
	t, p, apply := m.current, m.palettes[m.current], m.apply
	m.mu.Unlock()

	if apply != nil {
		apply(t, p)
	}

	if m.store == nil {
		return t, nil
	}
	if err := m.store.SaveTheme(t.String()); err != nil {
		return t, fmt.Errorf("saving theme preference: %w", err)
	}
	return t, nil
}
