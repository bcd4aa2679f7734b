package theme

import (
	"fmt"
	"strings"
)

// Theme is the light/dark presentation mode.
type Theme int

const (
	Dark Theme = iota
	Light
)

func (t Theme) String() string {
	switch t {
	case Light:
		return "light"
	default:
		return "dark"
	}
}

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Parse accepts the persisted form written by String.
func Parse(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dark":
		return Dark, nil
	case "light":
		return Light, nil
	default:
		return Dark, fmt.Errorf("unknown theme %q", s)
	}
}
