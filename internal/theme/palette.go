package theme

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/pders01/brief/internal/config"
)

//go:embed palettes.toml
var palettesTOML []byte

// Palette holds the hex colors of one theme plus the glamour style used for
// rendering daily summaries.
type Palette struct {
	Primary    string `toml:"primary"`
	Secondary  string `toml:"secondary"`
	Accent     string `toml:"accent"`
	Background string `toml:"background"`
	Surface    string `toml:"surface"`
	Text       string `toml:"text"`
	Muted      string `toml:"muted"`
	Error      string `toml:"error"`
	Success    string `toml:"success"`
	Urgent     string `toml:"urgent"`
	Mid        string `toml:"mid"`
	Glamour    string `toml:"glamour"`
}

type palettesFile struct {
	Dark  Palette `toml:"dark"`
	Light Palette `toml:"light"`
}

// Palettes maps each theme to its palette.
type Palettes map[Theme]Palette

// LoadPalettes decodes the built-in palettes and applies the non-empty
// overrides from the user's config.
func LoadPalettes(overrides config.ThemeColors) (Palettes, error) {
	var file palettesFile
	if err := toml.Unmarshal(palettesTOML, &file); err != nil {
		return nil, fmt.Errorf("parsing palettes.toml: %w", err)
	}

	return Palettes{
		Dark:  file.Dark.merge(overrides.Dark),
		Light: file.Light.merge(overrides.Light),
	}, nil
}

func (p Palette) merge(c config.UIColors) Palette {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&p.Primary, c.Primary)
	set(&p.Secondary, c.Secondary)
	set(&p.Accent, c.Accent)
	set(&p.Background, c.Background)
	set(&p.Surface, c.Surface)
	set(&p.Text, c.Text)
	set(&p.Muted, c.Muted)
	set(&p.Error, c.Error)
	set(&p.Success, c.Success)
	set(&p.Urgent, c.Urgent)
	set(&p.Mid, c.Mid)
	return p
}
