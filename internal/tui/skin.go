package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Skin holds the ANSI color palette for the dashboard. Colors are lipgloss
// color strings (ANSI index or hex).
type Skin struct {
	Title  string `yaml:"title"`
	Border string `yaml:"border"`
	Header string `yaml:"header"`
	Accent string `yaml:"accent"`
	Dim    string `yaml:"dim"`
	Bar    string `yaml:"bar"`
}

// DefaultSkin is the skin used when none is configured.
const DefaultSkin = "default"

var builtinSkins = map[string]Skin{
	"default": {Title: "39", Border: "240", Header: "252", Accent: "208", Dim: "244", Bar: "39"},
	"mono":    {Title: "252", Border: "240", Header: "252", Accent: "255", Dim: "244", Bar: "250"},
	"warm":    {Title: "208", Border: "94", Header: "223", Accent: "196", Dim: "137", Bar: "208"},
}

// active skin colors, resolved once at startup by InitializeSkin.
var (
	colorTitle  = lipgloss.Color("39")
	colorBorder = lipgloss.Color("240")
	colorHeader = lipgloss.Color("252")
	colorAccent = lipgloss.Color("208")
	colorDim    = lipgloss.Color("244")
	colorBar    = lipgloss.Color("39")
)

// InitializeSkin resolves a skin by name: a builtin name, or a
// `<name>.yml` file in configDir overriding the default palette.
func InitializeSkin(name, configDir string) error {
	if name == "" {
		name = DefaultSkin
	}

	skin, ok := builtinSkins[name]
	if !ok {
		skin = builtinSkins[DefaultSkin]
		path := filepath.Join(configDir, name+".yml")
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("tui: unknown skin %q and no skin file at %s", name, path)
		}
		if err := yaml.Unmarshal(data, &skin); err != nil {
			return fmt.Errorf("tui: skin file %s: %w", path, err)
		}
	}

	applySkin(skin)
	return nil
}

func applySkin(s Skin) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&colorTitle, s.Title)
	set(&colorBorder, s.Border)
	set(&colorHeader, s.Header)
	set(&colorAccent, s.Accent)
	set(&colorDim, s.Dim)
	set(&colorBar, s.Bar)
	rebuildStyles()
}
