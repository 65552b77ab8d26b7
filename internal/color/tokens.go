package color

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/edocico/a11y-audit/internal/model"
)

// Default semantic tokens, zinc scheme. Projects override these with a theme
// file when their CSS variables differ.
var defaultTokensLight = map[string]string{
	"background":             "#ffffff",
	"foreground":             "#09090b",
	"card":                   "#ffffff",
	"card-foreground":        "#09090b",
	"popover":                "#ffffff",
	"popover-foreground":     "#09090b",
	"primary":                "#18181b",
	"primary-foreground":     "#fafafa",
	"secondary":              "#f4f4f5",
	"secondary-foreground":   "#18181b",
	"muted":                  "#f4f4f5",
	"muted-foreground":       "#71717a",
	"accent":                 "#f4f4f5",
	"accent-foreground":      "#18181b",
	"destructive":            "#ef4444",
	"destructive-foreground": "#fafafa",
	"border":                 "#e4e4e7",
	"input":                  "#e4e4e7",
	"ring":                   "#18181b",
}

var defaultTokensDark = map[string]string{
	"background":             "#09090b",
	"foreground":             "#fafafa",
	"card":                   "#09090b",
	"card-foreground":        "#fafafa",
	"popover":                "#09090b",
	"popover-foreground":     "#fafafa",
	"primary":                "#fafafa",
	"primary-foreground":     "#18181b",
	"secondary":              "#27272a",
	"secondary-foreground":   "#fafafa",
	"muted":                  "#27272a",
	"muted-foreground":       "#a1a1aa",
	"accent":                 "#27272a",
	"accent-foreground":      "#fafafa",
	"destructive":            "#7f1d1d",
	"destructive-foreground": "#fafafa",
	"border":                 "#27272a",
	"input":                  "#27272a",
	"ring":                   "#d4d4d8",
}

type themeFile struct {
	Tokens map[string]map[string]string `yaml:"tokens"`
}

// LoadTheme merges a YAML theme file over the default tokens. The file holds
// a tokens: map keyed by mode (light/dark), each a token name to hex value
// map.
func (r *Resolver) LoadTheme(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read theme: %w", err)
	}
	var tf themeFile
	if err := yaml.Unmarshal(b, &tf); err != nil {
		return fmt.Errorf("parse theme %s: %w", path, err)
	}
	for modeName, vals := range tf.Tokens {
		mode := model.ParseMode(modeName)
		for k, v := range vals {
			r.tokens[mode][k] = v
		}
	}
	r.memo.Purge()
	return nil
}

// Tokens returns a copy of the semantic token table for one mode.
func (r *Resolver) Tokens(mode model.ThemeMode) map[string]string {
	out := make(map[string]string, len(r.tokens[mode]))
	for k, v := range r.tokens[mode] {
		out[k] = v
	}
	return out
}

func cloneTokens(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
