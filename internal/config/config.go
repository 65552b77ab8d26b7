package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const FileName = ".a11y-audit.json"

type IgnoreRule struct {
	Rule    string `json:"rule"` // check id or finding fingerprint
	Path    string `json:"path"` // glob, empty matches everything
	Reason  string `json:"reason"`
	Expires string `json:"expires"` // RFC3339 date, empty never expires
}

type Config struct {
	Containers        map[string]string `json:"containers"`
	Portals           map[string]string `json:"portals"`
	DefaultBg         string            `json:"defaultBg"`
	Theme             string            `json:"theme"` // YAML token override file
	Include           []string          `json:"include"`
	Exclude           []string          `json:"exclude"`
	Modes             []string          `json:"modes"`
	SeverityThreshold string            `json:"severityThreshold"`
	Ignore            []IgnoreRule      `json:"ignore"`
	ExhaustiveCVA     bool              `json:"exhaustiveCva"`
	Jobs              int               `json:"jobs"`
}

func Default() Config {
	return Config{
		Containers: map[string]string{
			"Card":        "bg-card",
			"CardHeader":  "bg-card",
			"CardContent": "bg-card",
			"CardFooter":  "bg-card",
			"Alert":       "bg-background",
		},
		Portals: map[string]string{
			"DialogContent":       "bg-background",
			"AlertDialogContent":  "bg-background",
			"SheetContent":        "bg-background",
			"DrawerContent":       "bg-background",
			"PopoverContent":      "bg-popover",
			"DropdownMenuContent": "bg-popover",
			"SelectContent":       "bg-popover",
			"ContextMenuContent":  "bg-popover",
			"HoverCardContent":    "bg-popover",
			"TooltipContent":      "bg-primary",
			"Portal":              "reset",
		},
		DefaultBg: "bg-background",
		Include:   []string{"**/*.jsx", "**/*.tsx"},
		Exclude: []string{
			"**/node_modules/**", "**/dist/**", "**/build/**", "**/.next/**",
			"**/*.test.*", "**/*.spec.*", "**/*.stories.*",
		},
		Modes:             []string{"light", "dark"},
		SeverityThreshold: "low",
	}
}

// Load searches upwards from startDir for a config file and merges it over
// the defaults. Maps merge key-wise, so a project config only needs to list
// its own components.
func Load(startDir string) (Config, string, error) {
	cfg := Default()
	dir := startDir
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			b, err := os.ReadFile(candidate)
			if err != nil {
				return cfg, candidate, err
			}
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, candidate, fmt.Errorf("parse %s: %w", candidate, err)
			}
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached root
			break
		}
		dir = parent
	}
	return cfg, "", nil
}
