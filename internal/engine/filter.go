package engine

import (
	"github.com/edocico/a11y-audit/internal/config"
	"github.com/edocico/a11y-audit/internal/model"
)

// filterBySeverity removes findings below the configured severity threshold
func filterBySeverity(findings []model.Finding, cfg config.Config) []model.Finding {
	threshold := model.ParseSeverity(cfg.SeverityThreshold)
	var out []model.Finding
	for _, f := range findings {
		if model.SeverityGTE(f.Severity, threshold) {
			out = append(out, f)
		}
	}
	return out
}

// AnyAtOrAbove reports whether some finding reaches the given severity.
// The CLI uses it for --fail-on exit-code gating.
func AnyAtOrAbove(findings []model.Finding, threshold model.Severity) bool {
	for _, f := range findings {
		if model.SeverityGTE(f.Severity, threshold) {
			return true
		}
	}
	return false
}
