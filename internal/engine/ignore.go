package engine

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/edocico/a11y-audit/internal/config"
	"github.com/edocico/a11y-audit/internal/model"
)

// applyIgnores filters findings against the config ignore rules. Inline
// suppression (@a11y-ignore) is already applied during extraction, so only
// config-level rules run here.
func applyIgnores(findings []model.Finding, cfg config.Config) []model.Finding {
	rules := activeRules(cfg.Ignore, time.Now())
	if len(rules) == 0 {
		return findings
	}
	var out []model.Finding
	for _, f := range findings {
		if isIgnored(f, rules) {
			continue
		}
		out = append(out, f)
	}
	return out
}

type ignoreRule struct {
	rule  string
	paths []glob.Glob
}

func activeRules(in []config.IgnoreRule, now time.Time) []ignoreRule {
	var out []ignoreRule
	for _, r := range in {
		if expired(r.Expires, now) {
			continue
		}
		out = append(out, ignoreRule{rule: r.Rule, paths: compileRulePath(r.Path)})
	}
	return out
}

func expired(s string, now time.Time) bool {
	if s == "" {
		return false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return now.After(t)
		}
	}
	return false
}

// compileRulePath widens a rule path so that a plain directory entry like
// "src/legacy" matches files under it at any nesting of the scan root.
func compileRulePath(p string) []glob.Glob {
	if p == "" {
		return nil
	}
	var out []glob.Glob
	for _, pat := range []string{p, "**/" + p, p + "/**", "**/" + p + "/**"} {
		if g, err := glob.Compile(pat, '/'); err == nil {
			out = append(out, g)
		}
	}
	return out
}

func isIgnored(f model.Finding, rules []ignoreRule) bool {
	for _, r := range rules {
		if r.rule != "" && !strings.EqualFold(r.rule, f.CheckID) && r.rule != f.Fingerprint {
			continue
		}
		if len(r.paths) > 0 && !matchAny(r.paths, filepath.ToSlash(f.File)) {
			continue
		}
		return true
	}
	return false
}
