package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/edocico/a11y-audit/internal/model"
)

// A baseline freezes the findings a project has accepted so CI fails only on
// new ones. On disk it is a sorted fingerprint array; an object form with
// metadata is also accepted for hand-maintained files.
type baseline struct {
	GeneratedAt  time.Time       `json:"generatedAt"`
	Fingerprints map[string]bool `json:"fingerprints"`
}

func loadBaseline(path string) (baseline, error) {
	b := baseline{Fingerprints: map[string]bool{}}
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	var arr []string
	if json.Unmarshal(data, &arr) == nil {
		for _, fp := range arr {
			b.Fingerprints[fp] = true
		}
		return b, nil
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("parse %s: %w", path, err)
	}
	if b.Fingerprints == nil {
		b.Fingerprints = map[string]bool{}
	}
	return b, nil
}

func filterByBaseline(findings []model.Finding, b baseline) []model.Finding {
	if len(b.Fingerprints) == 0 {
		return findings
	}
	var out []model.Finding
	for _, f := range findings {
		if f.Fingerprint != "" && b.Fingerprints[f.Fingerprint] {
			continue
		}
		out = append(out, f)
	}
	return out
}

func writeBaseline(path string, findings []model.Finding) error {
	if path == "" {
		return nil
	}
	seen := map[string]bool{}
	arr := make([]string, 0, len(findings))
	for _, f := range findings {
		if f.Fingerprint == "" || seen[f.Fingerprint] {
			continue
		}
		seen[f.Fingerprint] = true
		arr = append(arr, f.Fingerprint)
	}
	sort.Strings(arr)
	data, _ := json.MarshalIndent(arr, "", "  ")
	return os.WriteFile(path, data, 0o644)
}
