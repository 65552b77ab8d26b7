package report

import (
	"encoding/json"
	"sort"

	"github.com/google/uuid"

	"github.com/edocico/a11y-audit/internal/model"
)

const sarifSchema = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool     `json:"tool"`
	Automation sarifAuto     `json:"automationDetails"`
	Results    []sarifResult `json:"results"`
}

// sarifAuto carries a fresh GUID per run so result stores can tell
// invocations apart.
type sarifAuto struct {
	ID   string `json:"id"`
	GUID string `json:"guid"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}
type sarifDriver struct {
	Name           string      `json:"name"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}
type sarifRule struct {
	ID        string       `json:"id"`
	ShortDesc sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID       string            `json:"ruleId"`
	Level        string            `json:"level"`
	Message      sarifMessage      `json:"message"`
	Locations    []sarifLoc        `json:"locations"`
	Fingerprints map[string]string `json:"partialFingerprints,omitempty"`
	Properties   map[string]any    `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}
type sarifLoc struct {
	Physical sarifPhys `json:"physicalLocation"`
}
type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}
type sarifArt struct {
	URI string `json:"uri"`
}
type sarifRegion struct {
	StartLine int `json:"startLine"`
	EndLine   int `json:"endLine"`
}

var checkDescriptions = map[string]string{
	"contrast-text":    "Text color contrast below the WCAG AA minimum",
	"contrast-border":  "Border color contrast below the 3:1 non-text minimum",
	"contrast-ring":    "Focus ring contrast below the 3:1 non-text minimum",
	"contrast-outline": "Outline contrast below the 3:1 non-text minimum",
	"apca-contrast":    "APCA lightness contrast below the advisory floor",
}

func ToSARIF(findings []model.Finding) ([]byte, error) {
	ruleIDs := map[string]bool{}
	var results []sarifResult
	for _, f := range findings {
		ruleIDs[f.CheckID] = true
		level := "note"
		switch f.Severity {
		case model.SeverityLow:
			level = "note"
		case model.SeverityMedium:
			level = "warning"
		case model.SeverityHigh, model.SeverityCritical:
			level = "error"
		}
		props := map[string]any{
			"mode":      string(f.Mode),
			"bgClass":   f.Pair.BgClass,
			"textClass": f.Pair.TextClass,
			"pairType":  string(f.Pair.PairType),
			"ratio":     f.Ratio,
			"apcaLc":    f.APCALc,
		}
		if f.Pair.InteractiveState != model.StateNone {
			props["state"] = string(f.Pair.InteractiveState)
		}
		results = append(results, sarifResult{
			RuleID:  f.CheckID,
			Level:   level,
			Message: sarifMessage{Text: f.Message},
			Locations: []sarifLoc{{Physical: sarifPhys{
				ArtifactLocation: sarifArt{URI: f.File},
				Region:           sarifRegion{StartLine: f.Line, EndLine: f.Line},
			}}},
			Fingerprints: map[string]string{"a11yAudit/pair/v1": f.Fingerprint},
			Properties:   props,
		})
	}

	var rules []sarifRule
	for id := range ruleIDs {
		rules = append(rules, sarifRule{ID: id, ShortDesc: sarifMessage{Text: checkDescriptions[id]}})
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].ID < rules[j].ID })

	s := sarif{
		Schema:  sarifSchema,
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           "a11y-audit",
				InformationURI: "https://github.com/edocico/a11y-audit",
				Rules:          rules,
			}},
			Automation: sarifAuto{ID: "a11y-audit/scan", GUID: uuid.NewString()},
			Results:    results,
		}},
	}
	return json.MarshalIndent(s, "", "  ")
}
