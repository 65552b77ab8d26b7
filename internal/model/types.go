package model

import "time"

type ThemeMode string

const (
	ModeLight ThemeMode = "light"
	ModeDark  ThemeMode = "dark"
)

func ParseMode(s string) ThemeMode {
	if s == string(ModeDark) {
		return ModeDark
	}
	return ModeLight
}

// InteractiveState is a statically trackable pseudo-state variant. Classes
// behind other conditional prefixes (sm:, active:, group-hover:) are not
// paired at all because their rendering condition is not decidable statically.
type InteractiveState string

const (
	StateNone         InteractiveState = ""
	StateHover        InteractiveState = "hover"
	StateFocusVisible InteractiveState = "focus-visible"
	StateAriaDisabled InteractiveState = "aria-disabled"
)

// PairType selects the success criterion a pair is judged against. Non-text
// types (border/ring/outline) use the flat 3:1 threshold.
type PairType string

const (
	PairText    PairType = "text"
	PairBorder  PairType = "border"
	PairRing    PairType = "ring"
	PairOutline PairType = "outline"
)

type ContextSource string

const (
	SourceInferred   ContextSource = "inferred"
	SourceAnnotation ContextSource = "annotation"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func ParseSeverity(s string) Severity {
	switch s {
	case string(SeverityCritical):
		return SeverityCritical
	case string(SeverityHigh):
		return SeverityHigh
	case string(SeverityMedium):
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func SeverityGTE(a, b Severity) bool {
	order := map[Severity]int{SeverityLow: 1, SeverityMedium: 2, SeverityHigh: 3, SeverityCritical: 4}
	return order[a] >= order[b]
}

// Color is a resolved color value: css hex plus an alpha channel in [0,1].
type Color struct {
	Hex   string  `json:"hex"`
	Alpha float64 `json:"alpha"`
}

// InlineStyles captures literal color values from a style={{...}} object.
type InlineStyles struct {
	Color           string `json:"color,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// ContextOverride is parsed from an @a11y-context[-block] annotation and
// attaches to exactly one region or one synthetic context frame.
type ContextOverride struct {
	Bg        string `json:"bg,omitempty"`
	Fg        string `json:"fg,omitempty"`
	NoInherit bool   `json:"noInherit,omitempty"`
}

// ClassRegion is one extracted class-attribute occurrence together with the
// inherited visual context at that point of the scan. Immutable once emitted.
type ClassRegion struct {
	Content          string           `json:"content"`
	StartLine        int              `json:"startLine"`
	ContextBg        string           `json:"contextBg"`
	ContextAnnotated bool             `json:"contextAnnotated,omitempty"`
	InlineStyles     *InlineStyles    `json:"inlineStyles,omitempty"`
	ContextOverride  *ContextOverride `json:"contextOverride,omitempty"`
	EffectiveOpacity float64          `json:"effectiveOpacity"`
	Ignored          bool             `json:"ignored,omitempty"`
	IgnoreReason     string           `json:"ignoreReason,omitempty"`
}

// ContextFrame is one entry of the ancestor context stack. CumulativeOpacity
// never increases as frames push.
type ContextFrame struct {
	ComponentName     string
	Bg                string
	IsAnnotationFrame bool
	NoInherit         bool
	CumulativeOpacity float64
}

// TaggedClass is one class token after variant-prefix stripping.
type TaggedClass struct {
	Raw              string
	Base             string
	IsDark           bool
	IsInteractive    bool
	InteractiveState InteractiveState
}

// ColorPair is one candidate foreground/background combination. BgHex and
// TextHex are empty when that side did not resolve; for inherited backgrounds
// that is a legal state the checker decides how to surface.
type ColorPair struct {
	File             string           `json:"file"`
	Line             int              `json:"line"`
	Mode             ThemeMode        `json:"mode"`
	BgClass          string           `json:"bgClass"`
	TextClass        string           `json:"textClass"`
	BgHex            string           `json:"bgHex,omitempty"`
	TextHex          string           `json:"textHex,omitempty"`
	BgAlpha          float64          `json:"bgAlpha,omitempty"`
	TextAlpha        float64          `json:"textAlpha,omitempty"`
	IsLargeText      bool             `json:"isLargeText,omitempty"`
	PairType         PairType         `json:"pairType"`
	InteractiveState InteractiveState `json:"interactiveState,omitempty"`
	Ignored          bool             `json:"ignored,omitempty"`
	IgnoreReason     string           `json:"ignoreReason,omitempty"`
	ContextSource    ContextSource    `json:"contextSource,omitempty"`
	EffectiveOpacity float64          `json:"effectiveOpacity,omitempty"`
}

// SkippedClass records a class the pairing policy could not resolve but is
// required to surface rather than drop.
type SkippedClass struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	ClassName string `json:"className"`
	Reason    string `json:"reason"`
}

// CheckResult is the contrast checker's verdict for one pair.
type CheckResult struct {
	Ratio   float64 `json:"ratio"`
	PassAA  bool    `json:"passAA"`
	PassAAA bool    `json:"passAAA"`
	APCALc  float64 `json:"apcaLc"`
}

// Finding is one evaluated pair that failed its threshold, located in source
// and fingerprinted for baseline comparison.
type Finding struct {
	CheckID     string    `json:"checkId"`
	Severity    Severity  `json:"severity"`
	File        string    `json:"file"`
	Line        int       `json:"line"`
	Mode        ThemeMode `json:"mode"`
	Pair        ColorPair `json:"pair"`
	Ratio       float64   `json:"ratio"`
	Required    float64   `json:"required"`
	APCALc      float64   `json:"apcaLc"`
	Message     string    `json:"message"`
	Snippet     string    `json:"snippet,omitempty"`
	Fingerprint string    `json:"fingerprint"`
}

type ScanRequest struct {
	Root          string
	ConfigPath    string
	Modes         []ThemeMode
	ExhaustiveCVA bool
	Jobs          int
	BaselinePath  string
	NoCache       bool
}

type ScanResult struct {
	Findings []Finding      `json:"findings"`
	Skipped  []SkippedClass `json:"skipped"`
	Files    int            `json:"files"`
	Pairs    int            `json:"pairs"`
	Elapsed  time.Duration  `json:"elapsed"`
}
