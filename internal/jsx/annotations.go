package jsx

import (
	"strings"

	"github.com/edocico/a11y-audit/internal/model"
)

type annotState int

const (
	annotIdle annotState = iota
	annotPendingSingle
	annotPendingBlock
)

// pendingAnnot holds directive state parsed from comments until the next tag
// or class-bearing construct consumes it. Scoped to one Extract call; never
// shared across files.
type pendingAnnot struct {
	state        annotState
	override     model.ContextOverride
	ignore       bool
	ignoreReason string
}

// consume inspects one comment's text for annotation directives. A later
// directive of the same kind overwrites an unconsumed earlier one.
func (p *pendingAnnot) consume(text string) {
	if i := findToken(text, "@a11y-context-block"); i >= 0 {
		if ov, ok := parseOverride(text[i+len("@a11y-context-block"):]); ok {
			p.state = annotPendingBlock
			p.override = ov
		}
	} else if i := findToken(text, "@a11y-context"); i >= 0 {
		if ov, ok := parseOverride(text[i+len("@a11y-context"):]); ok {
			p.state = annotPendingSingle
			p.override = ov
		}
	}
	if i := findToken(text, "a11y-ignore"); i >= 0 {
		p.ignore = true
		p.ignoreReason = parseIgnoreReason(text[i+len("a11y-ignore"):])
	}
}

// parseOverride reads space-separated bg:/fg:/no-inherit params. An override
// carrying neither bg nor fg is discarded.
func parseOverride(params string) (model.ContextOverride, bool) {
	var ov model.ContextOverride
	for _, tok := range strings.Fields(params) {
		switch {
		case strings.HasPrefix(tok, "bg:"):
			ov.Bg = tok[len("bg:"):]
		case strings.HasPrefix(tok, "fg:"):
			ov.Fg = tok[len("fg:"):]
		case tok == "no-inherit":
			ov.NoInherit = true
		}
	}
	if ov.Bg == "" && ov.Fg == "" {
		return model.ContextOverride{}, false
	}
	return ov, true
}

func parseIgnoreReason(rest string) string {
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, ":") {
		if r := strings.TrimSpace(rest[1:]); r != "" {
			return r
		}
	}
	return "suppressed"
}
