package jsx

import (
	"strconv"
	"strings"

	"github.com/edocico/a11y-audit/internal/model"
)

// PortalReset is the portal config sentinel selecting the page default
// background instead of a concrete class.
const PortalReset = "reset"

// visibilityFloor is the cumulative opacity below which an element is treated
// as effectively invisible.
const visibilityFloor = 0.10

// Options configures one extraction pass over a single file.
type Options struct {
	Containers map[string]string // component name -> inherited bg class
	Portals    map[string]string // component name -> bg class or PortalReset
	DefaultBg  string            // page background class, e.g. "bg-background"
}

// Extract runs one forward pass over src and returns every class-bearing
// region in source order with its inherited context attached. It never fails:
// malformed or truncated input yields whatever was collected up to that point.
func Extract(src string, opts Options) []model.ClassRegion {
	s := &scanner{
		src:   src,
		lines: newLineIndex(src),
		opts:  opts,
		stack: newContextStack(opts.DefaultBg),
	}
	for s.pos < len(s.src) {
		prev := s.pos
		s.step()
		if s.pos <= prev {
			s.pos = prev + 1 // forward progress is the termination guarantee
		}
	}
	return s.regions
}

type scanner struct {
	src     string
	pos     int
	lines   *lineIndex
	opts    Options
	stack   *contextStack
	pending pendingAnnot
	regions []model.ClassRegion
}

func (s *scanner) step() {
	switch c := s.src[s.pos]; {
	case c == '/' && s.peek(1) == '/':
		s.lineComment()
	case c == '/' && s.peek(1) == '*':
		s.blockComment()
	case c == '<':
		s.tag()
	case c == 'c':
		s.bareCall()
	default:
		s.pos++
	}
}

func (s *scanner) peek(off int) byte {
	if s.pos+off >= len(s.src) {
		return 0
	}
	return s.src[s.pos+off]
}

func (s *scanner) lineComment() {
	var text string
	if end := strings.IndexByte(s.src[s.pos:], '\n'); end < 0 {
		text = s.src[s.pos+2:]
		s.pos = len(s.src)
	} else {
		text = s.src[s.pos+2 : s.pos+end]
		s.pos += end + 1
	}
	s.pending.consume(text)
}

func (s *scanner) blockComment() {
	rest := s.src[s.pos+2:]
	var text string
	if end := strings.Index(rest, "*/"); end < 0 {
		text = rest
		s.pos = len(s.src)
	} else {
		text = rest[:end]
		s.pos += 2 + end + 2
	}
	s.pending.consume(text)
}

func (s *scanner) tag() {
	if s.peek(1) == '/' {
		s.closeTag()
		return
	}
	if !isNameStartByte(s.peek(1)) {
		s.pos++
		return
	}
	s.openTag()
}

func (s *scanner) closeTag() {
	name, p := readTagName(s.src, s.pos+2)
	end := strings.IndexByte(s.src[p:], '>')
	if end < 0 {
		s.pos = len(s.src)
		return
	}
	s.pos = p + end + 1
	if name != "" {
		s.stack.popMatching(name)
	}
}

func (s *scanner) openTag() {
	start := s.pos
	name, p := readTagName(s.src, start+1)
	a, ok := s.scanAttrs(p)
	if !ok {
		// unterminated tag: drop the match, resume after the name
		s.pos = p
		return
	}
	s.pos = a.end

	tokens := strings.Fields(a.class)
	opac := ownOpacity(tokens)
	eff := clamp01(s.stack.opacity() * opac)

	var override *model.ContextOverride
	blockClaimed := false
	switch s.pending.state {
	case annotPendingBlock:
		blockClaimed = true
		ov := s.pending.override
		override = &ov
	case annotPendingSingle:
		ov := s.pending.override
		override = &ov
	}
	ignored, ignoreReason := s.pending.ignore, s.pending.ignoreReason
	s.pending = pendingAnnot{} // any completed tag clears pending state

	if !a.selfClosing {
		switch {
		case blockClaimed:
			bg := override.Bg
			if bg == "" {
				bg, _ = s.stack.current()
			}
			s.stack.push(model.ContextFrame{
				ComponentName:     name,
				Bg:                bg,
				IsAnnotationFrame: true,
				NoInherit:         override.NoInherit,
				CumulativeOpacity: eff,
			})
		default:
			if pbg, isPortal := s.opts.Portals[name]; isPortal {
				if pbg == PortalReset {
					pbg = s.opts.DefaultBg
				}
				// portals render outside normal flow: ancestor opacity resets
				s.stack.push(model.ContextFrame{ComponentName: name, Bg: pbg, CumulativeOpacity: clamp01(opac)})
			} else if cbg, isContainer := s.opts.Containers[name]; isContainer {
				if ebg := explicitBgClass(tokens); ebg != "" {
					cbg = ebg
				}
				s.stack.push(model.ContextFrame{ComponentName: name, Bg: cbg, CumulativeOpacity: eff})
			} else if opac != 1 {
				s.stack.push(model.ContextFrame{ComponentName: name, CumulativeOpacity: eff})
			}
		}
	}

	if !a.hasClass && a.style == nil {
		return
	}

	at := start
	if a.hasClass {
		at = a.classPos
	}
	bg, fromAnnot := s.stack.current()
	if override != nil && override.NoInherit && override.Bg == "" {
		bg, fromAnnot = s.opts.DefaultBg, false
	}
	r := model.ClassRegion{
		Content:          a.class,
		StartLine:        s.lines.lineAt(at),
		ContextBg:        bg,
		ContextAnnotated: fromAnnot,
		InlineStyles:     a.style,
		ContextOverride:  override,
		EffectiveOpacity: eff,
	}
	if eff < visibilityFloor {
		r.Ignored, r.IgnoreReason = true, "effectively invisible"
	}
	if ignored {
		r.Ignored, r.IgnoreReason = true, ignoreReason
	}
	s.regions = append(s.regions, r)
}

type tagAttrs struct {
	end         int // position just past '>'
	selfClosing bool
	hasClass    bool
	class       string
	classPos    int
	style       *model.InlineStyles
}

// scanAttrs walks a tag's attribute text up to '>' or '/>'. Brace depth and
// string state gate the terminator check so a slash inside an attribute value
// never ends the tag.
func (s *scanner) scanAttrs(p int) (tagAttrs, bool) {
	var a tagAttrs
	depth := 0
	for p < len(s.src) {
		c := s.src[p]
		switch {
		case c == '>' && depth == 0:
			a.end = p + 1
			return a, true
		case c == '/' && depth == 0 && p+1 < len(s.src) && s.src[p+1] == '>':
			a.end = p + 2
			a.selfClosing = true
			return a, true
		case c == '{':
			depth++
			p++
		case c == '}':
			if depth > 0 {
				depth--
			}
			p++
		case c == '"' || c == '\'':
			np, ok := skipString(s.src, p)
			if !ok {
				return a, false
			}
			p = np
		case c == '`':
			np, ok := skipTemplate(s.src, p)
			if !ok {
				return a, false
			}
			p = np
		case depth == 0 && isNameStartByte(c):
			np, ok := s.attr(&a, p)
			if !ok {
				return a, false
			}
			p = np
		default:
			p++
		}
	}
	return a, false
}

// attr reads one bare or valued attribute at brace depth 0.
func (s *scanner) attr(a *tagAttrs, p int) (int, bool) {
	nameStart := p
	for p < len(s.src) && identByte(s.src[p]) {
		p++
	}
	name := s.src[nameStart:p]
	if p >= len(s.src) || s.src[p] != '=' {
		return p, true // boolean attribute
	}
	p++
	if p >= len(s.src) {
		return p, false
	}
	switch name {
	case "className", "class":
		return s.classValue(a, p)
	case "style":
		return s.styleValue(a, p)
	}
	return skipAttrValue(s.src, p)
}

func (s *scanner) classValue(a *tagAttrs, p int) (int, bool) {
	switch s.src[p] {
	case '"', '\'':
		content, np, ok := readQuoted(s.src, p)
		if !ok {
			return p, false
		}
		a.hasClass, a.class, a.classPos = true, content, p+1
		return np, true
	case '{':
		return s.bracedClass(a, p)
	}
	return p, true
}

// bracedClass handles className={…}: string and template literals plus
// cn()/clsx() calls. Any other expression is not statically class-bearing and
// is skipped whole.
func (s *scanner) bracedClass(a *tagAttrs, p int) (int, bool) {
	open := p
	p = skipWS(s.src, p+1)
	if p >= len(s.src) {
		return p, false
	}
	switch c := s.src[p]; {
	case c == '"' || c == '\'':
		content, _, ok := readJSString(s.src, p)
		if !ok {
			return p, false
		}
		a.hasClass, a.class, a.classPos = true, content, p+1
	case c == '`':
		content, _, ok := readTemplate(s.src, p)
		if !ok {
			return p, false
		}
		a.hasClass, a.class, a.classPos = true, content, p+1
	default:
		if fn, np := matchCallName(s.src, p); fn == "cn" || fn == "clsx" {
			content, _, ok := collectCallLiterals(s.src, np)
			if !ok {
				return p, false
			}
			a.hasClass, a.class, a.classPos = true, content, p
		}
	}
	return skipBraced(s.src, open)
}

// styleValue pulls literal color/backgroundColor values out of style={{…}}.
// Only string literals count; computed values are invisible to a static scan.
func (s *scanner) styleValue(a *tagAttrs, p int) (int, bool) {
	if s.src[p] != '{' {
		return skipAttrValue(s.src, p)
	}
	end, ok := skipBraced(s.src, p)
	if !ok {
		return p, false
	}
	if st := parseInlineStyle(s.src[p:end]); st != nil {
		a.style = st
	}
	return end, true
}

func skipAttrValue(src string, p int) (int, bool) {
	switch src[p] {
	case '"', '\'':
		_, np, ok := readQuoted(src, p)
		return np, ok
	case '{':
		return skipBraced(src, p)
	}
	return p + 1, true
}

// bareCall matches top-level cn( / clsx( / cva( not preceded by an identifier
// character, so mycn( never matches.
func (s *scanner) bareCall() {
	if s.pos > 0 && identByte(s.src[s.pos-1]) {
		s.pos++
		return
	}
	name, p := matchCallName(s.src, s.pos)
	switch name {
	case "cn", "clsx":
		content, np, ok := collectCallLiterals(s.src, p)
		if !ok || strings.TrimSpace(content) == "" {
			s.pos = p
			return
		}
		s.emitBare(content, s.pos)
		s.pos = np
	case "cva":
		body, np, ok := rawCallBody(s.src, p)
		if !ok {
			s.pos = p
			return
		}
		s.emitBare(body, s.pos)
		s.pos = np
	default:
		s.pos++
	}
}

// emitBare appends a region for a class-bearing call outside any tag. A
// pending single annotation attaches here; a pending block waits for a tag.
func (s *scanner) emitBare(content string, at int) {
	bg, fromAnnot := s.stack.current()
	eff := s.stack.opacity()
	r := model.ClassRegion{
		Content:          content,
		StartLine:        s.lines.lineAt(at),
		ContextBg:        bg,
		ContextAnnotated: fromAnnot,
		EffectiveOpacity: eff,
	}
	if s.pending.state == annotPendingSingle {
		ov := s.pending.override
		r.ContextOverride = &ov
		if ov.NoInherit && ov.Bg == "" {
			r.ContextBg, r.ContextAnnotated = s.opts.DefaultBg, false
		}
		s.pending.state = annotIdle
		s.pending.override = model.ContextOverride{}
	}
	if eff < visibilityFloor {
		r.Ignored, r.IgnoreReason = true, "effectively invisible"
	}
	if s.pending.ignore {
		r.Ignored, r.IgnoreReason = true, s.pending.ignoreReason
		s.pending.ignore = false
		s.pending.ignoreReason = ""
	}
	s.regions = append(s.regions, r)
}

func readTagName(src string, p int) (string, int) {
	start := p
	if p < len(src) && isNameStartByte(src[p]) {
		p++
		for p < len(src) && (identByte(src[p]) || src[p] == '.') {
			p++
		}
	}
	return src[start:p], p
}

func parseInlineStyle(body string) *model.InlineStyles {
	st := model.InlineStyles{
		Color:           styleLiteral(body, "color"),
		BackgroundColor: styleLiteral(body, "backgroundColor"),
	}
	if st.Color == "" && st.BackgroundColor == "" {
		return nil
	}
	return &st
}

// styleLiteral extracts the string literal assigned to key inside an object
// body, if any.
func styleLiteral(body, key string) string {
	i := findToken(body, key)
	if i < 0 {
		return ""
	}
	p := i + len(key)
	if p < len(body) && (body[p] == '"' || body[p] == '\'') {
		p++ // quoted key
	}
	p = skipWS(body, p)
	if p >= len(body) || body[p] != ':' {
		return ""
	}
	p = skipWS(body, p+1)
	if p >= len(body) || (body[p] != '"' && body[p] != '\'') {
		return ""
	}
	v, _, ok := readJSString(body, p)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// ownOpacity reads an unprefixed opacity-N utility off the token list. The
// last one wins.
func ownOpacity(tokens []string) float64 {
	v := 1.0
	for _, t := range tokens {
		rest, ok := strings.CutPrefix(t, "opacity-")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n >= 0 {
			v = clamp01(float64(n) / 100)
		}
	}
	return v
}

// explicitBgClass returns the first unprefixed bg color utility, which beats
// a container's configured background.
func explicitBgClass(tokens []string) string {
	for _, t := range tokens {
		if variantColon(t) < 0 && isBgColor(t) {
			return t
		}
	}
	return ""
}
