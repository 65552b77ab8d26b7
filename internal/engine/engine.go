package engine

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/edocico/a11y-audit/internal/cache"
	"github.com/edocico/a11y-audit/internal/color"
	"github.com/edocico/a11y-audit/internal/config"
	"github.com/edocico/a11y-audit/internal/contrast"
	"github.com/edocico/a11y-audit/internal/jsx"
	"github.com/edocico/a11y-audit/internal/model"
	"github.com/edocico/a11y-audit/internal/util"
)

// cacheTag versions the cached region format; bump on any ClassRegion or
// extraction change.
const cacheTag = "regions-v1"

type Engine struct {
	cfg      config.Config
	resolver *color.Resolver
	checker  contrast.Checker
	log      *slog.Logger
}

func New(cfg config.Config, res *color.Resolver, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{cfg: cfg, resolver: res, log: log}
}

func (e *Engine) Scan(ctx context.Context, req model.ScanRequest) (*model.ScanResult, error) {
	start := time.Now()
	files := discoverFiles(req.Root, e.cfg.Include, e.cfg.Exclude)
	return e.scanPaths(ctx, files, req, start)
}

// ScanFiles runs the pipeline over an explicit file list; watch mode uses it
// to rescan only what changed.
func (e *Engine) ScanFiles(ctx context.Context, files []string, req model.ScanRequest) (*model.ScanResult, error) {
	return e.scanPaths(ctx, files, req, time.Now())
}

func (e *Engine) scanPaths(ctx context.Context, files []string, req model.ScanRequest, start time.Time) (*model.ScanResult, error) {
	modes := req.Modes
	if len(modes) == 0 {
		for _, m := range e.cfg.Modes {
			modes = append(modes, model.ParseMode(m))
		}
	}
	if len(modes) == 0 {
		modes = []model.ThemeMode{model.ModeLight}
	}
	pageBg := map[model.ThemeMode]model.Color{}
	for _, m := range modes {
		pageBg[m] = e.pageBg(m)
	}
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = e.cfg.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs < 2 {
		jobs = 2
	}
	e.log.Debug("scan start", "files", len(files), "modes", len(modes), "jobs", jobs)

	type fileResult struct {
		findings []model.Finding
		skipped  []model.SkippedClass
		pairs    int
	}
	results := make([]fileResult, len(files))
	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			fr := &results[i]
			fr.findings, fr.skipped, fr.pairs = e.scanFile(path, modes, pageBg, req)
		}(i, path)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// merge in dispatch order so output is stable run to run
	res := &model.ScanResult{Files: len(files)}
	for _, fr := range results {
		res.Findings = append(res.Findings, fr.findings...)
		res.Skipped = append(res.Skipped, fr.skipped...)
		res.Pairs += fr.pairs
	}
	res.Findings = dedupe(res.Findings)
	res.Findings = applyIgnores(res.Findings, e.cfg)
	res.Findings = filterBySeverity(res.Findings, e.cfg)
	if req.BaselinePath != "" {
		b, err := loadBaseline(req.BaselinePath)
		if err != nil {
			return nil, fmt.Errorf("load baseline %s: %w", req.BaselinePath, err)
		}
		res.Findings = filterByBaseline(res.Findings, b)
	}
	res.Elapsed = time.Since(start)
	e.log.Debug("scan done", "findings", len(res.Findings), "pairs", res.Pairs, "elapsed", res.Elapsed)
	return res, nil
}

func (e *Engine) scanFile(path string, modes []model.ThemeMode, pageBg map[model.ThemeMode]model.Color, req model.ScanRequest) ([]model.Finding, []model.SkippedClass, int) {
	src, err := os.ReadFile(path)
	if err != nil {
		e.log.Warn("read failed", "file", path, "err", err)
		return nil, nil, 0
	}
	content := string(src)
	regions := e.extract(content, req.NoCache)

	var findings []model.Finding
	var skipped []model.SkippedClass
	pairs := 0
	exhaustive := req.ExhaustiveCVA || e.cfg.ExhaustiveCVA
	for _, region := range regions {
		if region.Ignored {
			skipped = append(skipped, model.SkippedClass{
				File: path, Line: region.StartLine, ClassName: region.Content, Reason: region.IgnoreReason,
			})
			continue
		}
		expanded := []model.ClassRegion{region}
		if jsx.IsCVABody(region.Content) {
			expanded = jsx.ExpandCVA(region, exhaustive)
		}
		for _, r := range expanded {
			for _, mode := range modes {
				ps, sk := jsx.GeneratePairs(path, r, e.resolver, mode)
				skipped = append(skipped, sk...)
				pairs += len(ps)
				for _, p := range ps {
					if f, bad := e.evaluate(p, pageBg[mode], content); bad {
						findings = append(findings, f)
					}
				}
			}
		}
	}
	return findings, skipped, pairs
}

// extract returns the file's class regions, going through the content-hash
// cache unless disabled.
func (e *Engine) extract(content string, noCache bool) []model.ClassRegion {
	opts := jsx.Options{Containers: e.cfg.Containers, Portals: e.cfg.Portals, DefaultBg: e.cfg.DefaultBg}
	if noCache {
		return jsx.Extract(content, opts)
	}
	key := cache.Key(cacheTag, content, e.optsKey(opts))
	if regions, ok := cache.LoadRegions(key); ok {
		return regions
	}
	regions := jsx.Extract(content, opts)
	_ = cache.StoreRegions(key, regions)
	return regions
}

// optsKey folds everything that changes extraction output into the cache key.
func (e *Engine) optsKey(o jsx.Options) string {
	parts := []string{"bg=" + o.DefaultBg}
	for k, v := range o.Containers {
		parts = append(parts, "c:"+k+"="+v)
	}
	for k, v := range o.Portals {
		parts = append(parts, "p:"+k+"="+v)
	}
	sort.Strings(parts)
	return cache.Key(parts...)
}

// pageBg resolves the configured page background for a mode, falling back to
// plain white/near-black when the token is unknown to the theme.
func (e *Engine) pageBg(mode model.ThemeMode) model.Color {
	if c, ok := e.resolver.Resolve(e.cfg.DefaultBg, mode); ok {
		return c
	}
	if mode == model.ModeDark {
		return model.Color{Hex: "#09090b", Alpha: 1}
	}
	return model.Color{Hex: "#ffffff", Alpha: 1}
}

// evaluate runs one pair through the checker and maps failures to findings.
// WCAG failures gate; APCA shortfalls on passing pairs surface as advisories.
func (e *Engine) evaluate(p model.ColorPair, page model.Color, content string) (model.Finding, bool) {
	res := e.checker.Check(p, page)
	required := contrast.Threshold(p)
	if !res.PassAA {
		f := e.finding("contrast-"+string(p.PairType), severityFor(p), p, res, required, content)
		f.Message = fmt.Sprintf("%s on %s is %.2f:1, below the %.1f:1 minimum (%s mode%s)",
			p.TextClass, p.BgClass, res.Ratio, required, p.Mode, stateSuffix(p))
		return f, true
	}
	if floor := apcaFloor(p); math.Abs(res.APCALc) < floor {
		f := e.finding("apca-contrast", model.SeverityLow, p, res, required, content)
		f.Message = fmt.Sprintf("%s on %s passes WCAG but APCA Lc %.0f is under %.0f (%s mode%s)",
			p.TextClass, p.BgClass, res.APCALc, floor, p.Mode, stateSuffix(p))
		return f, true
	}
	return model.Finding{}, false
}

func (e *Engine) finding(checkID string, sev model.Severity, p model.ColorPair, res model.CheckResult, required float64, content string) model.Finding {
	return model.Finding{
		CheckID:     checkID,
		Severity:    sev,
		File:        p.File,
		Line:        p.Line,
		Mode:        p.Mode,
		Pair:        p,
		Ratio:       res.Ratio,
		Required:    required,
		APCALc:      res.APCALc,
		Snippet:     util.ExtractSnippet(content, p.Line, p.Line, 3),
		Fingerprint: util.Fingerprint(checkID, p.File, p.Line, pairKey(p)),
	}
}

// severityFor grades WCAG failures: normal body text is the user-facing worst
// case, everything else reads or decorates at larger scale.
func severityFor(p model.ColorPair) model.Severity {
	if p.PairType == model.PairText && !p.IsLargeText {
		return model.SeverityHigh
	}
	return model.SeverityMedium
}

// apcaFloor returns the advisory APCA Lc minimum for a pair: 60 body text,
// 45 large text, 30 non-text.
func apcaFloor(p model.ColorPair) float64 {
	switch {
	case p.PairType != model.PairText:
		return 30
	case p.IsLargeText:
		return 45
	default:
		return 60
	}
}

func stateSuffix(p model.ColorPair) string {
	if p.InteractiveState == model.StateNone {
		return ""
	}
	return ", " + string(p.InteractiveState)
}
