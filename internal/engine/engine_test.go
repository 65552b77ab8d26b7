package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edocico/a11y-audit/internal/color"
	"github.com/edocico/a11y-audit/internal/config"
	"github.com/edocico/a11y-audit/internal/model"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return New(config.Default(), color.New(), nil)
}

var whitePage = model.Color{Hex: "#ffffff", Alpha: 1}

func TestScan_EndToEnd(t *testing.T) {
	root := t.TempDir()
	src := `export function App() {
  return (
    <main>
      <div className="bg-white text-white">unreadable</div>
      <p className="bg-black text-white">fine</p>
    </main>
  );
}
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.tsx"), []byte(src), 0o644))

	eng := testEngine(t)
	res, err := eng.Scan(context.Background(), model.ScanRequest{
		Root:    root,
		Modes:   []model.ThemeMode{model.ModeLight},
		NoCache: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Files)
	assert.GreaterOrEqual(t, res.Pairs, 2)
	require.Len(t, res.Findings, 1)

	f := res.Findings[0]
	assert.Equal(t, "contrast-text", f.CheckID)
	assert.Equal(t, model.SeverityHigh, f.Severity)
	assert.Equal(t, 4, f.Line)
	assert.Equal(t, model.ModeLight, f.Mode)
	assert.Equal(t, "bg-white", f.Pair.BgClass)
	assert.Equal(t, "text-white", f.Pair.TextClass)
	assert.InDelta(t, 1.0, f.Ratio, 1e-9)
	assert.Equal(t, 4.5, f.Required)
	assert.Contains(t, f.Message, "below the 4.5:1 minimum")
	assert.Contains(t, f.Snippet, "unreadable")
	assert.Len(t, f.Fingerprint, 64)
}

func TestScan_BothModes(t *testing.T) {
	root := t.TempDir()
	// fails only in dark mode: near-black text over the dark background token
	src := `<p className="bg-background text-zinc-900 dark:text-zinc-800">x</p>`
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.tsx"), []byte(src), 0o644))

	eng := testEngine(t)
	res, err := eng.Scan(context.Background(), model.ScanRequest{Root: root, NoCache: true})
	require.NoError(t, err)

	require.NotEmpty(t, res.Findings)
	for _, f := range res.Findings {
		assert.Equal(t, model.ModeDark, f.Mode, f.Message)
	}
}

func TestScan_InlineSuppression(t *testing.T) {
	root := t.TempDir()
	src := "// a11y-ignore: marketing banner\n<div className=\"bg-white text-white\">x</div>\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.tsx"), []byte(src), 0o644))

	eng := testEngine(t)
	res, err := eng.Scan(context.Background(), model.ScanRequest{
		Root: root, Modes: []model.ThemeMode{model.ModeLight}, NoCache: true,
	})
	require.NoError(t, err)

	assert.Empty(t, res.Findings)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "marketing banner", res.Skipped[0].Reason)
	assert.Equal(t, 2, res.Skipped[0].Line)
}

func TestScan_BaselineSuppresses(t *testing.T) {
	root := t.TempDir()
	src := `<div className="bg-white text-white">x</div>`
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.tsx"), []byte(src), 0o644))

	eng := testEngine(t)
	req := model.ScanRequest{Root: root, Modes: []model.ThemeMode{model.ModeLight}, NoCache: true}

	res, err := eng.Scan(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)

	baselinePath := filepath.Join(root, "baseline.json")
	require.NoError(t, WriteBaseline(baselinePath, res.Findings))

	req.BaselinePath = baselinePath
	res, err = eng.Scan(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, res.Findings)
}

func TestScan_MissingBaselineErrors(t *testing.T) {
	root := t.TempDir()
	eng := testEngine(t)

	_, err := eng.Scan(context.Background(), model.ScanRequest{
		Root: root, BaselinePath: filepath.Join(root, "absent.json"), NoCache: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load baseline")
}

func TestScan_CanceledContext(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "app.tsx"), []byte(`<div className="text-white">x</div>`), 0o644))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testEngine(t).Scan(ctx, model.ScanRequest{Root: root, NoCache: true})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanFiles_ExplicitList(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "only.tsx")
	require.NoError(t, os.WriteFile(path, []byte(`<div className="bg-white text-white">x</div>`), 0o644))

	res, err := testEngine(t).ScanFiles(context.Background(), []string{path}, model.ScanRequest{
		Modes: []model.ThemeMode{model.ModeLight}, NoCache: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Files)
	assert.Len(t, res.Findings, 1)
}

func TestScan_ExhaustiveCVAFindsNonDefaultVariants(t *testing.T) {
	root := t.TempDir()
	src := `const badge = cva('text-sm', {
  variants: {
    tone: {
      ok: 'bg-black text-white',
      broken: 'bg-white text-white'
    }
  },
  defaultVariants: { tone: 'ok' }
})
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "badge.tsx"), []byte(src), 0o644))

	eng := testEngine(t)
	req := model.ScanRequest{Root: root, Modes: []model.ThemeMode{model.ModeLight}, NoCache: true}

	res, err := eng.Scan(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, res.Findings) // default selection is fine

	req.ExhaustiveCVA = true
	res, err = eng.Scan(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "bg-white", res.Findings[0].Pair.BgClass)
}

func TestEvaluate_APCAAdvisory(t *testing.T) {
	eng := testEngine(t)
	// 4.69:1 passes WCAG AA, but APCA rates mid-gray on black far lower
	p := model.ColorPair{
		File: "a.tsx", Line: 1, Mode: model.ModeLight,
		BgClass: "bg-black", TextClass: "text-[#777777]",
		BgHex: "#000000", BgAlpha: 1, TextHex: "#777777", TextAlpha: 1,
		PairType: model.PairText,
	}

	f, bad := eng.evaluate(p, whitePage, "")
	require.True(t, bad)
	assert.Equal(t, "apca-contrast", f.CheckID)
	assert.Equal(t, model.SeverityLow, f.Severity)
	assert.Contains(t, f.Message, "passes WCAG but APCA")
}

func TestEvaluate_PassingPairYieldsNothing(t *testing.T) {
	eng := testEngine(t)
	p := model.ColorPair{
		BgHex: "#ffffff", BgAlpha: 1, TextHex: "#000000", TextAlpha: 1,
		PairType: model.PairText, Mode: model.ModeLight,
	}

	_, bad := eng.evaluate(p, whitePage, "")
	assert.False(t, bad)
}

func TestSeverityFor(t *testing.T) {
	assert.Equal(t, model.SeverityHigh, severityFor(model.ColorPair{PairType: model.PairText}))
	assert.Equal(t, model.SeverityMedium, severityFor(model.ColorPair{PairType: model.PairText, IsLargeText: true}))
	assert.Equal(t, model.SeverityMedium, severityFor(model.ColorPair{PairType: model.PairBorder}))
}

func TestApcaFloor(t *testing.T) {
	assert.Equal(t, 60.0, apcaFloor(model.ColorPair{PairType: model.PairText}))
	assert.Equal(t, 45.0, apcaFloor(model.ColorPair{PairType: model.PairText, IsLargeText: true}))
	assert.Equal(t, 30.0, apcaFloor(model.ColorPair{PairType: model.PairRing}))
}

func TestStateSuffix(t *testing.T) {
	assert.Empty(t, stateSuffix(model.ColorPair{}))
	assert.Equal(t, ", hover", stateSuffix(model.ColorPair{InteractiveState: model.StateHover}))
}
