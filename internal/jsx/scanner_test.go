package jsx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOpts() Options {
	return Options{
		Containers: map[string]string{"Card": "bg-card"},
		Portals: map[string]string{
			"DialogContent":  "bg-background",
			"TooltipContent": "bg-primary",
			"Portal":         "reset",
		},
		DefaultBg: "bg-background",
	}
}

func TestExtract_PlainClassName(t *testing.T) {
	regions := Extract(`<div className="bg-red-500 text-white">x</div>`, testOpts())

	require.Len(t, regions, 1)
	assert.Equal(t, "bg-red-500 text-white", regions[0].Content)
	assert.Equal(t, "bg-background", regions[0].ContextBg)
	assert.Equal(t, 1, regions[0].StartLine)
	assert.Equal(t, 1.0, regions[0].EffectiveOpacity)
	assert.False(t, regions[0].Ignored)
	assert.Nil(t, regions[0].ContextOverride)
}

func TestExtract_ExpressionForms(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"single quoted", `<div className={'p-2 text-sm'}>x</div>`, "p-2 text-sm"},
		{"double quoted", `<div className={"p-2 text-sm"}>x</div>`, "p-2 text-sm"},
		{"template", "<div className={`p-2 ${color} text-sm`}>x</div>", "p-2 ${} text-sm"},
		{"cn call", `<div className={cn('rounded', active && 'bg-primary', "text-sm")}>x</div>`, "rounded bg-primary text-sm"},
		{"clsx call", `<div className={clsx("flex", cond ? 'text-white' : 'text-black')}>x</div>`, "flex text-white text-black"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			regions := Extract(tc.src, testOpts())
			require.Len(t, regions, 1)
			assert.Equal(t, tc.want, regions[0].Content)
		})
	}
}

func TestExtract_NonLiteralExpressionSkipped(t *testing.T) {
	regions := Extract(`<div className={styles.root}>x</div>`, testOpts())
	assert.Empty(t, regions)
}

func TestExtract_SelfClosingWithExpressionSlash(t *testing.T) {
	src := `<Avatar className="h-8 w-8" onLoad={() => track(1 > 0)} />` + "\n" +
		`<p className="text-white">hi</p>`
	regions := Extract(src, testOpts())

	require.Len(t, regions, 2)
	assert.Equal(t, "h-8 w-8", regions[0].Content)
	// the arrow body's '>' must not terminate the tag early
	assert.Equal(t, "bg-background", regions[1].ContextBg)
}

func TestExtract_ContainerContext(t *testing.T) {
	regions := Extract(`<Card><span className="text-white">x</span></Card>`, testOpts())

	require.Len(t, regions, 1)
	assert.Equal(t, "bg-card", regions[0].ContextBg)
	assert.False(t, regions[0].ContextAnnotated)
}

func TestExtract_ContainerExplicitBgWins(t *testing.T) {
	src := `<Card className="bg-zinc-900 p-4"><span className="text-white">x</span></Card>`
	regions := Extract(src, testOpts())

	require.Len(t, regions, 2)
	assert.Equal(t, "bg-zinc-900", regions[1].ContextBg)
}

func TestExtract_PortalResetsContextAndOpacity(t *testing.T) {
	src := `<Card className="opacity-50">
<DialogContent>
<p className="text-sm">hi</p>
</DialogContent>
<span className="text-xs">inside card</span>
</Card>`
	regions := Extract(src, testOpts())
	require.Len(t, regions, 3)

	card, p, span := regions[0], regions[1], regions[2]
	assert.Equal(t, 0.5, card.EffectiveOpacity)
	assert.Equal(t, "bg-background", p.ContextBg)
	assert.Equal(t, 1.0, p.EffectiveOpacity) // portals do not inherit ancestor opacity
	assert.Equal(t, "bg-card", span.ContextBg)
	assert.Equal(t, 0.5, span.EffectiveOpacity)
}

func TestExtract_PortalSentinelUsesDefaultBg(t *testing.T) {
	src := `<Card><Portal><p className="text-sm">x</p></Portal></Card>`
	regions := Extract(src, testOpts())

	require.Len(t, regions, 1)
	assert.Equal(t, "bg-background", regions[0].ContextBg)
}

func TestExtract_OpacityAccumulatesMultiplicatively(t *testing.T) {
	src := `<div className="opacity-50"><div className="opacity-50"><p className="text-white">x</p></div></div>`
	regions := Extract(src, testOpts())

	require.Len(t, regions, 3)
	assert.Equal(t, 0.5, regions[0].EffectiveOpacity)
	assert.Equal(t, 0.25, regions[1].EffectiveOpacity)
	assert.Equal(t, 0.25, regions[2].EffectiveOpacity)
}

func TestExtract_VisibilityFloor(t *testing.T) {
	regions := Extract(`<div className="opacity-5 text-white">x</div>`, testOpts())

	require.Len(t, regions, 1)
	assert.True(t, regions[0].Ignored)
	assert.Equal(t, "effectively invisible", regions[0].IgnoreReason)
}

func TestExtract_SingleAnnotation(t *testing.T) {
	src := "// @a11y-context bg:#09090b\n<span className=\"text-white\">Badge</span>"
	regions := Extract(src, testOpts())

	require.Len(t, regions, 1)
	require.NotNil(t, regions[0].ContextOverride)
	assert.Equal(t, "#09090b", regions[0].ContextOverride.Bg)
}

func TestExtract_SingleAnnotationAttachesOnce(t *testing.T) {
	src := "// @a11y-context bg:#111111\n<span className=\"text-white\">a</span>\n<span className=\"text-white\">b</span>"
	regions := Extract(src, testOpts())

	require.Len(t, regions, 2)
	assert.NotNil(t, regions[0].ContextOverride)
	assert.Nil(t, regions[1].ContextOverride)
}

func TestExtract_SingleAnnotationClearedByClasslessTag(t *testing.T) {
	src := "// @a11y-context bg:#111111\n<div>\n<span className=\"text-white\">x</span>\n</div>"
	regions := Extract(src, testOpts())

	require.Len(t, regions, 1)
	assert.Nil(t, regions[0].ContextOverride)
}

func TestExtract_AnnotationWithoutBgOrFgDiscarded(t *testing.T) {
	src := "// @a11y-context no-inherit\n<span className=\"text-white\">x</span>"
	regions := Extract(src, testOpts())

	require.Len(t, regions, 1)
	assert.Nil(t, regions[0].ContextOverride)
}

func TestExtract_BlockAnnotation(t *testing.T) {
	src := `{/* @a11y-context-block bg:#18181b */}
<section className="p-4">
<p className="text-white">x</p>
</section>
<p className="text-black">after</p>`
	regions := Extract(src, testOpts())
	require.Len(t, regions, 3)

	section, inner, after := regions[0], regions[1], regions[2]
	require.NotNil(t, section.ContextOverride)
	assert.Equal(t, "#18181b", section.ContextOverride.Bg)
	assert.Equal(t, "#18181b", inner.ContextBg)
	assert.True(t, inner.ContextAnnotated)
	assert.Nil(t, inner.ContextOverride)
	assert.Equal(t, "bg-background", after.ContextBg)
	assert.False(t, after.ContextAnnotated)
}

func TestExtract_NoInheritScopesToElement(t *testing.T) {
	src := `<Card>
{/* @a11y-context fg:#ffffff no-inherit */}
<span className="text-xs">legal</span>
<span className="text-xs">plain</span>
</Card>`
	regions := Extract(src, testOpts())
	require.Len(t, regions, 2)

	annotated, plain := regions[0], regions[1]
	require.NotNil(t, annotated.ContextOverride)
	assert.Equal(t, "#ffffff", annotated.ContextOverride.Fg)
	assert.Equal(t, "bg-background", annotated.ContextBg) // inheritance blocked
	assert.Equal(t, "bg-card", plain.ContextBg)
}

func TestExtract_IgnoreAnnotation(t *testing.T) {
	t.Run("with reason", func(t *testing.T) {
		src := "// a11y-ignore: brand exception\n<div className=\"bg-red-500 text-white\">x</div>"
		regions := Extract(src, testOpts())
		require.Len(t, regions, 1)
		assert.True(t, regions[0].Ignored)
		assert.Equal(t, "brand exception", regions[0].IgnoreReason)
	})
	t.Run("default reason", func(t *testing.T) {
		src := "// a11y-ignore\n<div className=\"bg-red-500 text-white\">x</div>"
		regions := Extract(src, testOpts())
		require.Len(t, regions, 1)
		assert.True(t, regions[0].Ignored)
		assert.Equal(t, "suppressed", regions[0].IgnoreReason)
	})
}

func TestExtract_NonMatchingCloseIsNoOp(t *testing.T) {
	src := `<Card></div><span className="text-white">x</span></Card>`
	regions := Extract(src, testOpts())

	require.Len(t, regions, 1)
	assert.Equal(t, "bg-card", regions[0].ContextBg)
}

func TestExtract_InlineStyle(t *testing.T) {
	src := `<div style={{ color: '#fff', backgroundColor: '#000' }}>x</div>`
	regions := Extract(src, testOpts())

	require.Len(t, regions, 1)
	require.NotNil(t, regions[0].InlineStyles)
	assert.Equal(t, "#fff", regions[0].InlineStyles.Color)
	assert.Equal(t, "#000", regions[0].InlineStyles.BackgroundColor)
	assert.Empty(t, regions[0].Content)
}

func TestExtract_InlineStyleComputedValueInvisible(t *testing.T) {
	src := `<div style={{ color: theme.fg }} className="text-sm">x</div>`
	regions := Extract(src, testOpts())

	require.Len(t, regions, 1)
	assert.Nil(t, regions[0].InlineStyles)
}

func TestExtract_BareCalls(t *testing.T) {
	t.Run("cn", func(t *testing.T) {
		src := `const styles = cn('bg-zinc-900 text-white', 'rounded')`
		regions := Extract(src, testOpts())
		require.Len(t, regions, 1)
		assert.Equal(t, "bg-zinc-900 text-white rounded", regions[0].Content)
		assert.Equal(t, "bg-background", regions[0].ContextBg)
	})
	t.Run("identifier prefix never matches", func(t *testing.T) {
		src := `const styles = mycn('bg-red-500 text-white')`
		regions := Extract(src, testOpts())
		assert.Empty(t, regions)
	})
	t.Run("cva body kept verbatim", func(t *testing.T) {
		src := `const button = cva('inline-flex text-sm', {
  variants: {
    variant: {
      default: 'bg-primary text-primary-foreground',
      outline: 'border border-input'
    }
  },
  defaultVariants: { variant: 'default' }
})`
		regions := Extract(src, testOpts())
		require.Len(t, regions, 1)
		assert.True(t, strings.HasPrefix(regions[0].Content, "'inline-flex text-sm'"))
		assert.Contains(t, regions[0].Content, "variants:")
		assert.True(t, IsCVABody(regions[0].Content))
	})
}

func TestExtract_LineNumbers(t *testing.T) {
	src := "\n\n<div\n  className=\"text-white\"\n>x</div>"
	regions := Extract(src, testOpts())

	require.Len(t, regions, 1)
	assert.Equal(t, 4, regions[0].StartLine)
}

func TestExtract_UnterminatedInput(t *testing.T) {
	cases := []string{
		`<div className="bg-red-500 text-white`,
		`<div className={cn('a'`,
		"<div className={`p-2 ${color",
		`<div className=`,
		`<Card><span className="text-white">x`,
		`{/* never closed`,
		`<`,
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			assert.NotPanics(t, func() { Extract(src, testOpts()) })
		})
	}
}

func TestExtract_RegionsInSourceOrder(t *testing.T) {
	src := `<div className="text-sm">a</div>
<div className="text-xs">b</div>
<div className="text-lg">c</div>`
	regions := Extract(src, testOpts())

	require.Len(t, regions, 3)
	assert.Equal(t, []string{"text-sm", "text-xs", "text-lg"}, []string{
		regions[0].Content, regions[1].Content, regions[2].Content,
	})
	assert.True(t, regions[0].StartLine <= regions[1].StartLine)
	assert.True(t, regions[1].StartLine <= regions[2].StartLine)
}

func FuzzExtract(f *testing.F) {
	f.Add(`<div className="bg-red-500 text-white">x</div>`)
	f.Add(`<Card><span className="text-white">x</span></Card>`)
	f.Add("// @a11y-context bg:#09090b\n<span className=\"text-white\">Badge</span>")
	f.Add(`{/* @a11y-context-block bg:#111 no-inherit */}<div className="p-2">x</div>`)
	f.Add("<div className={`p-2 ${color} text-sm`}>x</div>")
	f.Add(`<div className={cn('a', b && "c")}>x</div>`)
	f.Add(`const v = cva('base', { variants: { size: { sm: 'text-sm' } } })`)
	f.Add(`<div className="bg-red-500 text-white`)
	f.Add(`<div className="opacity-50"><div className="opacity-50"><p className="text-white">x</p></div></div>`)
	f.Add(`</></><<//>{{{"'` + "`")
	f.Add(strings.Repeat(`<div className="opacity-90">`, 40))
	f.Add("")

	f.Fuzz(func(t *testing.T, src string) {
		// extraction must terminate and never panic on any input
		regions := Extract(src, testOpts())

		lastLine := 1
		for _, r := range regions {
			if r.StartLine < lastLine {
				t.Errorf("regions out of order: line %d after %d", r.StartLine, lastLine)
			}
			lastLine = r.StartLine
			if r.EffectiveOpacity < 0 || r.EffectiveOpacity > 1 {
				t.Errorf("opacity out of range: %v", r.EffectiveOpacity)
			}
			if r.Ignored && r.IgnoreReason == "" {
				t.Error("ignored region without reason")
			}
		}
	})
}
