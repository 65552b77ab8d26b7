package jsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edocico/a11y-audit/internal/model"
)

func TestCategorize_Buckets(t *testing.T) {
	cat := categorize("bg-red-500 text-white border-input ring-primary outline-red-500 p-4 flex", model.ModeLight)

	require.Len(t, cat.base.Bg, 1)
	assert.Equal(t, "bg-red-500", cat.base.Bg[0].Base)
	require.Len(t, cat.base.Text, 1)
	assert.Equal(t, "text-white", cat.base.Text[0].Base)
	require.Len(t, cat.base.Border, 1)
	assert.Equal(t, "border-input", cat.base.Border[0].Base)
	require.Len(t, cat.base.Ring, 1)
	require.Len(t, cat.base.Outline, 1)
}

func TestCategorize_NonColorUtilitiesExcluded(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bg gradient", "bg-gradient-to-r bg-none bg-cover bg-opacity-50 bg-center"},
		{"text layout", "text-sm text-center text-ellipsis text-nowrap text-[18px]"},
		{"border shape", "border border-2 border-t border-t-2 border-dashed border-solid"},
		{"ring width", "ring-2 ring-inset ring-offset-2 ring-opacity-50"},
		{"outline style", "outline-none outline-2 outline-dotted outline-offset-4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cat := categorize(tc.content, model.ModeLight)
			assert.Empty(t, cat.base.Bg)
			assert.Empty(t, cat.base.Text)
			assert.Empty(t, cat.base.Border)
			assert.Empty(t, cat.base.Ring)
			assert.Empty(t, cat.base.Outline)
		})
	}
}

func TestCategorize_SideBorderColorKept(t *testing.T) {
	cat := categorize("border-t-red-500", model.ModeLight)

	require.Len(t, cat.base.Border, 1)
	assert.Equal(t, "border-t-red-500", cat.base.Border[0].Base)
}

func TestCategorize_ArbitraryColorValueKept(t *testing.T) {
	cat := categorize("text-[#ff0000] bg-[#09090b]", model.ModeLight)

	require.Len(t, cat.base.Text, 1)
	require.Len(t, cat.base.Bg, 1)
}

func TestCategorize_DarkClassesDroppedInLight(t *testing.T) {
	cat := categorize("bg-white dark:bg-zinc-900 text-black dark:text-white", model.ModeLight)

	require.Len(t, cat.base.Bg, 1)
	assert.Equal(t, "bg-white", cat.base.Bg[0].Base)
	require.Len(t, cat.base.Text, 1)
	assert.Equal(t, "text-black", cat.base.Text[0].Base)
}

func TestCategorize_DarkOverridesReplaceInDark(t *testing.T) {
	cat := categorize("bg-white dark:bg-zinc-900 text-black", model.ModeDark)

	require.Len(t, cat.base.Bg, 1)
	assert.Equal(t, "bg-zinc-900", cat.base.Bg[0].Base)
	assert.True(t, cat.base.Bg[0].IsDark)
	// no dark text override: the light class still applies
	require.Len(t, cat.base.Text, 1)
	assert.Equal(t, "text-black", cat.base.Text[0].Base)
}

func TestCategorize_InteractiveStates(t *testing.T) {
	cat := categorize("text-black hover:text-white focus-visible:ring-ring aria-disabled:text-muted-foreground", model.ModeLight)

	require.Len(t, cat.base.Text, 1)
	hover := cat.states[model.StateHover]
	require.NotNil(t, hover)
	require.Len(t, hover.Text, 1)
	assert.Equal(t, "text-white", hover.Text[0].Base)
	assert.Equal(t, "hover:text-white", hover.Text[0].Raw)

	fv := cat.states[model.StateFocusVisible]
	require.NotNil(t, fv)
	require.Len(t, fv.Ring, 1)

	ad := cat.states[model.StateAriaDisabled]
	require.NotNil(t, ad)
	require.Len(t, ad.Text, 1)
}

func TestCategorize_UntrackedVariantDropped(t *testing.T) {
	cat := categorize("sm:text-white group-hover:bg-black md:hover:text-red-500", model.ModeLight)

	assert.Empty(t, cat.base.Text)
	assert.Empty(t, cat.base.Bg)
	assert.Nil(t, cat.states[model.StateHover])
}

func TestCategorize_ColonInsideBracketsNotAVariant(t *testing.T) {
	cat := categorize("bg-[url(https://x/y.png)] text-[#fff]", model.ModeLight)

	assert.Empty(t, cat.base.Bg)
	require.Len(t, cat.base.Text, 1)
}

func TestCategorize_DynamicTokens(t *testing.T) {
	cat := categorize("p-2 ${} text-white", model.ModeLight)

	assert.Equal(t, []string{"${}"}, cat.dynamic)
	require.Len(t, cat.base.Text, 1)
}

func TestCategorize_LargeText(t *testing.T) {
	cases := []struct {
		content string
		large   bool
	}{
		{"text-2xl", true},
		{"text-3xl", true},
		{"text-xl", false},
		{"text-xl font-bold", true},
		{"text-lg font-bold", false}, // 18px bold is under the 14pt line
		{"text-[24px]", true},
		{"text-[18.7px] font-bold", true},
		{"text-[1.5rem]", true},
		{"text-sm font-black", false},
		{"font-bold", false}, // no size class, no size claim
		{"text-base", false},
	}
	for _, tc := range cases {
		t.Run(tc.content, func(t *testing.T) {
			cat := categorize(tc.content, model.ModeLight)
			assert.Equal(t, tc.large, cat.isLarge)
		})
	}
}

func TestCategorize_LastFontSizeWins(t *testing.T) {
	cat := categorize("text-sm text-2xl", model.ModeLight)
	assert.True(t, cat.isLarge)
}
