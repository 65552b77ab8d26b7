package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edocico/a11y-audit/internal/model"
)

func TestKey(t *testing.T) {
	a := Key("regions-v1", "<div />", "opts")
	b := Key("regions-v1", "<div />", "opts")
	c := Key("regions-v1", "<span />", "opts")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestKey_LengthDelimited(t *testing.T) {
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestStoreLoadRegions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	key := Key("test", "content")
	_, ok := LoadRegions(key)
	assert.False(t, ok)

	in := []model.ClassRegion{{
		Content:          "bg-card text-white",
		StartLine:        3,
		ContextBg:        "bg-background",
		EffectiveOpacity: 1,
	}}
	require.NoError(t, StoreRegions(key, in))

	out, ok := LoadRegions(key)
	require.True(t, ok)
	assert.Equal(t, in, out)
}
