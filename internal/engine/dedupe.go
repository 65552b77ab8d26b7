package engine

import (
	"strconv"
	"strings"

	"github.com/edocico/a11y-audit/internal/model"
)

func pairKey(p model.ColorPair) string {
	return strings.Join([]string{
		p.BgClass, p.TextClass, string(p.PairType), string(p.InteractiveState), string(p.Mode),
	}, "|")
}

// dedupe drops findings that evaluate the same pair at the same location.
// Exhaustive variant expansion re-emits the shared base classes once per
// option, so duplicates are the common case, not an anomaly.
func dedupe(in []model.Finding) []model.Finding {
	seen := make(map[string]struct{}, len(in))
	var out []model.Finding
	for _, f := range in {
		k := f.File + "|" + strconv.Itoa(f.Line) + "|" + f.CheckID + "|" + pairKey(f.Pair)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, f)
	}
	return out
}
