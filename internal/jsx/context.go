package jsx

import "github.com/edocico/a11y-audit/internal/model"

// contextStack tracks inherited background and accumulated opacity through
// nested containers, portals and annotation blocks. Frames live on the heap
// so arbitrarily deep markup cannot exhaust the call stack.
type contextStack struct {
	defaultBg string
	frames    []model.ContextFrame
}

func newContextStack(defaultBg string) *contextStack {
	return &contextStack{defaultBg: defaultBg}
}

// current returns the effective inherited background at the scan position and
// whether it came from an annotation frame. Frames marked NoInherit are
// invisible here: their override binds only to the annotated element itself.
// Frames without a background (pure opacity frames) are looked through.
func (cs *contextStack) current() (string, bool) {
	for i := len(cs.frames) - 1; i >= 0; i-- {
		f := cs.frames[i]
		if f.NoInherit || f.Bg == "" {
			continue
		}
		return f.Bg, f.IsAnnotationFrame
	}
	return cs.defaultBg, false
}

// opacity returns the cumulative opacity at the scan position.
func (cs *contextStack) opacity() float64 {
	if len(cs.frames) == 0 {
		return 1
	}
	return cs.frames[len(cs.frames)-1].CumulativeOpacity
}

func (cs *contextStack) push(f model.ContextFrame) {
	cs.frames = append(cs.frames, f)
}

// popMatching pops only when the closing name matches the top frame.
// Unbalanced markup must not corrupt the rest of the stack.
func (cs *contextStack) popMatching(name string) {
	if n := len(cs.frames); n > 0 && cs.frames[n-1].ComponentName == name {
		cs.frames = cs.frames[:n-1]
	}
}
