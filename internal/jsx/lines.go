package jsx

import "sort"

// lineIndex maps byte offsets to 1-based line numbers.
type lineIndex struct {
	starts []int
}

func newLineIndex(src string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts}
}

// lineAt returns the 1-based line containing the byte offset.
func (li *lineIndex) lineAt(pos int) int {
	return sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > pos })
}
