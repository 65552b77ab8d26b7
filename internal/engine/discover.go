package engine

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// compileGlobs compiles patterns with '/' as the separator. A pattern
// anchored with a leading **/ also gets an unanchored variant so that
// top-level files match it.
func compileGlobs(patterns []string) []glob.Glob {
	var out []glob.Glob
	for _, p := range patterns {
		if g, err := glob.Compile(p, '/'); err == nil {
			out = append(out, g)
		}
		if rest, ok := strings.CutPrefix(p, "**/"); ok {
			if g, err := glob.Compile(rest, '/'); err == nil {
				out = append(out, g)
			}
		}
	}
	return out
}

func matchAny(globs []glob.Glob, rel string) bool {
	for _, g := range globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// discoverFiles walks root and collects files matching the include globs and
// none of the exclude globs, in lexical walk order. Excluded directories are
// pruned whole so node_modules never gets traversed.
func discoverFiles(root string, include, exclude []string) []string {
	inc := compileGlobs(include)
	exc := compileGlobs(exclude)
	var out []string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if matchAny(exc, rel+"/") {
				return fs.SkipDir
			}
			return nil
		}
		if matchAny(inc, rel) && !matchAny(exc, rel) {
			out = append(out, path)
		}
		return nil
	})
	return out
}
