package fscore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"
)

// Filter is a single walk's admit predicate, composed from the gitignore
// family discovered along the walk plus the caller's include/exclude globs.
// A Filter is built fresh per request and discards its ignore matchers once
// the walk finishes; nothing is cached across requests.
type Filter struct {
	root         string
	denyNames    map[string]bool
	includeGlobs []string
	excludeGlobs []string
	ignoreByDir  map[string]*gitignore.GitIgnore
}

func newFilter(root string, denyNames, includeGlobs, excludeGlobs []string) *Filter {
	deny := make(map[string]bool, len(denyNames))
	for _, n := range denyNames {
		deny[n] = true
	}
	return &Filter{
		root:         root,
		denyNames:    deny,
		includeGlobs: includeGlobs,
		excludeGlobs: excludeGlobs,
		ignoreByDir:  make(map[string]*gitignore.GitIgnore),
	}
}

// loadDir compiles the ignore file (if any) found directly in dir, caching
// the result so sibling entries in the same directory reuse it. Directories
// are visited top-down during a walk, so by the time loadDir is called for
// dir, ancestor ignore matchers have already been loaded.
func (f *Filter) loadDir(dir string) {
	if _, ok := f.ignoreByDir[dir]; ok {
		return
	}
	var patterns []string
	for _, name := range []string{".gitignore", ".ignore"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		lines := strings.Split(string(data), "\n")
		patterns = append(patterns, lines...)
	}
	if len(patterns) == 0 {
		f.ignoreByDir[dir] = nil
		return
	}
	f.ignoreByDir[dir] = gitignore.CompileIgnoreLines(patterns...)
}

// isGitignored walks dir and its ancestors up to root, evaluating each
// directory's ignore rules against the path relative to that directory.
// Later (deeper) directories' rules take precedence over shallower ones,
// matching standard gitignore layering; within one file, go-gitignore
// already applies last-match-wins including negations.
func (f *Filter) isGitignored(absPath string, isDir bool) bool {
	dir := filepath.Dir(absPath)
	var dirs []string
	for {
		dirs = append(dirs, dir)
		if dir == f.root {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	// Evaluate shallowest (server root) first so deeper directories'
	// negations can override an ancestor's exclude.
	ignored := false
	for i := len(dirs) - 1; i >= 0; i-- {
		d := dirs[i]
		f.loadDir(d)
		ign := f.ignoreByDir[d]
		if ign == nil {
			continue
		}
		rel, err := filepath.Rel(d, absPath)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		if isDir {
			rel += "/"
		}
		if ign.MatchesPath(rel) {
			ignored = true
		}
	}
	return ignored
}

// AdmitDescend reports whether the walker should descend into a directory
// at all. Deny-listed basenames (".git") are never descended into; other
// directories are always visited regardless of include globs, per the
// contract that include globs filter results, not descent. Gitignore
// directory-only excludes still prune descent, since nothing under an
// ignored directory can ever be admitted.
func (f *Filter) AdmitDescend(display string, absPath string, name string) bool {
	if f.denyNames[name] {
		return false
	}
	if f.isGitignored(absPath, true) {
		return false
	}
	for _, g := range f.excludeGlobs {
		if globMatches(g, display, true) {
			return false
		}
	}
	return true
}

// Admit reports whether a file or directory result should be included in
// the output sequence.
func (f *Filter) Admit(display string, absPath string, isDir bool) bool {
	if f.isGitignored(absPath, isDir) {
		return false
	}
	for _, g := range f.excludeGlobs {
		if globMatches(g, display, isDir) {
			return false
		}
	}
	if len(f.includeGlobs) == 0 {
		return true
	}
	for _, g := range f.includeGlobs {
		if globMatches(g, display, isDir) {
			return true
		}
	}
	return false
}

func globMatches(pattern, display string, isDir bool) bool {
	if ok, _ := doublestar.Match(pattern, display); ok {
		return true
	}
	if isDir {
		if ok, _ := doublestar.Match(strings.TrimSuffix(pattern, "/")+"/**", display); ok {
			return true
		}
	}
	return false
}
