package fscore

import (
	"os"
	"path/filepath"
	"strings"
)

// Policy is the access mode a caller requests a path under. Write-mode
// callers are held to the same containment rules as ReadOnly; the
// distinction only matters for which operations are permitted to call
// Resolve at all (enforced by the caller, not by Resolve itself).
type Policy int

const (
	ReadOnly Policy = iota
	Write
)

// Resolver implements the containment algorithm of the Path Resolver
// component: canonicalize a caller-supplied path, classify it as relative
// or absolute, and admit it under the server root (relative) or the
// enclosing git repository root (absolute).
type Resolver struct {
	cfg ServerConfig
}

func NewResolver(cfg ServerConfig) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve admits input under the containment rules, producing an
// AdmittedPath or a typed *Error; op only labels errors. A missing target
// is admitted with Kind=KindMissing; each operation decides whether that
// is an error for it.
func (r *Resolver) Resolve(op, input string) (*AdmittedPath, error) {
	norm := normalizeSeparators(input)
	if norm == "" {
		norm = "."
	}

	if filepath.IsAbs(norm) {
		return r.resolveAbsolute(op, input, norm)
	}
	return r.resolveRelative(op, input, norm)
}

func isAbsolutePath(p string) bool {
	return filepath.IsAbs(filepath.FromSlash(p))
}

func joinServerRoot(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

func normalizeSeparators(p string) string {
	if os.PathSeparator != '/' {
		return p
	}
	return strings.ReplaceAll(p, "\\", "/")
}

func (r *Resolver) resolveRelative(op, input, norm string) (*AdmittedPath, error) {
	joined := filepath.Join(r.cfg.ServerRoot, filepath.FromSlash(norm))
	canon, err := canonicalize(joined)
	if err != nil {
		return nil, newErr(KindIOError, op, input, err)
	}

	root, err := canonicalize(r.cfg.ServerRoot)
	if err != nil {
		return nil, newErr(KindIOError, op, input, err)
	}

	if !isDescendant(root, canon) {
		return nil, newErr(KindRootEscapesRepository, op, input, nil)
	}

	display, err := filepath.Rel(root, canon)
	if err != nil {
		return nil, newErr(KindIOError, op, input, err)
	}
	display = filepath.ToSlash(display)
	if display == "." {
		display = "."
	}

	kind, err := probeKind(canon)
	if err != nil {
		return nil, newErr(KindIOError, op, input, err)
	}

	return &AdmittedPath{
		Input:       input,
		Resolved:    canon,
		Display:     display,
		Root:        root,
		DisplayBase: root,
		Kind:        kind,
	}, nil
}

func (r *Resolver) resolveAbsolute(op, input, norm string) (*AdmittedPath, error) {
	canon, err := canonicalize(filepath.FromSlash(norm))
	if err != nil {
		return nil, newErr(KindIOError, op, input, err)
	}

	repoRoot, ok := findGitRoot(canon)
	if !ok {
		return nil, newErr(KindNotInsideGitRepository, op, input, nil)
	}

	kind, err := probeKind(canon)
	if err != nil {
		return nil, newErr(KindIOError, op, input, err)
	}

	return &AdmittedPath{
		Input:       input,
		Resolved:    canon,
		Display:     ".",
		Root:        repoRoot,
		DisplayBase: canon,
		Kind:        kind,
	}, nil
}

// canonicalize resolves symlinks and makes p absolute and lexically clean.
// When p does not exist, it canonicalizes the longest existing prefix and
// lexically normalizes the remainder, so that admission can still be
// computed for not-yet-created mutation targets.
func canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	abs = filepath.Clean(abs)

	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}

	existing, remainder := splitExistingPrefix(abs)
	realExisting, err := filepath.EvalSymlinks(existing)
	if err != nil {
		return "", err
	}
	if remainder == "" {
		return realExisting, nil
	}
	return filepath.Join(realExisting, remainder), nil
}

// splitExistingPrefix walks up from p until it finds a prefix that exists on
// disk, returning that prefix and the remaining (not-yet-existing)
// component path.
func splitExistingPrefix(p string) (existing, remainder string) {
	cur := p
	var tail []string
	for {
		if _, err := os.Lstat(cur); err == nil {
			remainder = filepath.Join(tail...)
			return cur, remainder
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return cur, filepath.Join(tail...)
		}
		tail = append([]string{filepath.Base(cur)}, tail...)
		cur = parent
	}
}

// isDescendant reports whether target is root itself or a path
// lexically/filesystem-wise contained under root, using a path-separator
// boundary to avoid a "/srv/app" vs "/srv/app2" false positive.
func isDescendant(root, target string) bool {
	if root == target {
		return true
	}
	rel, err := filepath.Rel(root, target)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// findGitRoot walks up from start looking for an ancestor containing an
// entry literally named ".git" (file, for worktrees/submodules, or
// directory).
func findGitRoot(start string) (string, bool) {
	cur := start
	for {
		if _, err := os.Lstat(filepath.Join(cur, ".git")); err == nil {
			return cur, true
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", false
		}
		cur = parent
	}
}

// displayPath renders full (an absolute, canonical path under base) in
// display form: forward-slash, relative to base. Returns "." when full and
// base are the same path.
func displayPath(base, full string) (string, error) {
	rel, err := filepath.Rel(base, full)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func probeKind(p string) (PathKind, error) {
	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return KindMissing, nil
		}
		return KindMissing, err
	}
	switch {
	case info.IsDir():
		return KindDirectory, nil
	case info.Mode().IsRegular():
		return KindFile, nil
	default:
		return KindOther, nil
	}
}
