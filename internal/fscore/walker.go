package fscore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/irvingouj/complement-mcp/internal/worker"
)

// errStopWalk is an internal sentinel used to unwind walkOrdered once a
// caller's visit callback has gathered enough results; it is never returned
// to an external caller.
var errStopWalk = errors.New("walk: stop")

// WalkOptions configures a single Directory Walker pass.
type WalkOptions struct {
	Recursive       bool
	IncludeDirs     bool
	IncludeMetadata bool
	IncludeGlobs    []string
	ExcludeGlobs    []string
	Skip            int
	MaxResults      int
}

// WalkResult is the bounded, ordered output of a walk.
type WalkResult struct {
	Entries []Entry
	HasMore bool
}

// Walk enumerates entries under root (an AdmittedPath produced by Resolver),
// honoring the gitignore/glob filter, and returns a page of up to
// opts.MaxResults entries after discarding opts.Skip, in the lexicographic
// per-directory order required for determinism across repeated calls.
func (s *Service) Walk(ctx context.Context, root *AdmittedPath, opts WalkOptions) (*WalkResult, error) {
	if root.Kind != KindDirectory {
		return nil, newErr(KindNotADirectory, "list_files", root.Input, nil)
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 || maxResults > s.cfg.MaxWalkResults {
		maxResults = s.cfg.MaxWalkResults
	}

	filter := newFilter(root.Root, s.cfg.DenyNames, opts.IncludeGlobs, opts.ExcludeGlobs)

	var entries []Entry
	count := 0
	hasMore := false

	err := walkOrdered(root.Resolved, opts.Recursive, func(absPath string, info os.FileInfo) (bool, error) {
		select {
		case <-ctx.Done():
			return false, newErr(KindCancelled, "list_files", root.Input, ctx.Err())
		default:
		}

		if absPath == root.Resolved {
			return true, nil
		}

		display, err := displayPath(root.DisplayBase, absPath)
		if err != nil {
			return false, newErr(KindIOError, "list_files", root.Input, err)
		}

		isDir := info.IsDir()
		if isDir {
			if !filter.AdmitDescend(display, absPath, info.Name()) {
				return false, nil
			}
			if !opts.IncludeDirs || !filter.Admit(display, absPath, true) {
				return true, nil
			}
		} else {
			if !filter.Admit(display, absPath, false) {
				return true, nil
			}
		}

		if count < opts.Skip {
			count++
			return true, nil
		}
		if len(entries) >= maxResults {
			hasMore = true
			return false, errStopWalk
		}

		entries = append(entries, Entry{Path: display, IsDir: isDir})
		count++
		return true, nil
	})
	if err != nil && err != errStopWalk {
		return nil, err
	}

	if opts.IncludeMetadata && len(entries) > 0 {
		paths := make([]string, len(entries))
		for i, e := range entries {
			paths[i] = filepath.Join(root.DisplayBase, filepath.FromSlash(e.Path))
		}
		pool := worker.NewPool[*statResult](8)
		results := pool.Process(paths, func(p string) (*statResult, error) {
			info, err := os.Stat(p)
			if err != nil {
				return &statResult{}, nil
			}
			size := info.Size()
			mod := info.ModTime().UTC()
			return &statResult{size: &size, modified: &mod}, nil
		})
		for _, r := range results {
			if r.Err != nil || r.Value == nil {
				continue
			}
			entries[r.Index].Size = r.Value.size
			entries[r.Index].Modified = r.Value.modified
		}
	}

	return &WalkResult{Entries: entries, HasMore: hasMore}, nil
}

type statResult struct {
	size     *int64
	modified *time.Time
}

// walkOrdered performs a deterministic pre-order traversal of root, invoking
// visit(absPath, info) for root itself and then every descendant when
// recursive=true, or root's immediate children only when recursive is
// false. visit returns (descend, err): descend controls whether a directory
// is recursed into; a false descend on a file is a no-op. Directory entries
// at each level are sorted lexicographically by name before recursion so
// traversal order is stable across calls on an unchanged tree.
func walkOrdered(root string, recursive bool, visit func(string, os.FileInfo) (bool, error)) error {
	rootInfo, err := os.Lstat(root)
	if err != nil {
		return newErr(KindIOError, "walk", root, err)
	}
	if _, err := visit(root, rootInfo); err != nil {
		return err
	}
	return walkLevel(root, recursive, visit)
}

func walkLevel(dir string, recursive bool, visit func(string, os.FileInfo) (bool, error)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return newErr(KindIOError, "walk", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, de := range entries {
		abs := filepath.Join(dir, de.Name())
		info, err := de.Info()
		if err != nil {
			continue
		}
		descend, err := visit(abs, info)
		if err != nil {
			return err
		}
		if info.IsDir() && recursive && descend {
			if err := walkLevel(abs, recursive, visit); err != nil {
				return err
			}
		}
	}
	return nil
}
