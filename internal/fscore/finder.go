package fscore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// MatchMode selects which part of an entry's path the Name Finder's query
// is matched against.
type MatchMode int

const (
	MatchName MatchMode = iota
	MatchPath
)

// FindOptions configures a single Name Finder pass.
type FindOptions struct {
	Query         string
	MatchMode     MatchMode
	CaseSensitive bool
	Recursive     bool
	IncludeDirs   bool
	IncludeGlobs  []string
	ExcludeGlobs  []string
	Skip          int
	MaxResults    int
}

// Find enumerates entries under root whose name or display path contains
// opts.Query as a substring, applying the same recursion, filter, and
// paging rules as Walk.
func (s *Service) Find(ctx context.Context, root *AdmittedPath, opts FindOptions) (*WalkResult, error) {
	if root.Kind != KindDirectory {
		return nil, newErr(KindNotADirectory, "find_files", root.Input, nil)
	}

	maxResults := opts.MaxResults
	if maxResults <= 0 || maxResults > s.cfg.MaxWalkResults {
		maxResults = s.cfg.MaxWalkResults
	}

	filter := newFilter(root.Root, s.cfg.DenyNames, opts.IncludeGlobs, opts.ExcludeGlobs)
	query := opts.Query
	if !opts.CaseSensitive {
		query = strings.ToLower(query)
	}

	var entries []Entry
	count := 0
	hasMore := false

	err := walkOrdered(root.Resolved, opts.Recursive, func(absPath string, info os.FileInfo) (bool, error) {
		select {
		case <-ctx.Done():
			return false, newErr(KindCancelled, "find_files", root.Input, ctx.Err())
		default:
		}

		if absPath == root.Resolved {
			return true, nil
		}

		display, err := displayPath(root.DisplayBase, absPath)
		if err != nil {
			return false, newErr(KindIOError, "find_files", root.Input, err)
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

		if !matchesQuery(display, query, opts.MatchMode, opts.CaseSensitive) {
			return true, nil
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

	return &WalkResult{Entries: entries, HasMore: hasMore}, nil
}

func matchesQuery(display, query string, mode MatchMode, caseSensitive bool) bool {
	target := display
	if mode == MatchName {
		target = filepath.Base(display)
	}
	if !caseSensitive {
		target = strings.ToLower(target)
	}
	return strings.Contains(target, query)
}
