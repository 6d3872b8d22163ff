package fscore

import (
	"context"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// SearchMode selects literal substring matching or line-based regex
// matching for search_text.
type SearchMode int

const (
	ModeLiteral SearchMode = iota
	ModeRegex
)

// SearchOptions configures a single Search Engine pass.
type SearchOptions struct {
	Query         string
	Mode          SearchMode
	CaseSensitive bool
	IncludeGlobs  []string
	ExcludeGlobs  []string
	ContextLines  int
	Skip          int
	MaxResults    int
}

// SearchResult is the bounded, ordered output of a search.
type SearchResult struct {
	Hits    []Hit
	HasMore bool
}

// Search scans every admitted, filtered file under root in walker order and
// returns up to opts.MaxResults Hits (after discarding opts.Skip), matching
// opts.Query either as a literal substring or a line-based regex.
func (s *Service) Search(ctx context.Context, root *AdmittedPath, opts SearchOptions) (*SearchResult, error) {
	if root.Kind != KindDirectory {
		return nil, newErr(KindNotADirectory, "search_text", root.Input, nil)
	}

	var re *regexp.Regexp
	if opts.Mode == ModeRegex {
		pattern := opts.Query
		if !opts.CaseSensitive {
			pattern = "(?i)" + pattern
		}
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return nil, newErr(KindInvalidRegex, "search_text", opts.Query, err)
		}
		re = compiled
	}

	contextLines := opts.ContextLines
	if contextLines < 0 {
		contextLines = s.cfg.DefaultContextLines
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 || maxResults > s.cfg.MaxWalkResults {
		maxResults = s.cfg.MaxWalkResults
	}

	filter := newFilter(root.Root, s.cfg.DenyNames, opts.IncludeGlobs, opts.ExcludeGlobs)

	var hits []Hit
	skipped := 0
	hasMore := false

	err := walkOrdered(root.Resolved, true, func(absPath string, info os.FileInfo) (bool, error) {
		select {
		case <-ctx.Done():
			return false, newErr(KindCancelled, "search_text", root.Input, ctx.Err())
		default:
		}

		if absPath == root.Resolved {
			return true, nil
		}

		display, err := displayPath(root.DisplayBase, absPath)
		if err != nil {
			return false, newErr(KindIOError, "search_text", root.Input, err)
		}

		if info.IsDir() {
			return filter.AdmitDescend(display, absPath, info.Name()), nil
		}
		if !filter.Admit(display, absPath, false) {
			return true, nil
		}
		if len(hits) >= maxResults {
			hasMore = true
			return false, errStopWalk
		}

		fileHits, ok := searchFile(absPath, display, opts.Query, opts.CaseSensitive, re, contextLines)
		if !ok {
			return true, nil // binary or unreadable: silently skipped
		}

		for _, h := range fileHits {
			if skipped < opts.Skip {
				skipped++
				continue
			}
			if len(hits) >= maxResults {
				hasMore = true
				break
			}
			hits = append(hits, h)
		}
		if len(hits) >= maxResults {
			hasMore = true
			return false, errStopWalk
		}
		return true, nil
	})
	if err != nil && err != errStopWalk {
		return nil, err
	}

	return &SearchResult{Hits: hits, HasMore: hasMore}, nil
}

// searchFile scans one file line by line, returning its hits in ascending
// (line, column) order. ok is false when the file could not be read as
// valid UTF-8 text; such files are silently skipped by the caller rather
// than failing the whole search.
func searchFile(absPath, display, query string, caseSensitive bool, re *regexp.Regexp, contextLines int) ([]Hit, bool) {
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, false
	}
	if !isLikelyText(data) {
		return nil, false
	}

	lines := splitKeepCR(data)

	var hits []Hit
	for i, line := range lines {
		cols := matchColumns(line, query, caseSensitive, re)
		for _, col := range cols {
			hits = append(hits, Hit{
				Path:          display,
				Line:          i + 1,
				Column:        col,
				LineText:      line,
				ContextBefore: contextWindow(lines, i, -contextLines),
				ContextAfter:  contextWindow(lines, i, contextLines),
			})
		}
	}
	return hits, true
}

// matchColumns returns the 1-based byte-offset column of every match start
// on line, in ascending order.
func matchColumns(line, query string, caseSensitive bool, re *regexp.Regexp) []int {
	if re != nil {
		locs := re.FindAllStringIndex(line, -1)
		cols := make([]int, 0, len(locs))
		for _, loc := range locs {
			cols = append(cols, loc[0]+1)
		}
		return cols
	}

	haystack, needle := line, query
	if !caseSensitive {
		haystack = strings.ToLower(haystack)
		needle = strings.ToLower(needle)
	}
	if needle == "" {
		return nil
	}
	var cols []int
	start := 0
	for {
		idx := strings.Index(haystack[start:], needle)
		if idx < 0 {
			break
		}
		pos := start + idx
		cols = append(cols, pos+1)
		start = pos + len(needle)
	}
	return cols
}

// contextWindow returns up to |delta| lines before (delta<0) or after
// (delta>0) lines[idx], truncated at file boundaries.
func contextWindow(lines []string, idx, delta int) []string {
	if delta == 0 {
		return nil
	}
	if delta < 0 {
		n := -delta
		start := idx - n
		if start < 0 {
			start = 0
		}
		return append([]string(nil), lines[start:idx]...)
	}
	end := idx + 1 + delta
	if end > len(lines) {
		end = len(lines)
	}
	return append([]string(nil), lines[idx+1:end]...)
}

// isLikelyText reports whether data decodes as UTF-8 text; used to decide
// whether a file is eligible for search at all. A NUL byte anywhere is
// treated as a binary signal even if the bytes around it happen to be
// valid UTF-8, matching common grep-style binary detection.
func isLikelyText(data []byte) bool {
	for _, b := range data {
		if b == 0 {
			return false
		}
	}
	return utf8.Valid(data)
}
