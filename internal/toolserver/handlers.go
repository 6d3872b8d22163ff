package toolserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/irvingouj/complement-mcp/internal/fscore"
)

type entryJSON struct {
	Path     string `json:"path"`
	IsDir    bool   `json:"is_dir"`
	Size     *int64 `json:"size,omitempty"`
	Modified *int64 `json:"modified,omitempty"`
}

func entriesJSON(entries []fscore.Entry) []entryJSON {
	out := make([]entryJSON, len(entries))
	for i, e := range entries {
		je := entryJSON{Path: e.Path, IsDir: e.IsDir, Size: e.Size}
		if e.Modified != nil {
			sec := e.Modified.Unix()
			je.Modified = &sec
		}
		out[i] = je
	}
	return out
}

func (ts *toolSet) handleListFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, ok := args(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}

	root, err := ts.core.Resolve("list_files", stringArg(m, "root", "."))
	if err != nil {
		return errResult(err), nil
	}

	result, err := ts.core.Walk(ctx, root, fscore.WalkOptions{
		Recursive:       boolArg(m, "recursive", true),
		IncludeDirs:     boolArg(m, "include_dirs", false),
		IncludeMetadata: boolArg(m, "include_metadata", false),
		IncludeGlobs:    stringSliceArg(m, "include_globs"),
		ExcludeGlobs:    stringSliceArg(m, "exclude_globs"),
		Skip:            intArg(m, "skip", 0),
		MaxResults:      intArg(m, "max_results", 500),
	})
	if err != nil {
		return errResult(err), nil
	}

	return jsonResult(map[string]interface{}{
		"entries":  entriesJSON(result.Entries),
		"has_more": result.HasMore,
	})
}

func (ts *toolSet) handleFindFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, ok := args(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}
	query, _ := m["query"].(string)
	if query == "" {
		return errResult(fscoreInvalidArgument("find_files", "query is required")), nil
	}

	root, err := ts.core.Resolve("find_files", stringArg(m, "root", "."))
	if err != nil {
		return errResult(err), nil
	}

	mode := fscore.MatchName
	if stringArg(m, "match_mode", "name") == "path" {
		mode = fscore.MatchPath
	}

	result, err := ts.core.Find(ctx, root, fscore.FindOptions{
		Query:         query,
		MatchMode:     mode,
		CaseSensitive: boolArg(m, "case_sensitive", false),
		Recursive:     boolArg(m, "recursive", true),
		IncludeDirs:   boolArg(m, "include_dirs", false),
		IncludeGlobs:  stringSliceArg(m, "include_globs"),
		ExcludeGlobs:  stringSliceArg(m, "exclude_globs"),
		Skip:          intArg(m, "skip", 0),
		MaxResults:    intArg(m, "max_results", 500),
	})
	if err != nil {
		return errResult(err), nil
	}

	return jsonResult(map[string]interface{}{
		"matches":  entriesJSON(result.Entries),
		"has_more": result.HasMore,
	})
}

func (ts *toolSet) handleReadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, ok := args(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}
	path, _ := m["path"].(string)
	if path == "" {
		return errResult(fscoreInvalidArgument("read_file", "path is required")), nil
	}

	rng, err := fscore.ParseReadRange(fscore.RawReadRange{
		RangeType:   stringArg(m, "range_type", ""),
		OffsetBytes: optInt64Arg(m, "offset_bytes"),
		MaxBytes:    optInt64Arg(m, "max_bytes"),
		StartLine:   optIntArg(m, "start_line"),
		MaxLines:    optIntArg(m, "max_lines"),
	})
	if err != nil {
		return errResult(err), nil
	}

	admitted, err := ts.core.Resolve("read_file", path)
	if err != nil {
		return errResult(err), nil
	}

	result, err := ts.core.Read(admitted, rng)
	if err != nil {
		return errResult(err), nil
	}

	rangeJSON := map[string]interface{}{}
	if rng.Mode == fscore.RangeBytes {
		rangeJSON["range_type"] = "bytes"
		rangeJSON["offset_bytes"] = result.Range.OffsetBytes
		rangeJSON["max_bytes"] = result.Range.MaxBytes
	} else {
		rangeJSON["range_type"] = "lines"
		rangeJSON["start_line"] = result.Range.StartLine
		rangeJSON["max_lines"] = result.Range.MaxLines
	}

	return jsonResult(map[string]interface{}{
		"path":         admitted.Display,
		"content":      result.Content,
		"is_truncated": result.IsTruncated,
		"range":        rangeJSON,
	})
}

type hitJSON struct {
	Path          string   `json:"path"`
	Line          int      `json:"line"`
	Column        int      `json:"column"`
	LineText      string   `json:"line_text"`
	ContextBefore []string `json:"context_before"`
	ContextAfter  []string `json:"context_after"`
}

func (ts *toolSet) handleSearchText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, ok := args(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}
	query, _ := m["query"].(string)
	if query == "" {
		return errResult(fscoreInvalidArgument("search_text", "query is required")), nil
	}

	root, err := ts.core.Resolve("search_text", stringArg(m, "root", "."))
	if err != nil {
		return errResult(err), nil
	}

	mode := fscore.ModeLiteral
	if stringArg(m, "mode", "literal") == "regex" {
		mode = fscore.ModeRegex
	}

	result, err := ts.core.Search(ctx, root, fscore.SearchOptions{
		Query:         query,
		Mode:          mode,
		CaseSensitive: boolArg(m, "case_sensitive", false),
		IncludeGlobs:  stringSliceArg(m, "include_globs"),
		ExcludeGlobs:  stringSliceArg(m, "exclude_globs"),
		ContextLines:  intArg(m, "context_lines", -1),
		Skip:          intArg(m, "skip", 0),
		MaxResults:    intArg(m, "max_results", 200),
	})
	if err != nil {
		return errResult(err), nil
	}

	hits := make([]hitJSON, len(result.Hits))
	for i, h := range result.Hits {
		hits[i] = hitJSON{
			Path:          h.Path,
			Line:          h.Line,
			Column:        h.Column,
			LineText:      h.LineText,
			ContextBefore: h.ContextBefore,
			ContextAfter:  h.ContextAfter,
		}
	}

	return jsonResult(map[string]interface{}{
		"hits":     hits,
		"has_more": result.HasMore,
	})
}

func (ts *toolSet) handleStat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, ok := args(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}
	path, _ := m["path"].(string)
	if path == "" {
		return errResult(fscoreInvalidArgument("stat", "path is required")), nil
	}

	admitted, err := ts.core.Resolve("stat", path)
	if err != nil {
		return errResult(err), nil
	}

	result, err := ts.core.Stat(admitted)
	if err != nil {
		return errResult(err), nil
	}

	return jsonResult(map[string]interface{}{
		"path":     admitted.Display,
		"exists":   result.Exists,
		"is_file":  result.IsFile,
		"is_dir":   result.IsDir,
		"size":     result.Size,
		"modified": result.Modified,
	})
}

func (ts *toolSet) handlePathInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, ok := args(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}

	result, err := ts.core.PathInfo(stringArg(m, "path", "."))
	if err != nil {
		return errResult(err), nil
	}

	return jsonResult(map[string]interface{}{
		"input_path":     result.InputPath,
		"resolved_path":  result.ResolvedPath,
		"exists":         result.Exists,
		"is_file":        result.IsFile,
		"is_dir":         result.IsDir,
		"is_absolute":    result.IsAbsolute,
		"canonical_path": result.CanonicalPath,
		"repo_root":      result.RepoRoot,
	})
}

func (ts *toolSet) handleOverwriteFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, ok := args(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}
	path, _ := m["path"].(string)
	content, _ := m["content"].(string)
	if path == "" {
		return errResult(fscoreInvalidArgument("overwrite_file", "path is required")), nil
	}

	admitted, err := ts.core.Resolve("overwrite_file", path)
	if err != nil {
		return errResult(err), nil
	}

	if err := ts.core.OverwriteFile(admitted, content); err != nil {
		return errResult(err), nil
	}

	return jsonResult(map[string]interface{}{"path": admitted.Display})
}

func (ts *toolSet) handleCreateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, ok := args(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}
	path, _ := m["path"].(string)
	if path == "" {
		return errResult(fscoreInvalidArgument("create_file", "path is required")), nil
	}
	content := stringArg(m, "content", "")

	admitted, err := ts.core.Resolve("create_file", path)
	if err != nil {
		return errResult(err), nil
	}

	result, err := ts.core.CreateFile(admitted, content, boolArg(m, "overwrite", false), boolArg(m, "create_parents", false))
	if err != nil {
		return errResult(err), nil
	}

	return jsonResult(map[string]interface{}{
		"path":        admitted.Display,
		"created":     result.Created,
		"overwritten": result.Overwritten,
	})
}

func (ts *toolSet) handleDeletePath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, ok := args(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}
	path, _ := m["path"].(string)
	if path == "" {
		return errResult(fscoreInvalidArgument("delete_path", "path is required")), nil
	}

	admitted, err := ts.core.Resolve("delete_path", path)
	if err != nil {
		return errResult(err), nil
	}

	recursive := boolArg(m, "recursive", false)
	result, err := ts.core.DeletePath(admitted, recursive, boolArg(m, "force", false))
	if err != nil {
		return errResult(err), nil
	}

	return jsonResult(map[string]interface{}{
		"path":      admitted.Display,
		"existed":   result.Existed,
		"is_dir":    result.IsDir,
		"removed":   result.Removed,
		"recursive": result.Recursive,
	})
}

func (ts *toolSet) handleCopyPath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, ok := args(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}
	from, _ := m["from"].(string)
	to, _ := m["to"].(string)
	if from == "" || to == "" {
		return errResult(fscoreInvalidArgument("copy_path", "from and to are required")), nil
	}

	fromPath, err := ts.core.Resolve("copy_path", from)
	if err != nil {
		return errResult(err), nil
	}
	toPath, err := ts.core.Resolve("copy_path", to)
	if err != nil {
		return errResult(err), nil
	}

	result, err := ts.core.CopyPath(fromPath, toPath, boolArg(m, "overwrite", false), boolArg(m, "create_parents", true))
	if err != nil {
		return errResult(err), nil
	}

	return jsonResult(map[string]interface{}{
		"from":         fromPath.Display,
		"to":           toPath.Display,
		"bytes_copied": result.BytesCopied,
		"overwritten":  result.Overwritten,
	})
}

func (ts *toolSet) handleMovePath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	m, ok := args(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments"), nil
	}
	from, _ := m["from"].(string)
	to, _ := m["to"].(string)
	if from == "" || to == "" {
		return errResult(fscoreInvalidArgument("move_path", "from and to are required")), nil
	}

	fromPath, err := ts.core.Resolve("move_path", from)
	if err != nil {
		return errResult(err), nil
	}
	toPath, err := ts.core.Resolve("move_path", to)
	if err != nil {
		return errResult(err), nil
	}

	result, err := ts.core.MovePath(fromPath, toPath, boolArg(m, "overwrite", false), boolArg(m, "create_parents", true))
	if err != nil {
		return errResult(err), nil
	}

	return jsonResult(map[string]interface{}{
		"from":        fromPath.Display,
		"to":          toPath.Display,
		"existed":     result.Existed,
		"overwritten": result.Overwritten,
	})
}

func fscoreInvalidArgument(op, msg string) error {
	return fscore.NewInvalidArgument(op, msg)
}
