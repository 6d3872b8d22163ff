// Package toolserver registers the filesystem operations of internal/fscore
// as MCP tools, translating MCP CallToolRequest arguments into typed fscore
// calls and typed fscore results back into MCP tool-result JSON.
package toolserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/irvingouj/complement-mcp/internal/fscore"
)

// Register adds every fs.* tool to mcpServer, dispatching to core.
func Register(mcpServer *server.MCPServer, core *fscore.Service) error {
	ts := &toolSet{core: core}

	tools := []struct {
		name    string
		desc    string
		schema  map[string]interface{}
		handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	}{
		{"fs.list_files", "List files and directories under a root, honoring gitignore rules and caller globs.", listFilesSchema, ts.handleListFiles},
		{"fs.find_files", "Find files and directories whose name or path contains a query substring.", findFilesSchema, ts.handleFindFiles},
		{"fs.read_file", "Read a windowed view of a text file's content, by byte range or line range.", readFileSchema, ts.handleReadFile},
		{"fs.search_text", "Search file contents for a literal string or line-based regex, with per-hit context lines.", searchTextSchema, ts.handleSearchText},
		{"fs.stat", "Report whether a path exists and its type, without failing on a missing target.", statSchema, ts.handleStat},
		{"fs.path_info", "Resolve and describe a path: existence, type, canonical form, and enclosing git repository.", pathInfoSchema, ts.handlePathInfo},
		{"fs.overwrite_file", "Replace an existing file's entire content.", overwriteFileSchema, ts.handleOverwriteFile},
		{"fs.create_file", "Create a new file, optionally overwriting an existing one or creating missing parent directories.", createFileSchema, ts.handleCreateFile},
		{"fs.delete_path", "Delete a file or, with recursive=true, a directory.", deletePathSchema, ts.handleDeletePath},
		{"fs.copy_path", "Copy a file to a new location.", copyPathSchema, ts.handleCopyPath},
		{"fs.move_path", "Move or rename a file or directory.", movePathSchema, ts.handleMovePath},
	}

	for _, t := range tools {
		schemaBytes, err := json.Marshal(t.schema)
		if err != nil {
			return fmt.Errorf("marshal schema for %s: %w", t.name, err)
		}
		mcpServer.AddTool(mcp.NewToolWithRawSchema(t.name, t.desc, schemaBytes), t.handler)
	}

	return nil
}

type toolSet struct {
	core *fscore.Service
}

// errResult renders a core error as an MCP tool-result error, prefixing the
// message with the error taxonomy category so the category survives the
// RPC boundary even though MCP has no typed-error channel.
func errResult(err error) *mcp.CallToolResult {
	if kind, ok := fscore.KindOf(err); ok {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", kind, err))
	}
	return mcp.NewToolResultError(err.Error())
}

// jsonResult marshals v as the tool's JSON text result.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func args(request mcp.CallToolRequest) (map[string]interface{}, bool) {
	m, ok := request.Params.Arguments.(map[string]interface{})
	return m, ok
}

func stringArg(m map[string]interface{}, key, def string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return def
}

func boolArg(m map[string]interface{}, key string, def bool) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return def
}

func intArg(m map[string]interface{}, key string, def int) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return def
}

func optIntArg(m map[string]interface{}, key string) *int {
	if v, ok := m[key].(float64); ok {
		n := int(v)
		return &n
	}
	return nil
}

func optInt64Arg(m map[string]interface{}, key string) *int64 {
	if v, ok := m[key].(float64); ok {
		n := int64(v)
		return &n
	}
	return nil
}

func stringSliceArg(m map[string]interface{}, key string) []string {
	raw, ok := m[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
