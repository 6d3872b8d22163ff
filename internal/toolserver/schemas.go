package toolserver

var listFilesSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"root":             map[string]interface{}{"type": "string", "description": "Root directory to list, relative or absolute. Defaults to \".\"."},
		"recursive":        map[string]interface{}{"type": "boolean", "description": "Walk subdirectories. Defaults to true."},
		"include_globs":    map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"exclude_globs":    map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"max_results":      map[string]interface{}{"type": "integer", "description": "Defaults to 500."},
		"include_dirs":     map[string]interface{}{"type": "boolean", "description": "Include directory entries. Defaults to false."},
		"include_metadata": map[string]interface{}{"type": "boolean", "description": "Include size/modified on each entry. Defaults to false."},
		"skip":             map[string]interface{}{"type": "integer", "description": "Entries to skip before the returned page. Defaults to 0."},
	},
}

var findFilesSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"query":          map[string]interface{}{"type": "string", "description": "Substring to match."},
		"root":           map[string]interface{}{"type": "string"},
		"recursive":      map[string]interface{}{"type": "boolean"},
		"match_mode":     map[string]interface{}{"type": "string", "enum": []string{"name", "path"}, "description": "Defaults to \"name\"."},
		"case_sensitive": map[string]interface{}{"type": "boolean"},
		"include_globs":  map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"exclude_globs":  map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"include_dirs":   map[string]interface{}{"type": "boolean"},
		"max_results":    map[string]interface{}{"type": "integer"},
		"skip":           map[string]interface{}{"type": "integer"},
	},
	"required": []string{"query"},
}

var readFileSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"path":         map[string]interface{}{"type": "string"},
		"range_type":   map[string]interface{}{"type": "string", "enum": []string{"bytes", "lines"}},
		"offset_bytes": map[string]interface{}{"type": "integer"},
		"max_bytes":    map[string]interface{}{"type": "integer"},
		"start_line":   map[string]interface{}{"type": "integer"},
		"max_lines":    map[string]interface{}{"type": "integer"},
	},
	"required": []string{"path"},
}

var searchTextSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"query":          map[string]interface{}{"type": "string"},
		"mode":           map[string]interface{}{"type": "string", "enum": []string{"literal", "regex"}, "description": "Defaults to \"literal\"."},
		"case_sensitive": map[string]interface{}{"type": "boolean"},
		"root":           map[string]interface{}{"type": "string"},
		"include_globs":  map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"exclude_globs":  map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
		"max_results":    map[string]interface{}{"type": "integer"},
		"context_lines":  map[string]interface{}{"type": "integer"},
		"skip":           map[string]interface{}{"type": "integer"},
	},
	"required": []string{"query"},
}

var statSchema = map[string]interface{}{
	"type":       "object",
	"properties": map[string]interface{}{"path": map[string]interface{}{"type": "string"}},
	"required":   []string{"path"},
}

var pathInfoSchema = map[string]interface{}{
	"type":       "object",
	"properties": map[string]interface{}{"path": map[string]interface{}{"type": "string", "description": "Defaults to \".\"."}},
}

var overwriteFileSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"path":    map[string]interface{}{"type": "string"},
		"content": map[string]interface{}{"type": "string"},
	},
	"required": []string{"path", "content"},
}

var createFileSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"path":           map[string]interface{}{"type": "string"},
		"content":        map[string]interface{}{"type": "string"},
		"overwrite":      map[string]interface{}{"type": "boolean"},
		"create_parents": map[string]interface{}{"type": "boolean"},
	},
	"required": []string{"path"},
}

var deletePathSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"path":      map[string]interface{}{"type": "string"},
		"recursive": map[string]interface{}{"type": "boolean"},
		"force":     map[string]interface{}{"type": "boolean"},
	},
	"required": []string{"path"},
}

var copyPathSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"from":           map[string]interface{}{"type": "string"},
		"to":             map[string]interface{}{"type": "string"},
		"overwrite":      map[string]interface{}{"type": "boolean"},
		"create_parents": map[string]interface{}{"type": "boolean", "description": "Defaults to true."},
	},
	"required": []string{"from", "to"},
}

var movePathSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"from":           map[string]interface{}{"type": "string"},
		"to":             map[string]interface{}{"type": "string"},
		"overwrite":      map[string]interface{}{"type": "boolean"},
		"create_parents": map[string]interface{}{"type": "boolean", "description": "Defaults to true."},
	},
	"required": []string{"from", "to"},
}
