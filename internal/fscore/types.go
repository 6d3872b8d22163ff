// Package fscore implements the disciplined filesystem-access core: path
// admission, gitignore/glob filtering, directory walking, windowed text
// reads, line-based search, name finding, metadata lookup, and mutation.
// Every exported operation is safe to call directly from a transport
// handler with no further validation.
package fscore

import "time"

// PathKind classifies what an AdmittedPath resolved to at the moment of
// admission. Kind reflects a single stat probe taken during resolution and
// is not re-checked afterward; callers that need a fresh answer must stat
// again.
type PathKind int

const (
	// KindMissing means nothing exists at the resolved path yet. The
	// resolver admits it for every operation; stat reports it as
	// Exists=false, mutations may create it, and the others fail NotFound.
	KindMissing PathKind = iota
	KindFile
	KindDirectory
	// KindOther covers sockets, devices, and other non-regular, non-directory
	// entries that most operations reject outright.
	KindOther
)

func (k PathKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindFile:
		return "file"
	case KindDirectory:
		return "directory"
	default:
		return "other"
	}
}

// AdmittedPath is the result of a successful Path Resolver admission. It is
// the form in which a caller-supplied path reaches the other components;
// the one exception is PathInfo, which takes the raw string so that it can
// describe paths that fail admission.
type AdmittedPath struct {
	// Input is the original string the caller supplied, preserved for error
	// reporting.
	Input string
	// Resolved is the fully canonicalized absolute filesystem path.
	Resolved string
	// Display is the path to surface back to the caller: relative to the
	// server root for relative inputs, and "." for absolute inputs (which
	// are their own DisplayBase).
	Display string
	// Root is the absolute containment boundary this path was admitted
	// under (server root, or discovered git root).
	Root string
	// DisplayBase is the absolute path that Display, and every Entry/Hit
	// produced by a walk rooted here, is computed relative to. For a
	// relative input this is the server root; for an absolute input it is
	// Resolved itself.
	DisplayBase string
	Kind        PathKind
}

// Entry is one result row from a directory listing or name-find walk.
type Entry struct {
	Path     string // display path, per AdmittedPath.Display rules
	IsDir    bool
	Size     *int64     // nil unless include_metadata was requested
	Modified *time.Time // nil unless include_metadata was requested
}

// Hit is one matched line from a search_text operation.
type Hit struct {
	Path          string
	Line          int // 1-based
	Column        int // 1-based byte offset of the match start within the line
	LineText      string
	ContextBefore []string
	ContextAfter  []string
}

// RangeMode selects which field of ReadRange is populated.
type RangeMode int

const (
	RangeBytes RangeMode = iota
	RangeLines
)

// ReadRange is a tagged union: exactly one of the two windows below applies,
// selected by Mode. Constructing a ReadRange directly with both windows set
// is a programming error; use NewByteRange/NewLineRange and let the Text
// Reader reject ambiguous request fields upstream of this type.
type ReadRange struct {
	Mode RangeMode

	OffsetBytes int64
	MaxBytes    int64

	StartLine int // 1-based
	MaxLines  int
}

func NewByteRange(offset, maxBytes int64) ReadRange {
	return ReadRange{Mode: RangeBytes, OffsetBytes: offset, MaxBytes: maxBytes}
}

func NewLineRange(startLine, maxLines int) ReadRange {
	return ReadRange{Mode: RangeLines, StartLine: startLine, MaxLines: maxLines}
}

// ServerConfig is the resolved, effective configuration an fscore.Service is
// constructed from. cmd/fsmcpd builds one from the internal/config result,
// which merges flags, environment, project and home config files, and
// defaults.
type ServerConfig struct {
	// ServerRoot is the absolute containment boundary for relative paths.
	ServerRoot string

	// MaxReadBytes caps any single read_file window regardless of the
	// caller-supplied max_bytes.
	MaxReadBytes int64

	// MaxWalkResults caps list_files/find_files/search_text result counts
	// regardless of caller-supplied max_results.
	MaxWalkResults int

	// DefaultContextLines is used by search_text when the caller omits
	// context_lines.
	DefaultContextLines int

	// DenyNames are basenames the Directory Walker never descends into,
	// regardless of ignore-file or glob configuration.
	DenyNames []string
}

// DefaultServerConfig returns the built-in defaults a ServerConfig starts
// from before flags, environment, and config-file overrides are merged in.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		MaxReadBytes:        1 << 20,
		MaxWalkResults:      5000,
		DefaultContextLines: 2,
		DenyNames:           []string{".git"},
	}
}
