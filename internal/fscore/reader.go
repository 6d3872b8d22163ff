package fscore

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"
)

// ReadResult is the outcome of a Text Reader call.
type ReadResult struct {
	Content     string
	IsTruncated bool
	Range       ReadRange
}

const (
	defaultMaxBytes = 65536
	defaultMaxLines = 200
)

// Read returns a windowed view of path's content, enforcing the two
// independent range models of the Text Reader contract: byte-range and
// line-range never mix, and the returned text is always validated UTF-8.
func (s *Service) Read(path *AdmittedPath, rng ReadRange) (*ReadResult, error) {
	if path.Kind == KindMissing {
		return nil, newErr(KindNotFound, "read_file", path.Input, nil)
	}
	if path.Kind != KindFile {
		return nil, newErr(KindNotAFile, "read_file", path.Input, nil)
	}

	data, err := os.ReadFile(path.Resolved)
	if err != nil {
		return nil, newErr(KindIOError, "read_file", path.Input, err)
	}

	if rng.Mode == RangeBytes {
		return readBytes(path.Input, data, rng, s.cfg.MaxReadBytes)
	}
	return readLines(path.Input, data, rng)
}

func readBytes(input string, data []byte, rng ReadRange, capBytes int64) (*ReadResult, error) {
	maxBytes := rng.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	if capBytes > 0 && maxBytes > capBytes {
		maxBytes = capBytes
	}
	offset := rng.OffsetBytes
	if offset < 0 {
		offset = 0
	}

	size := int64(len(data))
	var window []byte
	if offset < size {
		end := offset + maxBytes
		if end > size {
			end = size
		}
		window = data[offset:end]
	}

	if !utf8.Valid(window) {
		return nil, newErr(KindNonUTF8Content, "read_file", input, nil)
	}

	truncated := offset+int64(len(window)) < size

	return &ReadResult{
		Content:     string(window),
		IsTruncated: truncated,
		Range:       NewByteRange(offset, maxBytes),
	}, nil
}

func readLines(input string, data []byte, rng ReadRange) (*ReadResult, error) {
	if !utf8.Valid(data) {
		return nil, newErr(KindNonUTF8Content, "read_file", input, nil)
	}

	maxLines := rng.MaxLines
	if maxLines <= 0 {
		maxLines = defaultMaxLines
	}
	startLine := rng.StartLine
	if startLine <= 0 {
		startLine = 1
	}

	lines := splitKeepCR(data)

	if startLine > len(lines) {
		return &ReadResult{
			Content:     "",
			IsTruncated: false,
			Range:       NewLineRange(startLine, maxLines),
		}, nil
	}

	endLine := startLine - 1 + maxLines
	if endLine > len(lines) {
		endLine = len(lines)
	}
	window := lines[startLine-1 : endLine]

	truncated := endLine < len(lines)

	return &ReadResult{
		Content:     strings.Join(window, "\n"),
		IsTruncated: truncated,
		Range:       NewLineRange(startLine, maxLines),
	}, nil
}

// RawReadRange mirrors the optional fields a read_file request may carry
// before they have been disambiguated into a ReadRange. Exactly one of the
// byte-mode fields or the line-mode fields may be set; RangeType, when
// given, must agree with whichever fields are present.
type RawReadRange struct {
	RangeType   string // "", "bytes", or "lines"
	OffsetBytes *int64
	MaxBytes    *int64
	StartLine   *int
	MaxLines    *int
}

// ParseReadRange applies the Text Reader's mode-exclusivity and
// implicit-mode rules: presence of any line field selects lines mode
// (absent an explicit range_type); presence of any foreign-mode field is a
// hard InvalidArgument error.
func ParseReadRange(raw RawReadRange) (ReadRange, error) {
	hasByteField := raw.OffsetBytes != nil || raw.MaxBytes != nil
	hasLineField := raw.StartLine != nil || raw.MaxLines != nil

	mode := raw.RangeType
	if mode == "" {
		if hasLineField {
			mode = "lines"
		} else {
			mode = "bytes"
		}
	}

	switch mode {
	case "bytes":
		if hasLineField {
			return ReadRange{}, newErr(KindInvalidArgument, "read_file", "", nil)
		}
		offset := int64(0)
		if raw.OffsetBytes != nil {
			offset = *raw.OffsetBytes
		}
		maxBytes := int64(defaultMaxBytes)
		if raw.MaxBytes != nil {
			maxBytes = *raw.MaxBytes
		}
		return NewByteRange(offset, maxBytes), nil
	case "lines":
		if hasByteField {
			return ReadRange{}, newErr(KindInvalidArgument, "read_file", "", nil)
		}
		start := 1
		if raw.StartLine != nil {
			start = *raw.StartLine
		}
		maxLines := defaultMaxLines
		if raw.MaxLines != nil {
			maxLines = *raw.MaxLines
		}
		return NewLineRange(start, maxLines), nil
	default:
		return ReadRange{}, newErr(KindInvalidArgument, "read_file", "", nil)
	}
}

// splitKeepCR splits data on "\n", preserving a trailing "\r" on each line so
// CRLF line endings keep their \r as part of the line's content. A final
// trailing newline does not produce a spurious empty trailing element beyond
// the real last line: line N's content is the text between the (N-1)th and
// Nth "\n".
func splitKeepCR(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	parts := bytes.Split(data, []byte("\n"))
	if len(parts) > 0 && len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}
