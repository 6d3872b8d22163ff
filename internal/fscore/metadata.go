package fscore

import "os"

// StatResult is the response shape for stat.
type StatResult struct {
	Exists   bool
	IsFile   bool
	IsDir    bool
	Size     *int64
	Modified *int64 // unix seconds
}

// Stat reports on path without ever failing on a missing target: absence is
// reported as Exists=false, not an error.
func (s *Service) Stat(path *AdmittedPath) (*StatResult, error) {
	if path.Kind == KindMissing {
		return &StatResult{Exists: false}, nil
	}

	info, err := os.Stat(path.Resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return &StatResult{Exists: false}, nil
		}
		return nil, newErr(KindIOError, "stat", path.Input, err)
	}

	result := &StatResult{
		Exists: true,
		IsFile: info.Mode().IsRegular(),
		IsDir:  info.IsDir(),
	}
	if result.IsFile {
		size := info.Size()
		result.Size = &size
	}
	modified := info.ModTime().Unix()
	result.Modified = &modified
	return result, nil
}

// PathInfoResult is the response shape for path_info.
type PathInfoResult struct {
	InputPath     string
	ResolvedPath  string
	Exists        bool
	IsFile        bool
	IsDir         bool
	IsAbsolute    bool
	CanonicalPath *string
	RepoRoot      *string
}

// PathInfo is the diagnostic escape hatch of the Metadata & Info component:
// it never fails for a syntactically valid path string, reporting existence
// and repository membership rather than raising admission errors.
func (s *Service) PathInfo(inputPath string) (*PathInfoResult, error) {
	norm := normalizeSeparators(inputPath)
	if norm == "" {
		norm = "."
	}

	isAbs := isAbsolutePath(norm)

	resolved := norm
	if !isAbs {
		resolved = joinServerRoot(s.cfg.ServerRoot, norm)
	}

	result := &PathInfoResult{
		InputPath:    inputPath,
		ResolvedPath: resolved,
		IsAbsolute:   isAbs,
	}

	canon, err := canonicalize(resolved)
	if err != nil {
		return result, nil
	}

	if info, statErr := os.Stat(canon); statErr == nil {
		result.Exists = true
		result.IsFile = info.Mode().IsRegular()
		result.IsDir = info.IsDir()
		result.CanonicalPath = &canon

		if root, ok := findGitRoot(canon); ok {
			result.RepoRoot = &root
		}
	}

	return result, nil
}
