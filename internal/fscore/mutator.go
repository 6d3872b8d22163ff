package fscore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// OverwriteFile replaces path's entire content. The target must already
// exist and be a regular file; a directory target is NotAFile.
func (s *Service) OverwriteFile(path *AdmittedPath, content string) error {
	if path.Kind == KindMissing {
		return newErr(KindNotFound, "overwrite_file", path.Input, nil)
	}
	if path.Kind != KindFile {
		return newErr(KindNotAFile, "overwrite_file", path.Input, nil)
	}
	if err := atomicWrite(path.Resolved, []byte(content)); err != nil {
		return newErr(KindIOError, "overwrite_file", path.Input, err)
	}
	return nil
}

// CreateFileResult reports what create_file actually did.
type CreateFileResult struct {
	Created     bool
	Overwritten bool
}

// CreateFile writes content to a new path. If the target already exists and
// overwrite is false, fails with AlreadyExists. If the parent directory is
// missing and createParents is false, fails with ParentMissing.
func (s *Service) CreateFile(path *AdmittedPath, content string, overwrite, createParents bool) (*CreateFileResult, error) {
	existed := path.Kind == KindFile || path.Kind == KindDirectory
	if existed {
		if !overwrite {
			return nil, newErr(KindAlreadyExists, "create_file", path.Input, nil)
		}
		if path.Kind == KindDirectory {
			return nil, newErr(KindNotAFile, "create_file", path.Input, nil)
		}
	}

	parent := filepath.Dir(path.Resolved)
	if _, err := os.Stat(parent); err != nil {
		if !os.IsNotExist(err) {
			return nil, newErr(KindIOError, "create_file", path.Input, err)
		}
		if !createParents {
			return nil, newErr(KindParentMissing, "create_file", path.Input, nil)
		}
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, newErr(KindIOError, "create_file", path.Input, err)
		}
	}

	if err := atomicWrite(path.Resolved, []byte(content)); err != nil {
		return nil, newErr(KindIOError, "create_file", path.Input, err)
	}

	return &CreateFileResult{Created: true, Overwritten: existed}, nil
}

// DeletePathResult reports what delete_path actually did.
type DeletePathResult struct {
	Existed   bool
	IsDir     bool
	Removed   bool
	Recursive bool
}

// DeletePath removes path. A directory requires recursive=true even when
// empty. A missing path with force=true succeeds with Existed=false instead
// of failing with NotFound.
func (s *Service) DeletePath(path *AdmittedPath, recursive, force bool) (*DeletePathResult, error) {
	if path.Kind == KindMissing {
		if force {
			return &DeletePathResult{Existed: false, Recursive: recursive}, nil
		}
		return nil, newErr(KindNotFound, "delete_path", path.Input, nil)
	}

	isDir := path.Kind == KindDirectory
	if isDir && !recursive {
		return nil, newErr(KindNotADirectory, "delete_path", path.Input, nil)
	}

	var err error
	if isDir {
		err = os.RemoveAll(path.Resolved)
	} else {
		err = os.Remove(path.Resolved)
	}
	if err != nil {
		return nil, newErr(KindIOError, "delete_path", path.Input, err)
	}

	return &DeletePathResult{Existed: true, IsDir: isDir, Removed: true, Recursive: recursive}, nil
}

// CopyPathResult reports what copy_path actually did.
type CopyPathResult struct {
	BytesCopied int64
	Overwritten bool
}

// CopyPath copies a regular file from one admitted path to another,
// file-to-file only. Byte content is preserved exactly; modification time
// on the destination is implementation-defined.
func (s *Service) CopyPath(from, to *AdmittedPath, overwrite, createParents bool) (*CopyPathResult, error) {
	if from.Kind == KindMissing {
		return nil, newErr(KindNotFound, "copy_path", from.Input, nil)
	}
	if from.Kind != KindFile {
		return nil, newErr(KindNotAFile, "copy_path", from.Input, nil)
	}

	existed := to.Kind == KindFile || to.Kind == KindDirectory
	if existed {
		if !overwrite {
			return nil, newErr(KindAlreadyExists, "copy_path", to.Input, nil)
		}
		if to.Kind == KindDirectory {
			return nil, newErr(KindNotAFile, "copy_path", to.Input, nil)
		}
	}

	if err := ensureParent(to.Resolved, createParents); err != nil {
		return nil, wrapMutatorErr("copy_path", to.Input, err)
	}

	n, err := copyFileBytes(from.Resolved, to.Resolved)
	if err != nil {
		return nil, newErr(KindIOError, "copy_path", to.Input, err)
	}

	return &CopyPathResult{BytesCopied: n, Overwritten: existed}, nil
}

// MovePathResult reports what move_path actually did.
type MovePathResult struct {
	Existed     bool
	Overwritten bool
}

// MovePath relocates from to to, preferring an atomic rename when source and
// destination are on the same volume. When the rename fails, a regular file
// falls back to copy-then-delete; any other source fails with IoError.
func (s *Service) MovePath(from, to *AdmittedPath, overwrite, createParents bool) (*MovePathResult, error) {
	if from.Kind == KindMissing {
		return nil, newErr(KindNotFound, "move_path", from.Input, nil)
	}

	existed := to.Kind == KindFile || to.Kind == KindDirectory
	if existed && !overwrite {
		return nil, newErr(KindAlreadyExists, "move_path", to.Input, nil)
	}

	if err := ensureParent(to.Resolved, createParents); err != nil {
		return nil, wrapMutatorErr("move_path", to.Input, err)
	}

	if existed && to.Kind == KindFile {
		if err := os.Remove(to.Resolved); err != nil {
			return nil, newErr(KindIOError, "move_path", to.Input, err)
		}
	}

	if err := os.Rename(from.Resolved, to.Resolved); err != nil {
		if from.Kind == KindFile {
			if _, copyErr := copyFileBytes(from.Resolved, to.Resolved); copyErr != nil {
				return nil, newErr(KindIOError, "move_path", to.Input, copyErr)
			}
			if rmErr := os.Remove(from.Resolved); rmErr != nil {
				return nil, newErr(KindIOError, "move_path", from.Input, rmErr)
			}
		} else {
			return nil, newErr(KindIOError, "move_path", to.Input, err)
		}
	}

	return &MovePathResult{Existed: existed, Overwritten: existed}, nil
}

func ensureParent(target string, createParents bool) error {
	parent := filepath.Dir(target)
	if _, err := os.Stat(parent); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	if !createParents {
		return errParentMissing
	}
	return os.MkdirAll(parent, 0o755)
}

var errParentMissing = errors.New("fscore: parent directory missing")

func wrapMutatorErr(op, path string, err error) error {
	if errors.Is(err, errParentMissing) {
		return newErr(KindParentMissing, op, path, nil)
	}
	return newErr(KindIOError, op, path, err)
}

func copyFileBytes(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-*")
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(tmp, in)
	closeErr := tmp.Close()
	if err != nil {
		os.Remove(tmp.Name())
		return 0, err
	}
	if closeErr != nil {
		os.Remove(tmp.Name())
		return 0, closeErr
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return 0, err
	}
	return n, nil
}

// atomicWrite writes data to path via a temp file in the same directory
// followed by a rename, so a reader never observes a partially written
// file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
