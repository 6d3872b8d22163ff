package fscore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOverwriteFile_ReplacesExistingContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "old")

	s := newTestService(t, root)
	admitted := mustResolve(t, s, "overwrite_file", "a.txt")

	if err := s.OverwriteFile(admitted, "new"); err != nil {
		t.Fatalf("OverwriteFile: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new" {
		t.Errorf("content = %q, want %q", data, "new")
	}
}

func TestOverwriteFile_MissingTargetFails(t *testing.T) {
	root := t.TempDir()
	s := newTestService(t, root)
	admitted := mustResolve(t, s, "overwrite_file", "nope.txt")

	err := s.OverwriteFile(admitted, "x")
	kind, ok := KindOf(err)
	if !ok || kind != KindNotFound {
		t.Fatalf("got err=%v, want NotFound", err)
	}
}

func TestCreateFile_NewFile(t *testing.T) {
	root := t.TempDir()
	s := newTestService(t, root)
	admitted := mustResolve(t, s, "create_file", "a.txt")

	result, err := s.CreateFile(admitted, "hi", false, false)
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if !result.Created || result.Overwritten {
		t.Errorf("result = %+v, want Created=true Overwritten=false", result)
	}
}

func TestCreateFile_ExistingWithoutOverwriteFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "old")
	s := newTestService(t, root)
	admitted := mustResolve(t, s, "create_file", "a.txt")

	_, err := s.CreateFile(admitted, "new", false, false)
	kind, ok := KindOf(err)
	if !ok || kind != KindAlreadyExists {
		t.Fatalf("got err=%v, want AlreadyExists", err)
	}
}

func TestCreateFile_MissingParentWithoutCreateParentsFails(t *testing.T) {
	root := t.TempDir()
	s := newTestService(t, root)
	admitted := mustResolve(t, s, "create_file", "sub/a.txt")

	_, err := s.CreateFile(admitted, "x", false, false)
	kind, ok := KindOf(err)
	if !ok || kind != KindParentMissing {
		t.Fatalf("got err=%v, want ParentMissing", err)
	}
}

func TestCreateFile_CreateParentsMakesDirectories(t *testing.T) {
	root := t.TempDir()
	s := newTestService(t, root)
	admitted := mustResolve(t, s, "create_file", "a/b/c.txt")

	_, err := s.CreateFile(admitted, "x", false, true)
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "a", "b", "c.txt")); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestDeletePath_DirectoryRequiresRecursive(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	s := newTestService(t, root)
	admitted := mustResolve(t, s, "delete_path", "sub")

	_, err := s.DeletePath(admitted, false, false)
	kind, ok := KindOf(err)
	if !ok || kind != KindNotADirectory {
		t.Fatalf("got err=%v, want NotADirectory", err)
	}
}

func TestDeletePath_MissingWithForceSucceeds(t *testing.T) {
	root := t.TempDir()
	s := newTestService(t, root)
	admitted := mustResolve(t, s, "delete_path", "nope.txt")

	result, err := s.DeletePath(admitted, false, true)
	if err != nil {
		t.Fatalf("DeletePath: %v", err)
	}
	if result.Existed {
		t.Errorf("Existed = true, want false")
	}
}

func TestDeletePath_MissingWithoutForceFails(t *testing.T) {
	root := t.TempDir()
	s := newTestService(t, root)
	admitted := mustResolve(t, s, "delete_path", "nope.txt")

	_, err := s.DeletePath(admitted, false, false)
	kind, ok := KindOf(err)
	if !ok || kind != KindNotFound {
		t.Fatalf("got err=%v, want NotFound", err)
	}
}

func TestDeletePath_RecursiveRemovesDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", "a.txt"), "x")
	s := newTestService(t, root)
	admitted := mustResolve(t, s, "delete_path", "sub")

	result, err := s.DeletePath(admitted, true, false)
	if err != nil {
		t.Fatalf("DeletePath: %v", err)
	}
	if !result.Removed || !result.IsDir {
		t.Errorf("result = %+v, want Removed=true IsDir=true", result)
	}
	if _, err := os.Stat(filepath.Join(root, "sub")); !os.IsNotExist(err) {
		t.Errorf("sub directory should be gone, stat err=%v", err)
	}
}

func TestCopyPath_CopiesFileContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src.txt"), "payload")
	s := newTestService(t, root)
	from := mustResolve(t, s, "copy_path", "src.txt")
	to := mustResolve(t, s, "copy_path", "dst.txt")

	result, err := s.CopyPath(from, to, false, true)
	if err != nil {
		t.Fatalf("CopyPath: %v", err)
	}
	if result.BytesCopied != 7 {
		t.Errorf("BytesCopied = %d, want 7", result.BytesCopied)
	}
	data, err := os.ReadFile(filepath.Join(root, "dst.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q, want %q", data, "payload")
	}
}

func TestCopyPath_ExistingDestinationWithoutOverwriteFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src.txt"), "payload")
	writeFile(t, filepath.Join(root, "dst.txt"), "already here")
	s := newTestService(t, root)
	from := mustResolve(t, s, "copy_path", "src.txt")
	to := mustResolve(t, s, "copy_path", "dst.txt")

	_, err := s.CopyPath(from, to, false, true)
	kind, ok := KindOf(err)
	if !ok || kind != KindAlreadyExists {
		t.Fatalf("got err=%v, want AlreadyExists", err)
	}
}

func TestMovePath_RenamesFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src.txt"), "payload")
	s := newTestService(t, root)
	from := mustResolve(t, s, "move_path", "src.txt")
	to := mustResolve(t, s, "move_path", "dst.txt")

	_, err := s.MovePath(from, to, false, true)
	if err != nil {
		t.Fatalf("MovePath: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "src.txt")); !os.IsNotExist(err) {
		t.Errorf("source should be gone, stat err=%v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "dst.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Errorf("content = %q, want %q", data, "payload")
	}
}

func TestMovePath_MissingSourceFails(t *testing.T) {
	root := t.TempDir()
	s := newTestService(t, root)
	from := mustResolve(t, s, "move_path", "nope.txt")
	to := mustResolve(t, s, "move_path", "dst.txt")

	_, err := s.MovePath(from, to, false, true)
	kind, ok := KindOf(err)
	if !ok || kind != KindNotFound {
		t.Fatalf("got err=%v, want NotFound", err)
	}
}
