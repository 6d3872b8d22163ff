package fscore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStat_MissingPathReportsExistsFalse(t *testing.T) {
	root := t.TempDir()
	s := newTestService(t, root)
	admitted := mustResolve(t, s, "stat", "nope.txt")

	result, err := s.Stat(admitted)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if result.Exists {
		t.Errorf("Exists = true, want false")
	}
}

func TestStat_ExistingFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello")
	s := newTestService(t, root)
	admitted := mustResolve(t, s, "stat", "a.txt")

	result, err := s.Stat(admitted)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !result.Exists || !result.IsFile || result.IsDir {
		t.Fatalf("result = %+v, want a plain existing file", result)
	}
	if result.Size == nil || *result.Size != 5 {
		t.Errorf("Size = %v, want 5", result.Size)
	}
}

func TestStat_ExistingDirectory(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	s := newTestService(t, root)
	admitted := mustResolve(t, s, "stat", "sub")

	result, err := s.Stat(admitted)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if !result.Exists || result.IsFile || !result.IsDir {
		t.Fatalf("result = %+v, want an existing directory", result)
	}
	if result.Size != nil {
		t.Errorf("Size = %v, want nil for a directory", result.Size)
	}
}

func TestPathInfo_NeverFailsOnEscapingRelativePath(t *testing.T) {
	root := t.TempDir()
	s := newTestService(t, root)

	result, err := s.PathInfo("../outside")
	if err != nil {
		t.Fatalf("PathInfo should never fail, got %v", err)
	}
	if result.IsAbsolute {
		t.Errorf("IsAbsolute = true, want false")
	}
}

func TestPathInfo_ExistingAbsolutePathReportsRepoRoot(t *testing.T) {
	repo := t.TempDir()
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(repo, "a.txt"), "x")

	s := newTestService(t, t.TempDir())
	result, err := s.PathInfo(filepath.Join(repo, "a.txt"))
	if err != nil {
		t.Fatalf("PathInfo: %v", err)
	}
	if !result.Exists || !result.IsFile {
		t.Fatalf("result = %+v, want an existing file", result)
	}
	if result.RepoRoot == nil || *result.RepoRoot != repo {
		t.Errorf("RepoRoot = %v, want %q", result.RepoRoot, repo)
	}
}

func TestPathInfo_MissingPathReportsExistsFalseNoRepoRoot(t *testing.T) {
	root := t.TempDir()
	s := newTestService(t, root)

	result, err := s.PathInfo("nope.txt")
	if err != nil {
		t.Fatalf("PathInfo: %v", err)
	}
	if result.Exists || result.RepoRoot != nil {
		t.Fatalf("result = %+v, want nonexistent with no repo root", result)
	}
}
