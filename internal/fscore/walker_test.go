package fscore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestService(t *testing.T, root string) *Service {
	t.Helper()
	return NewService(ServerConfig{
		ServerRoot:          root,
		MaxReadBytes:        1 << 20,
		MaxWalkResults:      5000,
		DefaultContextLines: 2,
		DenyNames:           []string{".git"},
	})
}

func mustResolve(t *testing.T, s *Service, op, input string) *AdmittedPath {
	t.Helper()
	p, err := s.Resolve(op, input)
	if err != nil {
		t.Fatalf("Resolve(%q): %v", input, err)
	}
	return p
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeRaw(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func TestWalk_NonRecursiveListsImmediateChildrenOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "b")

	s := newTestService(t, root)
	admitted := mustResolve(t, s, "list_files", ".")

	result, err := s.Walk(context.Background(), admitted, WalkOptions{Recursive: false, MaxResults: 100})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(result.Entries) != 1 || result.Entries[0].Path != "a.txt" {
		t.Fatalf("entries = %+v, want just a.txt", result.Entries)
	}
}

func TestWalk_RecursiveIncludesDescendants(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "a")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "b")

	s := newTestService(t, root)
	admitted := mustResolve(t, s, "list_files", ".")

	result, err := s.Walk(context.Background(), admitted, WalkOptions{Recursive: true, MaxResults: 100})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	paths := map[string]bool{}
	for _, e := range result.Entries {
		paths[e.Path] = true
	}
	if !paths["a.txt"] || !paths["sub/b.txt"] {
		t.Fatalf("entries = %+v, missing expected paths", result.Entries)
	}
}

func TestWalk_AbsoluteRootDisplaysRelativeToItself(t *testing.T) {
	repo := t.TempDir()
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(repo, "sub", "x.txt"), "x")

	s := newTestService(t, t.TempDir())
	admitted := mustResolve(t, s, "list_files", filepath.Join(repo, "sub"))

	result, err := s.Walk(context.Background(), admitted, WalkOptions{Recursive: false, MaxResults: 100})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(result.Entries) != 1 || result.Entries[0].Path != "x.txt" {
		t.Fatalf("entries = %+v, want single entry x.txt", result.Entries)
	}
}

func TestWalk_GitignoreExcludesFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "ignored.txt\n")
	writeFile(t, filepath.Join(root, "ignored.txt"), "x")
	writeFile(t, filepath.Join(root, "kept.txt"), "y")

	s := newTestService(t, root)
	admitted := mustResolve(t, s, "list_files", ".")

	result, err := s.Walk(context.Background(), admitted, WalkOptions{Recursive: true, MaxResults: 100})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	for _, e := range result.Entries {
		if e.Path == "ignored.txt" {
			t.Fatalf("ignored.txt should have been excluded, got entries %+v", result.Entries)
		}
	}
}

func TestWalk_NestedGitignoreNegationOverridesAncestor(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.log\n")
	writeFile(t, filepath.Join(root, "sub", ".gitignore"), "!keep.log\n")
	writeFile(t, filepath.Join(root, "sub", "keep.log"), "x")
	writeFile(t, filepath.Join(root, "sub", "drop.log"), "y")

	s := newTestService(t, root)
	admitted := mustResolve(t, s, "list_files", ".")

	result, err := s.Walk(context.Background(), admitted, WalkOptions{Recursive: true, MaxResults: 100})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	found := map[string]bool{}
	for _, e := range result.Entries {
		found[e.Path] = true
	}
	if !found["sub/keep.log"] {
		t.Errorf("sub/keep.log should survive the negation, entries=%+v", result.Entries)
	}
	if found["sub/drop.log"] {
		t.Errorf("sub/drop.log should still be excluded, entries=%+v", result.Entries)
	}
}

func TestWalk_PagingSetsHasMore(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.txt"} {
		writeFile(t, filepath.Join(root, name), "x")
	}

	s := newTestService(t, root)
	admitted := mustResolve(t, s, "list_files", ".")

	result, err := s.Walk(context.Background(), admitted, WalkOptions{Recursive: false, MaxResults: 2})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(result.Entries))
	}
	if !result.HasMore {
		t.Errorf("HasMore = false, want true")
	}
}

func TestWalk_IncludeMetadataFillsSize(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello")

	s := newTestService(t, root)
	admitted := mustResolve(t, s, "list_files", ".")

	result, err := s.Walk(context.Background(), admitted, WalkOptions{Recursive: false, MaxResults: 100, IncludeMetadata: true})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(result.Entries) != 1 || result.Entries[0].Size == nil || *result.Entries[0].Size != 5 {
		t.Fatalf("entries = %+v, want size=5", result.Entries)
	}
}

func TestWalk_RejectsNonDirectoryRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "x")

	s := newTestService(t, root)
	admitted := mustResolve(t, s, "list_files", "a.txt")

	_, err := s.Walk(context.Background(), admitted, WalkOptions{Recursive: false, MaxResults: 100})
	kind, ok := KindOf(err)
	if !ok || kind != KindNotADirectory {
		t.Fatalf("got err=%v, want NotADirectory", err)
	}
}
