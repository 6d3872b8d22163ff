package fscore

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestResolver(t *testing.T, root string) *Resolver {
	t.Helper()
	return NewResolver(ServerConfig{ServerRoot: root})
}

func TestResolve_RelativeUnderServerRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "src", "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newTestResolver(t, root)
	admitted, err := r.Resolve("list_files", "src/main.go")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if admitted.Display != "src/main.go" {
		t.Errorf("Display = %q, want %q", admitted.Display, "src/main.go")
	}
	if admitted.Kind != KindFile {
		t.Errorf("Kind = %v, want KindFile", admitted.Kind)
	}
}

func TestResolve_RootEscapesRepository(t *testing.T) {
	root := t.TempDir()
	r := newTestResolver(t, root)

	_, err := r.Resolve("list_files", "../outside")
	kind, ok := KindOf(err)
	if !ok || kind != KindRootEscapesRepository {
		t.Fatalf("got err=%v, want RootEscapesRepository", err)
	}
}

func TestResolve_AbsoluteNoGit(t *testing.T) {
	root := t.TempDir() // no .git ancestor anywhere reliable in a temp dir
	r := newTestResolver(t, root)

	_, err := r.Resolve("list_files", root)
	kind, ok := KindOf(err)
	if !ok || kind != KindNotInsideGitRepository {
		t.Fatalf("got err=%v, want NotInsideGitRepository", err)
	}
}

func TestResolve_AbsoluteInsideGit(t *testing.T) {
	repo := t.TempDir()
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(repo, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(repo, "sub", "x.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newTestResolver(t, t.TempDir())
	admitted, err := r.Resolve("list_files", filepath.Join(repo, "sub"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if admitted.Display != "." {
		t.Errorf("Display = %q, want %q", admitted.Display, ".")
	}
	if admitted.Root != repo {
		t.Errorf("Root = %q, want %q", admitted.Root, repo)
	}
}

func TestResolve_EmptyInputTreatedAsDot(t *testing.T) {
	root := t.TempDir()
	r := newTestResolver(t, root)

	admitted, err := r.Resolve("list_files", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if admitted.Display != "." {
		t.Errorf("Display = %q, want %q", admitted.Display, ".")
	}
}

func TestResolve_MissingTargetIsAdmissible(t *testing.T) {
	root := t.TempDir()
	r := newTestResolver(t, root)

	admitted, err := r.Resolve("stat", "no/such/file.txt")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if admitted.Kind != KindMissing {
		t.Errorf("Kind = %v, want KindMissing", admitted.Kind)
	}
}

func TestIsDescendant(t *testing.T) {
	cases := []struct {
		root, target string
		want         bool
	}{
		{"/srv/app", "/srv/app", true},
		{"/srv/app", "/srv/app/sub", true},
		{"/srv/app", "/srv/app2", false},
		{"/srv/app", "/srv", false},
	}
	for _, c := range cases {
		if got := isDescendant(c.root, c.target); got != c.want {
			t.Errorf("isDescendant(%q, %q) = %v, want %v", c.root, c.target, got, c.want)
		}
	}
}
