package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// initRepo creates a repository with one commit.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run(t, dir, "git", "init")
	run(t, dir, "git", "config", "user.email", "test@commit-sage.local")
	run(t, dir, "git", "config", "user.name", "Test")
	writeFile(t, dir, "f1.txt", "a\n")
	run(t, dir, "git", "add", "f1.txt")
	run(t, dir, "git", "commit", "-m", "c1")
	return dir
}

// initEmptyRepo creates a repository with no commits.
func initEmptyRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run(t, dir, "git", "init")
	run(t, dir, "git", "config", "user.email", "test@commit-sage.local")
	run(t, dir, "git", "config", "user.name", "Test")
	return dir
}

func run(t *testing.T, dir, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%s %v: %v\n%s", name, args, err, out)
	}
}

func runOut(t *testing.T, dir, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("%s %v: %v", name, args, err)
	}
	return strings.TrimSpace(string(out))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestOpen_notARepo(t *testing.T) {
	t.Parallel()
	_, err := Open(context.Background(), t.TempDir(), true)
	if err == nil {
		t.Fatal("Open(non-repo): expected error")
	}
}

func TestOpen_resolvesRoot(t *testing.T) {
	t.Parallel()
	dir := initRepo(t)
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatal(err)
	}
	r, err := Open(context.Background(), sub, true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want, _ := filepath.Abs(dir)
	wantResolved, _ := filepath.EvalSymlinks(want)
	gotResolved, _ := filepath.EvalSymlinks(r.Root())
	if gotResolved != wantResolved {
		t.Errorf("Root() = %q, want %q", r.Root(), want)
	}
}

func TestHasChanges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := initRepo(t)
	r, err := Open(ctx, dir, true)
	if err != nil {
		t.Fatal(err)
	}

	ok, err := r.HasChanges(ctx)
	if err != nil {
		t.Fatalf("HasChanges: %v", err)
	}
	if ok {
		t.Error("clean repo: HasChanges = true, want false")
	}

	writeFile(t, dir, "new.txt", "content\n")
	ok, err = r.HasChanges(ctx)
	if err != nil {
		t.Fatalf("HasChanges: %v", err)
	}
	if !ok {
		t.Error("untracked file present: HasChanges = false, want true")
	}
}

func TestHasChanges_untrackedExcluded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := initRepo(t)
	r, err := Open(ctx, dir, false)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "new.txt", "content\n")
	ok, err := r.HasChanges(ctx)
	if err != nil {
		t.Fatalf("HasChanges: %v", err)
	}
	if ok {
		t.Error("untracked excluded: HasChanges = true, want false")
	}
}

func TestIsInitialCommit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	empty, err := Open(ctx, initEmptyRepo(t), true)
	if err != nil {
		t.Fatal(err)
	}
	initial, err := empty.IsInitialCommit(ctx)
	if err != nil {
		t.Fatalf("IsInitialCommit: %v", err)
	}
	if !initial {
		t.Error("empty repo: IsInitialCommit = false, want true")
	}

	committed, err := Open(ctx, initRepo(t), true)
	if err != nil {
		t.Fatal(err)
	}
	initial, err = committed.IsInitialCommit(ctx)
	if err != nil {
		t.Fatalf("IsInitialCommit: %v", err)
	}
	if initial {
		t.Error("repo with a commit: IsInitialCommit = true, want false")
	}
}

func TestDiff_modifiedFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := initRepo(t)
	r, err := Open(ctx, dir, true)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "f1.txt", "a\nb\n")

	diff, err := r.Diff(ctx)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !strings.Contains(diff, "diff --git a/f1.txt b/f1.txt") {
		t.Errorf("diff missing header:\n%s", diff)
	}
	if !strings.Contains(diff, "+b") {
		t.Errorf("diff missing added line:\n%s", diff)
	}
}

func TestDiff_untrackedFileIncluded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := initRepo(t)
	r, err := Open(ctx, dir, true)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "new.txt", "hello\n")

	diff, err := r.Diff(ctx)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !strings.Contains(diff, "new.txt") {
		t.Errorf("untracked file missing from diff:\n%s", diff)
	}
	if !strings.Contains(diff, "+hello") {
		t.Errorf("untracked content missing from diff:\n%s", diff)
	}
}

func TestDiff_initialCommit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := initEmptyRepo(t)
	writeFile(t, dir, "main.go", "package main\n")
	r, err := Open(ctx, dir, true)
	if err != nil {
		t.Fatal(err)
	}

	diff, err := r.Diff(ctx)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	if !strings.Contains(diff, "new file mode") {
		t.Errorf("initial diff missing new file marker:\n%s", diff)
	}
	if !strings.Contains(diff, "+package main") {
		t.Errorf("initial diff missing content:\n%s", diff)
	}
}

func TestDiff_noChanges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r, err := Open(ctx, initRepo(t), true)
	if err != nil {
		t.Fatal(err)
	}
	_, err = r.Diff(ctx)
	if !errors.Is(err, ErrNoChanges) {
		t.Fatalf("Diff on clean tree: want ErrNoChanges, got %v", err)
	}
}

func TestCommit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := initRepo(t)
	r, err := Open(ctx, dir, true)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "feature.go", "package feature\n")

	if err := r.Commit(ctx, "feat(core): add feature package"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got := runOut(t, dir, "git", "log", "-1", "--format=%s")
	if got != "feat(core): add feature package" {
		t.Errorf("commit subject = %q", got)
	}
	status := runOut(t, dir, "git", "status", "--porcelain")
	if status != "" {
		t.Errorf("working tree not clean after commit: %q", status)
	}
}

func TestCommit_initialCommit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := initEmptyRepo(t)
	writeFile(t, dir, "main.go", "package main\n")
	r, err := Open(ctx, dir, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Commit(ctx, "feat(core): initial implementation"); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got := runOut(t, dir, "git", "log", "-1", "--format=%s")
	if got != "feat(core): initial implementation" {
		t.Errorf("commit subject = %q", got)
	}
}
