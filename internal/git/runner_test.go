package git

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireGitBinary(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func TestDryRunDoesNotMutate(t *testing.T) {
	tr := newTestRepo(t)
	head := tr.commit("a.txt", "a", "first")
	tr.write("b.txt", "b")

	runner := NewRunner(tr.dir, true)
	ctx := context.Background()

	require.NoError(t, runner.AddAll(ctx))
	require.NoError(t, runner.Commit(ctx, "should not exist"))
	require.NoError(t, runner.CreateBranch(ctx, "feature", head))
	require.NoError(t, runner.Reset(ctx, ResetHard, head))
	require.NoError(t, runner.Push(ctx))

	r := tr.open()
	current, err := r.HeadCommitID()
	require.NoError(t, err)
	assert.Equal(t, head, current)

	_, err = r.ResolveReference("feature")
	assert.Error(t, err)

	files, err := r.Status()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "b.txt", files[0].Path)
}

func TestRunnerCreatesAndDeletesBranch(t *testing.T) {
	requireGitBinary(t)

	tr := newTestRepo(t)
	head := tr.commit("a.txt", "a", "first")

	runner := NewRunner(tr.dir, false)
	ctx := context.Background()
	r := tr.open()

	require.NoError(t, runner.CreateBranch(ctx, "feature", head))
	id, err := r.ResolveReference("feature")
	require.NoError(t, err)
	assert.Equal(t, head, id)

	require.NoError(t, runner.DeleteBranch(ctx, "feature"))
	_, err = r.ResolveReference("feature")
	assert.Error(t, err)
}

func TestRunnerReportsGitError(t *testing.T) {
	requireGitBinary(t)

	tr := newTestRepo(t)
	tr.commit("a.txt", "a", "first")

	err := NewRunner(tr.dir, false).Checkout(context.Background(), "does-not-exist")
	var gitErr *GitError
	require.True(t, errors.As(err, &gitErr))
	assert.Equal(t, "checkout", gitErr.Command)
	assert.NotEmpty(t, gitErr.Output)
}

func TestExplainPushError(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"fetch first", "! [rejected] main -> main (fetch first)", "pull first"},
		{"non fast forward", "! [rejected] main -> main (non-fast-forward)", "non-fast-forward"},
		{"no upstream", "fatal: The current branch x has no upstream branch.", "no upstream branch"},
		{"auth", "fatal: Could not read from remote repository.", "credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gitErr := &GitError{Command: "push", Output: tt.output}
			err := explainPushError(gitErr)
			assert.Contains(t, err.Error(), tt.want)

			var unwrapped *GitError
			assert.True(t, errors.As(err, &unwrapped))
		})
	}

	plain := &GitError{Command: "push", Output: "something else"}
	assert.Equal(t, error(plain), explainPushError(plain))
}

func TestNewGitError(t *testing.T) {
	err := newGitError([]string{"merge", "x"}, "  conflict\n")
	assert.Equal(t, "git merge: conflict", err.Error())

	err = newGitError(nil, "")
	assert.Equal(t, "git : command failed", err.Error())
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		output       string
		major, minor int
		ok           bool
		supported    bool
	}{
		{"git version 2.39.2", 2, 39, true, true},
		{"git version 2.23.0.windows.1", 2, 23, true, true},
		{"git version 2.22.5", 2, 22, true, false},
		{"git version 1.9", 1, 9, true, false},
		{"git version 3.0", 3, 0, true, true},
		{"not git", 0, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			major, minor, ok := ParseVersion(tt.output)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.major, major)
			assert.Equal(t, tt.minor, minor)
			if ok {
				assert.Equal(t, tt.supported, VersionSupported(major, minor))
			}
		})
	}
}

func TestValidator(t *testing.T) {
	requireGitBinary(t)

	tr := newTestRepo(t)
	tr.commit("a.txt", "a", "first")

	v := NewValidator(NewRunner(tr.dir, false))
	v.Start(context.Background())

	require.Eventually(t, func() bool {
		_, ok := v.Result()
		return ok
	}, 10*time.Second, 20*time.Millisecond)

	result, _ := v.Result()
	assert.NotEmpty(t, result.GitVersion)
	assert.Empty(t, result.FailedCommands)
}

func TestShouldIgnoreEvent(t *testing.T) {
	tests := []struct {
		name   string
		event  fsnotify.Event
		ignore bool
	}{
		{"head write", fsnotify.Event{Name: "/r/.git/HEAD", Op: fsnotify.Write}, false},
		{"branch created", fsnotify.Event{Name: "/r/.git/refs/heads/feature", Op: fsnotify.Create}, false},
		{"branch removed", fsnotify.Event{Name: "/r/.git/refs/heads/feature", Op: fsnotify.Remove}, false},
		{"index rename", fsnotify.Event{Name: "/r/.git/index", Op: fsnotify.Rename}, false},
		{"chmod", fsnotify.Event{Name: "/r/.git/HEAD", Op: fsnotify.Chmod}, true},
		{"lock file", fsnotify.Event{Name: "/r/.git/index.lock", Op: fsnotify.Create}, true},
		{"reflog", fsnotify.Event{Name: "/r/.git/logs/HEAD", Op: fsnotify.Write}, true},
		{"objects", fsnotify.Event{Name: "/r/.git/objects/ab", Op: fsnotify.Create}, true},
		{"config", fsnotify.Event{Name: "/r/.git/config", Op: fsnotify.Write}, true},
		{"fetch head", fsnotify.Event{Name: "/r/.git/FETCH_HEAD", Op: fsnotify.Write}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ignore, shouldIgnoreEvent(tt.event))
		})
	}
}

func TestWatchDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "refs", "heads"), 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := Watch(ctx, dir, 20*time.Millisecond)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "refs", "heads", "main"), []byte{byte('a' + i)}, 0o644))
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}

	cancel()
	w.Wait()
}

func waitForChange(t *testing.T, w *Watcher, what string) {
	t.Helper()
	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatalf("no change notification for %s", what)
	}
}

func TestWatchNestedRefs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "refs", "remotes", "origin"), 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := Watch(ctx, dir, 20*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "refs", "remotes", "origin", "main"), []byte("a"), 0o644))
	waitForChange(t, w, "refs/remotes/origin/main")

	cancel()
	w.Wait()
}

func TestWatchRefsDirectoryCreatedLater(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "refs", "heads"), 0o755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w, err := Watch(ctx, dir, 20*time.Millisecond)
	require.NoError(t, err)

	feature := filepath.Join(dir, "refs", "heads", "feature")
	require.NoError(t, os.Mkdir(feature, 0o755))
	waitForChange(t, w, "refs/heads/feature")

	require.NoError(t, os.WriteFile(filepath.Join(feature, "x"), []byte("a"), 0o644))
	waitForChange(t, w, "refs/heads/feature/x")

	cancel()
	w.Wait()
}
