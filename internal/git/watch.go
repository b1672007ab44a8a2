package git

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of changes to settle
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports changes to HEAD, the index and local or remote refs.
// Bursts of filesystem events collapse into a single notification.
type Watcher struct {
	fs       *fsnotify.Watcher
	changes  chan struct{}
	debounce time.Duration
	wg       sync.WaitGroup
}

// Watch starts watching gitDir until ctx is cancelled
func Watch(ctx context.Context, gitDir string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(gitDir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fs:       fsw,
		changes:  make(chan struct{}, 1),
		debounce: debounce,
	}
	// fsnotify is not recursive; refs like refs/remotes/origin/main sit
	// several levels down
	w.addTree(filepath.Join(gitDir, "refs"))
	w.wg.Add(1)
	go w.loop(ctx)

	slog.Debug("watching repository", "dir", gitDir)
	return w, nil
}

// Changes delivers one value per settled burst of changes
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Wait blocks until the watch loop has exited
func (w *Watcher) Wait() {
	w.wg.Wait()
}

// addTree watches root and every directory below it
func (w *Watcher) addTree(root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fs.Add(path); err != nil {
			slog.Debug("could not watch", "dir", path, "error", err)
		}
		return nil
	})
	if err != nil {
		slog.Debug("could not walk", "dir", root, "error", err)
	}
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	defer w.fs.Close()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if shouldIgnoreEvent(event) {
				continue
			}
			if event.Op&fsnotify.Create != 0 && isRefsDir(event.Name) {
				w.addTree(event.Name)
			}

			slog.Debug("change detected", "file", filepath.Base(event.Name))

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, w.notify)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

// notify never blocks; a pending notification already covers this one
func (w *Watcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// isRefsDir reports whether path is a directory inside refs/
func isRefsDir(path string) bool {
	if !strings.Contains(filepath.ToSlash(path), "/refs/") {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func shouldIgnoreEvent(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	path := filepath.ToSlash(event.Name)

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return true
	}
	if strings.HasSuffix(base, ".lock") {
		return true
	}
	if strings.Contains(path, "/logs/") || strings.Contains(path, "/objects/") {
		return true
	}
	if base == "config" || base == "FETCH_HEAD" {
		return true
	}

	return false
}
