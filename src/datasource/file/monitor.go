// monitor.go
package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileMonitor 监听数据目录中指定文件的变更
type FileMonitor struct {
	watchDir string
	files    map[string]bool // base names to react to, empty = all
	debounce time.Duration
	watcher  *fsnotify.Watcher
	lastFile string
	lastMod  time.Time
	mu       sync.Mutex
}

func NewFileMonitor(dir string, debounce time.Duration, files ...string) (*FileMonitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	names := make(map[string]bool, len(files))
	for _, f := range files {
		names[filepath.Base(f)] = true
	}

	return &FileMonitor{
		watchDir: dir,
		files:    names,
		debounce: debounce,
		watcher:  watcher,
	}, nil
}

// Close stops the underlying watcher.
func (m *FileMonitor) Close() error {
	return m.watcher.Close()
}

// LastFile returns the most recent file that triggered the handler.
func (m *FileMonitor) LastFile() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastFile
}

// Watch blocks until ctx is done, calling handler once per burst of writes
// to a watched file. Editors often write a file in several steps, so events
// are coalesced over the debounce window.
func (m *FileMonitor) Watch(ctx context.Context, handler func(string)) error {
	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-m.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if len(m.files) > 0 && !m.files[filepath.Base(event.Name)] {
				continue
			}
			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}

			m.mu.Lock()
			changed := info.ModTime().After(m.lastMod) || event.Name != m.lastFile
			if changed {
				m.lastMod = info.ModTime()
				m.lastFile = event.Name
			}
			m.mu.Unlock()
			if !changed {
				continue
			}

			pending = event.Name
			if timer == nil {
				timer = time.NewTimer(m.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(m.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			handler(pending)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
