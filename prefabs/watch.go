package prefabs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a file has to stay quiet before it is reported.
// Editors write a file in several steps.
const settle = 150 * time.Millisecond

// Watcher reports edited prefab and script files under a set of directory
// trees. Events and Errors are closed once the watcher stops.
type Watcher struct {
	fs      *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches every directory below the given roots, including ones
// created later.
func NewWatcher(roots ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, root := range roots {
		if err := addTree(fw, root); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fw,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fw.Add(path)
	})
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
	})
	return err
}

// Drain returns the paths reported since the last call without blocking.
func (w *Watcher) Drain() []string {
	var out []string
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return out
			}
			out = append(out, path)
		default:
			return out
		}
	}
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	tick := time.NewTicker(settle / 3)
	defer tick.Stop()

	// pending holds the last change time of each unreported file.
	pending := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(w.fs, event.Name); err != nil {
						w.report(err)
					}
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if isSpecFile(event.Name) || isScriptFile(event.Name) {
				pending[event.Name] = time.Now()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.report(err)
		case now := <-tick.C:
			for path, at := range pending {
				if now.Sub(at) < settle {
					continue
				}
				delete(pending, path)
				select {
				case w.Events <- path:
				case <-w.closeCh:
					return
				}
			}
		case <-w.closeCh:
			return
		}
	}
}

// report drops err when an earlier one is still unread.
func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
