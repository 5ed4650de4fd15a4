package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// debounce is how long a file must stay quiet before it is reloaded.
// Editors often write a file several times when saving.
const debounce = 100 * time.Millisecond

// Watcher reloads the tuning file when it changes on disk.
// Valid reloads are delivered on Reloads; broken files are logged and skipped
// so a half-saved file never reaches a running scene.
type Watcher struct {
	watcher    *fsnotify.Watcher
	customPath string // absolute, or empty
	logger     *log.Logger

	wanted  []string        // absolute directories that may hold the file
	watched map[string]bool // directories added to fsnotify; owned by run after start

	reloads chan TapConfig
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches customPath if set, otherwise every search directory.
// Directories are watched rather than files so that atomic rename-on-save
// is seen. A directory that does not exist yet is watched through its
// nearest existing parent until it is created.
func NewWatcher(customPath string, logger *log.Logger) (*Watcher, error) {
	if logger == nil {
		logger = log.Default()
	}

	dirs := SearchDirs()
	if customPath != "" {
		abs, err := filepath.Abs(customPath)
		if err != nil {
			return nil, err
		}
		customPath = abs
		dirs = []string{filepath.Dir(abs)}
	}

	wanted := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			continue
		}
		wanted = append(wanted, abs)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:    fw,
		customPath: customPath,
		logger:     logger,
		wanted:     wanted,
		watched:    make(map[string]bool),
		reloads:    make(chan TapConfig, 1),
		closeCh:    make(chan struct{}),
	}
	w.attach()
	if len(w.watched) == 0 {
		logger.Debug("no config directories to watch", "dirs", wanted)
	}
	go w.run()
	return w, nil
}

// attach watches each wanted directory, or its nearest existing parent
// while it is missing. It returns the wanted directories that became
// watched by this call.
func (w *Watcher) attach() []string {
	var ready []string
	for _, dir := range w.wanted {
		target := nearestDir(dir)
		if target == "" || w.watched[target] {
			continue
		}
		if err := w.watcher.Add(target); err != nil {
			w.logger.Warn("cannot watch config directory", "dir", target, "error", err)
			continue
		}
		w.watched[target] = true
		if target == dir {
			ready = append(ready, dir)
		}
	}
	return ready
}

// nearestDir returns dir or its closest existing ancestor, or empty.
func nearestDir(dir string) string {
	for {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Reloads returns the channel of successfully reloaded configurations.
func (w *Watcher) Reloads() <-chan TapConfig {
	return w.reloads
}

// Close stops watching. Safe to call multiple times.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.reloads)

	// Trailing debounce: reload once the file has been quiet for a moment.
	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending string
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := event.Name
			if event.Op&fsnotify.Create != 0 && isDir(name) {
				// A missing config directory (or one of its parents) appeared.
				name = ""
				for _, dir := range w.attach() {
					if file := w.fileIn(dir); isFile(file) {
						name = file
					}
				}
				if name == "" {
					continue
				}
			} else if !w.isConfigFile(name) {
				continue
			}
			pending = name
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.reload(pending)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-w.closeCh:
			return
		}
	}
}

// reload validates the changed file, then re-resolves the configuration
// through the normal search order so that a higher-priority file still wins
// over the one that changed.
func (w *Watcher) reload(path string) {
	if _, err := LoadFile(path); err != nil {
		w.logger.Warn("config reload rejected", "file", path, "error", err)
		return
	}
	cfg, err := Load(w.customPath)
	if err != nil {
		w.logger.Warn("config reload rejected", "error", err)
		return
	}
	w.logger.Info("config reloaded", "file", path)

	// Keep only the newest configuration if the consumer is behind.
	select {
	case <-w.reloads:
	default:
	}
	select {
	case w.reloads <- cfg:
	case <-w.closeCh:
	}
}

// isConfigFile reports whether path is the tuning file in a wanted directory.
// Parents watched while a directory is missing see other files too.
func (w *Watcher) isConfigFile(path string) bool {
	path = filepath.Clean(path)
	if w.customPath != "" {
		return path == w.customPath
	}
	if filepath.Base(path) != FileName {
		return false
	}
	for _, dir := range w.wanted {
		if filepath.Dir(path) == dir {
			return true
		}
	}
	return false
}

// fileIn returns the tuning file watched in dir.
func (w *Watcher) fileIn(dir string) string {
	if w.customPath != "" {
		return w.customPath
	}
	return filepath.Join(dir, FileName)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
