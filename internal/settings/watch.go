package settings

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"
	"github.com/xiaoqinglee/toolguard/internal/ruleset"
)

// Watcher watches the three persistable settings files on disk and
// invokes a reload callback when one changes, so a running daemon picks
// up hand edits without a restart.
type Watcher struct {
	fsw      *fsnotify.Watcher
	onChange func(scope ruleset.Scope)
	pathScope map[string]ruleset.Scope
}

// NewWatcher starts watching every persistable scope's primary settings
// file (and its parent directory, since editors often replace-by-rename
// rather than write-in-place).
func NewWatcher(opts LoadOptions, onChange func(scope ruleset.Scope)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{fsw: fsw, onChange: onChange, pathScope: map[string]ruleset.Scope{}}

	for _, scope := range []ruleset.Scope{ruleset.ScopeUser, ruleset.ScopeProject, ruleset.ScopeLocal} {
		paths := PathsForScope(scope, opts.ProjectDir, opts.HomeDir)
		w.pathScope[paths.Primary] = scope
		_ = fsw.Add(paths.Primary)
		_ = fsw.Add(pathDir(paths.Primary))
	}

	go w.loop()
	return w, nil
}

func pathDir(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[:i]
		}
	}
	return "."
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			scope, known := w.pathScope[ev.Name]
			if !known {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				slog.Debug("settings file changed", "scope", scope, "path", ev.Name, "op", ev.Op.String())
				if w.onChange != nil {
					w.onChange(scope)
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("settings watcher error", "err", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
