package server

import (
	"time"

	"github.com/xtding233/egg-hatchery/internal/eggs"
)

// WatchEgg reloads h whenever the default or egg file under l changes. A
// reload that fails validation keeps the previous table. Stop the returned
// watcher to end polling.
func WatchEgg(l *eggs.Loader, egg string, h *Hatchery, interval time.Duration) *eggs.FileWatcher {
	paths := []string{l.Paths().DefaultPath()}
	if egg != "" {
		paths = append(paths, l.Paths().EggPath(egg))
	}
	w := eggs.NewFileWatcher(paths, interval, func(path string) {
		l.Invalidate()
		table, params, err := l.Load(egg)
		if err != nil {
			h.logger.Printf("reload %s: %v", path, err)
			return
		}
		if err := h.Reload(table, params); err != nil {
			h.logger.Printf("reload %s: %v", path, err)
		}
	})
	w.Start()
	return w
}
