package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/daikw/ovasettings/internal/fsutil"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Change is a conversation file event seen by Watch
type Change struct {
	Name    string
	Removed bool
}

// Watch reports changes to conversation files until ctx is done, so a front
// end can refresh a listing the assistant made stale. It blocks; onChange
// runs on the calling goroutine.
func (m *Manager) Watch(ctx context.Context, onChange func(Change)) error {
	if err := os.MkdirAll(m.dir, fsutil.DirPermission); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(m.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", m.dir, err)
	}
	log.Debug().Str("dir", m.dir).Msg("Watching conversation directory")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name := filepath.Base(event.Name)
			if !strings.HasSuffix(name, Ext) || event.Op == fsnotify.Chmod {
				continue
			}
			log.Debug().Str("file", name).Str("op", event.Op.String()).Msg("Conversation changed")
			onChange(Change{
				Name:    name,
				Removed: event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename),
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("Conversation watcher error")
		}
	}
}
