package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/daikw/ovasettings/internal/fsutil"
	"github.com/daikw/ovasettings/internal/settings"
	"github.com/rs/zerolog/log"
)

// ClearPrompt is the question asked before ClearAll deletes anything
const ClearPrompt = "Delete ALL conversations? This cannot be undone."

// Manager lists, selects, creates and deletes conversations. The selection
// lives in the shared configuration record, which is saved on every change.
// Methods must not be called concurrently.
type Manager struct {
	dir      string
	config   *settings.Config
	saver    Saver
	reloader Reloader
}

// Option configures a Manager
type Option func(*Manager)

// WithReloader registers the session to notify when the selection changes
func WithReloader(r Reloader) Option {
	return func(m *Manager) {
		m.reloader = r
	}
}

// NewManager creates a manager over dir. config is the in-memory record the
// caller also edits; saver persists it.
func NewManager(dir string, config *settings.Config, saver Saver, opts ...Option) *Manager {
	m := &Manager{
		dir:    dir,
		config: config,
		saver:  saver,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Dir returns the history directory
func (m *Manager) Dir() string {
	return m.dir
}

// Current returns the selected conversation filename
func (m *Manager) Current() (string, bool) {
	return m.config.CurrentConversation()
}

// Path returns the full path of a conversation file
func (m *Manager) Path(name string) string {
	return filepath.Join(m.dir, name)
}

// files returns the conversation filenames in byte-wise string order, so
// "10.json" sorts before "2.json". The order is part of the file contract.
func (m *Manager) files() ([]string, error) {
	if err := os.MkdirAll(m.dir, fsutil.DirPermission); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read history directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), Ext) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *Manager) exists(name string) bool {
	info, err := os.Stat(m.Path(name))
	return err == nil && !info.IsDir()
}

// Messages reads one conversation
func (m *Manager) Messages(name string) ([]Message, error) {
	if err := validName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(m.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to read conversation %s: %w", name, err)
	}

	var messages []Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse conversation %s: %w", name, err)
	}
	return messages, nil
}

// List summarizes every readable conversation. Unreadable files are logged
// and left out but stay on disk. A selection that is not one of the listed
// conversations is replaced by the first one and the configuration is saved.
func (m *Manager) List() ([]Summary, error) {
	names, err := m.files()
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		messages, err := m.Messages(name)
		if err != nil {
			log.Error().Err(err).Str("file", name).Msg("Skipping unreadable conversation")
			continue
		}
		summaries = append(summaries, Summary{
			Filename: name,
			Preview:  preview(messages),
			Messages: len(messages),
		})
	}

	current, ok := m.config.CurrentConversation()
	listed := slices.ContainsFunc(summaries, func(s Summary) bool { return s.Filename == current })
	if (!ok || !listed) && len(summaries) > 0 {
		log.Info().Str("stale", current).Str("current", summaries[0].Filename).Msg("Adopting first conversation as current")
		current = summaries[0].Filename
		m.setCurrent(current)
	}

	for i := range summaries {
		summaries[i].Current = summaries[i].Filename == current
	}
	return summaries, nil
}

// Select makes name the current conversation
func (m *Manager) Select(name string) error {
	if err := validName(name); err != nil {
		return err
	}
	if !m.exists(name) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	m.setCurrent(name)
	m.notify()
	return nil
}

// Create writes an empty conversation under the smallest unused number and
// selects it.
func (m *Manager) Create() (string, error) {
	name, err := m.create()
	if err != nil {
		return "", err
	}
	m.notify()
	return name, nil
}

// Delete removes a conversation and moves the selection to the first
// remaining one, creating a fresh conversation if none is left.
func (m *Manager) Delete(name string) error {
	if err := validName(name); err != nil {
		return err
	}

	if err := os.Remove(m.Path(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		log.Error().Err(err).Str("file", name).Msg("Error deleting conversation")
		return &Error{Op: "delete", Name: name, Err: err}
	}
	log.Info().Str("file", name).Msg("Deleted conversation")

	if err := m.reselect(); err != nil {
		return err
	}
	m.notify()
	return nil
}

// ClearAll deletes every conversation after confirm approves, then starts a
// fresh one. It reports whether the deletion went ahead.
func (m *Manager) ClearAll(confirm Confirmer) (bool, error) {
	if confirm != nil && !confirm(ClearPrompt) {
		log.Debug().Msg("Clear all conversations cancelled")
		return false, nil
	}

	names, err := m.files()
	if err != nil {
		return true, &Error{Op: "clear", Err: err}
	}

	var errs []error
	for _, name := range names {
		if err := os.Remove(m.Path(name)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		log.Error().Err(err).Msg("Error clearing conversations")
		return true, &Error{Op: "clear", Err: err}
	}
	log.Info().Int("count", len(names)).Msg("Cleared all conversations")

	if _, err := m.create(); err != nil {
		return true, &Error{Op: "clear", Err: err}
	}
	m.notify()
	return true, nil
}

// reselect selects the first conversation, creating one if the directory
// is empty.
func (m *Manager) reselect() error {
	names, err := m.files()
	if err != nil {
		return err
	}
	if len(names) > 0 {
		m.setCurrent(names[0])
		return nil
	}
	_, err = m.create()
	return err
}

func (m *Manager) create() (string, error) {
	if err := os.MkdirAll(m.dir, fsutil.DirPermission); err != nil {
		return "", fmt.Errorf("failed to create history directory: %w", err)
	}

	for n := 1; ; n++ {
		name := fmt.Sprintf("%d%s", n, Ext)
		f, err := os.OpenFile(m.Path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, fsutil.FilePermission)
		if err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", fmt.Errorf("failed to create conversation %s: %w", name, err)
		}

		_, werr := f.WriteString("[]")
		cerr := f.Close()
		if err := errors.Join(werr, cerr); err != nil {
			_ = os.Remove(m.Path(name))
			return "", fmt.Errorf("failed to write conversation %s: %w", name, err)
		}

		log.Info().Str("file", name).Msg("Created conversation")
		m.setCurrent(name)
		return name, nil
	}
}

func (m *Manager) setCurrent(name string) {
	m.config.SetCurrentConversation(name)
	m.saver.Save(m.config)
}

func (m *Manager) notify() {
	if m.reloader == nil {
		return
	}
	log.Debug().Msg("Requesting assistant config reload")
	m.reloader.ReloadConfig()
}

// preview is the last message's content cut to PreviewLength runes
func preview(messages []Message) string {
	if len(messages) == 0 {
		return EmptyPreview
	}
	runes := []rune(messages[len(messages)-1].Content)
	if len(runes) > PreviewLength {
		return string(runes[:PreviewLength]) + "..."
	}
	return string(runes)
}

// validName rejects anything but a plain file name with the conversation
// extension.
func validName(name string) error {
	if name == "" || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) || !strings.HasSuffix(name, Ext) {
		return fmt.Errorf("invalid conversation name: %q", name)
	}
	return nil
}
