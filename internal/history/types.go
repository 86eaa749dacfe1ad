// Package history manages the conversation directory: one JSON array of
// messages per file, named by consecutive positive integers.
package history

import (
	"errors"
	"fmt"

	"github.com/daikw/ovasettings/internal/settings"
)

// Ext is the extension of conversation files
const Ext = ".json"

// Listing
const (
	PreviewLength = 50
	EmptyPreview  = "(empty conversation)"
)

// ErrNotFound is returned when a conversation file does not exist
var ErrNotFound = errors.New("conversation not found")

// Message is one transcript entry. The assistant may store more fields;
// this package only reads.
type Message struct {
	Role    string `json:"role,omitempty"`
	Content string `json:"content"`
}

// Summary describes one conversation in a listing
type Summary struct {
	Filename string `json:"filename"`
	Preview  string `json:"preview"`
	Messages int    `json:"messages"`
	Current  bool   `json:"current"`
}

// Saver persists the configuration record. Failures are the saver's concern.
type Saver interface {
	Save(config *settings.Config)
}

// Reloader is told when the selected conversation changed on disk, so the
// running assistant session can pick up the new configuration.
type Reloader interface {
	ReloadConfig()
}

// ReloaderFunc adapts a function to Reloader
type ReloaderFunc func()

// ReloadConfig calls f
func (f ReloaderFunc) ReloadConfig() { f() }

// Confirmer asks the user to approve a destructive action
type Confirmer func(prompt string) bool

// Error is a conversation operation failure meant to be shown to the user
type Error struct {
	Op   string // "delete" or "clear"
	Name string
	Err  error
}

func (e *Error) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("failed to %s conversations: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s conversation %s: %v", e.Op, e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
