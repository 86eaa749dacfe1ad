// Package preset enumerates personality presets: plain-text files whose base
// name is the preset identifier stored in personality_preset.
package preset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Ext is the extension of preset files
const Ext = ".txt"

// Manager handles preset operations
type Manager struct {
	dir string
}

// NewManager creates a manager over the presets directory
func NewManager(dir string) *Manager {
	return &Manager{dir: dir}
}

// Dir returns the presets directory
func (m *Manager) Dir() string {
	return m.dir
}

// List returns the preset names sorted ascending, case-sensitive.
// A missing directory yields an empty list.
func (m *Manager) List() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("dir", m.dir).Msg("Presets directory does not exist")
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read presets directory: %w", err)
	}

	presets := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), Ext) {
			presets = append(presets, strings.TrimSuffix(entry.Name(), Ext))
		}
	}
	sort.Strings(presets)

	log.Debug().Strs("presets", presets).Msg("Available presets")
	return presets, nil
}

// Path returns the full path to a preset file
func (m *Manager) Path(name string) string {
	return filepath.Join(m.dir, name+Ext)
}

// Exists checks if a preset exists
func (m *Manager) Exists(name string) bool {
	if !validName(name) {
		return false
	}
	info, err := os.Stat(m.Path(name))
	return err == nil && !info.IsDir()
}

// Read returns the content of a preset file
func (m *Manager) Read(name string) (string, error) {
	if !m.Exists(name) {
		return "", fmt.Errorf("preset '%s' does not exist", name)
	}

	content, err := os.ReadFile(m.Path(name))
	if err != nil {
		return "", fmt.Errorf("failed to read preset file: %w", err)
	}
	return string(content), nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
