package settings

import (
	"fmt"
	"os"
	"path/filepath"
)

// File and directory names under the application root
const (
	ConfigFileName = "config.json"
	HistoryDirName = "history"
	PresetsDirName = "presets"

	// RootEnv overrides the application root
	RootEnv = "OVA_ROOT"
)

// Paths locates every file the assistant persists. Components receive it at
// construction instead of deriving locations from their own install path.
type Paths struct {
	Root    string
	Config  string
	History string
	Presets string
}

// NewPaths lays out the standard files under root
func NewPaths(root string) Paths {
	return Paths{
		Root:    root,
		Config:  filepath.Join(root, ConfigFileName),
		History: filepath.Join(root, HistoryDirName),
		Presets: filepath.Join(root, PresetsDirName),
	}
}

// DefaultRoot returns $OVA_ROOT, or the parent of the directory holding the
// running executable (the executable lives in <root>/bin or similar).
func DefaultRoot() (string, error) {
	if root := os.Getenv(RootEnv); root != "" {
		return root, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}
