package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/daikw/ovasettings/internal/fsutil"
	"github.com/rs/zerolog/log"
)

// Store reads and writes the configuration file. It assumes it is the only
// writer while in use.
type Store struct {
	path string
}

// NewStore creates a store for the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the configuration file path
func (s *Store) Path() string {
	return s.path
}

// Read loads the configuration file. A missing file yields an error
// matching os.ErrNotExist.
func (s *Store) Read() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// Load returns the on-disk record, or a fresh default record when the file
// is missing or unreadable. Failures are logged, never returned. The file is
// not rewritten.
func (s *Store) Load() *Config {
	config, err := s.Read()
	if err == nil {
		log.Debug().Str("path", s.path).Msg("Loaded config")
		return config
	}

	if errors.Is(err, os.ErrNotExist) {
		log.Info().Str("path", s.path).Msg("No config file found, using default config")
	} else {
		log.Error().Err(err).Str("path", s.path).Msg("Error loading config, using default config")
	}
	return Default()
}

// Write serializes the full record over the configuration file
func (s *Store) Write(config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := fsutil.WriteFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	log.Debug().Str("path", s.path).Msg("Saved config")
	return nil
}

// Save writes the record and logs any failure. Callers are not told.
func (s *Store) Save(config *Config) {
	if err := s.Write(config); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("Error saving config")
	}
}
