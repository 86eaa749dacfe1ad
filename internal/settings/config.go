// Package settings holds the assistant's configuration record, the store that
// persists it and the form model used to edit it.
package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/rs/zerolog/log"
)

// VoiceType selects where the configured voice comes from
type VoiceType string

const (
	VoiceTypeAzure   VoiceType = "Azure Voice"
	VoiceTypeWindows VoiceType = "Windows Voice"
)

// VoiceTypes lists the voice types in form order
var VoiceTypes = []VoiceType{VoiceTypeAzure, VoiceTypeWindows}

// DisplayMode is stored as a short code
type DisplayMode string

const (
	DisplayBubble DisplayMode = "bubble"
	DisplayChat   DisplayMode = "chat"
	DisplayNone   DisplayMode = "none"
)

// Random actions
const (
	ActionTakeFlight = "take_flight"
	ActionLookAround = "look_around"
	ActionDance      = "dance"
	ActionScreech    = "screech"
)

// Actions lists the random actions in form order
var Actions = []string{ActionTakeFlight, ActionLookAround, ActionDance, ActionScreech}

// Defaults
const (
	DefaultVoiceType            = VoiceTypeAzure
	DefaultVoiceName            = "en-US-AnaNeural"
	DefaultSleepTimer           = 30
	DefaultPersonalityPreset    = "ova"
	DefaultDisplayMode          = DisplayBubble
	DefaultMaxConversationPairs = 10
	DefaultSaveHistory          = true
	DefaultEnableRandomActions  = true
	DefaultMinActionInterval    = 5
	DefaultMaxActionInterval    = 10
)

// Keys of the configuration record
const (
	KeyVoiceType            = "voice_type"
	KeyVoiceName            = "voice_name"
	KeySleepTimer           = "sleep_timer"
	KeyPersonalityPreset    = "personality_preset"
	KeyDisplayMode          = "display_mode"
	KeyMaxConversationPairs = "max_conversation_pairs"
	KeySaveHistory          = "save_conversation_history"
	KeyEnableRandomActions  = "enable_random_actions"
	KeyMinActionInterval    = "min_action_interval"
	KeyMaxActionInterval    = "max_action_interval"
	KeyEnabledActions       = "enabled_actions"
	KeyCurrentConversation  = "current_conversation"
)

// Keys lists every known key in file order
var Keys = []string{
	KeyVoiceType, KeyVoiceName, KeySleepTimer, KeyPersonalityPreset, KeyDisplayMode,
	KeyMaxConversationPairs, KeySaveHistory, KeyEnableRandomActions,
	KeyMinActionInterval, KeyMaxActionInterval, KeyEnabledActions, KeyCurrentConversation,
}

// record mirrors the on-disk object. A nil field means the key is absent.
type record struct {
	VoiceType            *VoiceType      `json:"voice_type,omitempty"`
	VoiceName            *string         `json:"voice_name,omitempty"`
	SleepTimer           *int            `json:"sleep_timer,omitempty"`
	PersonalityPreset    *string         `json:"personality_preset,omitempty"`
	DisplayMode          *DisplayMode    `json:"display_mode,omitempty"`
	MaxConversationPairs *int            `json:"max_conversation_pairs,omitempty"`
	SaveHistory          *bool           `json:"save_conversation_history,omitempty"`
	EnableRandomActions  *bool           `json:"enable_random_actions,omitempty"`
	MinActionInterval    *int            `json:"min_action_interval,omitempty"`
	MaxActionInterval    *int            `json:"max_action_interval,omitempty"`
	EnabledActions       map[string]bool `json:"enabled_actions,omitempty"`
	CurrentConversation  *string         `json:"current_conversation,omitempty"`
}

// Config is the configuration record. Keys may be absent; every getter
// substitutes the documented default for an absent key. Keys this package
// does not know are kept and written back on save.
type Config struct {
	rec   record
	extra map[string]json.RawMessage
}

// Default returns a complete record holding every default
func Default() *Config {
	c := &Config{}
	c.SetVoiceType(DefaultVoiceType)
	c.SetVoiceName(DefaultVoiceName)
	c.SetSleepTimer(DefaultSleepTimer)
	c.SetPersonalityPreset(DefaultPersonalityPreset)
	c.SetDisplayMode(DefaultDisplayMode)
	c.SetMaxConversationPairs(DefaultMaxConversationPairs)
	c.SetSaveHistory(DefaultSaveHistory)
	c.SetEnableRandomActions(DefaultEnableRandomActions)
	c.SetMinActionInterval(DefaultMinActionInterval)
	c.SetMaxActionInterval(DefaultMaxActionInterval)
	c.SetEnabledActions(DefaultEnabledActions())
	return c
}

// DefaultEnabledActions returns every action enabled
func DefaultEnabledActions() map[string]bool {
	m := make(map[string]bool, len(Actions))
	for _, a := range Actions {
		m[a] = true
	}
	return m
}

// Clone returns a deep copy
func (c *Config) Clone() *Config {
	data, err := json.Marshal(c)
	if err != nil {
		// Only known field types and raw JSON live here; marshal cannot fail.
		panic(fmt.Sprintf("settings: clone: %v", err))
	}
	out := &Config{}
	if err := json.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("settings: clone: %v", err))
	}
	return out
}

// Has reports whether key is present in the record
func (c *Config) Has(key string) bool {
	switch key {
	case KeyVoiceType:
		return c.rec.VoiceType != nil
	case KeyVoiceName:
		return c.rec.VoiceName != nil
	case KeySleepTimer:
		return c.rec.SleepTimer != nil
	case KeyPersonalityPreset:
		return c.rec.PersonalityPreset != nil
	case KeyDisplayMode:
		return c.rec.DisplayMode != nil
	case KeyMaxConversationPairs:
		return c.rec.MaxConversationPairs != nil
	case KeySaveHistory:
		return c.rec.SaveHistory != nil
	case KeyEnableRandomActions:
		return c.rec.EnableRandomActions != nil
	case KeyMinActionInterval:
		return c.rec.MinActionInterval != nil
	case KeyMaxActionInterval:
		return c.rec.MaxActionInterval != nil
	case KeyEnabledActions:
		return c.rec.EnabledActions != nil
	case KeyCurrentConversation:
		return c.rec.CurrentConversation != nil
	}
	_, ok := c.extra[key]
	return ok
}

// Extra returns the sorted names of keys kept verbatim: keys this package
// does not know and known keys whose stored value could not be read.
func (c *Config) Extra() []string {
	return slices.Sorted(maps.Keys(c.extra))
}

func (c *Config) VoiceType() VoiceType {
	if c.rec.VoiceType == nil {
		return DefaultVoiceType
	}
	return *c.rec.VoiceType
}

func (c *Config) SetVoiceType(v VoiceType) { c.rec.VoiceType = &v }

// VoiceName returns the configured voice id
func (c *Config) VoiceName() string {
	if c.rec.VoiceName == nil {
		return DefaultVoiceName
	}
	return *c.rec.VoiceName
}

func (c *Config) SetVoiceName(v string) { c.rec.VoiceName = &v }

// ClearVoiceName removes the voice id, which then reads as the default
func (c *Config) ClearVoiceName() { c.rec.VoiceName = nil }

// SleepTimer is the idle timeout in seconds
func (c *Config) SleepTimer() int {
	if c.rec.SleepTimer == nil {
		return DefaultSleepTimer
	}
	return *c.rec.SleepTimer
}

func (c *Config) SetSleepTimer(v int) { c.rec.SleepTimer = &v }

func (c *Config) PersonalityPreset() string {
	if c.rec.PersonalityPreset == nil {
		return DefaultPersonalityPreset
	}
	return *c.rec.PersonalityPreset
}

func (c *Config) SetPersonalityPreset(v string) { c.rec.PersonalityPreset = &v }

func (c *Config) DisplayMode() DisplayMode {
	if c.rec.DisplayMode == nil {
		return DefaultDisplayMode
	}
	return *c.rec.DisplayMode
}

func (c *Config) SetDisplayMode(v DisplayMode) { c.rec.DisplayMode = &v }

// MaxConversationPairs bounds retained history; one pair is two messages
func (c *Config) MaxConversationPairs() int {
	if c.rec.MaxConversationPairs == nil {
		return DefaultMaxConversationPairs
	}
	return *c.rec.MaxConversationPairs
}

func (c *Config) SetMaxConversationPairs(v int) { c.rec.MaxConversationPairs = &v }

func (c *Config) SaveHistory() bool {
	if c.rec.SaveHistory == nil {
		return DefaultSaveHistory
	}
	return *c.rec.SaveHistory
}

func (c *Config) SetSaveHistory(v bool) { c.rec.SaveHistory = &v }

func (c *Config) EnableRandomActions() bool {
	if c.rec.EnableRandomActions == nil {
		return DefaultEnableRandomActions
	}
	return *c.rec.EnableRandomActions
}

func (c *Config) SetEnableRandomActions(v bool) { c.rec.EnableRandomActions = &v }

func (c *Config) MinActionInterval() int {
	if c.rec.MinActionInterval == nil {
		return DefaultMinActionInterval
	}
	return *c.rec.MinActionInterval
}

func (c *Config) SetMinActionInterval(v int) { c.rec.MinActionInterval = &v }

// MaxActionInterval is not checked against MinActionInterval.
func (c *Config) MaxActionInterval() int {
	if c.rec.MaxActionInterval == nil {
		return DefaultMaxActionInterval
	}
	return *c.rec.MaxActionInterval
}

func (c *Config) SetMaxActionInterval(v int) { c.rec.MaxActionInterval = &v }

// EnabledActions returns a copy of the action map. An absent map reads as
// every action enabled; an action missing from a present map reads as true.
func (c *Config) EnabledActions() map[string]bool {
	out := DefaultEnabledActions()
	for k, v := range c.rec.EnabledActions {
		out[k] = v
	}
	return out
}

// ActionEnabled reports whether one action may run
func (c *Config) ActionEnabled(action string) bool {
	if v, ok := c.rec.EnabledActions[action]; ok {
		return v
	}
	return true
}

func (c *Config) SetEnabledActions(m map[string]bool) {
	c.rec.EnabledActions = maps.Clone(m)
}

// CurrentConversation returns the selected conversation filename
func (c *Config) CurrentConversation() (string, bool) {
	if c.rec.CurrentConversation == nil {
		return "", false
	}
	return *c.rec.CurrentConversation, true
}

func (c *Config) SetCurrentConversation(name string) { c.rec.CurrentConversation = &name }

func (c *Config) ClearCurrentConversation() { c.rec.CurrentConversation = nil }

// MarshalJSON writes known keys and preserved unknown keys as one object
func (c *Config) MarshalJSON() ([]byte, error) {
	known, err := json.Marshal(c.rec)
	if err != nil {
		return nil, err
	}
	if len(c.extra) == 0 {
		return known, nil
	}

	merged := make(map[string]json.RawMessage, len(c.extra)+len(Keys))
	for k, v := range c.extra {
		merged[k] = v
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// UnmarshalJSON reads a configuration object. A null value counts as absent.
// A known key whose value has the wrong type is logged and kept verbatim, so
// it reads as its default and is written back unchanged. Only a document
// that is not a JSON object is an error.
func (c *Config) UnmarshalJSON(data []byte) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	if all == nil {
		return fmt.Errorf("config is not a JSON object")
	}

	var rec record
	for _, k := range Keys {
		raw, ok := all[k]
		if !ok {
			continue
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			delete(all, k)
			continue
		}
		if err := rec.decode(k, raw); err != nil {
			log.Warn().Err(err).Str("key", k).Msg("Ignoring malformed setting")
			continue
		}
		delete(all, k)
	}
	if len(all) == 0 {
		all = nil
	}

	c.rec = rec
	c.extra = all
	return nil
}

// decode stores raw into the field for key. The field is untouched on error.
func (r *record) decode(key string, raw json.RawMessage) error {
	switch key {
	case KeyVoiceType:
		return decodeInto(raw, &r.VoiceType)
	case KeyVoiceName:
		return decodeInto(raw, &r.VoiceName)
	case KeySleepTimer:
		return decodeInto(raw, &r.SleepTimer)
	case KeyPersonalityPreset:
		return decodeInto(raw, &r.PersonalityPreset)
	case KeyDisplayMode:
		return decodeInto(raw, &r.DisplayMode)
	case KeyMaxConversationPairs:
		return decodeInto(raw, &r.MaxConversationPairs)
	case KeySaveHistory:
		return decodeInto(raw, &r.SaveHistory)
	case KeyEnableRandomActions:
		return decodeInto(raw, &r.EnableRandomActions)
	case KeyMinActionInterval:
		return decodeInto(raw, &r.MinActionInterval)
	case KeyMaxActionInterval:
		return decodeInto(raw, &r.MaxActionInterval)
	case KeyEnabledActions:
		var m map[string]bool
		if err := json.Unmarshal(raw, &m); err != nil {
			return err
		}
		r.EnabledActions = m
		return nil
	case KeyCurrentConversation:
		return decodeInto(raw, &r.CurrentConversation)
	}
	return fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

func decodeInto[T any](raw json.RawMessage, dst **T) error {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}
