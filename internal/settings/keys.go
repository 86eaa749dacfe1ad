package settings

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Range is an inclusive bound on an integer setting
type Range struct {
	Min, Max int
}

// Contains reports whether v is inside the range
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp pulls v into the range
func (r Range) Clamp(v int) int {
	return min(max(v, r.Min), r.Max)
}

// Bounds of the integer settings
var (
	SleepTimerRange     = Range{Min: 5, Max: 3600}
	ConversationPairs   = Range{Min: 1, Max: 50}
	ActionIntervalRange = Range{Min: 1, Max: 3600}
)

var intRanges = map[string]Range{
	KeySleepTimer:           SleepTimerRange,
	KeyMaxConversationPairs: ConversationPairs,
	KeyMinActionInterval:    ActionIntervalRange,
	KeyMaxActionInterval:    ActionIntervalRange,
}

// ErrUnknownKey is returned for keys outside the configuration record
var ErrUnknownKey = errors.New("unknown setting")

// actionKeyPrefix addresses one entry of enabled_actions, e.g. "enabled_actions.dance"
const actionKeyPrefix = KeyEnabledActions + "."

// Get returns the value of key, substituting the default when absent.
// The second result reports whether the key is present in the record.
func (c *Config) Get(key string) (any, bool, error) {
	if action, ok := strings.CutPrefix(key, actionKeyPrefix); ok {
		if !slices.Contains(Actions, action) {
			return nil, false, fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		_, present := c.rec.EnabledActions[action]
		return c.ActionEnabled(action), present, nil
	}

	present := c.Has(key)
	switch key {
	case KeyVoiceType:
		return string(c.VoiceType()), present, nil
	case KeyVoiceName:
		return c.VoiceName(), present, nil
	case KeySleepTimer:
		return c.SleepTimer(), present, nil
	case KeyPersonalityPreset:
		return c.PersonalityPreset(), present, nil
	case KeyDisplayMode:
		return string(c.DisplayMode()), present, nil
	case KeyMaxConversationPairs:
		return c.MaxConversationPairs(), present, nil
	case KeySaveHistory:
		return c.SaveHistory(), present, nil
	case KeyEnableRandomActions:
		return c.EnableRandomActions(), present, nil
	case KeyMinActionInterval:
		return c.MinActionInterval(), present, nil
	case KeyMaxActionInterval:
		return c.MaxActionInterval(), present, nil
	case KeyEnabledActions:
		return c.EnabledActions(), present, nil
	case KeyCurrentConversation:
		name, _ := c.CurrentConversation()
		return name, present, nil
	}
	return nil, false, fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set parses value for key and stores it. Integers must be inside their
// range; display_mode accepts the short code or the form label.
func (c *Config) Set(key, value string) error {
	if action, ok := strings.CutPrefix(key, actionKeyPrefix); ok {
		if !slices.Contains(Actions, action) {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q is not a boolean", key, value)
		}
		actions := c.EnabledActions()
		actions[action] = b
		c.SetEnabledActions(actions)
		return nil
	}

	if r, ok := intRanges[key]; ok {
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q is not an integer", key, value)
		}
		if !r.Contains(n) {
			return fmt.Errorf("invalid value for %s: %d is outside %d-%d", key, n, r.Min, r.Max)
		}
		switch key {
		case KeySleepTimer:
			c.SetSleepTimer(n)
		case KeyMaxConversationPairs:
			c.SetMaxConversationPairs(n)
		case KeyMinActionInterval:
			c.SetMinActionInterval(n)
		case KeyMaxActionInterval:
			c.SetMaxActionInterval(n)
		}
		return nil
	}

	switch key {
	case KeyVoiceType:
		vt := VoiceType(value)
		if !slices.Contains(VoiceTypes, vt) {
			return fmt.Errorf("invalid value for %s: %q (want %q or %q)", key, value, VoiceTypeAzure, VoiceTypeWindows)
		}
		c.SetVoiceType(vt)
	case KeyVoiceName, KeyPersonalityPreset, KeyCurrentConversation:
		if value == "" {
			return fmt.Errorf("invalid value for %s: cannot be empty", key)
		}
		switch key {
		case KeyVoiceName:
			c.SetVoiceName(value)
		case KeyPersonalityPreset:
			c.SetPersonalityPreset(value)
		default:
			c.SetCurrentConversation(value)
		}
	case KeyDisplayMode:
		mode, ok := ParseDisplayMode(value)
		if !ok {
			return fmt.Errorf("invalid value for %s: %q", key, value)
		}
		c.SetDisplayMode(mode)
	case KeySaveHistory, KeyEnableRandomActions:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q is not a boolean", key, value)
		}
		if key == KeySaveHistory {
			c.SetSaveHistory(b)
		} else {
			c.SetEnableRandomActions(b)
		}
	case KeyEnabledActions:
		return fmt.Errorf("set individual actions with %s<action>", actionKeyPrefix)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// Unset removes key from the record so that it reads as its default
func (c *Config) Unset(key string) error {
	if action, ok := strings.CutPrefix(key, actionKeyPrefix); ok {
		if !slices.Contains(Actions, action) {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		delete(c.rec.EnabledActions, action)
		return nil
	}

	if slices.Contains(Keys, key) {
		delete(c.extra, key)
	}
	switch key {
	case KeyVoiceType:
		c.rec.VoiceType = nil
	case KeyVoiceName:
		c.rec.VoiceName = nil
	case KeySleepTimer:
		c.rec.SleepTimer = nil
	case KeyPersonalityPreset:
		c.rec.PersonalityPreset = nil
	case KeyDisplayMode:
		c.rec.DisplayMode = nil
	case KeyMaxConversationPairs:
		c.rec.MaxConversationPairs = nil
	case KeySaveHistory:
		c.rec.SaveHistory = nil
	case KeyEnableRandomActions:
		c.rec.EnableRandomActions = nil
	case KeyMinActionInterval:
		c.rec.MinActionInterval = nil
	case KeyMaxActionInterval:
		c.rec.MaxActionInterval = nil
	case KeyEnabledActions:
		c.rec.EnabledActions = nil
	case KeyCurrentConversation:
		c.rec.CurrentConversation = nil
	default:
		if _, ok := c.extra[key]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
		delete(c.extra, key)
	}
	return nil
}

// Effective returns every known key with its value or default
func (c *Config) Effective() map[string]any {
	out := make(map[string]any, len(Keys))
	for _, k := range Keys {
		v, present, _ := c.Get(k)
		if k == KeyCurrentConversation && !present {
			out[k] = nil
			continue
		}
		out[k] = v
	}
	return out
}
