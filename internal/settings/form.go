package settings

import (
	"context"
	"slices"

	"github.com/daikw/ovasettings/internal/voice"
	"github.com/rs/zerolog/log"
)

// Form labels
const (
	LabelSpeechBubble = "Speech Bubble"
	LabelChatWindow   = "Chat Window"
	LabelNoDisplay    = "No Display"

	LabelSaveHistory = "Save History"
	LabelDontSave    = "Don't Save"
)

var displayLabels = map[DisplayMode]string{
	DisplayBubble: LabelSpeechBubble,
	DisplayChat:   LabelChatWindow,
	DisplayNone:   LabelNoDisplay,
}

// DisplayModes lists the display modes in form order
var DisplayModes = []DisplayMode{DisplayBubble, DisplayChat, DisplayNone}

// ActionLabels maps each random action to its form label
var ActionLabels = map[string]string{
	ActionTakeFlight: "Take Flight",
	ActionLookAround: "Look Around",
	ActionDance:      "Dance",
	ActionScreech:    "Screech",
}

// Label returns the form label; unknown codes show as the speech bubble
func (m DisplayMode) Label() string {
	if l, ok := displayLabels[m]; ok {
		return l
	}
	return LabelSpeechBubble
}

// ParseDisplayMode accepts a short code or a form label
func ParseDisplayMode(s string) (DisplayMode, bool) {
	for mode, label := range displayLabels {
		if s == string(mode) || s == label {
			return mode, true
		}
	}
	return "", false
}

// Source returns the voice source backing the voice type
func (t VoiceType) Source() voice.Source {
	if t == VoiceTypeWindows {
		return voice.SourceLocal
	}
	return voice.SourceCloud
}

// Form is the editable view of a Config, holding what the settings dialog
// shows: labels instead of codes, voice display names instead of ids.
type Form struct {
	Presets []string
	Preset  string

	DisplayMode   string
	SaveHistory   string
	HistoryLength int

	VoiceType VoiceType
	Voice     string

	SleepTimer   int
	EnableRandom bool
	MinInterval  int
	MaxInterval  int
	Actions      map[string]bool

	// voices is the catalog as enumerated when the form was filled
	voices []voice.Voice
}

// NewForm fills a form from config. Values outside their range are clamped
// and selections that are not offered fall back to the first choice. The
// catalog is enumerated once here; the form's voice lists come from that
// snapshot.
func NewForm(ctx context.Context, config *Config, catalog *voice.Catalog, presets []string) *Form {
	f := &Form{
		Presets:       presets,
		DisplayMode:   config.DisplayMode().Label(),
		SaveHistory:   LabelDontSave,
		HistoryLength: ConversationPairs.Clamp(config.MaxConversationPairs()),
		SleepTimer:    SleepTimerRange.Clamp(config.SleepTimer()),
		EnableRandom:  config.EnableRandomActions(),
		MinInterval:   ActionIntervalRange.Clamp(config.MinActionInterval()),
		MaxInterval:   ActionIntervalRange.Clamp(config.MaxActionInterval()),
		Actions:       make(map[string]bool, len(Actions)),
		voices:        catalog.Voices(ctx),
	}

	if config.SaveHistory() {
		f.SaveHistory = LabelSaveHistory
	}

	preset := config.PersonalityPreset()
	switch {
	case slices.Contains(presets, preset):
		f.Preset = preset
	case len(presets) > 0:
		f.Preset = presets[0]
	}

	for _, a := range Actions {
		f.Actions[a] = config.ActionEnabled(a)
	}

	vt := config.VoiceType()
	if !slices.Contains(VoiceTypes, vt) {
		vt = VoiceTypeAzure
	}
	f.SetVoiceType(vt)
	if v, ok := voice.FindByID(f.voices, vt.Source(), config.VoiceName()); ok {
		f.Voice = v.DisplayName
	}

	return f
}

// VoicesFor returns the display names offered for a voice type
func (f *Form) VoicesFor(vt VoiceType) []string {
	var names []string
	for _, v := range voice.FilterSource(f.voices, vt.Source()) {
		names = append(names, v.DisplayName)
	}
	return names
}

// SetVoiceType switches the voice type and selects its first voice
func (f *Form) SetVoiceType(vt VoiceType) {
	f.VoiceType = vt
	f.Voice = ""
	if names := f.VoicesFor(vt); len(names) > 0 {
		f.Voice = names[0]
	}
}

// Apply writes every form field into config. The whole record is updated,
// not just the changed fields.
func (f *Form) Apply(config *Config) {
	config.SetVoiceType(f.VoiceType)
	if v, ok := voice.FindByName(f.voices, f.VoiceType.Source(), f.Voice); ok {
		config.SetVoiceName(v.ID)
	} else {
		log.Warn().Str("voice", f.Voice).Str("voice_type", string(f.VoiceType)).Msg("Selected voice not found, clearing voice_name")
		config.ClearVoiceName()
	}

	config.SetSleepTimer(SleepTimerRange.Clamp(f.SleepTimer))
	if f.Preset != "" {
		config.SetPersonalityPreset(f.Preset)
	}

	mode, ok := ParseDisplayMode(f.DisplayMode)
	if !ok {
		mode = DisplayBubble
	}
	config.SetDisplayMode(mode)

	config.SetSaveHistory(f.SaveHistory == LabelSaveHistory)
	config.SetMaxConversationPairs(ConversationPairs.Clamp(f.HistoryLength))

	config.SetEnableRandomActions(f.EnableRandom)
	config.SetMinActionInterval(ActionIntervalRange.Clamp(f.MinInterval))
	config.SetMaxActionInterval(ActionIntervalRange.Clamp(f.MaxInterval))

	actions := make(map[string]bool, len(Actions))
	for _, a := range Actions {
		enabled, ok := f.Actions[a]
		actions[a] = !ok || enabled
	}
	config.SetEnabledActions(actions)
}
