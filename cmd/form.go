package main

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/daikw/ovasettings/internal/settings"
	"github.com/urfave/cli/v3"
)

func handleFormShow(ctx context.Context, c *cli.Command) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	catalog, closeCatalog := buildCatalog(ctx, c)
	defer closeCatalog()

	presets, err := e.presets.List()
	if err != nil {
		return err
	}

	form := settings.NewForm(ctx, e.config, catalog, presets)
	w := stdout(c)

	_, _ = headingColor.Fprintln(w, "Voice")
	fmt.Fprintf(w, "  Voice Type:        %s\n", form.VoiceType)
	fmt.Fprintf(w, "  Voice:             %s\n", form.Voice)
	fmt.Fprintf(w, "  Sleep Timer:       %d\n", form.SleepTimer)

	_, _ = headingColor.Fprintln(w, "Personality")
	fmt.Fprintf(w, "  Preset:            %s\n", form.Preset)
	fmt.Fprintf(w, "  Display:           %s\n", form.DisplayMode)
	fmt.Fprintf(w, "  History:           %s\n", form.SaveHistory)
	fmt.Fprintf(w, "  History Length:    %d\n", form.HistoryLength)

	_, _ = headingColor.Fprintln(w, "Actions")
	fmt.Fprintf(w, "  Random Actions:    %t\n", form.EnableRandom)
	fmt.Fprintf(w, "  Interval:          %d-%d\n", form.MinInterval, form.MaxInterval)
	for _, a := range settings.Actions {
		mark := "[ ]"
		if form.Actions[a] {
			mark = "[x]"
		}
		fmt.Fprintf(w, "  %s %s\n", mark, settings.ActionLabels[a])
	}
	return nil
}

func handleFormApply(ctx context.Context, c *cli.Command) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	catalog, closeCatalog := buildCatalog(ctx, c)
	defer closeCatalog()

	presets, err := e.presets.List()
	if err != nil {
		return err
	}

	form := settings.NewForm(ctx, e.config, catalog, presets)

	if c.IsSet("voice-type") {
		vt := settings.VoiceType(c.String("voice-type"))
		if !slices.Contains(settings.VoiceTypes, vt) {
			return fmt.Errorf("invalid voice type: %s", vt)
		}
		form.SetVoiceType(vt)
	}
	if c.IsSet("voice") {
		name := c.String("voice")
		if !slices.Contains(form.VoicesFor(form.VoiceType), name) {
			return fmt.Errorf("voice '%s' is not offered for %s", name, form.VoiceType)
		}
		form.Voice = name
	}
	if c.IsSet("preset") {
		name := c.String("preset")
		if !slices.Contains(presets, name) {
			return fmt.Errorf("preset '%s' does not exist", name)
		}
		form.Preset = name
	}
	if c.IsSet("display-mode") {
		mode, ok := settings.ParseDisplayMode(c.String("display-mode"))
		if !ok {
			return fmt.Errorf("invalid display mode: %s", c.String("display-mode"))
		}
		form.DisplayMode = mode.Label()
	}
	if c.IsSet("save-history") {
		form.SaveHistory = settings.LabelDontSave
		if c.Bool("save-history") {
			form.SaveHistory = settings.LabelSaveHistory
		}
	}
	if c.IsSet("history-length") {
		form.HistoryLength = int(c.Int("history-length"))
	}
	if c.IsSet("sleep-timer") {
		form.SleepTimer = int(c.Int("sleep-timer"))
	}
	if c.IsSet("random-actions") {
		form.EnableRandom = c.Bool("random-actions")
	}
	if c.IsSet("min-interval") {
		form.MinInterval = int(c.Int("min-interval"))
	}
	if c.IsSet("max-interval") {
		form.MaxInterval = int(c.Int("max-interval"))
	}
	for _, toggle := range c.StringSlice("action") {
		action, enabled, err := parseActionToggle(toggle)
		if err != nil {
			return err
		}
		form.Actions[action] = enabled
	}

	form.Apply(e.config)
	e.store.Save(e.config)
	return nil
}

// parseActionToggle reads "dance=false"; a bare action name enables it
func parseActionToggle(s string) (string, bool, error) {
	action, value, hasValue := strings.Cut(s, "=")
	if !slices.Contains(settings.Actions, action) {
		return "", false, fmt.Errorf("unknown action: %s", action)
	}
	if !hasValue {
		return action, true, nil
	}
	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return "", false, fmt.Errorf("invalid value for action %s: %s", action, value)
	}
	return action, enabled, nil
}
