package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func handlePresetsList(ctx context.Context, c *cli.Command) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	names, err := e.presets.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(stdout(c), "No presets found in %s\n", e.presets.Dir())
		return nil
	}

	current := e.config.PersonalityPreset()
	w := stdout(c)
	for _, name := range names {
		if name == current {
			_, _ = currentColor.Fprintf(w, "* %s\n", name)
			continue
		}
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}

func handlePresetsShow(ctx context.Context, c *cli.Command) error {
	name := c.Args().Get(0)
	if name == "" {
		return fmt.Errorf("preset name is required")
	}

	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	content, err := e.presets.Read(name)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(stdout(c), content)
	return err
}
