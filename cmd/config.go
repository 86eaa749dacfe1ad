package main

import (
	"context"
	"fmt"
	"os"

	"github.com/daikw/ovasettings/internal/settings"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func handleConfigShow(ctx context.Context, c *cli.Command) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	if c.Bool("raw") {
		data, err := os.ReadFile(e.paths.Config)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		_, err = stdout(c).Write(append(data, '\n'))
		return err
	}

	return printJSON(stdout(c), e.config.Effective())
}

func handleConfigGet(ctx context.Context, c *cli.Command) error {
	key := c.Args().Get(0)
	if key == "" {
		return fmt.Errorf("setting key is required")
	}

	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	value, _, err := e.config.Get(key)
	if err != nil {
		return err
	}
	if m, ok := value.(map[string]bool); ok {
		return printJSON(stdout(c), m)
	}
	_, err = fmt.Fprintln(stdout(c), value)
	return err
}

func handleConfigSet(ctx context.Context, c *cli.Command) error {
	if c.NArg() != 2 {
		return fmt.Errorf("usage: config set <key> <value>")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	if key == settings.KeyPersonalityPreset && !e.presets.Exists(value) {
		return fmt.Errorf("preset '%s' does not exist", value)
	}
	if err := e.config.Set(key, value); err != nil {
		return err
	}
	if err := e.store.Write(e.config); err != nil {
		return err
	}

	log.Info().Str("key", key).Str("value", value).Msg("Setting updated")
	return nil
}

func handleConfigUnset(ctx context.Context, c *cli.Command) error {
	key := c.Args().Get(0)
	if key == "" {
		return fmt.Errorf("setting key is required")
	}

	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	if err := e.config.Unset(key); err != nil {
		return err
	}
	return e.store.Write(e.config)
}

func handleConfigReset(ctx context.Context, c *cli.Command) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	config := settings.Default()
	if name, ok := e.config.CurrentConversation(); ok && c.Bool("keep-conversation") {
		config.SetCurrentConversation(name)
	}
	if err := e.store.Write(config); err != nil {
		return err
	}

	log.Info().Str("path", e.paths.Config).Msg("Config reset to defaults")
	return nil
}

func handleConfigPath(ctx context.Context, c *cli.Command) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout(c), e.paths.Config)
	return err
}
