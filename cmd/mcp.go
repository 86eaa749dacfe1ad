package main

import (
	"context"

	"github.com/daikw/ovasettings/internal/mcpserver"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func handleMCP(ctx context.Context, c *cli.Command) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	log.Debug().Str("root", e.paths.Root).Msg("Starting MCP server")
	s := mcpserver.New("ovasettings", version, e.history, e.config, e.presets)
	return s.ServeStdio()
}
