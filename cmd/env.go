package main

import (
	"context"

	"github.com/daikw/ovasettings/internal/history"
	"github.com/daikw/ovasettings/internal/preset"
	"github.com/daikw/ovasettings/internal/settings"
	"github.com/daikw/ovasettings/internal/voice"
	"github.com/daikw/ovasettings/internal/voice/provider"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

// env is everything a command needs, built from the global flags
type env struct {
	paths   settings.Paths
	store   *settings.Store
	config  *settings.Config
	history *history.Manager
	presets *preset.Manager
}

func loadEnv(c *cli.Command) (*env, error) {
	root := c.String("root")
	if root == "" {
		var err error
		if root, err = settings.DefaultRoot(); err != nil {
			return nil, err
		}
	}

	paths := settings.NewPaths(root)
	store := settings.NewStore(paths.Config)
	config := store.Load()

	// A separate assistant process rereads config.json on its own schedule;
	// nothing to call in-process.
	reloader := history.ReloaderFunc(func() {
		log.Debug().Msg("Conversation selection changed")
	})

	log.Debug().Str("root", root).Msg("Using application root")
	return &env{
		paths:   paths,
		store:   store,
		config:  config,
		history: history.NewManager(paths.History, config, store, history.WithReloader(reloader)),
		presets: preset.NewManager(paths.Presets),
	}, nil
}

// buildCatalog assembles the voice catalog from the global flags. The
// returned func releases provider connections.
func buildCatalog(ctx context.Context, c *cli.Command) (*voice.Catalog, func()) {
	listers := []voice.Lister{voice.CloudCatalog{}}
	var closers []func() error

	opts := provider.Options{
		Region:   c.String("region"),
		Language: c.String("language"),
		Endpoint: c.String("gcp-endpoint"),
	}
	for _, name := range c.StringSlice("provider") {
		l, err := provider.NewLister(ctx, name, opts)
		if err != nil {
			log.Warn().Err(err).Str("provider", name).Msg("Skipping voice provider")
			continue
		}
		if g, ok := l.(*provider.GCPLister); ok {
			closers = append(closers, g.Close)
		}
		listers = append(listers, l)
	}

	listers = append(listers, voice.NewLocalEngine(c.String("engine"), c.String("engine-url")))

	return voice.NewCatalog(listers...), func() {
		for _, closeFn := range closers {
			_ = closeFn()
		}
	}
}
