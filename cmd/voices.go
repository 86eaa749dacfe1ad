package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/daikw/ovasettings/internal/settings"
	"github.com/daikw/ovasettings/internal/voice"
	"github.com/urfave/cli/v3"
)

func handleVoicesList(ctx context.Context, c *cli.Command) error {
	catalog, closeCatalog := buildCatalog(ctx, c)
	defer closeCatalog()

	var voices []voice.Voice
	switch t := c.String("type"); t {
	case "all", "":
		voices = catalog.Voices(ctx)
	case string(settings.VoiceTypeAzure), string(settings.VoiceTypeWindows):
		voices = catalog.BySource(ctx, settings.VoiceType(t).Source())
	default:
		return fmt.Errorf("invalid voice type: %s", t)
	}

	if len(voices) == 0 {
		fmt.Fprintln(stdout(c), "No voices available")
		return nil
	}

	tw := tabwriter.NewWriter(stdout(c), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tNAME\tID\tLANGUAGE")
	for _, v := range voices {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", v.Source, v.DisplayName, v.ID, v.Language)
	}
	return tw.Flush()
}
