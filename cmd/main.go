package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

var (
	version  = "dev"
	revision = "none"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("Failed to run application")
	}
}

func newApp() *cli.Command {
	filenameArg := "<file>"

	return &cli.Command{
		Name:  "ovasettings",
		Usage: "Manage Ova's settings and conversation history",
		Description: `ovasettings edits the configuration of the Ova desktop assistant:
voice selection, sleep timer, display mode, random actions and saved
conversations. Files live under the application root (--root or $OVA_ROOT).`,
		Version: fmt.Sprintf("%s (rev: %s)", version, revision),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Enable verbose logging",
			},
			&cli.StringFlag{
				Name:  "root",
				Usage: "Application root holding config.json, history/ and presets/ (default: $OVA_ROOT or the executable's parent directory)",
			},
			&cli.StringFlag{
				Name:  "engine",
				Usage: "Local TTS engine: voicevox, aivisspeech",
				Value: "voicevox",
			},
			&cli.StringFlag{
				Name:  "engine-url",
				Usage: "Local TTS engine URL (default: engine's standard port)",
			},
			&cli.StringSliceFlag{
				Name:  "provider",
				Usage: "Extra cloud voice catalogs to include: polly, gcp",
			},
			&cli.StringFlag{
				Name:  "region",
				Usage: "AWS region for Polly",
				Value: "us-east-1",
			},
			&cli.StringFlag{
				Name:  "language",
				Usage: "Only list extra cloud voices of this language",
				Value: "en",
			},
			&cli.StringFlag{
				Name:  "gcp-endpoint",
				Usage: "Google Cloud TTS endpoint override (emulator)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Inspect and edit config.json",
				Commands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Show effective settings (defaults filled in)",
						Action: handleConfigShow,
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: "raw", Usage: "Show the file as stored"},
						},
					},
					{
						Name:      "get",
						Usage:     "Print one setting",
						ArgsUsage: "<key>",
						Action:    handleConfigGet,
					},
					{
						Name:      "set",
						Usage:     "Change one setting (enabled_actions.<action> for actions)",
						ArgsUsage: "<key> <value>",
						Action:    handleConfigSet,
					},
					{
						Name:      "unset",
						Usage:     "Remove one setting so it reads as its default",
						ArgsUsage: "<key>",
						Action:    handleConfigUnset,
					},
					{
						Name:   "reset",
						Usage:  "Overwrite config.json with the defaults",
						Action: handleConfigReset,
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: "keep-conversation", Usage: "Keep current_conversation", Value: true},
						},
					},
					{
						Name:   "path",
						Usage:  "Print the config file path",
						Action: handleConfigPath,
					},
				},
			},
			{
				Name:  "form",
				Usage: "The settings dialog as a command",
				Commands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Show the settings form as the dialog would fill it",
						Action: handleFormShow,
					},
					{
						Name:   "apply",
						Usage:  "Change form fields and save the whole record",
						Action: handleFormApply,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "voice-type", Usage: "Azure Voice or Windows Voice"},
							&cli.StringFlag{Name: "voice", Usage: "Voice display name"},
							&cli.StringFlag{Name: "preset", Usage: "Personality preset"},
							&cli.StringFlag{Name: "display-mode", Usage: "Speech Bubble, Chat Window or No Display"},
							&cli.BoolFlag{Name: "save-history", Usage: "Save conversation history"},
							&cli.IntFlag{Name: "history-length", Usage: "Conversation pairs to remember (1-50)"},
							&cli.IntFlag{Name: "sleep-timer", Usage: "Sleep after seconds (5-3600)"},
							&cli.BoolFlag{Name: "random-actions", Usage: "Enable random actions"},
							&cli.IntFlag{Name: "min-interval", Usage: "Minimum action interval in seconds"},
							&cli.IntFlag{Name: "max-interval", Usage: "Maximum action interval in seconds"},
							&cli.StringSliceFlag{Name: "action", Usage: "Toggle an action, e.g. dance=false"},
						},
					},
				},
			},
			{
				Name:    "presets",
				Aliases: []string{"preset"},
				Usage:   "Personality presets",
				Commands: []*cli.Command{
					{
						Name:    "list",
						Aliases: []string{"ls"},
						Usage:   "List available presets",
						Action:  handlePresetsList,
					},
					{
						Name:      "show",
						Usage:     "Print a preset",
						ArgsUsage: "<preset>",
						Action:    handlePresetsShow,
					},
				},
			},
			{
				Name:   "voices",
				Usage:  "List selectable voices",
				Action: handleVoicesList,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "type",
						Usage: "Azure Voice, Windows Voice or all",
						Value: "all",
					},
				},
			},
			{
				Name:    "history",
				Aliases: []string{"h"},
				Usage:   "Manage saved conversations",
				Commands: []*cli.Command{
					{
						Name:    "list",
						Aliases: []string{"ls"},
						Usage:   "List conversations (marks the current one)",
						Action:  handleHistoryList,
					},
					{
						Name:      "show",
						Usage:     "Print the messages of a conversation",
						ArgsUsage: filenameArg,
						Action:    handleHistoryShow,
					},
					{
						Name:      "select",
						Usage:     "Make a conversation current",
						ArgsUsage: filenameArg,
						Action:    handleHistorySelect,
					},
					{
						Name:   "new",
						Usage:  "Start a new empty conversation",
						Action: handleHistoryNew,
					},
					{
						Name:      "delete",
						Aliases:   []string{"rm"},
						Usage:     "Delete a conversation",
						ArgsUsage: filenameArg,
						Action:    handleHistoryDelete,
					},
					{
						Name:   "clear",
						Usage:  "Delete every conversation",
						Action: handleHistoryClear,
						Flags: []cli.Flag{
							&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Do not ask for confirmation"},
						},
					},
					{
						Name:   "watch",
						Usage:  "Re-list conversations whenever the directory changes",
						Action: handleHistoryWatch,
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve history and settings tools over MCP (stdio)",
				Action: handleMCP,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) error {
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
	}
}
