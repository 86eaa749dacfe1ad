package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/daikw/ovasettings/internal/history"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func handleHistoryList(ctx context.Context, c *cli.Command) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	return printHistory(c, e.history)
}

func printHistory(c *cli.Command, h *history.Manager) error {
	summaries, err := h.List()
	if err != nil {
		return err
	}

	w := stdout(c)
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No conversations")
		return nil
	}
	for _, s := range summaries {
		if s.Current {
			_, _ = currentColor.Fprintf(w, "* %-10s %s\n", s.Filename, s.Preview)
			continue
		}
		fmt.Fprintf(w, "  %-10s %s\n", s.Filename, s.Preview)
	}
	return nil
}

func handleHistoryShow(ctx context.Context, c *cli.Command) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	name := c.Args().Get(0)
	if name == "" {
		current, ok := e.history.Current()
		if !ok {
			return fmt.Errorf("conversation filename is required")
		}
		name = current
	}

	messages, err := e.history.Messages(name)
	if err != nil {
		return err
	}

	w := stdout(c)
	if len(messages) == 0 {
		_, _ = dimColor.Fprintln(w, history.EmptyPreview)
		return nil
	}
	for _, m := range messages {
		role := m.Role
		if role == "" {
			role = "?"
		}
		_, _ = headingColor.Fprintf(w, "%s: ", role)
		fmt.Fprintln(w, m.Content)
	}
	return nil
}

func handleHistorySelect(ctx context.Context, c *cli.Command) error {
	name := c.Args().Get(0)
	if name == "" {
		return fmt.Errorf("conversation filename is required")
	}

	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	if err := e.history.Select(name); err != nil {
		return err
	}

	log.Info().Str("conversation", name).Msg("Conversation selected")
	return nil
}

func handleHistoryNew(ctx context.Context, c *cli.Command) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	name, err := e.history.Create()
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout(c), name)
	return nil
}

func handleHistoryDelete(ctx context.Context, c *cli.Command) error {
	name := c.Args().Get(0)
	if name == "" {
		return fmt.Errorf("conversation filename is required")
	}

	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	if err := e.history.Delete(name); err != nil {
		warn(err)
		return nil
	}

	current, _ := e.history.Current()
	log.Info().Str("deleted", name).Str("current", current).Msg("Conversation deleted")
	return nil
}

func handleHistoryClear(ctx context.Context, c *cli.Command) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	ask := confirm(stdin(c), stdout(c))
	if c.Bool("yes") {
		ask = func(string) bool { return true }
	}

	cleared, err := e.history.ClearAll(ask)
	if err != nil {
		warn(err)
		return nil
	}
	if !cleared {
		fmt.Fprintln(stdout(c), "Cancelled")
		return nil
	}

	current, _ := e.history.Current()
	log.Info().Str("current", current).Msg("All conversations cleared")
	return nil
}

func handleHistoryWatch(ctx context.Context, c *cli.Command) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := printHistory(c, e.history); err != nil {
		return err
	}
	return e.history.Watch(ctx, func(change history.Change) {
		_, _ = dimColor.Fprintf(stdout(c), "-- %s changed --\n", change.Name)
		if err := printHistory(c, e.history); err != nil {
			warn(err)
		}
	})
}
