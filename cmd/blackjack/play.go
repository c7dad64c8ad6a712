package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/engine"
	"github.com/lox/blackjack/internal/session"
	"github.com/lox/blackjack/internal/tui"
)

// PlayCmd runs the terminal game
type PlayCmd struct {
	CardBack string `help:"Card back design (classic, red, blue, green, gold)" env:"BLACKJACK_CARD_BACK"`
	LogFile  string `help:"Write logs to this file instead of the configured one"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.LoadConfig()
	if err != nil {
		return err
	}
	if c.CardBack != "" {
		if !config.IsCardBack(c.CardBack) {
			return fmt.Errorf("unknown card back %q", c.CardBack)
		}
		cfg.UI.CardBack = c.CardBack
	}
	logFile := cfg.UI.LogFile
	if c.LogFile != "" {
		logFile = c.LogFile
	}

	logger, closer, err := shared.SetupFileLogger(logFile, cfg.UI.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = closer.Close() }()

	var engineOpts []engine.Option
	if cfg.Engine.Seed != nil {
		logger.Info("Using deterministic seed", "seed", *cfg.Engine.Seed)
		engineOpts = append(engineOpts, engine.WithSeed(*cfg.Engine.Seed))
	}

	sess := session.New(
		session.WithLogger(logger),
		session.WithEngineOptions(engineOpts...),
	)
	model := tui.NewModel(sess, cfg.UI.CardBack, logger)

	logger.Info("Starting interactive game", "session", sess.ID(), "card_back", cfg.UI.CardBack)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	tally := sess.Tally()
	fmt.Printf("Rounds: %d  Won: %d  Lost: %d  Pushed: %d\n",
		tally.Rounds, tally.PlayerWins, tally.DealerWins, tally.Pushes)
	return nil
}
