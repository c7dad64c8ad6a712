package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/server"
)

// ServeCmd runs the WebSocket server
type ServeCmd struct {
	Addr        string         `help:"Listen address (overrides config)" env:"BLACKJACK_ADDR"`
	IdleTimeout *time.Duration `help:"Close sessions idle this long, 0 to never close (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.LoadConfig()
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.UI.LogLevel)

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	srvCfg := c.serverConfig(cfg)

	if srvCfg.Seed != nil {
		logger.Info("Using deterministic seed", "seed", *srvCfg.Seed)
	}
	logger.Info("Starting blackjack server",
		"address", addr,
		"idle_timeout", srvCfg.IdleTimeout,
		"max_history", srvCfg.MaxHistory)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.NewServer(logger, server.WithConfig(srvCfg)).Run(ctx, addr)
}

// serverConfig applies file settings, then flag overrides
func (c *ServeCmd) serverConfig(cfg *config.Config) server.Config {
	srvCfg := server.DefaultConfig()
	srvCfg.IdleTimeout = cfg.Server.IdleDuration()
	if c.IdleTimeout != nil {
		srvCfg.IdleTimeout = *c.IdleTimeout
	}
	srvCfg.MaxHistory = cfg.Server.MaxHistory
	srvCfg.Seed = cfg.Engine.Seed
	return srvCfg
}
