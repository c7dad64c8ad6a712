package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play blackjack in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Serve blackjack sessions over WebSocket"`
	Simulate SimulateCmd      `cmd:"" help:"Simulate rounds with a fixed player policy"`
	Rules    RulesCmd         `cmd:"" help:"Print the rules"`
}

func main() {
	// A .env file is optional; it only seeds BLACKJACK_* defaults
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-player blackjack against a house dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
