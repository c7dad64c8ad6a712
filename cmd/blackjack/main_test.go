package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/engine"
	"github.com/lox/blackjack/internal/statistics"
)

func parse(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return &cli, ctx
}

func TestParseCommands(t *testing.T) {
	_, ctx := parse(t, "simulate", "-n", "10", "--stand-on", "15")
	assert.Equal(t, "simulate", ctx.Command())

	cli, ctx := parse(t, "--seed", "42", "serve", "--addr", ":9000")
	assert.Equal(t, "serve", ctx.Command())
	require.NotNil(t, cli.Seed)
	assert.Equal(t, int64(42), *cli.Seed)
	assert.Equal(t, ":9000", cli.Serve.Addr)
}

func TestDefaultCommandIsPlay(t *testing.T) {
	_, ctx := parse(t)
	assert.Equal(t, "play", ctx.Command())
}

func TestGlobalsLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`engine { seed = 5 }`), 0o644))

	seed := int64(9)
	g := &Globals{Config: path, Seed: &seed, Debug: true}
	cfg, err := g.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, int64(9), *cfg.Engine.Seed)
	assert.Equal(t, "debug", cfg.UI.LogLevel)

	bad := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(bad, []byte(`ui { card_back = "plaid" }`), 0o644))
	_, err = (&Globals{Config: bad}).LoadConfig()
	assert.Error(t, err)
}

func TestFormatReport(t *testing.T) {
	var s statistics.Statistics
	s.Add(statistics.RoundResult{Result: engine.Result{Outcome: engine.PlayerWins, Reason: engine.DealerBust}, DealerTotal: 23})
	s.Add(statistics.RoundResult{Result: engine.Result{Outcome: engine.DealerWins, Reason: engine.HighCard}, DealerTotal: 20})

	report := formatReport(&s, 17, 42, time.Second)
	assert.Contains(t, report, "Rounds:          2 (seed 42")
	assert.Contains(t, report, "Player wins:      50.00%")
	assert.Contains(t, report, "20:50.00%")
	assert.Contains(t, report, "bust:50.00%")
}

func TestSimulationReport(t *testing.T) {
	var s statistics.Statistics
	s.Add(statistics.RoundResult{Result: engine.Result{Outcome: engine.Push, Reason: engine.Tie}, DealerTotal: 18})

	r := newSimulationReport(&s, 16, 7)
	assert.Equal(t, int64(7), r.Seed)
	assert.Equal(t, 16, r.StandOn)
	assert.Equal(t, 1, r.Pushes)
	assert.Equal(t, []int{0, 1, 0, 0, 0, 0}, r.DealerTotals)
}

func TestServeIdleTimeout(t *testing.T) {
	disabled, err := config.Parse([]byte(`server { idle_timeout = 0 }`), "test.hcl")
	require.NoError(t, err)

	var cmd ServeCmd
	assert.Zero(t, cmd.serverConfig(disabled).IdleTimeout)
	assert.Equal(t, time.Duration(config.DefaultIdleTimeout)*time.Second, cmd.serverConfig(config.Default()).IdleTimeout)

	cli, _ := parse(t, "serve", "--idle-timeout", "0s")
	require.NotNil(t, cli.Serve.IdleTimeout)
	assert.Zero(t, cli.Serve.serverConfig(config.Default()).IdleTimeout)

	cli, _ = parse(t, "serve", "--idle-timeout", "90s")
	assert.Equal(t, 90*time.Second, cli.Serve.serverConfig(config.Default()).IdleTimeout)
}
