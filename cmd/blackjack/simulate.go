package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/fileutil"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/simulator"
	"github.com/lox/blackjack/internal/statistics"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

// SimulateCmd plays many rounds unattended and reports outcome rates
type SimulateCmd struct {
	Rounds  int    `short:"n" default:"100000" help:"Number of rounds to play"`
	Workers int    `short:"w" help:"Parallel workers (default: number of CPUs)"`
	StandOn int    `default:"17" help:"Player stands once their total reaches this"`
	Output  string `short:"o" help:"Also write the report as JSON to this file" type:"path"`
}

// simulationReport is the JSON form of a simulation run
type simulationReport struct {
	Seed             int64   `json:"seed"`
	StandOn          int     `json:"stand_on"`
	Rounds           int     `json:"rounds"`
	PlayerWins       int     `json:"player_wins"`
	DealerWins       int     `json:"dealer_wins"`
	Pushes           int     `json:"pushes"`
	Abandoned        int     `json:"abandoned"`
	PlayerBlackjacks int     `json:"player_blackjacks"`
	DealerBlackjacks int     `json:"dealer_blackjacks"`
	PlayerBusts      int     `json:"player_busts"`
	DealerBusts      int     `json:"dealer_busts"`
	Mean             float64 `json:"mean"`
	StdError         float64 `json:"std_error"`
	DealerTotals     []int   `json:"dealer_totals"`
}

func newSimulationReport(s *statistics.Statistics, standOn int, seed int64) simulationReport {
	return simulationReport{
		Seed:             seed,
		StandOn:          standOn,
		Rounds:           s.Rounds,
		PlayerWins:       s.PlayerWins,
		DealerWins:       s.DealerWins,
		Pushes:           s.Pushes,
		Abandoned:        s.Abandoned,
		PlayerBlackjacks: s.PlayerBlackjacks,
		DealerBlackjacks: s.DealerBlackjacks,
		PlayerBusts:      s.PlayerBusts,
		DealerBusts:      s.DealerBusts,
		Mean:             s.Mean(),
		StdError:         s.StdError(),
		// 17..21 then bust
		DealerTotals: append([]int(nil), s.DealerTotals[17:]...),
	}
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.LoadConfig()
	if err != nil {
		return err
	}
	logger := shared.SetupLogger(cfg.UI.LogLevel)

	var seed int64
	if cfg.Engine.Seed != nil {
		seed = *cfg.Engine.Seed
		logger.Info("Using deterministic seed", "seed", seed)
	} else {
		seed = randutil.EntropySeed()
		logger.Info("Using random seed", "seed", seed)
	}

	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	stats, err := simulator.New(simulator.Config{
		Rounds:  c.Rounds,
		Workers: workers,
		StandOn: c.StandOn,
		Seed:    seed,
		Logger:  logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Blackjack Simulation ♦ ♣ "))
	fmt.Println()
	fmt.Print(formatReport(stats, c.StandOn, seed, time.Since(start)))

	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, newSimulationReport(stats, c.StandOn, seed)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logger.Info("Wrote report", "path", c.Output)
	}
	return nil
}

func formatReport(s *statistics.Statistics, standOn int, seed int64, elapsed time.Duration) string {
	var b strings.Builder
	pct := func(n int) string { return fmt.Sprintf("%6.2f%%", 100*s.Rate(n)) }

	fmt.Fprintf(&b, "Rounds:          %d (seed %d, stand on %d, %s)\n", s.Rounds, seed, standOn, elapsed.Round(time.Millisecond))
	fmt.Fprintf(&b, "Player wins:     %s  (%d blackjacks, %d dealer busts)\n", pct(s.PlayerWins), s.PlayerBlackjacks, s.DealerBusts)
	fmt.Fprintf(&b, "Dealer wins:     %s  (%d blackjacks, %d player busts)\n", pct(s.DealerWins), s.DealerBlackjacks, s.PlayerBusts)
	fmt.Fprintf(&b, "Pushes:          %s  (%d both blackjack)\n", pct(s.Pushes), s.BothBlackjacks)
	if s.Abandoned > 0 {
		fmt.Fprintf(&b, "Abandoned:       %d\n", s.Abandoned)
	}

	lo, hi := s.ConfidenceInterval95()
	fmt.Fprintf(&b, "Mean per round:  %+.4f  (95%% CI %+.4f .. %+.4f)\n", s.Mean(), lo, hi)

	b.WriteString("Dealer totals:  ")
	for total := 17; total <= 21; total++ {
		fmt.Fprintf(&b, " %d:%s", total, strings.TrimSpace(pct(s.DealerTotals[total])))
	}
	fmt.Fprintf(&b, " bust:%s\n", strings.TrimSpace(pct(s.DealerTotals[22])))
	return b.String()
}
