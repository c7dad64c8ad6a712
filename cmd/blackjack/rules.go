package main

import (
	"fmt"

	"github.com/lox/blackjack/internal/tui"
)

// RulesCmd prints the rules
type RulesCmd struct{}

func (c *RulesCmd) Run(g *Globals) error {
	fmt.Println(tui.Rules)
	return nil
}
