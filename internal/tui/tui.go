package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/engine"
	"github.com/lox/blackjack/internal/session"
)

// Screen is which panel the model is showing
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenCardBack
	ScreenRules
	ScreenTable
)

// MenuItem is an entry on the main menu
type MenuItem string

const (
	MenuStart    MenuItem = "Start Game"
	MenuCardBack MenuItem = "Choose Card Back"
	MenuRules    MenuItem = "Rules"
	MenuQuit     MenuItem = "Quit"
)

var menuItems = []MenuItem{MenuStart, MenuCardBack, MenuRules, MenuQuit}

// Model is the Bubble Tea model for a blackjack session. It owns no game
// logic; every action goes through the session and every frame is drawn
// from the session's view.
type Model struct {
	session *session.Session
	logger  *log.Logger

	rulesViewport viewport.Model

	screen     Screen
	menuCursor int
	backCursor int
	cardBack   string

	view     session.View
	status   string
	quitting bool

	width  int
	height int
}

// NewModel creates a model showing the main menu
func NewModel(sess *session.Session, cardBack string, logger *log.Logger) *Model {
	if !config.IsCardBack(cardBack) {
		cardBack = config.CardBacks[0]
	}

	vp := viewport.New(80, 12)
	vp.SetContent(Rules)

	m := &Model{
		session:       sess,
		logger:        logger.WithPrefix("tui"),
		rulesViewport: vp,
		cardBack:      cardBack,
		view:          sess.View(false),
	}
	for i, b := range config.CardBacks {
		if b == cardBack {
			m.backCursor = i
		}
	}
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Screen returns the current screen
func (m *Model) Screen() Screen {
	return m.screen
}

// CardBack returns the chosen card back
func (m *Model) CardBack() string {
	return m.cardBack
}

// Status returns the last status line
func (m *Model) Status() string {
	return m.status
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rulesViewport.Width = msg.Width
		m.rulesViewport.Height = max(msg.Height-4, 3)
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		switch m.screen {
		case ScreenMenu:
			return m.updateMenu(msg)
		case ScreenCardBack:
			return m.updateCardBack(msg)
		case ScreenRules:
			return m.updateRules(msg)
		case ScreenTable:
			return m.updateTable(msg)
		}
	}
	return m, nil
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	tally := m.session.Tally()
	m.logger.Info("Quitting", "rounds", tally.Rounds, "wins", tally.PlayerWins, "losses", tally.DealerWins)
	return m, tea.Quit
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.menuCursor = (m.menuCursor + len(menuItems) - 1) % len(menuItems)
	case "down", "j":
		m.menuCursor = (m.menuCursor + 1) % len(menuItems)
	case "q", "esc":
		return m.quit()
	case "enter", " ":
		switch menuItems[m.menuCursor] {
		case MenuStart:
			m.screen = ScreenTable
			// An unfinished round is resumed rather than replaced
			if m.view.Phase != engine.InProgress {
				m.newRound()
			}
		case MenuCardBack:
			m.screen = ScreenCardBack
		case MenuRules:
			m.rulesViewport.GotoTop()
			m.screen = ScreenRules
		case MenuQuit:
			return m.quit()
		}
	}
	return m, nil
}

func (m *Model) updateCardBack(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "left":
		m.backCursor = (m.backCursor + len(config.CardBacks) - 1) % len(config.CardBacks)
	case "down", "j", "right":
		m.backCursor = (m.backCursor + 1) % len(config.CardBacks)
	case "enter", " ":
		m.cardBack = config.CardBacks[m.backCursor]
		m.logger.Info("Card back chosen", "card_back", m.cardBack)
		m.screen = ScreenMenu
	case "esc", "q":
		m.screen = ScreenMenu
	}
	return m, nil
}

func (m *Model) updateRules(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.screen = ScreenMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.rulesViewport, cmd = m.rulesViewport.Update(msg)
	return m, cmd
}

func (m *Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h":
		if !m.view.CanHit {
			return m, nil
		}
		view, err := m.session.Hit()
		m.apply(view, err)
	case "s":
		if !m.view.CanStand {
			return m, nil
		}
		view, err := m.session.Stand()
		m.apply(view, err)
	case "n":
		if m.view.Phase == engine.InProgress {
			return m, nil
		}
		m.newRound()
	case "m", "esc":
		m.screen = ScreenMenu
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m *Model) newRound() {
	view, err := m.session.NewRound()
	m.apply(view, err)
}

func (m *Model) apply(view session.View, err error) {
	m.view = view
	switch {
	case err == nil:
		m.status = ""
		if !view.Result.IsZero() {
			m.status = view.Result.Message()
		}
	case errors.Is(err, engine.ErrInvalidTransition):
		m.logger.Debug("Ignored action", "error", err)
	default:
		m.logger.Error("Round failed", "error", err)
		m.status = "Round abandoned: " + err.Error() + ". Press 'n' to deal again."
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	b.WriteString("\n\n")

	switch m.screen {
	case ScreenMenu:
		b.WriteString(m.renderMenu())
	case ScreenCardBack:
		b.WriteString(m.renderCardBack())
	case ScreenRules:
		b.WriteString(m.rulesViewport.View())
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("↑/↓ scroll • esc back"))
	case ScreenTable:
		b.WriteString(m.renderTable())
	}
	return b.String()
}

func (m *Model) renderMenu() string {
	var lines []string
	for i, item := range menuItems {
		if i == m.menuCursor {
			lines = append(lines, SelectedItemStyle.Render("> "+string(item)))
		} else {
			lines = append(lines, MenuItemStyle.Render("  "+string(item)))
		}
	}
	lines = append(lines, "", InfoStyle.Render("↑/↓ move • enter select • q quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderCardBack() string {
	var lines []string
	lines = append(lines, HandInfoStyle.Render("Choose a card back"), "")
	for i, name := range config.CardBacks {
		marker := "  "
		if i == m.backCursor {
			marker = "> "
		}
		label := name
		if name == m.cardBack {
			label += " (current)"
		}
		lines = append(lines, marker+CardBackStyle(name).Render("▒▒")+" "+label)
	}
	lines = append(lines, "", InfoStyle.Render("↑/↓ move • enter choose • esc back"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderTable() string {
	v := m.view

	var b strings.Builder
	b.WriteString(HandInfoStyle.Render(fmt.Sprintf("Dealer (%d)", v.DealerTotal)))
	b.WriteString("\n")
	b.WriteString(m.renderHand(v.Dealer))
	b.WriteString("\n\n")
	b.WriteString(HandInfoStyle.Render(fmt.Sprintf("You (%d)", v.PlayerTotal)))
	b.WriteString("\n")
	b.WriteString(m.renderHand(v.Player))
	b.WriteString("\n\n")

	if m.status != "" {
		style := SuccessStyle
		switch v.Result.Outcome {
		case engine.DealerWins:
			style = ErrorStyle
		case engine.Push:
			style = WarningStyle
		case engine.NoOutcome:
			style = ErrorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderActions())
	return b.String()
}

func (m *Model) renderHand(cards []deck.Card) string {
	if len(cards) == 0 {
		return InfoStyle.Render("(no cards)")
	}
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = m.renderCard(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderCard(c deck.Card) string {
	switch {
	case c.IsFaceDown():
		return CardBackStyle(m.cardBack).Render("▒▒")
	case c.IsRed():
		return RedCardStyle.Render(c.String())
	default:
		return BlackCardStyle.Render(c.String())
	}
}

func (m *Model) renderActions() string {
	action := func(label string, enabled bool) string {
		if enabled {
			return ActionsStyle.Render(label)
		}
		return DisabledStyle.Render(label)
	}

	over := m.view.Phase != engine.InProgress
	return strings.Join([]string{
		action("[h]it", m.view.CanHit),
		action("[s]tand", m.view.CanStand),
		action("[n]ew round", over),
		action("[m]enu", true),
		action("[q]uit", true),
	}, "  ")
}
