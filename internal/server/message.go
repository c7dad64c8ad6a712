package server

import (
	"encoding/json"
	"time"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/session"
)

// MessageType identifies a websocket message
type MessageType string

const (
	// Client → Server
	MessageTypeNewRound MessageType = "new_round"
	MessageTypeHit      MessageType = "hit"
	MessageTypeStand    MessageType = "stand"
	MessageTypeState    MessageType = "state"
	MessageTypeHistory  MessageType = "history"

	// Server → Client
	MessageTypeRoundState  MessageType = "round_state"
	MessageTypeHistoryData MessageType = "history_data"
	MessageTypeError       MessageType = "error"
)

// String returns the message type name
func (t MessageType) String() string {
	return string(t)
}

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message stamped with now
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Client → Server Messages

type StateRequestData struct {
	RevealAll bool `json:"revealAll,omitempty"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ResultData struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type RoundStateData struct {
	SessionID   string      `json:"sessionId"`
	RoundID     string      `json:"roundId,omitempty"`
	Phase       string      `json:"phase"`
	Player      []string    `json:"player"`
	Dealer      []string    `json:"dealer"`
	PlayerTotal int         `json:"playerTotal"`
	DealerTotal int         `json:"dealerTotal"`
	CanHit      bool        `json:"canHit"`
	CanStand    bool        `json:"canStand"`
	Result      *ResultData `json:"result,omitempty"`
}

type RoundSummary struct {
	RoundID     string      `json:"roundId"`
	StartedAt   time.Time   `json:"startedAt"`
	EndedAt     time.Time   `json:"endedAt"`
	Player      []string    `json:"player"`
	Dealer      []string    `json:"dealer"`
	PlayerTotal int         `json:"playerTotal"`
	DealerTotal int         `json:"dealerTotal"`
	Result      *ResultData `json:"result,omitempty"`
	Abandoned   bool        `json:"abandoned,omitempty"`
}

type TallyData struct {
	Rounds     int `json:"rounds"`
	PlayerWins int `json:"playerWins"`
	DealerWins int `json:"dealerWins"`
	Pushes     int `json:"pushes"`
	Blackjacks int `json:"blackjacks"`
	Abandoned  int `json:"abandoned"`
}

type HistoryData struct {
	Rounds []RoundSummary `json:"rounds"`
	Tally  TallyData      `json:"tally"`
}

// RoundStateFromView converts a session view into its wire form
func RoundStateFromView(v session.View) RoundStateData {
	data := RoundStateData{
		SessionID:   v.SessionID,
		RoundID:     v.RoundID,
		Phase:       v.Phase.String(),
		Player:      cardStrings(v.Player),
		Dealer:      cardStrings(v.Dealer),
		PlayerTotal: v.PlayerTotal,
		DealerTotal: v.DealerTotal,
		CanHit:      v.CanHit,
		CanStand:    v.CanStand,
	}
	if !v.Result.IsZero() {
		data.Result = &ResultData{
			Outcome: v.Result.Outcome.String(),
			Reason:  v.Result.Reason.String(),
			Message: v.Result.Message(),
		}
	}
	return data
}

// HistoryFromSession converts a session's history and tally into wire form
func HistoryFromSession(s *session.Session) HistoryData {
	records := s.History()
	rounds := make([]RoundSummary, 0, len(records))
	for _, rec := range records {
		summary := RoundSummary{
			RoundID:     rec.ID,
			StartedAt:   rec.StartedAt,
			EndedAt:     rec.EndedAt,
			Player:      cardStrings(rec.Player),
			Dealer:      cardStrings(rec.Dealer),
			PlayerTotal: rec.PlayerTotal,
			DealerTotal: rec.DealerTotal,
			Abandoned:   rec.Abandoned,
		}
		if !rec.Result.IsZero() {
			summary.Result = &ResultData{
				Outcome: rec.Result.Outcome.String(),
				Reason:  rec.Result.Reason.String(),
				Message: rec.Result.Message(),
			}
		}
		rounds = append(rounds, summary)
	}

	t := s.Tally()
	return HistoryData{
		Rounds: rounds,
		Tally: TallyData{
			Rounds:     t.Rounds,
			PlayerWins: t.PlayerWins,
			DealerWins: t.DealerWins,
			Pushes:     t.Pushes,
			Blackjacks: t.Blackjacks,
			Abandoned:  t.Abandoned,
		},
	}
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
