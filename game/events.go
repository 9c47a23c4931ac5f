package game

import (
	"fmt"

	"snake-hess/game/entity"
)

type Phase int

const (
	PhaseConfiguring Phase = iota // map size menu
	PhaseRunning
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseConfiguring:
		return "configuring"
	case PhaseRunning:
		return "running"
	case PhaseEnded:
		return "ended"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "none"
	}
}

// EventType tags what happened during a frame.
type EventType int

const (
	EventStarted EventType = iota
	EventRestarted
	EventMoved
	EventAte
	EventGuessed
	EventMissed
	EventBoosterPicked
	EventBoosterSpawned
	EventBoostExpired
	EventLifeLost
	EventWon
	EventLost
	EventQuit
)

var eventNames = map[EventType]string{
	EventStarted:        "started",
	EventRestarted:      "restarted",
	EventMoved:          "moved",
	EventAte:            "ate",
	EventGuessed:        "guessed",
	EventMissed:         "missed",
	EventBoosterPicked:  "booster picked",
	EventBoosterSpawned: "booster spawned",
	EventBoostExpired:   "boost expired",
	EventLifeLost:       "life lost",
	EventWon:            "won",
	EventLost:           "lost",
	EventQuit:           "quit",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is emitted by Update. Booster is set for booster events, Char for letters.
type Event struct {
	Type    EventType
	Booster entity.BoosterType
	Char    rune
}

// HasEvent reports whether evs contains an event of type t.
func HasEvent(evs []Event, t EventType) bool {
	for _, ev := range evs {
		if ev.Type == t {
			return true
		}
	}
	return false
}
