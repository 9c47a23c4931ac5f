package game

import (
	"log"
	"time"

	"snake-hess/game/manager"
)

// Recorder is a Listener that stores every finished session.
type Recorder struct {
	records *manager.RecordManager
	now     func() time.Time
}

func NewRecorder(records *manager.RecordManager) *Recorder {
	return &Recorder{records: records, now: time.Now}
}

func (r *Recorder) Notify(g *Game, ev Event) {
	if ev.Type != EventWon && ev.Type != EventLost {
		return
	}

	end := r.now()
	width, height := g.MenuSize()
	rec := manager.GameRecord{
		SessionID: g.SessionID(),
		Variant:   g.Systems().String(),
		Won:       ev.Type == EventWon,
		Width:     width,
		Height:    height,
		StartTime: end.Add(-g.Elapsed()),
		EndTime:   end,
		Score:     g.Progress,
	}
	best, err := r.records.Add(rec)
	if err != nil {
		log.Printf("Failed to save records: %v", err)
		return
	}
	if best {
		log.Printf("New high score %d (%s)", rec.Score, rec.Variant)
	}
}
