package manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// GroupSize is how many records of one level are folded into a single
// record of the next level.
const GroupSize = 100

// GameRecord is a finished session, or an aggregate of several once grouped.
type GameRecord struct {
	SessionID        string    `json:"sessionId,omitempty"`
	Variant          string    `json:"variant,omitempty"`
	Won              bool      `json:"won"`
	Width            int       `json:"width,omitempty"`
	Height           int       `json:"height,omitempty"`
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	Score            int       `json:"score"`
	CompressionIndex int       `json:"compressionIndex"` // 0 for single sessions
	GamesCount       int       `json:"gamesCount"`
	Wins             int       `json:"wins"`
	AverageScore     float64   `json:"averageScore"`
	MaxScore         int       `json:"maxScore"`
	MinScore         int       `json:"minScore"`
	AverageDuration  float64   `json:"averageDuration"` // seconds
	MaxDuration      float64   `json:"maxDuration"`
	MinDuration      float64   `json:"minDuration"`
}

type recordFile struct {
	HighScore int          `json:"highScore"`
	Games     []GameRecord `json:"games"`
}

// RecordManager keeps the high score and the session history, optionally
// persisted as JSON.
type RecordManager struct {
	path      string
	highScore int
	games     []GameRecord
	mutex     sync.RWMutex
}

// NewRecordManager loads path if it exists. An empty path keeps records in memory only.
func NewRecordManager(path string) (*RecordManager, error) {
	rm := &RecordManager{
		path:  path,
		games: make([]GameRecord, 0),
	}
	if path == "" {
		return rm, nil
	}
	if err := rm.load(); err != nil {
		return rm, fmt.Errorf("load records %s: %w", path, err)
	}
	return rm, nil
}

func (rm *RecordManager) load() error {
	data, err := os.ReadFile(rm.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var f recordFile
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	rm.highScore = f.HighScore
	if f.Games != nil {
		rm.games = f.Games
	}
	return nil
}

// Save writes the records to disk.
func (rm *RecordManager) Save() error {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()
	return rm.save()
}

func (rm *RecordManager) save() error {
	if rm.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(rm.path), 0755); err != nil {
		return fmt.Errorf("failed to create records directory: %w", err)
	}

	data, err := json.MarshalIndent(recordFile{HighScore: rm.highScore, Games: rm.games}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	if err := os.WriteFile(rm.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}

// Add stores a finished session, folds old history and saves.
// It reports whether the score is a new high score.
func (rm *RecordManager) Add(rec GameRecord) (bool, error) {
	rm.mutex.Lock()
	defer rm.mutex.Unlock()

	duration := rec.EndTime.Sub(rec.StartTime).Seconds()
	rec.CompressionIndex = 0
	rec.GamesCount = 1
	rec.Wins = 0
	if rec.Won {
		rec.Wins = 1
	}
	rec.AverageScore = float64(rec.Score)
	rec.MaxScore = rec.Score
	rec.MinScore = rec.Score
	rec.AverageDuration = duration
	rec.MaxDuration = duration
	rec.MinDuration = duration
	rm.games = append(rm.games, rec)

	best := rec.Score > rm.highScore
	if best {
		rm.highScore = rec.Score
	}
	rm.groupGames()
	return best, rm.save()
}

// groupGames folds every full block of GroupSize records of one level into a
// record of the next level, cascading upward.
func (rm *RecordManager) groupGames() {
	sort.SliceStable(rm.games, func(i, j int) bool {
		if rm.games[i].CompressionIndex != rm.games[j].CompressionIndex {
			return rm.games[i].CompressionIndex > rm.games[j].CompressionIndex
		}
		return rm.games[i].StartTime.Before(rm.games[j].StartTime)
	})

	for level := 0; ; level++ {
		var same, rest []GameRecord
		for _, g := range rm.games {
			if g.CompressionIndex == level {
				same = append(same, g)
			} else {
				rest = append(rest, g)
			}
		}
		if len(same) < GroupSize {
			return
		}

		full := len(same) / GroupSize * GroupSize
		for i := 0; i < full; i += GroupSize {
			rest = append(rest, fold(same[i:i+GroupSize], level+1))
		}
		rm.games = append(rest, same[full:]...)
	}
}

func fold(group []GameRecord, level int) GameRecord {
	out := GameRecord{
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		CompressionIndex: level,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
		MaxDuration:      group[0].MaxDuration,
		MinDuration:      group[0].MinDuration,
	}
	var totalScore, totalDuration float64
	for _, g := range group {
		if g.MaxScore > out.MaxScore {
			out.MaxScore = g.MaxScore
		}
		if g.MinScore < out.MinScore {
			out.MinScore = g.MinScore
		}
		if g.MaxDuration > out.MaxDuration {
			out.MaxDuration = g.MaxDuration
		}
		if g.MinDuration < out.MinDuration {
			out.MinDuration = g.MinDuration
		}
		if g.StartTime.Before(out.StartTime) {
			out.StartTime = g.StartTime
		}
		if g.EndTime.After(out.EndTime) {
			out.EndTime = g.EndTime
		}
		totalScore += g.AverageScore * float64(g.GamesCount)
		totalDuration += g.AverageDuration * float64(g.GamesCount)
		out.GamesCount += g.GamesCount
		out.Wins += g.Wins
	}
	out.AverageScore = totalScore / float64(out.GamesCount)
	out.AverageDuration = totalDuration / float64(out.GamesCount)
	return out
}

func (rm *RecordManager) HighScore() int {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()
	return rm.highScore
}

// Records returns a copy of the stored records, grouped ones first.
func (rm *RecordManager) Records() []GameRecord {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	out := make([]GameRecord, len(rm.games))
	copy(out, rm.games)
	return out
}

func (rm *RecordManager) GamesPlayed() int {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	total := 0
	for _, g := range rm.games {
		total += g.GamesCount
	}
	return total
}

func (rm *RecordManager) Wins() int {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	total := 0
	for _, g := range rm.games {
		total += g.Wins
	}
	return total
}

// AverageScore is weighted by the number of sessions each record stands for.
func (rm *RecordManager) AverageScore() float64 {
	rm.mutex.RLock()
	defer rm.mutex.RUnlock()

	var total float64
	var games int
	for _, g := range rm.games {
		total += g.AverageScore * float64(g.GamesCount)
		games += g.GamesCount
	}
	if games == 0 {
		return 0
	}
	return total / float64(games)
}
