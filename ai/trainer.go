package ai

import (
	"log"

	"snake-hess/game"
)

// TrainingStats summarizes a headless training run.
type TrainingStats struct {
	Episodes   int
	Wins       int
	BestScore  int
	TotalScore int
	Truncated  int // episodes stopped at MaxMoves
}

func (s TrainingStats) AverageScore() float64 {
	if s.Episodes == 0 {
		return 0
	}
	return float64(s.TotalScore) / float64(s.Episodes)
}

// Trainer plays games without a frontend, one move per Update, so the agent
// learns as fast as the CPU allows. The game must be built with Agent as its Pilot.
type Trainer struct {
	Game  *game.Game
	Agent *QLearning

	// MaxMoves ends an episode that neither wins nor dies, e.g. in the plain variant.
	MaxMoves int
	// SaveEvery writes the Q-table to QTablePath every that many episodes, 0 never.
	SaveEvery  int
	QTablePath string
}

func NewTrainer(g *game.Game, agent *QLearning) *Trainer {
	return &Trainer{
		Game:     g,
		Agent:    agent,
		MaxMoves: 5000,
	}
}

// Run plays episodes games and returns the statistics.
func (t *Trainer) Run(episodes int) (TrainingStats, error) {
	var stats TrainingStats
	g := t.Game

	if g.Phase() == game.PhaseConfiguring {
		width, height := g.MenuSize()
		if err := g.Start(width, height); err != nil {
			return stats, err
		}
	} else if g.Phase() == game.PhaseEnded {
		g.Restart()
	}

	for episode := 0; episode < episodes; episode++ {
		moves := 0
		for g.Phase() == game.PhaseRunning && moves < t.MaxMoves {
			g.Update(game.Input{}, g.Speed)
			moves++
		}

		if g.Phase() == game.PhaseRunning {
			stats.Truncated++
		}
		if g.Outcome() == game.OutcomeWon {
			stats.Wins++
		}
		stats.Episodes++
		stats.TotalScore += g.Progress
		if g.Progress > stats.BestScore {
			stats.BestScore = g.Progress
		}

		if t.SaveEvery > 0 && t.QTablePath != "" && (episode+1)%t.SaveEvery == 0 {
			if err := t.Agent.SaveQTable(t.QTablePath); err != nil {
				log.Printf("Error saving Q-table at episode %d: %v", episode+1, err)
			} else {
				log.Printf("Episode %d: best %d, avg %.2f, %d states",
					episode+1, stats.BestScore, stats.AverageScore(), len(t.Agent.QTable))
			}
		}

		g.Restart()
	}
	return stats, nil
}
