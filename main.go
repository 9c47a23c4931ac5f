package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/exp/rand"

	"snake-hess/ai"
	"snake-hess/game"
	"snake-hess/game/manager"
	"snake-hess/game/types"
	"snake-hess/term"
	"snake-hess/ui"
)

type options struct {
	frontend  string
	variant   string
	seed      uint64
	autopilot bool
	train     int
	qtable    string
	records   string
	music     string
	assets    string
	mute      bool
	debug     bool
	words     string
}

func main() {
	var opts options
	flag.StringVar(&opts.frontend, "frontend", "raylib", "Frontend: raylib or term")
	flag.StringVar(&opts.variant, "variant", "boosters", "Game variant: plain, food, boosters or words")
	flag.Uint64Var(&opts.seed, "seed", 0, "Random seed (0 = from the clock)")
	flag.BoolVar(&opts.autopilot, "autopilot", false, "Let the Q-learning agent steer")
	flag.IntVar(&opts.train, "train", 0, "Train the autopilot headless for this many games, then exit")
	flag.StringVar(&opts.qtable, "qtable", filepath.Join("data", "qtable.json"), "Q-table file for the autopilot")
	flag.StringVar(&opts.records, "records", filepath.Join("data", "records.json"), "Game records file (empty = keep in memory)")
	flag.StringVar(&opts.music, "music", filepath.Join("assets", "music.mp3"), "Background music for the raylib frontend")
	flag.StringVar(&opts.assets, "assets", "assets", "Sound effects directory for the raylib frontend")
	flag.BoolVar(&opts.mute, "mute", false, "Disable all audio")
	flag.BoolVar(&opts.debug, "debug", false, "Write logs to data/logs/snake.log")
	flag.StringVar(&opts.words, "words", "", "Comma separated words for the words variant")
	flag.Parse()

	logFile := setupLogging(opts.debug)
	if logFile != nil {
		defer logFile.Close()
	}

	if err := run(opts); err != nil {
		log.Printf("Fatal: %v", err)
		fmt.Fprintln(os.Stderr, err)
		if logFile != nil {
			logFile.Close()
		}
		os.Exit(1)
	}
}

func run(opts options) error {
	systems, err := types.ParseVariant(opts.variant)
	if err != nil {
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))
	log.Printf("Variant %s, seed %d", systems, seed)

	records, err := manager.NewRecordManager(opts.records)
	if err != nil {
		log.Printf("Starting with empty records: %v", err)
	}

	cfg := game.Config{
		Systems: systems,
		Words:   splitWords(opts.words),
		Rand:    rng,
	}

	var agent *ai.QLearning
	if opts.autopilot || opts.train > 0 {
		agent = ai.NewQLearning(rng)
		if err := agent.LoadQTable(opts.qtable); err != nil {
			log.Printf("Starting with an empty Q-table: %v", err)
		}
		cfg.Pilot = agent
	}

	g, err := game.NewGame(cfg)
	if err != nil {
		return err
	}

	if opts.train > 0 {
		return train(opts, g, agent)
	}

	listeners := []game.Listener{
		game.NewRecorder(records),
		game.ListenerFunc(logEvent),
	}

	switch opts.frontend {
	case "term":
		err = runTerminal(opts, g, records, listeners)
	case "raylib":
		runWindow(opts, g, records, listeners)
	default:
		err = fmt.Errorf("unknown frontend %q (want raylib or term)", opts.frontend)
	}
	if err != nil {
		return err
	}

	if agent != nil {
		if err := agent.SaveQTable(opts.qtable); err != nil {
			log.Printf("Failed to save Q-table: %v", err)
		} else {
			log.Printf("Q-table saved: %d states, %d games, reward %.1f",
				len(agent.QTable), agent.GamesPlayed, agent.TotalReward)
		}
	}
	return nil
}

func train(opts options, g *game.Game, agent *ai.QLearning) error {
	trainer := ai.NewTrainer(g, agent)
	trainer.SaveEvery = 100
	trainer.QTablePath = opts.qtable

	stats, err := trainer.Run(opts.train)
	if err != nil {
		return err
	}
	if err := agent.SaveQTable(opts.qtable); err != nil {
		return err
	}
	fmt.Printf("Trained %d games: %d won, best %d, avg %.2f, %d truncated, %d states\n",
		stats.Episodes, stats.Wins, stats.BestScore, stats.AverageScore(), stats.Truncated, len(agent.QTable))
	return nil
}

func runTerminal(opts options, g *game.Game, records *manager.RecordManager, listeners []game.Listener) error {
	t, err := term.New(records)
	if err != nil {
		return err
	}
	defer t.Close()

	if !opts.mute {
		sound := term.NewSound()
		if err := sound.Initialize(); err != nil {
			log.Printf("Sound disabled: %v", err)
		} else {
			defer sound.Cleanup()
			listeners = append(listeners, sound)
		}
	}

	game.Run(t, g, listeners...)
	return nil
}

func runWindow(opts options, g *game.Game, records *manager.RecordManager, listeners []game.Listener) {
	w := ui.NewWindow(ui.NewRenderer(records))
	defer w.Close()

	if !opts.mute {
		audio := ui.NewAudio(opts.music, opts.assets)
		defer audio.Close()
		w.AttachAudio(audio)
		listeners = append(listeners, audio)
	}

	game.Run(w, g, listeners...)
}

func logEvent(g *game.Game, ev game.Event) {
	switch ev.Type {
	case game.EventMoved:
		return
	case game.EventStarted, game.EventRestarted:
		log.Printf("%s session %s: %s", ev.Type, g.SessionID(), g)
	default:
		log.Printf("%s: %s", ev.Type, g)
	}
}

func splitWords(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
