package ui

import (
	"log"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-hess/game"
)

// Sound files looked up in the asset directory. Missing ones stay silent.
var soundFiles = map[game.EventType]string{
	game.EventAte:           "eat.wav",
	game.EventGuessed:       "eat.wav",
	game.EventMissed:        "miss.wav",
	game.EventBoosterPicked: "booster.wav",
	game.EventLifeLost:      "hit.wav",
	game.EventWon:           "won.wav",
	game.EventLost:          "lost.wav",
}

// Audio plays the background music while a session runs and a sound per event.
// It is a game.Listener.
type Audio struct {
	music    rl.Music
	hasMusic bool
	playing  bool
	sounds   map[game.EventType]rl.Sound
}

// NewAudio opens the audio device. musicPath and assetDir may be empty.
func NewAudio(musicPath, assetDir string) *Audio {
	rl.InitAudioDevice()
	a := &Audio{sounds: make(map[game.EventType]rl.Sound)}
	if !rl.IsAudioDeviceReady() {
		log.Printf("Audio device not ready, running silent")
		return a
	}

	if musicPath != "" {
		if _, err := os.Stat(musicPath); err != nil {
			log.Printf("Music disabled: %v", err)
		} else {
			a.music = rl.LoadMusicStream(musicPath)
			a.hasMusic = true
		}
	}

	if assetDir != "" {
		loaded := make(map[string]rl.Sound)
		for ev, name := range soundFiles {
			path := filepath.Join(assetDir, name)
			if s, ok := loaded[path]; ok {
				a.sounds[ev] = s
				continue
			}
			if _, err := os.Stat(path); err != nil {
				continue
			}
			s := rl.LoadSound(path)
			loaded[path] = s
			a.sounds[ev] = s
		}
	}
	return a
}

func (a *Audio) Notify(g *game.Game, ev game.Event) {
	switch ev.Type {
	case game.EventStarted, game.EventRestarted:
		if a.hasMusic {
			rl.PlayMusicStream(a.music)
			a.playing = true
		}
	case game.EventWon, game.EventLost, game.EventQuit:
		if a.playing {
			rl.StopMusicStream(a.music)
			a.playing = false
		}
	}
	if s, ok := a.sounds[ev.Type]; ok {
		rl.PlaySound(s)
	}
}

// Update refills the music stream buffers; call it once per frame.
func (a *Audio) Update() {
	if a.playing {
		rl.UpdateMusicStream(a.music)
	}
}

func (a *Audio) Close() {
	unloaded := make(map[string]bool)
	for ev, s := range a.sounds {
		name := soundFiles[ev]
		if unloaded[name] {
			continue
		}
		unloaded[name] = true
		rl.UnloadSound(s)
	}
	if a.hasMusic {
		rl.UnloadMusicStream(a.music)
	}
	rl.CloseAudioDevice()
}
