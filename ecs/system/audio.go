package system

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/finalroom/assets"
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
)

// AudioSystem plays the clips queued on AudioSources.
type AudioSystem struct {
	Load LoadPlayerFunc
	// Gain scales every effect; zero mutes.
	Gain  float64
	loops map[ecs.Entity]string
}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{Load: assets.LoadAudioPlayer, Gain: 1, loops: map[ecs.Entity]string{}}
}

func (a *AudioSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if a.loops == nil {
		a.loops = map[ecs.Entity]string{}
	}
	for e := range a.loops {
		if !ecs.IsAlive(w, e) {
			delete(a.loops, e)
		}
	}

	ecs.ForEach(w, component.AudioSourceComponent.Kind(), func(e ecs.Entity, src *component.AudioSource) {
		shots := src.OneShots
		src.OneShots = src.OneShots[:0]
		if a.Load == nil {
			return
		}
		if src.Players == nil {
			src.Players = make(map[string]*audio.Player)
		}
		volume := src.Volume
		if volume <= 0 {
			volume = 1
		}
		volume *= common.Clamp01(a.Gain)

		for _, clip := range shots {
			player := a.player(src, clip)
			if player == nil {
				continue
			}
			player.SetVolume(volume)
			player.Rewind()
			player.Play()
		}

		running := a.loops[e]
		if running != "" && running != src.Loop {
			if player := src.Players[running]; player != nil {
				player.Pause()
				player.Rewind()
			}
			delete(a.loops, e)
			running = ""
		}
		if src.Loop == "" || !src.LoopPlaying {
			return
		}
		player := a.player(src, src.Loop)
		if player == nil {
			src.LoopPlaying = false
			return
		}
		loopVolume := src.LoopVolume
		if loopVolume <= 0 {
			loopVolume = 1
		}
		player.SetVolume(volume * loopVolume)
		if running == "" || !player.IsPlaying() {
			player.Rewind()
			player.Play()
			a.loops[e] = src.Loop
		}
	})
}

func (a *AudioSystem) player(src *component.AudioSource, clip string) *audio.Player {
	if p, ok := src.Players[clip]; ok {
		return p
	}
	p, err := a.Load(clip)
	if err != nil {
		log.Printf("audio: load %q: %v", clip, err)
		src.Players[clip] = nil
		return nil
	}
	src.Players[clip] = p
	return p
}
