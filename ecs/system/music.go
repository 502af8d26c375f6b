package system

import (
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/finalroom/assets"
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/music"
)

// LoadPlayerFunc opens a playable stream for a clip.
type LoadPlayerFunc func(clip string) (*audio.Player, error)

// MusicSystem feeds state requests to the music manager and applies the
// manager's single channel to the ebiten players.
type MusicSystem struct {
	Load LoadPlayerFunc
	// Length reports clip durations for the after-selection playlist.
	Length func(clip string) (float64, error)
}

func NewMusicSystem() *MusicSystem {
	return &MusicSystem{Load: assets.LoadAudioPlayer, Length: assets.ClipLength}
}

// RequestMusicState queues a state change for the music manager.
func RequestMusicState(w *ecs.World, state music.State, instant bool) {
	if w == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.MusicRequestComponent.Kind(), &component.MusicRequest{State: state, Instant: instant})
}

func musicManager(w *ecs.World) *music.Manager {
	ent, ok := ecs.First(w, component.MusicPlayerComponent.Kind())
	if !ok {
		return nil
	}
	mp, _ := ecs.Get(w, ent, component.MusicPlayerComponent.Kind())
	return mp.Manager
}

func (m *MusicSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	latest, requestEntities := m.consumeLatestRequest(w)
	for _, ent := range requestEntities {
		ecs.DestroyEntity(w, ent)
	}

	ent, ok := ecs.First(w, component.MusicPlayerComponent.Kind())
	if !ok {
		return
	}
	player, ok := ecs.Get(w, ent, component.MusicPlayerComponent.Kind())
	if !ok || player == nil || player.Manager == nil {
		return
	}
	if player.Players == nil {
		player.Players = make(map[string]*audio.Player)
	}
	if player.Lengths == nil {
		player.Lengths = make(map[string]float64)
	}
	if player.Manager.Source == nil {
		player.Manager.Source = musicSource{m: m, p: player}
		player.Manager.Resume()
	}

	if latest != nil {
		player.Manager.PlayState(latest.State, latest.Instant)
	}
	player.Manager.Update(common.DT)

	if player.PendingActive {
		m.switchToPending(player)
	}

	current := m.currentPlayer(player)
	if current == nil {
		return
	}
	current.SetVolume(player.Volume * masterVolume(player))
	if !current.IsPlaying() && player.CurrentLoop {
		current.Rewind()
		current.Play()
	}
}

func masterVolume(p *component.MusicPlayer) float64 {
	if p.Master < 0 {
		return 1
	}
	return common.Clamp01(p.Master)
}

func (m *MusicSystem) consumeLatestRequest(w *ecs.World) (*component.MusicRequest, []ecs.Entity) {
	var latest *component.MusicRequest
	requestEntities := make([]ecs.Entity, 0)

	ecs.ForEach(w, component.MusicRequestComponent.Kind(), func(ent ecs.Entity, req *component.MusicRequest) {
		requestEntities = append(requestEntities, ent)
		if req == nil {
			return
		}
		copy := *req
		latest = &copy
	})

	return latest, requestEntities
}

func (m *MusicSystem) switchToPending(player *component.MusicPlayer) {
	if player == nil || !player.PendingActive {
		return
	}

	reqTrack := strings.TrimSpace(player.PendingTrack)
	reqLoop := player.PendingLoop
	player.PendingTrack = ""
	player.PendingLoop = false
	player.PendingActive = false

	if current := m.currentPlayer(player); current != nil {
		current.Pause()
		current.Rewind()
	}
	player.CurrentTrack = ""
	player.CurrentLoop = false
	if reqTrack == "" {
		return
	}

	audioPlayer, err := m.playerForTrack(player, reqTrack)
	if err != nil {
		log.Printf("music: load %q: %v", reqTrack, err)
		return
	}

	player.CurrentTrack = reqTrack
	player.CurrentLoop = reqLoop
	audioPlayer.Rewind()
	audioPlayer.SetVolume(player.Volume * masterVolume(player))
	audioPlayer.Play()
}

func (m *MusicSystem) currentPlayer(player *component.MusicPlayer) *audio.Player {
	if player == nil || strings.TrimSpace(player.CurrentTrack) == "" || player.Players == nil {
		return nil
	}
	audioPlayer, ok := player.Players[player.CurrentTrack]
	if !ok {
		return nil
	}
	return audioPlayer
}

func (m *MusicSystem) playerForTrack(player *component.MusicPlayer, track string) (*audio.Player, error) {
	if existing, ok := player.Players[track]; ok && existing != nil {
		return existing, nil
	}
	audioPlayer, err := m.Load(track)
	if err != nil {
		return nil, err
	}
	player.Players[track] = audioPlayer
	return audioPlayer, nil
}

// musicSource is the manager's channel. Play only records the request; the
// system switches streams after the manager has run.
type musicSource struct {
	m *MusicSystem
	p *component.MusicPlayer
}

func (s musicSource) Play(clip string, loop bool) {
	s.p.PendingTrack = clip
	s.p.PendingLoop = loop
	s.p.PendingActive = true
}

func (s musicSource) SetVolume(v float64) {
	s.p.Volume = v
}

func (s musicSource) Length(clip string) float64 {
	if v, ok := s.p.Lengths[clip]; ok {
		return v
	}
	if s.m.Length == nil {
		return 0
	}
	v, err := s.m.Length(clip)
	if err != nil {
		log.Printf("music: length of %q: %v", clip, err)
	}
	s.p.Lengths[clip] = v
	return v
}
