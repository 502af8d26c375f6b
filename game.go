package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/finalroom/common"
	"github.com/milk9111/finalroom/ecs"
	"github.com/milk9111/finalroom/ecs/component"
	"github.com/milk9111/finalroom/ecs/entity"
	"github.com/milk9111/finalroom/ecs/system"
	"github.com/milk9111/finalroom/interaction"
	"github.com/milk9111/finalroom/prefabs"
	"github.com/milk9111/finalroom/settings"
)

const defaultScene = "final_room.json"

type Game struct {
	frames int

	world     *ecs.World
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	audio     *system.AudioSystem
	watcher   *prefabs.Watcher

	settings *settings.Manager
	// lookBase is the controller's own sensitivity before the player's
	// multiplier.
	lookBase float64

	debug   bool
	paused  bool
	pauseUI *ebitenui.UI
}

func NewGame(sceneName string, debug bool, mode string) (*Game, error) {
	if sceneName == "" {
		sceneName = defaultScene
	}
	w := ecs.NewWorld()
	if err := entity.LoadScene(w, sceneName); err != nil {
		return nil, fmt.Errorf("load scene %s: %w", sceneName, err)
	}

	if mode != "" {
		m, ok := interaction.ParseMode(mode)
		if !ok {
			return nil, fmt.Errorf("unknown selection mode %q", mode)
		}
		ecs.ForEach(w, component.SelectorComponent.Kind(), func(_ ecs.Entity, sel *component.Selector) {
			if sel.Selector != nil {
				sel.Selector.SetMode(m)
			}
		})
	}

	g := &Game{
		world:    w,
		render:   system.NewRenderSystem(),
		audio:    system.NewAudioSystem(),
		settings: settings.Open(settings.AppName),
		debug:    debug,
	}
	if pc, ok := firstController(w); ok {
		g.lookBase = pc.Controller.Config().MouseSensitivity
	}

	interactKey, advanceKey := "E", "Space"
	if sel, ok := firstSelector(w); ok {
		interactKey = sel.Selector.Config().InteractKey
	}
	if ui, ok := dialogueUI(w); ok {
		advanceKey = ui.Session.Config().NextKey
	}

	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(interactKey, advanceKey),
		system.NewTransformSystem(),
		system.NewPhysicsSystem(),
		system.NewPlayerSystem(),
		system.NewInteractionSystem(),
		system.NewDialogueSystem(),
		system.NewDoorSystem(),
		system.NewCounterSystem(),
		system.NewMissionSystem(entity.Spawn),
		system.NewTypewriterSystem(),
		system.NewReloadSystem(entity.ReloadPrefab),
		system.NewMusicSystem(),
		g.audio,
		system.NewAnimationSystem(),
		// Doors, clones and the player moved; the camera follows this tick.
		system.NewTransformSystem(),
		system.NewCameraSystem(),
	)

	g.watcher = watchPrefabs()
	g.applySettings(g.settings.Get())
	g.pauseUI = NewPauseUI(g)
	return g, nil
}

// watchPrefabs follows the on-disk prefab tree when the game runs from a
// checkout.
func watchPrefabs() *prefabs.Watcher {
	if info, err := os.Stat("prefabs"); err != nil || !info.IsDir() {
		return nil
	}
	w, err := prefabs.NewWatcher("prefabs")
	if err != nil {
		log.Printf("prefab watcher disabled: %v", err)
		return nil
	}
	return w
}

func firstController(w *ecs.World) (*component.PlayerController, bool) {
	e, ok := ecs.First(w, component.PlayerControllerComponent.Kind())
	if !ok {
		return nil, false
	}
	pc, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	return pc, ok && pc.Controller != nil
}

func firstSelector(w *ecs.World) (*component.Selector, bool) {
	e, ok := ecs.First(w, component.SelectorComponent.Kind())
	if !ok {
		return nil, false
	}
	sel, ok := ecs.Get(w, e, component.SelectorComponent.Kind())
	return sel, ok && sel.Selector != nil
}

func dialogueUI(w *ecs.World) (*component.DialogueUI, bool) {
	e, ok := ecs.First(w, component.DialogueUIComponent.Kind())
	if !ok {
		return nil, false
	}
	ui, ok := ecs.Get(w, e, component.DialogueUIComponent.Kind())
	return ui, ok && ui.Session != nil
}

// applySettings pushes the player's preferences into the running scene.
func (g *Game) applySettings(s settings.Settings) {
	g.audio.Gain = s.EffectsVolume
	ecs.ForEach(g.world, component.MusicPlayerComponent.Kind(), func(_ ecs.Entity, mp *component.MusicPlayer) {
		mp.Master = s.MusicVolume
	})
	if pc, ok := firstController(g.world); ok {
		pc.Controller.SetLook(g.lookBase*s.MouseSensitivity, s.InvertY)
	}
	if ui, ok := dialogueUI(g.world); ok {
		ui.Session.SetCharacterDelay(s.TextDelay)
	}
}

// UpdateSettings stores s and applies it.
func (g *Game) UpdateSettings(s settings.Settings) {
	g.settings.Set(s)
	g.applySettings(g.settings.Get())
	if err := g.settings.Save(); err != nil {
		log.Printf("settings: %v", err)
	}
}

// ClickNext advances the open conversation as the next button would.
func (g *Game) ClickNext() {
	if ui, ok := dialogueUI(g.world); ok {
		ui.NextClicked = true
	}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if g.watcher != nil {
		for _, path := range g.watcher.Drain() {
			system.RequestReload(g.world, path)
		}
	}
	g.scheduler.Update(g.world)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	g.scheduler.Draw(g.world, screen)

	if g.debug {
		system.DrawPhysicsDebug(g.world, screen, g.render.Scale)
		system.DrawStateDebug(g.world, screen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()), 0, common.BaseHeight-16)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
