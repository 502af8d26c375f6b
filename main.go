package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	sceneName := flag.String("scene", "", "scene name in levels/ (basename, .json optional)")
	mode := flag.String("mode", "", "selection mode: best_candidate or center_ray")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("final room")

	game, err := NewGame(*sceneName, *debug, *mode)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	// Mouse look needs the cursor captured.
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
