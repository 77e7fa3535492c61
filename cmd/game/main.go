package main

import (
	"log"

	"github.com/hmontrose/predator-sense/internal/ecology"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	g := ecology.New()
	w, h := g.WindowSize()
	ebiten.SetWindowTitle("Predator Sense")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
