package main

import (
	"flag"
	"log"

	"github.com/pshvedko/synth/keyboard"
	"github.com/pshvedko/synth/note"
	"github.com/pshvedko/synth/synth"
)

func main() {
	rate := flag.Int("rate", 44100, "output sample rate")
	width := flag.Int("width", 750, "window width")
	height := flag.Int("height", 228, "window height")
	verbose := flag.Bool("verbose", false, "log note events")
	flag.Parse()
	t := note.Default()
	e, err := synth.NewEngine(t, float64(*rate))
	if err != nil {
		log.Fatal(err)
	}
	b := keyboard.New(e, t, *width, *height, *verbose)
	err = b.Run("Synth")
	if err != nil {
		log.Fatal(err)
	}
}
