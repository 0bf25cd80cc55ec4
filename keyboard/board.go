package keyboard

import (
	"fmt"
	"image"
	"log"

	"github.com/fogleman/gg"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"golang.org/x/image/font/basicfont"

	"github.com/pshvedko/synth/note"
	"github.com/pshvedko/synth/synth"
)

const labelBand = 28

type keyArea struct {
	symbol     string
	label      string
	accidental bool
	rect       image.Rectangle
}

// Board is the playable keyboard: it renders the key layout with gg,
// turns raw ebiten key/mouse/touch events into note on/off pairs and
// owns the audio player, which it creates on the first gesture.
type Board struct {
	engine  *synth.Engine
	table   *note.Table
	width   int
	height  int
	verbose bool

	keys   []keyArea
	keyFor map[ebiten.Key]string

	pressed  map[string]bool
	mouse    string
	touch    map[ebiten.TouchID]string
	touchIDs []ebiten.TouchID

	dc    *gg.Context
	rgba  *image.RGBA
	frame *ebiten.Image

	context *audio.Context
	player  *audio.Player
	start   func() error
}

func New(e *synth.Engine, t *note.Table, width, height int, verbose bool) *Board {
	b := &Board{
		engine:  e,
		table:   t,
		width:   width,
		height:  height,
		verbose: verbose,
		keyFor:  map[ebiten.Key]string{},
		pressed: map[string]bool{},
		touch:   map[ebiten.TouchID]string{},
		rgba:    image.NewRGBA(image.Rectangle{Max: image.Point{X: width, Y: height}}),
	}
	b.dc = gg.NewContextForRGBA(b.rgba)
	b.dc.SetFontFace(basicfont.Face7x13)
	b.start = b.startPlayer
	b.layoutKeys()
	for _, k := range b.keys {
		if key, ok := symbolKey(k.symbol); ok {
			b.keyFor[key] = k.symbol
		}
	}
	return b
}

// layoutKeys computes the key geometry: white keys split the width
// evenly, accidentals sit on the boundary of their neighbours.
func (b *Board) layoutKeys() {
	entries := b.table.Entries()
	white := 0
	for _, e := range entries {
		if !e.Accidental {
			white++
		}
	}
	if white == 0 {
		return
	}
	ww := b.width / white
	wh := b.height - labelBand
	bw := ww * 3 / 5
	bh := wh * 3 / 5
	x := 0
	for _, e := range entries {
		if e.Accidental {
			b.keys = append(b.keys, keyArea{
				symbol:     e.Symbol,
				label:      e.Label,
				accidental: true,
				rect:       image.Rect(x-bw/2, labelBand, x+bw-bw/2, labelBand+bh),
			})
			continue
		}
		b.keys = append(b.keys, keyArea{
			symbol: e.Symbol,
			label:  e.Label,
			rect:   image.Rect(x, labelBand, x+ww, labelBand+wh),
		})
		x += ww
	}
}

// hit maps a point to the key under it, accidentals first since they
// overlap the white keys.
func (b *Board) hit(x, y int) (string, bool) {
	p := image.Point{X: x, Y: y}
	for _, k := range b.keys {
		if k.accidental && p.In(k.rect) {
			return k.symbol, true
		}
	}
	for _, k := range b.keys {
		if !k.accidental && p.In(k.rect) {
			return k.symbol, true
		}
	}
	return "", false
}

func (b *Board) startPlayer() error {
	if b.context == nil {
		b.context = audio.NewContext(int(b.engine.SampleRate()))
	}
	p, err := b.context.NewPlayer(b.engine)
	if err != nil {
		return err
	}
	b.player = p
	p.Play()
	return nil
}

// ensureAudio lazily brings up the player on the first gesture. On
// failure the gesture is dropped and the next one retries.
func (b *Board) ensureAudio() bool {
	if b.player != nil {
		return true
	}
	if err := b.start(); err != nil {
		log.Printf("keyboard: audio unavailable: %v", err)
		return false
	}
	return true
}

// press dispatches exactly one note-on per held symbol no matter how
// many raw down events arrive for it.
func (b *Board) press(symbol string) {
	if b.pressed[symbol] {
		return
	}
	if !b.ensureAudio() {
		return
	}
	b.pressed[symbol] = true
	b.engine.NoteOn(symbol)
	if b.verbose {
		log.Println("note on", symbol)
	}
}

// release dispatches exactly one note-off for a held symbol.
func (b *Board) release(symbol string) {
	if !b.pressed[symbol] {
		return
	}
	delete(b.pressed, symbol)
	b.engine.NoteOff(symbol)
	if b.verbose {
		log.Println("note off", symbol)
	}
}

func (b *Board) Update() error {
	b.pollKeys()
	b.pollMouse()
	b.pollTouch()
	b.pollControls()
	return nil
}

func (b *Board) Draw(screen *ebiten.Image) {
	if b.frame == nil {
		b.frame = ebiten.NewImage(b.width, b.height)
	}
	active := b.engine.ActiveSymbols()
	dc := b.dc
	dc.SetRGBA(1, 1, 1, 1)
	dc.Clear()
	for _, k := range b.keys {
		if k.accidental {
			continue
		}
		b.drawKey(k, active[k.symbol])
	}
	for _, k := range b.keys {
		if k.accidental {
			b.drawKey(k, active[k.symbol])
		}
	}
	b.drawReadout()
	b.frame.WritePixels(b.rgba.Pix)
	screen.DrawImage(b.frame, nil)
}

func (b *Board) drawKey(k keyArea, active bool) {
	dc := b.dc
	x := float64(k.rect.Min.X)
	y := float64(k.rect.Min.Y)
	w := float64(k.rect.Dx())
	h := float64(k.rect.Dy())
	dc.DrawRectangle(x, y, w, h)
	switch {
	case active:
		dc.SetRGBA(0.4, 0.6, 1, 1)
	case k.accidental:
		dc.SetRGBA(0, 0, 0, 1)
	default:
		dc.SetRGBA(1, 1, 1, 1)
	}
	dc.FillPreserve()
	dc.SetRGBA(0, 0, 0, 1)
	dc.SetLineWidth(1)
	dc.Stroke()
	if k.accidental && !active {
		dc.SetRGBA(1, 1, 1, 1)
	}
	dc.DrawStringAnchored(k.label, x+w/2, y+h-12, 0.5, 0.5)
	dc.SetRGBA(0, 0, 0, 1)
}

func (b *Board) drawReadout() {
	dc := b.dc
	dc.SetRGBA(0, 0, 0, 1)
	e := b.engine
	s := fmt.Sprintf("wave %s  transpose %+d  delay %.2fs  feedback %.2f  reverb %.2f  master %.2f",
		e.Waveform(), e.Transpose(), e.DelayTime(), e.Feedback(), e.ReverbMix(), e.MasterGain())
	dc.DrawString(s, 8, 18)
}

func (b *Board) Layout(int, int) (int, int) {
	return b.width, b.height
}

func (b *Board) Run(title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(b.width, b.height)
	ebiten.SetRunnableOnUnfocused(true)
	return ebiten.RunGame(b)
}
