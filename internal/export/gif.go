package export

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"

	"github.com/san-kum/geodesim/internal/engine"
)

const shades = 32

var ErrNoFrames = errors.New("export: no frames")

var palette = func() color.Palette {
	p := color.Palette{
		color.RGBA{0x0a, 0x0a, 0x0a, 0xff},
		color.RGBA{0x1c, 0x1c, 0x1c, 0xff},
		color.RGBA{0x00, 0xcc, 0xcc, 0xff},
	}
	for i := 0; i < shades; i++ {
		// sizes 1, 2^1, ... against a peak of 2^(shades-1)
		r, g, b := engine.ShadeRGB(1<<i, 1<<(shades-1))
		p = append(p, color.RGBA{r, g, b, 0xff})
	}
	return p
}()

const (
	idxBg = iota
	idxUnvisited
	idxCursor
	idxShade
)

// Raster draws the progress grid of sim: one row per blueprint, one cell
// per minute, cell pixels square.
func Raster(sim *engine.Simulation, cell int) *image.Paletted {
	if cell < 2 {
		cell = 2
	}
	lanes := sim.Lanes()
	w, h := sim.Horizon()*cell, len(lanes)*cell
	img := image.NewPaletted(image.Rect(0, 0, w, h), palette)
	peak := sim.PeakSize()
	for row, l := range lanes {
		for m := 0; m < sim.Horizon(); m++ {
			idx := uint8(idxUnvisited)
			switch {
			case m < sim.Steps():
				idx = shadeIndex(l.Sizes[m+1], peak)
			case m == sim.Steps():
				idx = idxCursor
			}
			for y := row*cell + 1; y < (row+1)*cell; y++ {
				for x := m*cell + 1; x < (m+1)*cell; x++ {
					img.SetColorIndex(x, y, idx)
				}
			}
		}
	}
	return img
}

func shadeIndex(size, peak int) uint8 {
	r, g, b := engine.ShadeRGB(size, peak)
	return uint8(palette.Index(color.RGBA{r, g, b, 0xff}))
}

// WriteGIF encodes frames as a looping animation, delay in 1/100 s.
func WriteGIF(w io.Writer, frames []*image.Paletted, delay int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

// SaveGIF is WriteGIF to a file.
func SaveGIF(path string, frames []*image.Paletted, delay int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteGIF(f, frames, delay); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
