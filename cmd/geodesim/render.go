package main

import (
	"fmt"
	"image"
	"os"

	"github.com/san-kum/geodesim/internal/engine"
	"github.com/san-kum/geodesim/internal/export"
	"github.com/spf13/cobra"
)

func runRender(cmd *cobra.Command, args []string) error {
	cfg, text, _, err := loadInput(cmd, args)
	if err != nil {
		return err
	}
	s := newSession(cfg, text)
	if s.Err() != nil {
		return s.Err()
	}
	f := s.StepN(renderSteps).Render()

	if outFile == "" {
		if err := export.WriteSVG(os.Stdout, f.Markup); err != nil {
			return err
		}
		fmt.Println()
		return nil
	}
	if err := export.SaveSVG(outFile, f.Markup); err != nil {
		return err
	}
	fmt.Printf("%s -> %s\n", f.Status, outFile)
	return nil
}

func runFrames(cmd *cobra.Command, args []string) error {
	cfg, text, _, err := loadInput(cmd, args)
	if err != nil {
		return err
	}
	sim, err := engine.New(text, engineOptions(cfg))
	if err != nil {
		return err
	}

	paths, err := export.Frames(framesTo, sim, frameSteps)
	if err != nil {
		return err
	}
	fmt.Printf("wrote %d frames to %s\n", len(paths), framesTo)

	if gifOut == "" {
		return nil
	}
	var frames []*image.Paletted
	for i := 0; ; i++ {
		frames = append(frames, export.Raster(sim, 8))
		if i == frameSteps || sim.Done() {
			break
		}
		sim, _ = sim.Advance()
	}
	if err := export.SaveGIF(gifOut, frames, 100/max(cfg.FPS/4, 1)); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", gifOut)
	return nil
}
