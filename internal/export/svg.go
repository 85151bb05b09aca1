package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/geodesim/internal/engine"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// WriteSVG writes markup as a standalone SVG document.
func WriteSVG(w io.Writer, markup string) error {
	if markup == "" {
		return fmt.Errorf("export: empty markup")
	}
	if !strings.HasPrefix(markup, "<?xml") {
		if _, err := io.WriteString(w, xmlHeader); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, markup)
	return err
}

// SaveSVG writes markup to path.
func SaveSVG(path string, markup string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSVG(f, markup); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Frames steps h up to n times and writes the drawing before the first
// step and after each one as frame-000.svg, frame-001.svg, ... in dir. It
// returns the paths written.
func Frames(dir string, h engine.Handle, n int) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, n+1)
	for i := 0; ; i++ {
		path := filepath.Join(dir, fmt.Sprintf("frame-%03d.svg", h.Steps()))
		if err := SaveSVG(path, h.SVG()); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		if i == n || h.Done() {
			return paths, nil
		}
		h, _ = h.Step()
	}
}
