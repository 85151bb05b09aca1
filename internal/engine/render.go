package engine

import (
	"fmt"
	"math"
	"strconv"

	"github.com/beevik/etree"
)

const (
	labelWidth  = 48
	geodesWidth = 88
	rowGap      = 4
	headerH     = 20
)

var (
	colBg        = "#0a0a0a"
	colUnvisited = "#1c1c1c"
	colText      = "#8c8c8c"
	colGeode     = "#ff88ff"
	colCursor    = "#00cccc"
	colError     = "#ff4444"
)

func (s *Simulation) SVG() string {
	doc := s.document()
	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		// writing to a strings.Builder cannot fail
		panic(err)
	}
	return out
}

func (s *Simulation) document() *etree.Document {
	cs := s.opts.CellSize
	width := labelWidth + s.opts.Horizon*cs + geodesWidth
	height := headerH + len(s.lanes)*(cs+rowGap) + rowGap

	doc := etree.NewDocument()
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", strconv.Itoa(width))
	svg.CreateAttr("height", strconv.Itoa(height))
	svg.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", width, height))
	svg.CreateElement("title").SetText(Status(s))

	bg := svg.CreateElement("rect")
	bg.CreateAttr("width", "100%")
	bg.CreateAttr("height", "100%")
	bg.CreateAttr("fill", colBg)

	header := svg.CreateElement("text")
	header.CreateAttr("x", strconv.Itoa(labelWidth))
	header.CreateAttr("y", "14")
	header.CreateAttr("fill", colText)
	header.CreateAttr("font-family", "monospace")
	header.CreateAttr("font-size", "12")
	header.SetText(fmt.Sprintf("minute %d / %d", s.minute, s.opts.Horizon))

	maxSize := s.PeakSize()

	for row, l := range s.lanes {
		y := headerH + row*(cs+rowGap)
		g := svg.CreateElement("g")
		g.CreateAttr("id", fmt.Sprintf("blueprint-%d", l.Blueprint.ID))

		label := g.CreateElement("text")
		label.CreateAttr("x", "4")
		label.CreateAttr("y", strconv.Itoa(y+cs-4))
		label.CreateAttr("fill", colText)
		label.CreateAttr("font-family", "monospace")
		label.CreateAttr("font-size", "12")
		label.SetText(fmt.Sprintf("#%d", l.Blueprint.ID))

		for m := 0; m < s.opts.Horizon; m++ {
			cell := g.CreateElement("rect")
			cell.CreateAttr("x", strconv.Itoa(labelWidth+m*cs))
			cell.CreateAttr("y", strconv.Itoa(y))
			cell.CreateAttr("width", strconv.Itoa(cs-1))
			cell.CreateAttr("height", strconv.Itoa(cs-1))
			fill := colUnvisited
			if m < s.minute {
				fill = Shade(l.Sizes[m+1], maxSize)
				cell.CreateElement("title").SetText(fmt.Sprintf("minute %d: %d states", m+1, l.Sizes[m+1]))
			}
			cell.CreateAttr("fill", fill)
		}

		geodes := g.CreateElement("text")
		geodes.CreateAttr("x", strconv.Itoa(labelWidth+s.opts.Horizon*cs+6))
		geodes.CreateAttr("y", strconv.Itoa(y+cs-4))
		geodes.CreateAttr("font-family", "monospace")
		geodes.CreateAttr("font-size", "12")
		fill := colText
		if l.Geodes() > 0 {
			fill = colGeode
		}
		geodes.CreateAttr("fill", fill)
		geodes.SetText(fmt.Sprintf("geodes %d", l.Geodes()))
	}

	if !s.Done() && len(s.lanes) > 0 {
		cursor := svg.CreateElement("rect")
		cursor.CreateAttr("x", strconv.Itoa(labelWidth+s.minute*cs))
		cursor.CreateAttr("y", strconv.Itoa(headerH))
		cursor.CreateAttr("width", strconv.Itoa(cs-1))
		cursor.CreateAttr("height", strconv.Itoa(len(s.lanes)*(cs+rowGap)-rowGap))
		cursor.CreateAttr("fill", "none")
		cursor.CreateAttr("stroke", colCursor)
	}
	return doc
}

// Shade maps a frontier size onto a green ramp, log-scaled against limit.
func Shade(size, limit int) string {
	r, g, b := ShadeRGB(size, limit)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// ShadeRGB is Shade as color components.
func ShadeRGB(size, limit int) (uint8, uint8, uint8) {
	t := Level(size, limit)
	return uint8(20 + 20*t), uint8(70 + 185*t), uint8(40 + 60*t)
}

// Level places size on [0, 1] by log(size)/log(limit).
func Level(size, limit int) float64 {
	t := 0.0
	if size > 1 && limit > 1 {
		t = math.Log(float64(size)) / math.Log(float64(limit))
	}
	return math.Max(0, math.Min(1, t))
}

// ErrorSVG renders err as a small standalone drawing, shown in place of a
// simulation that could not be built.
func ErrorSVG(err error) string {
	doc := etree.NewDocument()
	svg := doc.CreateElement("svg")
	svg.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	svg.CreateAttr("width", "640")
	svg.CreateAttr("height", "40")
	svg.CreateAttr("viewBox", "0 0 640 40")

	bg := svg.CreateElement("rect")
	bg.CreateAttr("width", "100%")
	bg.CreateAttr("height", "100%")
	bg.CreateAttr("fill", colBg)

	text := svg.CreateElement("text")
	text.CreateAttr("x", "8")
	text.CreateAttr("y", "24")
	text.CreateAttr("fill", colError)
	text.CreateAttr("font-family", "monospace")
	text.CreateAttr("font-size", "12")
	text.SetText(err.Error())

	doc.Indent(2)
	out, _ := doc.WriteToString()
	return out
}
