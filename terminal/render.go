// Package terminal draws generated maps into a tcell screen and as plain text
package terminal

import (
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"

	"promage2/config"
	"promage2/data"
	"promage2/generation"
	"promage2/geom"
	"promage2/tiles"
)

// cp437 covers the non-ASCII sprites the content uses
var cp437 = map[int]rune{
	3:   '♥',
	4:   '♦',
	5:   '♣',
	6:   '♠',
	30:  '▲',
	176: '░',
	177: '▒',
	178: '▓',
	219: '█',
	247: '≈',
}

// Glyph maps a tile's sprite sheet position to the character it shows
func Glyph(def *tiles.Def) rune {
	index := def.SpriteCoords.Y*config.SpriteSheetCols + def.SpriteCoords.X
	if index >= 32 && index < 127 {
		return rune(index)
	}
	if r, ok := cp437[index]; ok {
		return r
	}
	if def.Name != "" {
		return rune(def.Name[0])
	}
	return '?'
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// dim scales a color towards black
func dim(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// Renderer draws a map snapshot through a viewport
type Renderer struct {
	Templates *data.MarkerTemplateManager
	Viewport  geom.Viewport
	// Highlight reverses tiles changed by the inspected step
	Highlight bool
}

// NewRenderer creates a renderer showing w x h tiles
func NewRenderer(templates *data.MarkerTemplateManager, w, h int) *Renderer {
	if templates == nil {
		templates = data.NewMarkerTemplateManager()
	}
	return &Renderer{
		Templates: templates,
		Viewport:  geom.Viewport{W: w, H: h},
		Highlight: true,
	}
}

// TileStyle returns the style of a tile: tint in front, the topmost edge
// overlay behind
func TileStyle(t *tiles.Tile) tcell.Style {
	style := tcell.StyleDefault.Foreground(rgb(t.GetTint())).Background(tcell.ColorBlack)
	if overlays := t.Metadata.Overlays(); len(overlays) > 0 {
		style = style.Background(rgb(dim(overlays[len(overlays)-1].Tint, 0.4)))
	}
	return style
}

// Draw renders m with its markers. changed lists tiles to highlight.
func (r *Renderer) Draw(screen tcell.Screen, m *generation.Map, changed []geom.IntVec2) {
	r.Viewport.Clamp(m.Width, m.Height)

	highlight := make(map[geom.IntVec2]bool, len(changed))
	if r.Highlight {
		for _, p := range changed {
			highlight[p] = true
		}
	}

	for sy := 0; sy < r.Viewport.H; sy++ {
		for sx := 0; sx < r.Viewport.W; sx++ {
			world := r.Viewport.ScreenToWorld(geom.IntVec2{X: sx, Y: sy})
			t := m.TileAt(world.X, world.Y)
			if t == nil {
				continue
			}
			style := TileStyle(t)
			if highlight[world] {
				style = style.Reverse(true)
			}
			screen.SetContent(sx, sy, Glyph(t.Def()), nil, style)
		}
	}

	for _, marker := range m.Markers() {
		world := geom.IntVec2{X: marker.X, Y: marker.Y}
		if !r.Viewport.Visible(world) {
			continue
		}
		tmpl := r.Templates.Lookup(marker.Definition)
		s := r.Viewport.WorldToScreen(world)
		style := tcell.StyleDefault.Foreground(rgb(tmpl.RGBA())).Background(tcell.ColorBlack).Bold(true)
		screen.SetContent(s.X, s.Y, tmpl.Rune(), nil, style)
	}
}

// DrawText writes a line of text starting at (x, y)
func DrawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// RenderText returns the map as one line of glyphs per row, markers drawn
// over their tiles
func RenderText(m *generation.Map, templates *data.MarkerTemplateManager) string {
	if templates == nil {
		templates = data.NewMarkerTemplateManager()
	}
	rows := make([][]rune, m.Height)
	for y := range rows {
		rows[y] = make([]rune, m.Width)
		for x := range rows[y] {
			rows[y][x] = Glyph(m.TileAt(x, y).Def())
		}
	}
	for _, marker := range m.Markers() {
		if m.IsValidTileCoords(marker.X, marker.Y) {
			rows[marker.Y][marker.X] = templates.Lookup(marker.Definition).Rune()
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
