package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"promage2/config"
	"promage2/data"
	"promage2/generation"
	"promage2/geom"
)

var highlightColor = color.RGBA{255, 230, 0, 255}

// MapRenderer draws a map snapshot into an ebiten image. With no tileset
// every tile is a flat rectangle in its tint and markers are printed with
// the debug font.
type MapRenderer struct {
	tileset   *Tileset
	templates *data.MarkerTemplateManager

	Viewport geom.Viewport
	TileSize int
	// Highlight outlines tiles changed by the inspected step
	Highlight bool
}

// NewMapRenderer creates a renderer showing a w x h tile window. tileset
// may be nil.
func NewMapRenderer(tileset *Tileset, templates *data.MarkerTemplateManager, w, h int) *MapRenderer {
	if templates == nil {
		templates = data.NewMarkerTemplateManager()
	}
	size := config.TileSize
	if tileset != nil {
		size = tileset.TileSize
	}
	return &MapRenderer{
		tileset:   tileset,
		templates: templates,
		Viewport:  geom.Viewport{W: w, H: h},
		TileSize:  size,
		Highlight: true,
	}
}

// Draw renders m with its top left corner at pixel (ox, oy)
func (r *MapRenderer) Draw(screen *ebiten.Image, m *generation.Map, changed []geom.IntVec2, ox, oy float64) {
	r.Viewport.Clamp(m.Width, m.Height)
	size := float32(r.TileSize)

	for sy := 0; sy < r.Viewport.H; sy++ {
		for sx := 0; sx < r.Viewport.W; sx++ {
			world := r.Viewport.ScreenToWorld(geom.IntVec2{X: sx, Y: sy})
			t := m.TileAt(world.X, world.Y)
			if t == nil {
				continue
			}
			px := ox + float64(sx*r.TileSize)
			py := oy + float64(sy*r.TileSize)

			if r.tileset != nil {
				r.tileset.DrawSprite(screen, t.Def().SpriteCoords, px, py, t.GetTint())
				for _, overlay := range t.Metadata.Overlays() {
					r.tileset.DrawSprite(screen, overlay.SpriteCoords, px, py, overlay.Tint)
				}
				continue
			}

			vector.DrawFilledRect(screen, float32(px), float32(py), size, size, t.GetTint(), false)
			for i, overlay := range t.Metadata.Overlays() {
				inset := float32(i + 1)
				vector.StrokeRect(screen, float32(px)+inset, float32(py)+inset, size-2*inset, size-2*inset, 1, overlay.Tint, false)
			}
		}
	}

	if r.Highlight {
		for _, p := range changed {
			if !r.Viewport.Visible(p) {
				continue
			}
			s := r.Viewport.WorldToScreen(p)
			px := float32(ox) + float32(s.X)*size
			py := float32(oy) + float32(s.Y)*size
			vector.StrokeRect(screen, px, py, size, size, 2, highlightColor, false)
		}
	}

	r.drawMarkers(screen, m, ox, oy)
}

func (r *MapRenderer) drawMarkers(screen *ebiten.Image, m *generation.Map, ox, oy float64) {
	for _, marker := range m.Markers() {
		world := geom.IntVec2{X: marker.X, Y: marker.Y}
		if !r.Viewport.Visible(world) {
			continue
		}
		tmpl := r.templates.Lookup(marker.Definition)
		s := r.Viewport.WorldToScreen(world)
		px := ox + float64(s.X*r.TileSize)
		py := oy + float64(s.Y*r.TileSize)

		if r.tileset != nil {
			coords := geom.IntVec2{X: tmpl.TileX, Y: tmpl.TileY}
			if coords == (geom.IntVec2{}) {
				r.tileset.DrawGlyph(screen, tmpl.Rune(), px, py, tmpl.RGBA())
			} else {
				r.tileset.DrawSprite(screen, coords, px, py, tmpl.RGBA())
			}
			continue
		}

		half := float32(r.TileSize) / 2
		vector.DrawFilledCircle(screen, float32(px)+half, float32(py)+half, half*0.8, tmpl.RGBA(), true)
		ebitenutil.DebugPrintAt(screen, string(tmpl.Rune()), int(px)+r.TileSize/2-3, int(py)+r.TileSize/2-8)
	}
}

// TileAtPixel returns the map coordinates under pixel (x, y) of a map drawn
// at (ox, oy)
func (r *MapRenderer) TileAtPixel(x, y int, ox, oy float64) geom.IntVec2 {
	sx := (x - int(ox)) / r.TileSize
	sy := (y - int(oy)) / r.TileSize
	return r.Viewport.ScreenToWorld(geom.IntVec2{X: sx, Y: sy})
}
