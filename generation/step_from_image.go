package generation

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"promage2/geom"
)

// fromImage stamps tile types from a PNG whose pixel colors match tile
// texel colors
type fromImage struct {
	ImageFilePath *Field[string]
	AlignX        *Field[geom.FloatRange]
	AlignY        *Field[geom.FloatRange]
	FlipX         *Field[bool]
	FlipY         *Field[bool]
}

func newFromImage() *fromImage {
	p := &fromImage{
		ImageFilePath: stringField("", "imageFilePath", ""),
		AlignX:        floatRangeField("", "alignX", geom.NewFloatRange(0.5)),
		AlignY:        floatRangeField("", "alignY", geom.NewFloatRange(0.5)),
		FlipX:         boolField("", "flipX", false),
		FlipY:         boolField("", "flipY", false),
	}
	p.ImageFilePath.Required = true
	return p
}

func (fi *fromImage) fields() []field {
	return []field{fi.ImageFilePath, fi.AlignX, fi.AlignY, fi.FlipX, fi.FlipY}
}

func (fi *fromImage) run(s *Step, m *Map) {
	img, err := s.gen.loadImage(fi.ImageFilePath.Value)
	if err != nil {
		s.gen.Console.Errorf("%s: %v", s.Name, err)
		return
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	offsetX := alignOffset(fi.AlignX.Value.Roll(s.gen.rng), m.Width, w)
	offsetY := alignOffset(fi.AlignY.Value.Roll(s.gen.rng), m.Height, h)

	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			sx, sy := px, py
			if fi.FlipX.Value {
				sx = w - 1 - px
			}
			if fi.FlipY.Value {
				sy = h - 1 - py
			}
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+sx, bounds.Min.Y+sy)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			def := s.gen.TileDefForTexel(c.R, c.G, c.B, c.A)
			if def == nil {
				continue
			}
			t := m.TileAt(offsetX+px, offsetY+py)
			if t == nil || !s.tileSelected(t) {
				continue
			}
			s.ChangeTileType(t, def)
			s.applyResults(m, t)
		}
	}
}

// alignOffset places an image of size inside a map of mapSize. 0 aligns to
// the low edge, 1 to the high edge.
func alignOffset(align float64, mapSize, size int) int {
	align = math.Max(0, math.Min(1, align))
	return int(math.Round(align * float64(mapSize-size)))
}

// loadImage decodes a PNG once per path. Relative paths are resolved
// against ImageDir.
func (g *Generator) loadImage(path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("no image path")
	}
	if !filepath.IsAbs(path) && g.ImageDir != "" {
		path = filepath.Join(g.ImageDir, path)
	}
	if img, ok := g.images[path]; ok {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	g.images[path] = img
	return img, nil
}
