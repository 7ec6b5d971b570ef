package generation

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Noise2 is a 2D noise source returning values in [0, 1]
type Noise2 interface {
	Eval2(x, y float64) float64
}

// PerlinNoise provides a simple implementation of Perlin noise
type PerlinNoise struct {
	permutation []int
}

// NewPerlinNoise creates a new Perlin noise generator
func NewPerlinNoise(seed int64) *PerlinNoise {
	p := &PerlinNoise{}

	// Initialize permutation table
	p.permutation = make([]int, 256)
	for i := range p.permutation {
		p.permutation[i] = i
	}

	// Shuffle the permutation table
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(p.permutation), func(i, j int) {
		p.permutation[i], p.permutation[j] = p.permutation[j], p.permutation[i]
	})

	return p
}

// Eval2 samples the noise, remapped from [-1, 1] to [0, 1]
func (p *PerlinNoise) Eval2(x, y float64) float64 {
	return clamp01((p.perlin(x, y) + 1) / 2)
}

// Helper functions for Perlin noise generation
func (p *PerlinNoise) fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func (p *PerlinNoise) lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func (p *PerlinNoise) grad(hash int, x, y float64) float64 {
	h := hash & 15

	u := y
	if h < 4 {
		u = x
	}

	v := x
	if h < 12 {
		v = y
	}

	result := u
	if (h & 1) != 0 {
		result = -u
	}

	if (h & 2) != 0 {
		result -= v
	} else {
		result += v
	}

	return result
}

func (p *PerlinNoise) perlin(x, y float64) float64 {
	// Find unit grid cell containing the point
	X := int(math.Floor(x)) & 255
	Y := int(math.Floor(y)) & 255

	// Find relative x, y of point in cell
	x -= math.Floor(x)
	y -= math.Floor(y)

	u := p.fade(x)
	v := p.fade(y)

	// Hash coordinates of the 4 corners
	perm := p.permutation
	AA := perm[(perm[X]+Y)&255]
	AB := perm[(perm[X]+Y+1)&255]
	BA := perm[(perm[(X+1)&255]+Y)&255]
	BB := perm[(perm[(X+1)&255]+Y+1)&255]

	return p.lerp(
		p.lerp(p.grad(AA, x, y), p.grad(BA, x-1, y), u),
		p.lerp(p.grad(AB, x, y-1), p.grad(BB, x-1, y-1), u),
		v,
	)
}

// NewSimplexNoise wraps OpenSimplex in the same [0, 1] contract
func NewSimplexNoise(seed int64) Noise2 {
	return opensimplex.NewNormalized(seed)
}

// OctaveNoise layers octaves of a noise source. gridSize is the cell size
// of the first octave in tiles; each octave scales frequency by scale and
// amplitude by persistence.
func OctaveNoise(noise Noise2, x, y, gridSize float64, octaves int, persistence, scale float64) float64 {
	if gridSize <= 0 {
		gridSize = 1
	}
	if octaves < 1 {
		octaves = 1
	}

	total := 0.0
	amplitude := 1.0
	frequency := 1.0 / gridSize
	maxValue := 0.0

	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= scale
	}

	if maxValue == 0 {
		return 0
	}
	return clamp01(total / maxValue)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
