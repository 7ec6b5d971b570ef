package generation

import "strings"

// Noise types accepted by PerlinNoise
const (
	NoisePerlin  = "perlin"
	NoiseSimplex = "simplex"
)

// perlinNoise writes fractal noise into a heat map, then applies Results to
// tiles passing the Conditions, which may test the fresh noise value
type perlinNoise struct {
	GridSize          *Field[float64]
	NumOctaves        *Field[int]
	OctavePersistence *Field[float64]
	OctaveScale       *Field[float64]
	NoiseType         *Field[string]
	HeatMapName       *Field[string]
}

func newPerlinNoise() *perlinNoise {
	return &perlinNoise{
		GridSize:          floatField("", "gridSize", 10),
		NumOctaves:        intField("", "numOctaves", 1),
		OctavePersistence: floatField("", "octavePersistence", 0.5),
		OctaveScale:       floatField("", "octaveScale", 2),
		NoiseType:         stringField("", "noiseType", NoisePerlin),
		HeatMapName:       stringField("", "heatMapName", "Noise"),
	}
}

func (pn *perlinNoise) fields() []field {
	return []field{pn.GridSize, pn.NumOctaves, pn.OctavePersistence, pn.OctaveScale, pn.NoiseType, pn.HeatMapName}
}

func (pn *perlinNoise) run(s *Step, m *Map) {
	seed := s.gen.rng.Int63()

	var noise Noise2
	switch strings.ToLower(pn.NoiseType.Value) {
	case NoiseSimplex:
		noise = NewSimplexNoise(seed)
	case NoisePerlin:
		noise = NewPerlinNoise(seed)
	default:
		s.gen.Console.Warnf("%s: unknown noise type %q, using %s", s.Name, pn.NoiseType.Value, NoisePerlin)
		noise = NewPerlinNoise(seed)
	}

	name := pn.HeatMapName.Value
	for _, t := range m.Tiles() {
		value := OctaveNoise(noise, float64(t.Coords.X), float64(t.Coords.Y),
			pn.GridSize.Value, pn.NumOctaves.Value, pn.OctavePersistence.Value, pn.OctaveScale.Value)
		s.ChangeTileHeatMap(t, name, value)
	}

	for _, t := range m.Tiles() {
		if s.tileSelected(t) {
			s.applyResults(m, t)
		}
	}
}
