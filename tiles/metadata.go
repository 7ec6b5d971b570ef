package tiles

import (
	"cmp"
	"sort"
	"strings"

	"promage2/tags"
)

// Metadata is the per-tile scratch state mutated by generation steps
type Metadata struct {
	Tags *tags.Tags

	heatMaps     map[string]float64
	heatMapNames map[string]string
	overlays     []*Def
}

// NewMetadata creates empty metadata
func NewMetadata() *Metadata {
	return &Metadata{
		Tags:         tags.New(""),
		heatMaps:     make(map[string]float64),
		heatMapNames: make(map[string]string),
	}
}

// SetHeatMap stores a named value. Names are case-insensitive.
func (m *Metadata) SetHeatMap(name string, value float64) {
	key := strings.ToLower(name)
	m.heatMaps[key] = value
	if _, ok := m.heatMapNames[key]; !ok {
		m.heatMapNames[key] = name
	}
}

// GetHeatMap returns the named value and whether it has been set
func (m *Metadata) GetHeatMap(name string) (float64, bool) {
	value, ok := m.heatMaps[strings.ToLower(name)]
	return value, ok
}

// AddHeatMap adds delta to the named value, treating an unset value as 0
func (m *Metadata) AddHeatMap(name string, delta float64) float64 {
	value, _ := m.GetHeatMap(name)
	m.SetHeatMap(name, value+delta)
	return value + delta
}

// HeatMapNames returns the set heat map names, sorted
func (m *Metadata) HeatMapNames() []string {
	names := make([]string, 0, len(m.heatMapNames))
	for _, name := range m.heatMapNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CompareDrawOrder orders overlays; lower draw orders are drawn first
func CompareDrawOrder(a, b *Def) int {
	return cmp.Compare(a.DrawOrder, b.DrawOrder)
}

// PushOverlay inserts an extra render layer. Equal draw orders keep their
// insertion order.
func (m *Metadata) PushOverlay(def *Def) {
	i := sort.Search(len(m.overlays), func(i int) bool {
		return CompareDrawOrder(m.overlays[i], def) > 0
	})
	m.overlays = append(m.overlays, nil)
	copy(m.overlays[i+1:], m.overlays[i:])
	m.overlays[i] = def
}

// Overlays returns the render layers in draw order
func (m *Metadata) Overlays() []*Def {
	return append([]*Def(nil), m.overlays...)
}

// ClearOverlays drops every render layer
func (m *Metadata) ClearOverlays() {
	m.overlays = nil
}

// Clone returns an independent copy
func (m *Metadata) Clone() *Metadata {
	c := &Metadata{
		Tags:         m.Tags.Clone(),
		heatMaps:     make(map[string]float64, len(m.heatMaps)),
		heatMapNames: make(map[string]string, len(m.heatMapNames)),
		overlays:     append([]*Def(nil), m.overlays...),
	}
	for k, v := range m.heatMaps {
		c.heatMaps[k] = v
	}
	for k, v := range m.heatMapNames {
		c.heatMapNames[k] = v
	}
	return c
}
