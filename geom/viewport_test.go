package geom

import "testing"

func TestViewportClamp(t *testing.T) {
	tests := []struct {
		name         string
		start        IntVec2
		gridW, gridH int
		want         IntVec2
	}{
		{"inside", IntVec2{5, 5}, 40, 30, IntVec2{5, 5}},
		{"negative", IntVec2{-3, -1}, 40, 30, IntVec2{0, 0}},
		{"past the far edge", IntVec2{35, 28}, 40, 30, IntVec2{30, 20}},
		{"grid smaller than view", IntVec2{4, 4}, 6, 6, IntVec2{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Viewport{X: tt.start.X, Y: tt.start.Y, W: 10, H: 10}
			v.Clamp(tt.gridW, tt.gridH)
			if got := (IntVec2{v.X, v.Y}); got != tt.want {
				t.Errorf("Clamp = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewportConversions(t *testing.T) {
	v := Viewport{W: 10, H: 8}
	v.CenterOn(IntVec2{20, 20})
	if v.X != 15 || v.Y != 16 {
		t.Fatalf("Expected 15,16, got %d,%d", v.X, v.Y)
	}

	world := IntVec2{17, 18}
	screen := v.WorldToScreen(world)
	if screen != (IntVec2{2, 2}) {
		t.Errorf("Expected 2,2, got %v", screen)
	}
	if v.ScreenToWorld(screen) != world {
		t.Errorf("Expected the round trip to return %v", world)
	}
	if !v.Visible(world) || v.Visible(IntVec2{25, 16}) {
		t.Error("Expected visibility to follow the view bounds")
	}

	v.Pan(-2, 1)
	if v.X != 13 || v.Y != 17 {
		t.Errorf("Expected 13,17 after panning, got %d,%d", v.X, v.Y)
	}
}
