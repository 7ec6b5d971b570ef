package geom

// Viewport is a W x H tile window onto a larger grid, positioned by its
// top-left world tile
type Viewport struct {
	X, Y int
	W, H int // visible size in tiles
}

// CenterOn places p at the middle of the view
func (v *Viewport) CenterOn(p IntVec2) {
	v.X = p.X - v.W/2
	v.Y = p.Y - v.H/2
}

// Pan moves the view by a tile offset
func (v *Viewport) Pan(dx, dy int) {
	v.X += dx
	v.Y += dy
}

// Clamp keeps the view inside a gridW x gridH grid. A grid smaller than
// the view is pinned to the top-left corner.
func (v *Viewport) Clamp(gridW, gridH int) {
	v.X = clampAxis(v.X, v.W, gridW)
	v.Y = clampAxis(v.Y, v.H, gridH)
}

func clampAxis(pos, view, grid int) int {
	if pos > grid-view {
		pos = grid - view
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// WorldToScreen converts world tile coordinates to view coordinates
func (v Viewport) WorldToScreen(world IntVec2) IntVec2 {
	return IntVec2{X: world.X - v.X, Y: world.Y - v.Y}
}

// ScreenToWorld converts view coordinates to world tile coordinates
func (v Viewport) ScreenToWorld(screen IntVec2) IntVec2 {
	return IntVec2{X: screen.X + v.X, Y: screen.Y + v.Y}
}

// Visible reports whether a world tile falls inside the view
func (v Viewport) Visible(world IntVec2) bool {
	s := v.WorldToScreen(world)
	return s.X >= 0 && s.X < v.W && s.Y >= 0 && s.Y < v.H
}
