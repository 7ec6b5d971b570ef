package config

// Screen layout configuration
const (
	// Tile size in pixels
	TileSize = 16

	// Window dimensions in tiles
	ScreenWidth  = 64
	ScreenHeight = 48

	// UI layout
	MapScreenWidth  = 48 // Map area width in tiles
	MapScreenHeight = 40 // Map area height in tiles
	PanelWidth      = ScreenWidth - MapScreenWidth

	// Window dimensions in pixels (derived from tile dimensions)
	WindowWidth  = ScreenWidth * TileSize
	WindowHeight = ScreenHeight * TileSize
)

// Sprite sheet layout used to turn tile sprite coordinates into UVs
const (
	SpriteSheetCols    = 16
	SpriteSheetRows    = 16
	SpriteSheetTexelPx = 12 // The source sheet has 12x12 pixel sprites
)

// GetScreenDimensions returns the screen dimensions in pixels
func GetScreenDimensions() (width, height int) {
	return WindowWidth, WindowHeight
}
