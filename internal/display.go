package internal

// Display dimensions
const (
	ScreenWidth  = 64
	ScreenHeight = 32
	spriteWidth  = 8
)

// Display is the 64 x 32 monochrome frame buffer, stored row major.
type Display [ScreenWidth * ScreenHeight]bool

// clear resets every pixel to off.
func (d *Display) clear() {
	*d = Display{}
}

// Pixel returns whether the pixel at column x, row y is set. Coordinates
// outside the screen read as off.
func (d *Display) Pixel(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return d[y*ScreenWidth+x]
}

// draw XORs sprite rows onto the screen at (x, y) and reports whether any set
// pixel was turned off. The start coordinates wrap around the screen, pixels
// that then fall past the right or bottom edge are clipped.
func (d *Display) draw(x, y uint8, rows []uint8) bool {
	x0 := int(x) % ScreenWidth
	y0 := int(y) % ScreenHeight

	collision := false
	for r, spriteByte := range rows {
		row := y0 + r
		if row >= ScreenHeight {
			break
		}
		for c := 0; c < spriteWidth; c++ {
			col := x0 + c
			if col >= ScreenWidth {
				break
			}
			if spriteByte&(0x80>>c) == 0 {
				continue
			}
			px := &d[row*ScreenWidth+col]
			if *px {
				collision = true
			}
			*px = !*px
		}
	}
	return collision
}
