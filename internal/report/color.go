package report

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/bianoble/deck-profile/internal/directive"
)

var (
	black = colorful.Color{R: 0, G: 0, B: 0}
	white = colorful.Color{R: 1, G: 1, B: 1}
)

// swatchCell paints text on a true-color background of c, with black or
// white text, whichever is further from c in Lab space.
func swatchCell(c directive.RGB, text string) string {
	bg := c.Colorful()
	fg := white
	if bg.DistanceLab(black) > bg.DistanceLab(white) {
		fg = black
	}
	r, g, b := fg.RGB255()
	return fmt.Sprintf("\033[48;2;%d;%d;%dm\033[38;2;%d;%d;%dm%s%s", c.R, c.G, c.B, r, g, b, text, ansiReset)
}
