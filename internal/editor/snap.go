package editor

import (
	"math"

	"github.com/drawdeck/drawdeck/backend-go/internal/geom"
)

// GridSnapper returns a SnapFunc that rounds both coordinates to the nearest
// multiple of size. A size of zero or less disables snapping.
func GridSnapper(size float64) SnapFunc {
	if size <= 0 {
		return nil
	}
	return func(p geom.Point) geom.Point {
		return geom.Pt(math.Round(p.X/size)*size, math.Round(p.Y/size)*size)
	}
}
