package collision

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/srizzi88/SENSEI-sub038/mesh"
)

// neutral is the color of cells that touch nothing.
var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// generateScalars colors the cells of each output. Contacting cells get a hue that advances with
// the order in which they were found; every other cell is grey.
func (f *Filter) generateScalars() {
	alpha := uint8(math.Round(f.cfg.Opacity * 255))
	for role := 0; role < 2; role++ {
		out := f.outputs[role]
		colors := make([][4]uint8, out.NumberOfCells())
		for i := range colors {
			colors[i] = rgba(neutral, alpha)
		}

		var order []int64
		seen := make(map[int64]bool)
		for _, pair := range f.pairs {
			id := pair.CellIDs[role]
			if !seen[id] {
				seen[id] = true
				order = append(order, id)
			}
		}
		for k, id := range order {
			hue := 300 * float64(k) / float64(len(order))
			colors[id] = rgba(colorful.Hsv(hue, 1, 1), alpha)
		}
		out.SetCellData(&mesh.ColorArray{Name: ScalarsName, Values: colors})
	}
}

func rgba(c colorful.Color, alpha uint8) [4]uint8 {
	r, g, b := c.Clamped().RGB255()
	return [4]uint8{r, g, b, alpha}
}
