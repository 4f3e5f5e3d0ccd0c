package entity

import (
	"fmt"
	"math/rand"
)

// VariantCount is the number of cosmetic item variants the renderer knows
// how to draw.
const VariantCount = 4

// Item is the single consumable on the board. Variant selects a cosmetic
// palette; it has no gameplay effect.
type Item struct {
	X, Y    int
	Variant int
}

// Cell returns the item's grid cell.
func (it Item) Cell() Cell {
	return Cell{X: it.X, Y: it.Y}
}

// PlaceItem picks a free cell uniformly at random on a gridSize x gridSize
// board and pairs it with a random cosmetic variant. Free cells are
// enumerated directly rather than sampled by rejection, so a nearly full
// board cannot loop. A fully occupied board returns an error; under normal
// play the creature can never cover the whole grid, so callers treat this as
// a terminal condition distinct from an ordinary collision.
func PlaceItem(rng *rand.Rand, gridSize int, occupied map[Cell]bool) (Item, error) {
	free := make([]Cell, 0, gridSize*gridSize-len(occupied))
	for y := 0; y < gridSize; y++ {
		for x := 0; x < gridSize; x++ {
			cell := Cell{X: x, Y: y}
			if !occupied[cell] {
				free = append(free, cell)
			}
		}
	}
	if len(free) == 0 {
		return Item{}, fmt.Errorf("no free cell on %dx%d grid", gridSize, gridSize)
	}

	cell := free[rng.Intn(len(free))]
	return Item{
		X:       cell.X,
		Y:       cell.Y,
		Variant: rng.Intn(VariantCount),
	}, nil
}
