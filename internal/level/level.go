// Package level maps a user's point balance to a display tier.
package level

import "errors"

// Level is one of eight ordered tiers.
type Level string

const (
	Seed   Level = "SEED"
	Root   Level = "ROOT"
	Sprout Level = "SPROUT"
	Stem   Level = "STEM"
	Leaf   Level = "LEAF"
	Tree   Level = "TREE"
	Flower Level = "FLOWER"
	Fruit  Level = "FRUIT"
)

var ErrNegativePoints = errors.New("point balance must not be negative")

// thresholds are exclusive upper bounds, in tier order.
var thresholds = []struct {
	below int
	level Level
}{
	{2, Seed},
	{5, Root},
	{10, Sprout},
	{20, Stem},
	{30, Leaf},
	{50, Tree},
	{100, Flower},
}

// Classify returns the tier for points. A value equal to a threshold belongs
// to the next tier up.
func Classify(points int) (Level, error) {
	if points < 0 {
		return "", ErrNegativePoints
	}
	for _, t := range thresholds {
		if points < t.below {
			return t.level, nil
		}
	}
	return Fruit, nil
}
